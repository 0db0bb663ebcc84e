package funnel

import (
	"database/sql"
	"fmt"
	"sort"

	"funnel-cohort/pkg/models"
)

/*
FUNNEL → décompte cumulé inclusif par étape + drop-off signé.

Un candidat de rang R compte pour toutes les étapes de rang <= R : atteindre
une étape implique d'avoir atteint les précédentes. Seule la comparaison de
rangs fait foi, pas un quelconque historique de passage — les décomptes sont
donc décroissants (au sens large) par construction, même sur des données
incohérentes.
*/

// DefaultStages est l'ordre de référence du funnel de recrutement.
var DefaultStages = []models.StageDefinition{
	{Name: "Sign Up", Rank: 1},
	{Name: "Profile Uploaded", Rank: 2},
	{Name: "Applied", Rank: 3},
	{Name: "Interview", Rank: 4},
	{Name: "Offer", Rank: 5},
	{Name: "Hired", Rank: 6},
}

// SchemaError signale un statut ne correspondant à aucune étape configurée.
// Le calcul échoue en bloc : une étape mal mappée corromprait silencieusement
// tous les décomptes cumulés en aval.
type SchemaError struct {
	UserID uint64
	Status string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("statut inconnu %q (user_id=%d)", e.Status, e.UserID)
}

// Compute calcule une ligne de funnel par étape, dans l'ordre des rangs.
// Le drop-off de la 1ère étape vaut 0 ; ensuite c'est la variation signée en %
// du décompte vs l'étape précédente, invalide si celle-ci était vide.
func Compute(applicants []models.Applicant, stages []models.StageDefinition) ([]models.FunnelRow, error) {
	ordered := make([]models.StageDefinition, len(stages))
	copy(ordered, stages)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })

	rankByName := make(map[string]int, len(ordered))
	for _, s := range ordered {
		rankByName[s.Name] = s.Rank
	}

	// Histogramme par rang ; tout statut inconnu invalide le calcul entier.
	byRank := make(map[int]int, len(ordered))
	for _, a := range applicants {
		rank, ok := rankByName[a.CurrentStatus]
		if !ok {
			return nil, &SchemaError{UserID: a.UserID, Status: a.CurrentStatus}
		}
		byRank[rank]++
	}

	// Cumul inclusif : on descend du dernier rang vers le premier.
	cumulative := make([]int, len(ordered))
	running := 0
	for i := len(ordered) - 1; i >= 0; i-- {
		running += byRank[ordered[i].Rank]
		cumulative[i] = running
	}

	rows := make([]models.FunnelRow, 0, len(ordered))
	for i, s := range ordered {
		row := models.FunnelRow{
			StageName: s.Name,
			StageRank: s.Rank,
			UserCount: cumulative[i],
		}
		switch {
		case i == 0:
			// pas d'étape précédente
			row.DropOffPct = sql.NullFloat64{Float64: 0, Valid: true}
		case cumulative[i-1] > 0:
			pct := 100 * float64(cumulative[i]-cumulative[i-1]) / float64(cumulative[i-1])
			row.DropOffPct = sql.NullFloat64{Float64: pct, Valid: true}
		default:
			// dénominateur nul → indéfini, jamais 0 ni ±Inf
			row.DropOffPct = sql.NullFloat64{Valid: false}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
