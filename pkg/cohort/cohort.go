package cohort

import (
	"fmt"

	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
)

/*
COHORTE → affectation par premier mois d'activité, puis matrice de rétention.

La cohorte d'un utilisateur est le plus petit mois observé parmi ses
événements ; chaque événement est étiqueté avec l'écart en mois calendaires
entre son mois d'activité et cette cohorte (arithmétique d'index entiers,
voir pkg/period).
*/

// Assign étiquette chaque événement avec la cohorte de son utilisateur et son
// offset de période. Au moins un événement par utilisateur a un offset 0
// (celui qui définit la cohorte). Entrée vide → sortie vide.
func Assign(events []models.ActivityEvent) []models.LabeledEvent {
	if len(events) == 0 {
		return nil
	}

	cohortByUser := make(map[uint64]period.Period, len(events))
	for _, ev := range events {
		p := period.Of(ev.EventTime)
		if cur, ok := cohortByUser[ev.UserID]; !ok || p < cur {
			cohortByUser[ev.UserID] = p
		}
	}

	out := make([]models.LabeledEvent, 0, len(events))
	for _, ev := range events {
		p := period.Of(ev.EventTime)
		c := cohortByUser[ev.UserID]
		out = append(out, models.LabeledEvent{
			UserID:         ev.UserID,
			ActivityPeriod: p,
			CohortPeriod:   c,
			PeriodOffset:   p.Sub(c),
		})
	}
	return out
}

type cellKey struct {
	cohort period.Period
	offset int
}

// BuildMatrix agrège les événements étiquetés en % de rétention par
// (cohorte, offset). Les utilisateurs sont dédupliqués par cellule : des
// connexions répétées le même mois comptent pour un. Les cellules sans
// activité observée sont absentes de la matrice, pas à zéro.
func BuildMatrix(labeled []models.LabeledEvent) (models.RetentionMatrix, error) {
	distinct := make(map[cellKey]map[uint64]struct{})
	for _, ev := range labeled {
		key := cellKey{cohort: ev.CohortPeriod, offset: ev.PeriodOffset}
		set, ok := distinct[key]
		if !ok {
			set = make(map[uint64]struct{})
			distinct[key] = set
		}
		set[ev.UserID] = struct{}{}
	}

	// Taille de cohorte = utilisateurs distincts à l'offset 0, garanti présent
	// pour toute cohorte issue de Assign.
	sizes := make(map[period.Period]int)
	for key, set := range distinct {
		if key.offset == 0 {
			sizes[key.cohort] = len(set)
		}
	}

	matrix := make(models.RetentionMatrix, len(sizes))
	for key, set := range distinct {
		size := sizes[key.cohort]
		if size == 0 {
			return nil, fmt.Errorf("cohorte %s sans cellule offset 0 (taille nulle)", key.cohort)
		}
		row, ok := matrix[key.cohort]
		if !ok {
			row = make(map[int]float64)
			matrix[key.cohort] = row
		}
		row[key.offset] = 100 * float64(len(set)) / float64(size)
	}
	return matrix, nil
}
