package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
)

/*
RAPPORT → synthèse texte (funnel + rétention) pour la sortie standard.

Fonction pure de ses entrées : tout passe par l'io.Writer fourni. Un
drop-off indéfini s'affiche "n/a", jamais 0 — le lecteur doit pouvoir
distinguer "pas de chute" de "dénominateur vide".
*/

const bannerWidth = 50

// Write écrit le rapport de synthèse. rows peut être nil (funnel en échec,
// la section est alors omise) ; matrix peut être vide (aucun événement).
func Write(w io.Writer, rows []models.FunnelRow, matrix models.RetentionMatrix) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", bannerWidth))
	fmt.Fprintln(w, "EXECUTIVE SUMMARY REPORT")
	fmt.Fprintln(w, strings.Repeat("=", bannerWidth))

	if rows != nil {
		writeFunnel(w, rows)
	}
	writeRetention(w, matrix)
}

func writeFunnel(w io.Writer, rows []models.FunnelRow) {
	fmt.Fprintln(w, "\n1. FUNNEL ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("-", 30))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Stage", "Users", "Drop-off %"})
	for _, row := range rows {
		drop := "n/a"
		if row.DropOffPct.Valid {
			drop = strconv.FormatFloat(row.DropOffPct.Float64, 'f', 1, 64)
		}
		table.Append([]string{row.StageName, strconv.Itoa(row.UserCount), drop})
	}
	table.Render()

	if worst, ok := worstDrop(rows); ok {
		fmt.Fprintf(w, "\n[Key Insight]: The largest drop-off (%.1f%%) occurs at the '%s' stage.\n",
			worst.DropOffPct.Float64, worst.StageName)
		fmt.Fprintln(w, "[Recommendation]: Investigate technical friction in this step or review qualification criteria.")
	}
}

// worstDrop retourne l'étape au drop-off défini le plus négatif (hors 1ère).
func worstDrop(rows []models.FunnelRow) (models.FunnelRow, bool) {
	var worst models.FunnelRow
	found := false
	if len(rows) < 2 {
		return worst, false
	}
	for _, row := range rows[1:] {
		if !row.DropOffPct.Valid {
			continue
		}
		if !found || row.DropOffPct.Float64 < worst.DropOffPct.Float64 {
			worst = row
			found = true
		}
	}
	return worst, found
}

func writeRetention(w io.Writer, matrix models.RetentionMatrix) {
	// moyenne du mois 1 sur les cohortes qui ont une cellule offset 1 ;
	// une cellule absente est "pas encore de donnée", pas un zéro à moyenner
	sum := 0.0
	n := 0
	for _, cohort := range sortedCohorts(matrix) {
		if pct, ok := matrix[cohort][1]; ok {
			sum += pct
			n++
		}
	}

	if n == 0 {
		fmt.Fprintln(w, "\n[Insight]: Not enough data for Month 1 retention yet.")
		return
	}

	avg := sum / float64(n)
	fmt.Fprintln(w, "\n2. COHORT RETENTION")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Average Month 1 Retention: %.1f%%\n", avg)
	if avg < 20 {
		fmt.Fprintln(w, "[Insight]: Retention is critically low. Users are not finding immediate value.")
	} else {
		fmt.Fprintln(w, "[Insight]: Healthy initial retention, indicating strong product-market fit.")
	}
}

func sortedCohorts(matrix models.RetentionMatrix) []period.Period {
	out := make([]period.Period, 0, len(matrix))
	for cohort := range matrix {
		out = append(out, cohort)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
