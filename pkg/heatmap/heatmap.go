package heatmap

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/fogleman/gg"

	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
)

/*
HEATMAP → rendu PNG de la matrice de rétention.

Une ligne par cohorte (triées), une colonne par offset de 0 au plus grand
offset observé. Les cellules absentes restent sur le fond neutre, sans
annotation : "pas de donnée" ne se dessine pas comme 0 %.
*/

const (
	cellW       = 64
	cellH       = 36
	marginLeft  = 96
	marginTop   = 64
	marginBot   = 48
	marginRight = 24

	// bornes de l'échelle de couleur (les valeurs au-delà saturent)
	scaleMin = 0.0
	scaleMax = 50.0
)

// Render dessine la matrice en image annotée. Matrice vide → erreur.
func Render(matrix models.RetentionMatrix) (image.Image, error) {
	if len(matrix) == 0 {
		return nil, errors.New("matrice de rétention vide")
	}

	cohorts := make([]period.Period, 0, len(matrix))
	maxOffset := 0
	for cohort, row := range matrix {
		cohorts = append(cohorts, cohort)
		for offset := range row {
			if offset > maxOffset {
				maxOffset = offset
			}
		}
	}
	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i] < cohorts[j] })

	cols := maxOffset + 1
	width := marginLeft + cols*cellW + marginRight
	height := marginTop + len(cohorts)*cellH + marginBot

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("User Retention by Cohort", float64(width)/2, 22, 0.5, 0.5)
	dc.DrawStringAnchored("Months Since Acquisition", float64(marginLeft+cols*cellW/2), float64(height-16), 0.5, 0.5)

	// en-têtes de colonnes (offsets) et libellés de lignes (cohortes)
	for c := 0; c < cols; c++ {
		x := float64(marginLeft + c*cellW + cellW/2)
		dc.DrawStringAnchored(fmt.Sprintf("%d", c), x, marginTop-12, 0.5, 0.5)
	}
	for r, cohort := range cohorts {
		y := float64(marginTop + r*cellH + cellH/2)
		dc.DrawStringAnchored(cohort.String(), marginLeft-8, y, 1, 0.5)
	}

	for r, cohort := range cohorts {
		for c := 0; c < cols; c++ {
			pct, ok := matrix[cohort][c]
			if !ok {
				continue
			}
			x := float64(marginLeft + c*cellW)
			y := float64(marginTop + r*cellH)

			cr, cg, cb := rampColor(pct)
			dc.SetRGB(cr, cg, cb)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()

			if pct > (scaleMax-scaleMin)/2 {
				dc.SetRGB(1, 1, 1)
			} else {
				dc.SetRGB(0, 0, 0)
			}
			dc.DrawStringAnchored(fmt.Sprintf("%.1f", pct), x+cellW/2, y+cellH/2, 0.5, 0.5)
		}
	}

	// grille par-dessus les cellules
	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(1)
	for r := 0; r <= len(cohorts); r++ {
		y := float64(marginTop + r*cellH)
		dc.DrawLine(marginLeft, y, float64(marginLeft+cols*cellW), y)
	}
	for c := 0; c <= cols; c++ {
		x := float64(marginLeft + c*cellW)
		dc.DrawLine(x, marginTop, x, float64(marginTop+len(cohorts)*cellH))
	}
	dc.Stroke()

	return dc.Image(), nil
}

// SavePNG rend la matrice et l'écrit sur disque.
func SavePNG(path string, matrix models.RetentionMatrix) error {
	img, err := Render(matrix)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// rampColor interpole un dégradé jaune pâle → vert → bleu foncé sur [scaleMin, scaleMax].
func rampColor(v float64) (r, g, b float64) {
	t := (v - scaleMin) / (scaleMax - scaleMin)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	// trois points d'arrêt, interpolation linéaire par segment
	lo := [3]float64{1.00, 1.00, 0.85}
	mid := [3]float64{0.25, 0.71, 0.77}
	hi := [3]float64{0.03, 0.11, 0.35}
	if t < 0.5 {
		f := t * 2
		return lerp(lo[0], mid[0], f), lerp(lo[1], mid[1], f), lerp(lo[2], mid[2], f)
	}
	f := (t - 0.5) * 2
	return lerp(mid[0], hi[0], f), lerp(mid[1], hi[1], f), lerp(mid[2], hi[2], f)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
