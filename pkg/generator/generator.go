package generator

import (
	"math/rand"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"funnel-cohort/pkg/funnel"
	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
)

/*
GÉNÉRATEUR → données synthétiques déterministes (graine explicite).

Le *rand.Rand est passé en paramètre : aucune graine globale ambiante, la
même graine et les mêmes paramètres reproduisent bit à bit les mêmes
collections.
*/

// Pondération des statuts, du haut vers le bas du funnel.
var stageProbs = []float64{0.35, 0.25, 0.20, 0.10, 0.07, 0.03}

const (
	applicationWindowDays = 90  // dates de candidature : start + [0, 90] jours
	activityWindowDays    = 120 // connexions : start + [0, 120] jours
)

// Applicants génère n candidats (user_id 1..n, uniques) avec un statut tiré
// selon stageProbs et une date de candidature uniforme dans la fenêtre.
func Applicants(rng *rand.Rand, n int, start period.Period) []models.Applicant {
	bar := progressbar.Default(int64(n), "applicants")
	base := start.Time()

	out := make([]models.Applicant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Applicant{
			UserID:          uint64(i + 1),
			ApplicationDate: base.AddDate(0, 0, rng.Intn(applicationWindowDays+1)),
			CurrentStatus:   drawStatus(rng),
		})
		_ = bar.Add(1)
	}
	logrus.Debugf("generated %d applicants from %s", n, start)
	return out
}

// Events génère n événements de connexion pour des user_id uniformes dans
// 1..users. Les doublons (même utilisateur, même jour) sont possibles et
// volontairement conservés : l'agrégation aval doit les tolérer.
func Events(rng *rand.Rand, n, users int, start period.Period) []models.ActivityEvent {
	bar := progressbar.Default(int64(n), "events")
	base := start.Time()

	out := make([]models.ActivityEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ActivityEvent{
			UserID:    uint64(rng.Intn(users) + 1),
			EventTime: base.AddDate(0, 0, rng.Intn(activityWindowDays+1)),
		})
		_ = bar.Add(1)
	}
	logrus.Debugf("generated %d activity events for %d users from %s", n, users, start)
	return out
}

// drawStatus tire une étape par seuils cumulés sur stageProbs.
func drawStatus(rng *rand.Rand) string {
	r := rng.Float64()
	acc := 0.0
	for i, p := range stageProbs {
		acc += p
		if r < acc {
			return funnel.DefaultStages[i].Name
		}
	}
	// arrondi flottant : la somme des poids vaut 1 à epsilon près
	return funnel.DefaultStages[len(funnel.DefaultStages)-1].Name
}
