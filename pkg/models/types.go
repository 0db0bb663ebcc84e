package models

import (
	"database/sql"
	"time"

	"funnel-cohort/pkg/period"
)

/*
INPUT → types bruts tels que fournis par le générateur de données.
*/

// Applicant représente un candidat avec son statut courant dans le funnel.
type Applicant struct {
	UserID          uint64
	ApplicationDate time.Time
	CurrentStatus   string // doit correspondre à un StageDefinition.Name
}

// ActivityEvent représente un événement de connexion brut d'un utilisateur.
type ActivityEvent struct {
	UserID    uint64
	EventTime time.Time
}

/*
FUNNEL → configuration des étapes et résultat par étape.
*/

// StageDefinition associe une étape du funnel à son rang (ordre total, rangs
// strictement croissants à partir de 1).
type StageDefinition struct {
	Name string
	Rank int
}

// FunnelRow contient le décompte cumulé et le drop-off d'une étape.
// DropOffPct est invalide quand le dénominateur (étape précédente) est nul :
// "pas de base de comparaison" n'est pas "pas de chute".
type FunnelRow struct {
	StageName  string
	StageRank  int
	UserCount  int
	DropOffPct sql.NullFloat64 // % signé vs étape précédente, 0 pour la 1ère
}

/*
COHORTE → types dérivés de l'analyse de rétention mensuelle.
*/

// LabeledEvent est un événement étiqueté avec la cohorte de son utilisateur
// (premier mois d'activité observé) et l'écart en mois calendaires.
type LabeledEvent struct {
	UserID         uint64
	ActivityPeriod period.Period
	CohortPeriod   period.Period
	PeriodOffset   int // >= 0, toujours 0 pour l'événement définissant la cohorte
}

// RetentionMatrix associe cohorte → offset → % de rétention dans [0,100].
// Une cellule absente signifie "pas encore de donnée", jamais "zéro" ; les
// deux cas doivent rester distinguables par les consommateurs.
type RetentionMatrix map[period.Period]map[int]float64

/*
CONFIG → paramètres globaux
*/

// Config contient les paramètres d'une exécution de l'analyse.
type Config struct {
	Seed        int64         // graine du générateur synthétique
	Applicants  int           // nombre de candidats générés
	Events      int           // nombre d'événements de connexion générés
	StartMonth  period.Period // 1er mois de la fenêtre d'observation
	HeatmapPath string        // chemin du PNG de rétention
	Verbose     bool          // Flag pour activer les logs détaillés.
}
