package main

import (
	"errors"
	"flag"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"funnel-cohort/pkg/cohort"
	"funnel-cohort/pkg/funnel"
	"funnel-cohort/pkg/generator"
	"funnel-cohort/pkg/heatmap"
	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
	"funnel-cohort/pkg/report"
)

func main() {
	// .env optionnel, ne remplace jamais l'environnement existant
	_ = godotenv.Load()

	// Flags simplifiés
	seed := flag.Int64("seed", envInt64("FUNNEL_COHORT_SEED", 42), "Graine du générateur de données synthétiques")
	applicants := flag.Int("applicants", envInt("FUNNEL_COHORT_APPLICANTS", 1000), "Nombre de candidats générés")
	events := flag.Int("events", envInt("FUNNEL_COHORT_EVENTS", 5000), "Nombre d'événements de connexion générés")
	startMonth := flag.String("start_month", "012024", "Mois de début de la fenêtre (MMYYYY)")
	out := flag.String("out", envStr("FUNNEL_COHORT_OUT", "cohort_analysis.png"), "Chemin du heatmap de rétention (PNG)")
	verbose := flag.Bool("v", false, "Mode verbeux")
	flag.Parse()

	initLogger(*verbose)

	start, err := period.Parse(*startMonth)
	if err != nil {
		logrus.Fatalf("start_month: %v", err)
	}
	if *applicants <= 0 || *events < 0 {
		logrus.Fatalf("Usage: funnel-cohort --applicants N --events M [--seed S] [--start_month MMYYYY]")
	}

	cfg := models.Config{
		Seed:        *seed,
		Applicants:  *applicants,
		Events:      *events,
		StartMonth:  start,
		HeatmapPath: *out,
		Verbose:     *verbose,
	}

	// Génération synthétique : graine explicite, jamais d'état global
	rng := rand.New(rand.NewSource(cfg.Seed))
	logrus.Infof("generating synthetic data (seed=%d, applicants=%d, events=%d, start=%s)",
		cfg.Seed, cfg.Applicants, cfg.Events, cfg.StartMonth)
	apps := generator.Applicants(rng, cfg.Applicants, cfg.StartMonth)
	evs := generator.Events(rng, cfg.Events, cfg.Applicants, cfg.StartMonth)

	// Les deux pipelines sont indépendants : erreurs capturées séparément,
	// l'échec de l'un ne bloque pas l'autre.
	var (
		rows      []models.FunnelRow
		funnelErr error
		matrix    models.RetentionMatrix
		cohortErr error
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, funnelErr = funnel.Compute(apps, funnel.DefaultStages)
	}()
	go func() {
		defer wg.Done()
		matrix, cohortErr = cohort.BuildMatrix(cohort.Assign(evs))
	}()
	wg.Wait()

	if funnelErr != nil {
		var se *funnel.SchemaError
		if errors.As(funnelErr, &se) {
			logrus.WithFields(logrus.Fields{"user_id": se.UserID, "status": se.Status}).
				Error("funnel analysis failed: unknown status")
		} else {
			logrus.Errorf("funnel analysis failed: %v", funnelErr)
		}
		rows = nil
	}
	if cohortErr != nil {
		logrus.Errorf("cohort analysis failed: %v", cohortErr)
		matrix = nil
	}

	report.Write(os.Stdout, rows, matrix)

	if len(matrix) > 0 {
		if err := heatmap.SavePNG(cfg.HeatmapPath, matrix); err != nil {
			logrus.Fatalf("heatmap: %v", err)
		}
		logrus.Infof("heatmap saved to %s", cfg.HeatmapPath)
	}

	if funnelErr != nil || cohortErr != nil {
		os.Exit(1)
	}
}

func initLogger(verbose bool) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if verbose && levelStr == "" {
		levelStr = "debug"
	}
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logrus.Warnf("invalid log level %q, defaulting to info", levelStr)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
