package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"milecompare/internal/adapters/observability"
	"milecompare/internal/app"
	"milecompare/internal/domain"
	"milecompare/internal/reference"
	"milecompare/internal/shared"
	mysqlrepo "milecompare/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	builtin := flag.Bool("builtin", false, "also seed the built-in reference charts")
	dir := flag.String("dir", cfg.ChartDir, "directory of *.json chart files")
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required")
	}

	var charts []domain.MileChart
	if *builtin {
		charts = append(charts, reference.DefaultCharts()...)
	}
	if _, err := os.Stat(*dir); err == nil {
		fromDir, err := app.LoadChartDir(*dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *dir).Msg("reading chart files failed")
		}
		charts = append(charts, fromDir...)
	} else if !*builtin {
		log.Fatal().Err(err).Str("dir", *dir).Msg("chart directory not readable")
	}

	log.Info().
		Str("dir", *dir).
		Int("workers", cfg.SeedWorkers).
		Int("charts", len(charts)).
		Msg("chartseed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	failed := app.SeedCharts(ctx, mysqlrepo.New(db), charts, cfg.SeedWorkers)
	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(charts)).Msg("seeding finished with errors")
		os.Exit(1)
	}
	log.Info().Int("charts", len(charts)).Msg("seeding completed")
}
