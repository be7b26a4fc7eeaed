// Command promcorr serves the correlation analysis API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"promcorr/adapters/postgres"
	"promcorr/adapters/promread"
	"promcorr/app"
	"promcorr/internal"
	"promcorr/internal/config"
	"promcorr/ports"
	"promcorr/ui"
)

func main() {
	godotenv.Load()
	log := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error("loading config: %v", err)
		os.Exit(1)
	}

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Error("connecting to database: %v", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := postgres.NewRunRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureSchema(ctx); err != nil {
			cancel()
			log.Error("ensuring schema: %v", err)
			os.Exit(1)
		}
		cancel()
		runs = repo
		log.Info("run persistence enabled")
	} else {
		log.Info("DATABASE_URL not set, runs are not persisted")
	}

	source, err := promread.NewSource(cfg.Data.CacheSize)
	if err != nil {
		log.Error("creating series source: %v", err)
		os.Exit(1)
	}
	pairs := app.NewPairService(source, runs, log)

	server := ui.NewServer(pairs, runs, log)
	if err := server.ListenAndServe(cfg.Server.Port); err != nil {
		log.Error("server: %v", err)
		os.Exit(1)
	}
}
