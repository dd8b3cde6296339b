package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/ingest"
	"github.com/padariaops/backend-go/internal/repository/postgres"
	"github.com/padariaops/backend-go/internal/storage"
	"github.com/padariaops/backend-go/pkg/logger"
)

// ingestd runs the forecast CSV ingestion trigger server, kept separate from
// the main API so bulk imports cannot starve suggestion traffic.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
	}
	ilog := logger.ForComponent("ingestd")

	objectStorage, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		ilog.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		ilog.Fatal().Err(err).Msg("failed to initialize database")
	}

	forecastRepo := postgres.NewForecastRepository(db)
	ingestService := ingest.NewService(objectStorage, forecastRepo, cfg.Storage.Prefix)

	r := mux.NewRouter()

	ingestHandler := ingest.NewHandler(ingestService)
	ingestHandler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	ilog.Info().Str("addr", addr).Msg("ingestd starting")
	ilog.Fatal().Err(http.ListenAndServe(addr, r)).Msg("ingestd stopped")
}
