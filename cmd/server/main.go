package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/api"
	"github.com/padariaops/backend-go/internal/cache"
	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/forecast"
	"github.com/padariaops/backend-go/internal/repository/postgres"
	"github.com/padariaops/backend-go/internal/service"
	"github.com/padariaops/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLevel("info")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db.DB)
	historyRepo := postgres.NewHistoryRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	insightRepo := postgres.NewInsightRepository(db.DB)

	suggestionCache, err := cache.NewSuggestionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("suggestion cache unavailable, continuing without it")
		suggestionCache = cache.NewNoopSuggestionCache()
	}

	engine := forecast.NewEngine(productRepo, historyRepo, cfg.Forecast)

	services := &api.Services{
		SuggestionService:     service.NewSuggestionService(engine, suggestionCache),
		RecommendationService: service.NewRecommendationService(productRepo, forecastRepo),
		InsightService:        service.NewInsightService(insightRepo, engine, cfg.Forecast),
		OrderService:          service.NewOrderService(historyRepo, suggestionCache),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}
