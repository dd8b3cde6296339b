package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/api/handlers"
	"github.com/padariaops/backend-go/internal/api/middleware"
	"github.com/padariaops/backend-go/internal/service"
)

type Services struct {
	SuggestionService     *service.SuggestionService
	RecommendationService *service.RecommendationService
	InsightService        *service.InsightService
	OrderService          *service.OrderService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.SuggestionService != nil {
			suggestionHandler := handlers.NewSuggestionHandler(services.SuggestionService)
			apiGroup.POST("/stores/:store_id/suggestions", suggestionHandler.CalculateSuggestions)
		}

		if services.RecommendationService != nil {
			recommendationHandler := handlers.NewRecommendationHandler(services.RecommendationService)
			apiGroup.POST("/recommendations", recommendationHandler.GetRecommendations)
		}

		if services.InsightService != nil {
			insightHandler := handlers.NewInsightHandler(services.InsightService)
			apiGroup.GET("/stores/:store_id/insight", insightHandler.GetDailyInsight)
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			apiGroup.POST("/stores/:store_id/orders", orderHandler.SubmitOrders)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
