package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/service"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type recommendationRequest struct {
	Items map[string]domain.OrderItem `json:"items"`
}

// GetRecommendations handles POST /recommendations.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Items) == 0 {
		dataResponse(c, http.StatusOK, []domain.ProductRecommendation{})
		return
	}

	items, ok := parseOrderItems(c, req.Items)
	if !ok {
		return
	}

	recommendations, err := h.service.Recommend(c.Request.Context(), items)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute recommendations")
		return
	}

	dataResponse(c, http.StatusOK, recommendations)
}
