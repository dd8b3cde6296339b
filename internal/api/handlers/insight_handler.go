package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/service"
)

type InsightHandler struct {
	service *service.InsightService
}

func NewInsightHandler(service *service.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// GetDailyInsight handles GET /stores/:store_id/insight.
func (h *InsightHandler) GetDailyInsight(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid store id")
		return
	}

	asOf, ok := parseAsOf(c, strings.TrimSpace(c.Query("date")))
	if !ok {
		return
	}

	insight, err := h.service.DailyInsight(c.Request.Context(), storeID, asOf)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to get daily insight")
		return
	}

	dataResponse(c, http.StatusOK, insight)
}
