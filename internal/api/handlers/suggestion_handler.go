package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/service"
)

type SuggestionHandler struct {
	service *service.SuggestionService
}

func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

type suggestionRequest struct {
	// JSON object keys are strings; product IDs are converted after binding.
	CurrentStock map[string]int `json:"current_stock"`
	AsOf         string         `json:"as_of"`
}

// CalculateSuggestions handles POST /stores/:store_id/suggestions.
func (h *SuggestionHandler) CalculateSuggestions(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid store id")
		return
	}

	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	stock := make(map[int64]int, len(req.CurrentStock))
	for rawID, qty := range req.CurrentStock {
		productID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || productID <= 0 {
			errorResponse(c, http.StatusBadRequest, "invalid product id in current_stock: "+rawID)
			return
		}
		if qty < 0 {
			errorResponse(c, http.StatusBadRequest, "negative stock for product "+rawID)
			return
		}
		stock[productID] = qty
	}

	asOf, ok := parseAsOf(c, req.AsOf)
	if !ok {
		return
	}

	suggestions, err := h.service.CalculateSuggestions(c.Request.Context(), storeID, stock, asOf)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to calculate suggestions")
		return
	}

	dataResponse(c, http.StatusOK, suggestions)
}

// parseAsOf resolves the optional as_of date, defaulting to now. It writes
// the error response itself when the date is malformed.
func parseAsOf(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}

	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid as_of date, expected YYYY-MM-DD")
		return time.Time{}, false
	}

	return asOf, true
}
