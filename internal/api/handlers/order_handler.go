package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderRequest struct {
	Items map[string]domain.OrderItem `json:"items"`
	AsOf  string                      `json:"as_of"`
}

// SubmitOrders handles POST /stores/:store_id/orders.
func (h *OrderHandler) SubmitOrders(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid store id")
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	items, ok := parseOrderItems(c, req.Items)
	if !ok {
		return
	}

	asOf, ok := parseAsOf(c, req.AsOf)
	if !ok {
		return
	}

	recorded, err := h.service.SubmitOrders(c.Request.Context(), storeID, items, asOf)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to record orders")
		return
	}

	dataResponse(c, http.StatusCreated, gin.H{"recorded": recorded})
}

// parseOrderItems converts string JSON keys to product IDs and rejects
// negative quantities. It writes the error response itself on failure.
func parseOrderItems(c *gin.Context, raw map[string]domain.OrderItem) (map[int64]domain.OrderItem, bool) {
	items := make(map[int64]domain.OrderItem, len(raw))
	for rawID, item := range raw {
		productID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || productID <= 0 {
			errorResponse(c, http.StatusBadRequest, "invalid product id in items: "+rawID)
			return nil, false
		}
		if item.Stock < 0 || item.Orders < 0 {
			errorResponse(c, http.StatusBadRequest, "negative stock or orders for product "+rawID)
			return nil, false
		}
		items[productID] = item
	}
	return items, true
}
