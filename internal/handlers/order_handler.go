package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eco-fashion-api/internal/orders"
)

type OrderHandler struct {
	orders *orders.Engine
}

func NewOrderHandler(engine *orders.Engine) *OrderHandler {
	return &OrderHandler{orders: engine}
}

// ListOrders returns every order. The bearer-token stub identifies no
// particular user, so there is no per-user scoping.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.orders.List())
}

// GetOrder returns one order by numeric id or ORD token.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := h.orders.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// PlaceOrder snapshots the session cart into a new order and clears
// the cart.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req orders.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Place(req)
	switch {
	case errors.Is(err, orders.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case errors.Is(err, orders.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case err != nil:
		log.Println("orders: persist failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data"})
	default:
		c.JSON(http.StatusCreated, order)
	}
}
