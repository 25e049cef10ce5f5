package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eco-fashion-api/internal/cart"
)

type CartHandler struct {
	cart *cart.Engine
}

func NewCartHandler(engine *cart.Engine) *CartHandler {
	return &CartHandler{cart: engine}
}

type addCartRequest struct {
	SessionID string `json:"session_id"`
	Product   int    `json:"product"`
	Variant   *int   `json:"variant"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

type mergeCartRequest struct {
	SessionID string `json:"session_id"`
}

// GetCart returns the session's cart enriched with live product data.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id parameter"})
		return
	}
	c.JSON(http.StatusOK, h.cart.Items(sessionID))
}

// AddItem adds a product (optionally a variant) to the session cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" || req.Product == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	err := h.cart.Add(req.SessionID, req.Product, req.Variant, req.Quantity)
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
	case err != nil:
		h.storageFailure(c, err)
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
	}
}

// UpdateItem replaces the quantity of one cart item.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.cart.UpdateQuantity(itemID, req.Quantity)
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case err != nil:
		h.storageFailure(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// RemoveItem deletes one cart item.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	err = h.cart.Remove(itemID)
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case err != nil:
		h.storageFailure(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// ClearCart deletes every item of the session. Clearing an already
// empty session still succeeds.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id parameter"})
		return
	}

	if err := h.cart.Clear(sessionID); err != nil {
		h.storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// MergeCart re-reads the session cart for a logged-in client. See
// cart.Engine.Merge for why this does not relocate ownership.
func (h *CartHandler) MergeCart(c *gin.Context) {
	var req mergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}
	c.JSON(http.StatusOK, h.cart.Merge(req.SessionID))
}

func (h *CartHandler) storageFailure(c *gin.Context, err error) {
	log.Println("cart: persist failed:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data"})
}
