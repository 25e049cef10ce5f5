package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eco-fashion-api/internal/identity"
)

type AuthHandler struct {
	identity *identity.Engine
	token    string
}

func NewAuthHandler(engine *identity.Engine, token string) *AuthHandler {
	return &AuthHandler{identity: engine, token: token}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and hands back the sentinel token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": h.token})
}

// Register creates an account and hands back the sentinel token.
// Duplicates reply 400 to match the established client contract, even
// though 409 would be the better fit.
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Register(req)
	switch {
	case errors.Is(err, identity.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case errors.Is(err, identity.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
	case errors.Is(err, identity.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case err != nil:
		log.Println("identity: register failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data"})
	default:
		c.JSON(http.StatusCreated, gin.H{"user": user, "token": h.token})
	}
}

// CurrentUser returns the first account on file. The sentinel token
// identifies nobody in particular; this endpoint exists for client
// compatibility only.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := h.identity.First()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
