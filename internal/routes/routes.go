package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eco-fashion-api/internal/cache"
	"eco-fashion-api/internal/cart"
	"eco-fashion-api/internal/catalog"
	"eco-fashion-api/internal/handlers"
	"eco-fashion-api/internal/identity"
	"eco-fashion-api/internal/orders"
	"eco-fashion-api/internal/store"
)

// RegisterRoutes wires the engines and handlers onto the router. token
// is the bearer sentinel accepted on auth-gated routes.
func RegisterRoutes(router *gin.Engine, st *store.Store, token string) {
	catalogH := handlers.NewCatalogHandler(catalog.New(st), cache.New(5*time.Minute))
	cartH := handlers.NewCartHandler(cart.New(st))
	orderH := handlers.NewOrderHandler(orders.New(st))
	authH := handlers.NewAuthHandler(identity.New(st), token)

	router.Use(handlers.RequestID())
	authRequired := handlers.RequireToken(token)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Eco Fashion API v1.0",
		})
	})

	router.GET("/categories", catalogH.ListCategories)
	router.GET("/categories/:slug", catalogH.GetCategory)
	router.GET("/products", catalogH.ListProducts)
	router.GET("/products/:slug", catalogH.GetProduct)

	router.GET("/cart", cartH.GetCart)
	router.POST("/cart", cartH.AddItem)
	router.PUT("/cart/:id", cartH.UpdateItem)
	router.DELETE("/cart/:id", cartH.RemoveItem)
	router.DELETE("/cart", cartH.ClearCart)
	router.POST("/cart/merge", authRequired, cartH.MergeCart)

	router.GET("/orders", authRequired, orderH.ListOrders)
	router.GET("/orders/:id", authRequired, orderH.GetOrder)
	router.POST("/orders", orderH.PlaceOrder)

	router.POST("/auth/login", authH.Login)
	router.POST("/auth/register", authH.Register)
	router.GET("/auth/user", authRequired, authH.CurrentUser)
}
