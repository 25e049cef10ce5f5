package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eco-fashion-api/internal/cache"
	"eco-fashion-api/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	cache   *cache.Cache
}

func NewCatalogHandler(cat *catalog.Catalog, c *cache.Cache) *CatalogHandler {
	return &CatalogHandler{catalog: cat, cache: c}
}

// ListCategories returns every category.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

// GetCategory returns one category by slug.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, ok := h.catalog.CategoryBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListProducts returns the catalog filtered by the category, search and
// featured query parameters (with caching; the catalog is immutable
// after seeding, so entries only ever age out).
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := catalog.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Featured: c.Query("featured") == "true",
	}

	cacheKey := fmt.Sprintf("products:list:cat:%s_q:%s_feat:%v",
		filter.Category, filter.Search, filter.Featured)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products := h.catalog.Products(filter)
	h.cache.Set(cacheKey, products, 2*time.Minute)
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product by slug (with caching).
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	cacheKey := "product:" + slug

	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, ok := h.catalog.ProductBySlug(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	h.cache.Set(cacheKey, product, 5*time.Minute)
	c.JSON(http.StatusOK, product)
}
