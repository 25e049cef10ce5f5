// Package catalog provides read-only lookups and filters over products
// and categories. It never mutates the store.
package catalog

import (
	"strings"

	"eco-fashion-api/internal/models"
	"eco-fashion-api/internal/store"
)

// Catalog answers product and category queries against the store.
type Catalog struct {
	store *store.Store
}

func New(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// Filter narrows a product listing. Zero-valued fields impose no
// constraint. Featured only constrains when true; false and absent are
// deliberately not distinguished.
type Filter struct {
	Category string
	Search   string
	Featured bool
}

// Categories returns all categories in insertion order.
func (c *Catalog) Categories() []models.Category {
	var out []models.Category
	c.store.View(func(d *store.Dataset) {
		out = append(out, d.Categories...)
	})
	return out
}

// CategoryBySlug finds one category.
func (c *Catalog) CategoryBySlug(slug string) (models.Category, bool) {
	var (
		cat models.Category
		ok  bool
	)
	c.store.View(func(d *store.Dataset) {
		for _, candidate := range d.Categories {
			if candidate.Slug == slug {
				cat, ok = candidate, true
				return
			}
		}
	})
	return cat, ok
}

// ProductBySlug finds one product.
func (c *Catalog) ProductBySlug(slug string) (models.Product, bool) {
	var (
		p  models.Product
		ok bool
	)
	c.store.View(func(d *store.Dataset) {
		for _, candidate := range d.Products {
			if candidate.Slug == slug {
				p, ok = candidate, true
				return
			}
		}
	})
	return p, ok
}

// ProductByID finds one product.
func (c *Catalog) ProductByID(id int) (models.Product, bool) {
	var (
		p  models.Product
		ok bool
	)
	c.store.View(func(d *store.Dataset) {
		p, ok = productByID(d, id)
	})
	return p, ok
}

func productByID(d *store.Dataset, id int) (models.Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Products lists products matching f, preserving the backing
// collection's insertion order. No sort is ever applied.
func (c *Catalog) Products(f Filter) []models.Product {
	out := []models.Product{}
	c.store.View(func(d *store.Dataset) {
		categoryID := 0
		if f.Category != "" {
			found := false
			for _, cat := range d.Categories {
				if cat.Slug == f.Category {
					categoryID, found = cat.ID, true
					break
				}
			}
			// An unresolvable slug matches nothing rather than
			// dropping the constraint.
			if !found {
				return
			}
		}

		search := strings.ToLower(f.Search)
		for _, p := range d.Products {
			if f.Category != "" && p.Category != categoryID {
				continue
			}
			if search != "" && !matchesSearch(p, search) {
				continue
			}
			if f.Featured && !p.IsFeatured {
				continue
			}
			out = append(out, p)
		}
	})
	return out
}

// matchesSearch does a case-insensitive substring match across title,
// description and materials. A product without materials cannot match
// on materials.
func matchesSearch(p models.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	return p.Materials != "" && strings.Contains(strings.ToLower(p.Materials), search)
}
