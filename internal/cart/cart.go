// Package cart maintains per-session line items and prices them live
// against the catalog on every read.
package cart

import (
	"errors"
	"time"

	"eco-fashion-api/internal/models"
	"eco-fashion-api/internal/store"
)

var (
	// ErrProductNotFound is returned when an added product id does not
	// resolve in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrItemNotFound is returned when a cart item id does not exist.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity is returned for quantities below 1.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Line is a cart item enriched with current product data. Prices here
// always reflect the catalog at read time; they are never cached.
type Line struct {
	ID           int     `json:"id"`
	Product      int     `json:"product"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
	Variant      *int    `json:"variant"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}

// Engine mutates session carts through the store.
type Engine struct {
	store *store.Store
	now   func() time.Time
}

func New(s *store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// Add puts quantity units of a product (optionally a specific variant)
// into the session cart. When the same (product, variant) combination is
// already present the existing row's quantity is incremented; a second
// row is never created. A variant id that does not resolve on the
// product is tolerated: the size/color snapshot stays null.
func (e *Engine) Add(sessionID string, productID int, variantID *int, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return e.store.Update(func(d *store.Dataset) error {
		product, ok := findProduct(d, productID)
		if !ok {
			return ErrProductNotFound
		}

		var size, color *string
		if variantID != nil {
			if v, ok := product.FindVariant(*variantID); ok {
				size, color = &v.Size, &v.Color
			}
		}

		for i := range d.CartItems {
			item := &d.CartItems[i]
			if item.SessionID == sessionID && item.Product == productID && sameVariant(item.Variant, variantID) {
				item.Quantity += quantity
				return nil
			}
		}

		d.CartItems = append(d.CartItems, models.CartItem{
			ID:           nextItemID(d),
			SessionID:    sessionID,
			Product:      productID,
			Variant:      variantID,
			VariantSize:  size,
			VariantColor: color,
			Quantity:     quantity,
			CreatedAt:    e.now(),
		})
		return nil
	})
}

// Items returns the session's cart enriched with live product data.
// Rows whose product no longer exists degrade to an "Unknown Product"
// placeholder with zero prices instead of failing the whole read.
func (e *Engine) Items(sessionID string) []Line {
	lines := []Line{}
	e.store.View(func(d *store.Dataset) {
		for _, item := range d.CartItems {
			if item.SessionID != sessionID {
				continue
			}
			line := Line{
				ID:           item.ID,
				Product:      item.Product,
				ProductTitle: "Unknown Product",
				Variant:      item.Variant,
				Size:         item.VariantSize,
				Color:        item.VariantColor,
				Quantity:     item.Quantity,
			}
			if product, ok := findProduct(d, item.Product); ok {
				unit := product.EffectivePrice()
				line.ProductTitle = product.Title
				line.ProductImage = product.ImageURL
				line.UnitPrice = unit
				line.TotalPrice = unit * float64(item.Quantity)
			}
			lines = append(lines, line)
		}
	})
	return lines
}

// UpdateQuantity replaces (not increments) the quantity of one item.
// Quantities below 1 are rejected without touching state.
func (e *Engine) UpdateQuantity(itemID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return e.store.Update(func(d *store.Dataset) error {
		for i := range d.CartItems {
			if d.CartItems[i].ID == itemID {
				d.CartItems[i].Quantity = quantity
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// Remove deletes one cart item.
func (e *Engine) Remove(itemID int) error {
	return e.store.Update(func(d *store.Dataset) error {
		for i := range d.CartItems {
			if d.CartItems[i].ID == itemID {
				d.CartItems = append(d.CartItems[:i], d.CartItems[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// Clear deletes every item of the session. Clearing an empty session is
// a no-op, not an error.
func (e *Engine) Clear(sessionID string) error {
	return e.store.Update(func(d *store.Dataset) error {
		kept := d.CartItems[:0]
		for _, item := range d.CartItems {
			if item.SessionID != sessionID {
				kept = append(kept, item)
			}
		}
		d.CartItems = kept
		return nil
	})
}

// Merge re-reads and re-enriches the session's own cart. It does NOT
// relocate ownership to a user account: true merging was never wired up
// and the pass-through is kept deliberately rather than silently
// changed. The cart test suite states this choice.
func (e *Engine) Merge(sessionID string) []Line {
	return e.Items(sessionID)
}

func findProduct(d *store.Dataset, id int) (models.Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// sameVariant treats two nils as equal so a variant-less add only ever
// merges into other variant-less rows of the same product.
func sameVariant(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nextItemID assigns max(existing)+1. Monotonic within one document,
// not globally unique if the file is hand-edited.
func nextItemID(d *store.Dataset) int {
	max := 0
	for _, item := range d.CartItems {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}
