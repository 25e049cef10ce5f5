// Package orders converts session carts into immutable order records.
package orders

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"eco-fashion-api/internal/models"
	"eco-fashion-api/internal/store"
)

var (
	// ErrMissingFields is returned when any of the four order inputs is
	// empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrEmptyCart is returned when the session has no cart rows.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound is returned when no order matches a lookup.
	ErrNotFound = errors.New("order not found")
)

// Flat-rate checkout policy. No weight, distance or jurisdiction model.
const (
	FreeShippingThreshold = 100.0
	FlatShippingRate      = 7.99
	TaxRate               = 0.08
)

// PlaceRequest carries the checkout inputs. All four fields are
// required; payment method is free text and never charged.
type PlaceRequest struct {
	SessionID       string `json:"session_id"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

// Engine creates and reads orders through the store.
type Engine struct {
	store   *store.Store
	now     func() time.Time
	randInt func(n int) int
}

func New(s *store.Store) *Engine {
	return &Engine{store: s, now: time.Now, randInt: rand.Intn}
}

// Place snapshots the session's cart into a new pending order, computes
// its totals, clears the cart and persists everything in one store
// update. Cart rows whose product no longer resolves are silently
// dropped from the order; unit prices are frozen at this instant and
// never recomputed.
func (e *Engine) Place(req PlaceRequest) (models.Order, error) {
	if req.SessionID == "" || req.Email == "" || req.ShippingAddress == "" || req.PaymentMethod == "" {
		return models.Order{}, ErrMissingFields
	}

	var order models.Order
	err := e.store.Update(func(d *store.Dataset) error {
		var inCart []models.CartItem
		for _, item := range d.CartItems {
			if item.SessionID == req.SessionID {
				inCart = append(inCart, item)
			}
		}
		if len(inCart) == 0 {
			return ErrEmptyCart
		}

		subtotal := 0.0
		lines := []models.OrderLine{}
		for _, item := range inCart {
			product, ok := findProduct(d, item.Product)
			if !ok {
				continue
			}
			price := product.EffectivePrice()
			lineTotal := round2(price * float64(item.Quantity))
			subtotal = round2(subtotal + lineTotal)
			lines = append(lines, models.OrderLine{
				Product:      item.Product,
				ProductTitle: product.Title,
				ProductImage: product.ImageURL,
				Variant:      item.Variant,
				Size:         item.VariantSize,
				Color:        item.VariantColor,
				Quantity:     item.Quantity,
				Price:        price,
				TotalPrice:   lineTotal,
			})
		}

		shipping := FlatShippingRate
		if subtotal >= FreeShippingThreshold {
			shipping = 0
		}
		tax := round2(subtotal * TaxRate)
		total := round2(subtotal + shipping + tax)

		now := e.now()
		order = models.Order{
			ID:              nextOrderID(d),
			OrderID:         e.token(now),
			Email:           req.Email,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			Subtotal:        subtotal,
			Shipping:        shipping,
			Tax:             tax,
			Total:           total,
			Status:          models.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
			Items:           lines,
		}
		d.Orders = append(d.Orders, order)

		// Placing an order always empties the cart it was built from.
		kept := d.CartItems[:0]
		for _, item := range d.CartItems {
			if item.SessionID != req.SessionID {
				kept = append(kept, item)
			}
		}
		d.CartItems = kept
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Get looks an order up by its numeric id or its ORD token.
func (e *Engine) Get(idOrToken string) (models.Order, bool) {
	numeric, numErr := strconv.Atoi(idOrToken)
	var (
		order models.Order
		ok    bool
	)
	e.store.View(func(d *store.Dataset) {
		for _, o := range d.Orders {
			if (numErr == nil && o.ID == numeric) || o.OrderID == idOrToken {
				order, ok = o, true
				return
			}
		}
	})
	return order, ok
}

// List returns all orders in insertion order.
func (e *Engine) List() []models.Order {
	out := []models.Order{}
	e.store.View(func(d *store.Dataset) {
		out = append(out, d.Orders...)
	})
	return out
}

// token builds the human-facing order identifier. Collisions are
// possible at demo scale and accepted.
func (e *Engine) token(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), e.randInt(1000))
}

func findProduct(d *store.Dataset, id int) (models.Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func nextOrderID(d *store.Dataset) int {
	max := 0
	for _, o := range d.Orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// round2 rounds money half away from zero to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
