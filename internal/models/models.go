package models

import "time"

// Category groups products. Immutable after seed.
type Category struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Variant is a size/color option of a product. Variant ids are unique
// within their product, not globally.
type Variant struct {
	ID       int    `json:"id"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url,omitempty"`
}

// Product is a catalog entry. Products are read-only during request
// handling; the dataset is seeded once and only mutated by hand.
type Product struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty"`
	Category      int       `json:"category"`
	Materials     string    `json:"materials,omitempty"`
	IsFeatured    bool      `json:"is_featured"`
	ImageURL      string    `json:"image_url"`
	Variants      []Variant `json:"variants,omitempty"`
}

// EffectivePrice returns the discount price when one is set, else the
// list price. Cart reads and order placement must both price through
// this, at their respective evaluation times.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// FindVariant looks up a variant by id within the product.
func (p Product) FindVariant(id int) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// CartItem is one line of an anonymous session cart. At most one row
// exists per (session_id, product, variant); adding the same combination
// again increments Quantity instead.
type CartItem struct {
	ID           int       `json:"id"`
	SessionID    string    `json:"session_id"`
	Product      int       `json:"product"`
	Variant      *int      `json:"variant"`
	VariantSize  *string   `json:"variant_size"`
	VariantColor *string   `json:"variant_color"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

// Order statuses. New orders always start pending; later transitions
// belong to admin tooling outside this service.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderLine is a frozen copy of cart-item plus product data taken at
// order time. It never re-reads the live catalog.
type OrderLine struct {
	Product      int     `json:"product"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
	Variant      *int    `json:"variant"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"total_price"`
}

// Order is an immutable purchase record.
type Order struct {
	ID              int         `json:"id"`
	OrderID         string      `json:"order_id"`
	Email           string      `json:"email"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Tax             float64     `json:"tax"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderLine `json:"items"`
}

// User is an account in the identity stub. Password holds a bcrypt hash
// under the legacy "password" key.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

// PublicUser is the response shape for auth endpoints; it never carries
// the password hash.
type PublicUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public strips the credential fields from a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
