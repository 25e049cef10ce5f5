package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	discounted := Product{Price: 60, DiscountPrice: 45}
	assert.Equal(t, 45.0, discounted.EffectivePrice())

	fullPrice := Product{Price: 60}
	assert.Equal(t, 60.0, fullPrice.EffectivePrice())
}

func TestFindVariant(t *testing.T) {
	p := Product{Variants: []Variant{
		{ID: 1, Size: "M", Color: "Indigo"},
		{ID: 2, Size: "L", Color: "Indigo"},
	}}

	v, ok := p.FindVariant(2)
	assert.True(t, ok)
	assert.Equal(t, "L", v.Size)

	_, ok = p.FindVariant(9)
	assert.False(t, ok)

	_, ok = Product{}.FindVariant(1)
	assert.False(t, ok)
}

func TestPublicStripsCredentials(t *testing.T) {
	u := User{
		ID:       1,
		Username: "admin",
		Email:    "admin@example.com",
		Password: "$2a$10$hash",
		IsAdmin:  true,
	}

	pub := u.Public()
	assert.Equal(t, "admin", pub.Username)
	assert.Equal(t, "admin@example.com", pub.Email)
}
