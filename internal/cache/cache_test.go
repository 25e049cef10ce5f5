package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("product:tee", "cached")
	got, found := c.Get("product:tee")
	assert.True(t, found)
	assert.Equal(t, "cached", got)

	_, found = c.Get("product:missing")
	assert.False(t, found)
}

func TestExpiredEntriesAreNotReturned(t *testing.T) {
	c := New(time.Minute)

	c.Set("short", "value", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)

	c.Set("products:list:a", 1)
	c.Set("products:list:b", 2)
	c.Set("product:tee", 3)

	c.DeleteByPrefix("products:list:")

	assert.Equal(t, 1, c.Size())
	_, found := c.Get("product:tee")
	assert.True(t, found)
}
