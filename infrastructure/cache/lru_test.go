package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLRU_SetGet(t *testing.T) {
	c := NewNamespaceLRU(10)

	c.Set("CODE", "1", "a")
	c.Set("IMAGE", "1", "b")

	val, found := c.Get("CODE", "1")
	assert.True(t, found)
	assert.Equal(t, "a", val)

	// Same key in another namespace is a different entry
	val, found = c.Get("IMAGE", "1")
	assert.True(t, found)
	assert.Equal(t, "b", val)

	_, found = c.Get("CODE", "2")
	assert.False(t, found)
}

func TestNamespaceLRU_Eviction(t *testing.T) {
	c := NewNamespaceLRU(3)

	for i := 0; i < 4; i++ {
		c.Set("CODE", fmt.Sprintf("%d", i), i)
	}

	assert.Equal(t, 3, c.Size())

	// Oldest entry is gone
	_, found := c.Get("CODE", "0")
	assert.False(t, found)

	_, found = c.Get("CODE", "3")
	assert.True(t, found)
}

func TestNamespaceLRU_Invalidate(t *testing.T) {
	c := NewNamespaceLRU(10)

	c.Set("CODE", "1", "a")
	c.Invalidate("CODE", "1")

	_, found := c.Get("CODE", "1")
	assert.False(t, found)
	assert.Equal(t, 0, c.Size())
}

func TestNamespaceLRU_Clear(t *testing.T) {
	c := NewNamespaceLRU(10)

	c.Set("CODE", "1", "a")
	c.Set("CODE", "2", "b")
	c.Clear()

	assert.Equal(t, 0, c.Size())
}
