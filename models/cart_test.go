package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_SetAndAdd(t *testing.T) {
	t.Run("set overwrites, add accumulates", func(t *testing.T) {
		cart := NewCart()
		cart.Set("Doro Wat", 2)
		cart.Set("Doro Wat", 3)
		assert.Equal(t, []CartItem{{Name: "Doro Wat", Quantity: 3}}, cart.Items())

		cart.Add("Doro Wat", 2)
		assert.Equal(t, []CartItem{{Name: "Doro Wat", Quantity: 5}}, cart.Items())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		cart := NewCart()
		cart.Add("Doro Wat", 1)
		cart.Add("Kitfo", 2)
		cart.Add("Doro Wat", 1)

		assert.Equal(t, []CartItem{
			{Name: "Doro Wat", Quantity: 2},
			{Name: "Kitfo", Quantity: 2},
		}, cart.Items())
	})
}

func TestCart_Remove(t *testing.T) {
	t.Run("removes whole line case-insensitively", func(t *testing.T) {
		cart := NewCart()
		cart.Add("Doro Wat", 2)

		stored, ok := cart.Remove("doro wat")
		assert.True(t, ok)
		assert.Equal(t, "Doro Wat", stored)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("missing name is reported", func(t *testing.T) {
		cart := NewCart()
		cart.Add("Kitfo", 1)

		_, ok := cart.Remove("Tibs")
		assert.False(t, ok)
		assert.Equal(t, 1, cart.Len())
	})
}

func TestCart_Clone(t *testing.T) {
	cart := NewCart()
	cart.Add("Kitfo", 2)

	clone := cart.Clone()
	clone.Add("Kitfo", 5)
	clone.Add("Tibs", 1)

	assert.Equal(t, []CartItem{{Name: "Kitfo", Quantity: 2}}, cart.Items())
	assert.Equal(t, 2, clone.Len())
}
