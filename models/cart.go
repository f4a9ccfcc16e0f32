package models

import "strings"

// Cart is an in-progress order for one conversation session: food names mapped
// to quantities. Names keep the casing they arrived with and the order they
// were first added in, so rendered summaries stay stable across turns.
type Cart struct {
	names      []string
	quantities map[string]float64
}

// CartItem is one rendered cart line.
type CartItem struct {
	Name     string
	Quantity float64
}

func NewCart() *Cart {
	return &Cart{
		quantities: make(map[string]float64),
	}
}

// Set puts an exact quantity for a name, keeping the position of an existing
// entry. Used when pairing up the raw food/quantity lists, where a repeated
// name means the later quantity wins.
func (c *Cart) Set(name string, quantity float64) {
	if _, exists := c.quantities[name]; !exists {
		c.names = append(c.names, name)
	}
	c.quantities[name] = quantity
}

// Add increases the quantity for a name, starting from zero if absent.
func (c *Cart) Add(name string, quantity float64) {
	if _, exists := c.quantities[name]; !exists {
		c.names = append(c.names, name)
	}
	c.quantities[name] += quantity
}

// Remove deletes the whole line whose name matches case-insensitively,
// regardless of quantity. Returns the stored name and whether a line matched.
func (c *Cart) Remove(name string) (string, bool) {
	lower := strings.ToLower(name)
	for i, stored := range c.names {
		if strings.ToLower(stored) == lower {
			c.names = append(c.names[:i], c.names[i+1:]...)
			delete(c.quantities, stored)
			return stored, true
		}
	}
	return "", false
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.names))
	for _, name := range c.names {
		items = append(items, CartItem{Name: name, Quantity: c.quantities[name]})
	}
	return items
}

func (c *Cart) Len() int {
	return len(c.names)
}

func (c *Cart) IsEmpty() bool {
	return len(c.names) == 0
}

// Clone returns an independent copy, so callers can render a snapshot without
// holding the session store's lock.
func (c *Cart) Clone() *Cart {
	clone := &Cart{
		names:      append([]string(nil), c.names...),
		quantities: make(map[string]float64, len(c.quantities)),
	}
	for name, qty := range c.quantities {
		clone.quantities[name] = qty
	}
	return clone
}
