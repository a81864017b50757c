// Package cart keeps the in-memory shopping cart of a browsing session.
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 99

var (
	ErrInvalidQuantity = errors.New("quantity must be between 0 and 99")
	ErrLineNotFound    = errors.New("item is not in the cart")
)

// Item is the catalog data a cart line is built from.
type Item struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

type Line struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per menu item, in insertion order. A line
// quantity stays within 1..MaxLineQuantity.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(id uuid.UUID) int {
	for i, l := range c.lines {
		if l.MenuItemID == id {
			return i
		}
	}
	return -1
}

// Add increments the item's line, creating it at quantity 1. A line
// already at MaxLineQuantity is left alone and ErrInvalidQuantity returned.
func (c *Cart) Add(item Item) error {
	if i := c.index(item.ID); i >= 0 {
		if c.lines[i].Quantity >= MaxLineQuantity {
			return ErrInvalidQuantity
		}
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
	return nil
}

// Remove decrements the item's line and drops it when it reaches zero.
// It reports whether the item was in the cart.
func (c *Cart) Remove(id uuid.UUID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return true
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// SetQuantity sets the line's quantity directly. Zero deletes the line.
func (c *Cart) SetQuantity(id uuid.UUID, n int) error {
	if n < 0 || n > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	i := c.index(id)
	if i < 0 {
		if n == 0 {
			return nil
		}
		return ErrLineNotFound
	}
	if n == 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = n
	return nil
}

func (c *Cart) Quantity(id uuid.UUID) int {
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}
