package cart

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name, price string) Item {
	return Item{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price)}
}

func TestCartAddRemove(t *testing.T) {
	burger := item("Big Burger Clássico", "32.90")
	soda := item("Refrigerante Lata", "6.50")

	c := New()
	require.NoError(t, c.Add(burger))
	require.NoError(t, c.Add(soda))
	require.NoError(t, c.Add(soda))

	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, "45.90", c.Subtotal().StringFixed(2))
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, burger.ID, lines[0].MenuItemID)
	assert.Equal(t, 2, lines[1].Quantity)

	assert.True(t, c.Remove(soda.ID))
	assert.Equal(t, 1, c.Quantity(soda.ID))
	assert.True(t, c.Remove(soda.ID))
	assert.Equal(t, 0, c.Quantity(soda.ID))
	assert.Len(t, c.Lines(), 1)

	assert.False(t, c.Remove(soda.ID))
	assert.Equal(t, 1, c.ItemCount())
}

func TestCartSetQuantity(t *testing.T) {
	fries := item("Batata Frita Grande", "15.90")
	c := New()
	require.NoError(t, c.Add(fries))

	require.NoError(t, c.SetQuantity(fries.ID, 4))
	assert.Equal(t, 4, c.Quantity(fries.ID))
	assert.Equal(t, "63.60", c.Subtotal().StringFixed(2))

	assert.ErrorIs(t, c.SetQuantity(fries.ID, -1), ErrInvalidQuantity)
	assert.Equal(t, 4, c.Quantity(fries.ID))

	assert.ErrorIs(t, c.SetQuantity(uuid.New(), 2), ErrLineNotFound)
	assert.NoError(t, c.SetQuantity(uuid.New(), 0))

	require.NoError(t, c.SetQuantity(fries.ID, 0))
	assert.True(t, c.IsEmpty())
}

func TestCartQuantityCap(t *testing.T) {
	soda := item("Refrigerante Lata", "6.50")
	c := New()
	require.NoError(t, c.Add(soda))

	require.NoError(t, c.SetQuantity(soda.ID, MaxLineQuantity))
	assert.Equal(t, MaxLineQuantity, c.Quantity(soda.ID))

	assert.ErrorIs(t, c.Add(soda), ErrInvalidQuantity)
	assert.Equal(t, MaxLineQuantity, c.Quantity(soda.ID))

	assert.ErrorIs(t, c.SetQuantity(soda.ID, MaxLineQuantity+1), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity(soda.ID, int(^uint(0)>>1)), ErrInvalidQuantity)
	assert.Equal(t, MaxLineQuantity, c.ItemCount())
	assert.Equal(t, "643.50", c.Subtotal().StringFixed(2))
}

func TestCartLinesIsCopy(t *testing.T) {
	c := New()
	c.Add(item("Suco Natural", "8.90"))
	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.ItemCount())
}

// Random sequences of Add and Remove must never leave a line below 1 and the
// subtotal must always match a recount of the quantities.
func TestCartRandomSequence(t *testing.T) {
	items := []Item{
		item("Chicken Burger", "24.90"),
		item("Milkshake", "12.90"),
		item("Água Mineral", "3.50"),
	}
	want := map[uuid.UUID]int{}
	rng := rand.New(rand.NewSource(42))

	c := New()
	for i := 0; i < 500; i++ {
		it := items[rng.Intn(len(items))]
		if rng.Intn(3) == 0 {
			removed := c.Remove(it.ID)
			assert.Equal(t, want[it.ID] > 0, removed)
			if want[it.ID] > 0 {
				want[it.ID]--
			}
		} else {
			err := c.Add(it)
			if want[it.ID] == MaxLineQuantity {
				assert.ErrorIs(t, err, ErrInvalidQuantity)
			} else {
				assert.NoError(t, err)
				want[it.ID]++
			}
		}

		expected := decimal.Zero
		count := 0
		for _, it := range items {
			expected = expected.Add(it.Price.Mul(decimal.NewFromInt(int64(want[it.ID]))))
			count += want[it.ID]
			assert.Equal(t, want[it.ID], c.Quantity(it.ID))
		}
		for _, l := range c.Lines() {
			assert.GreaterOrEqual(t, l.Quantity, 1)
		}
		assert.True(t, expected.Equal(c.Subtotal()))
		assert.Equal(t, count, c.ItemCount())
	}
}

func TestCartClear(t *testing.T) {
	c := New()
	c.Add(item("Milkshake", "12.90"))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}
