package cart

import (
	"errors"
	"testing"
	"time"

	"cardapio-go/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUpdateAndSnapshot(t *testing.T) {
	s := NewStore(time.Hour)
	burger := item("Veggie Burger", "26.90")

	snap, err := s.Update("abc", func(sess *Session) error {
		sess.Cart.Add(burger)
		sess.Cart.Add(burger)
		sess.Coupon = &pricing.Coupon{Code: "PROMO10", DiscountPercentage: 10, Active: true}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", snap.ID)
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, "53.80", snap.Subtotal.StringFixed(2))

	q := snap.Quote()
	assert.Equal(t, "5.38", q.Discount.StringFixed(2))
	assert.Equal(t, "48.42", q.Total.StringFixed(2))

	other := s.Snapshot("other")
	assert.Zero(t, other.ItemCount)
	assert.Nil(t, other.Coupon)
}

func TestStoreUpdateError(t *testing.T) {
	s := NewStore(time.Hour)
	boom := errors.New("boom")
	_, err := s.Update("abc", func(sess *Session) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestStoreExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(30 * time.Minute)
	s.now = func() time.Time { return now }

	pending := uuid.New()
	_, err := s.Update("abc", func(sess *Session) error {
		sess.Cart.Add(item("Milkshake", "12.90"))
		sess.PendingOrderID = &pending
		return nil
	})
	require.NoError(t, err)
	_ = s.Snapshot("idle")

	now = now.Add(20 * time.Minute)
	snap := s.Snapshot("abc")
	assert.Equal(t, 1, snap.ItemCount)
	require.NotNil(t, snap.PendingOrderID)
	assert.Equal(t, pending, *snap.PendingOrderID)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	now = now.Add(time.Hour)
	snap = s.Snapshot("abc")
	assert.Zero(t, snap.ItemCount)
	assert.Nil(t, snap.PendingOrderID)
}
