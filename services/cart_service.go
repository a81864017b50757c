package services

import (
	"context"
	"errors"

	"cardapio-go/cart"
	"cardapio-go/pricing"

	"github.com/google/uuid"
)

// CartView is a session's cart together with its current price.
type CartView struct {
	cart.Snapshot
	Quote pricing.Quote `json:"quote"`
}

func newCartView(snap cart.Snapshot) *CartView {
	return &CartView{Snapshot: snap, Quote: snap.Quote()}
}

type ICartService interface {
	Get(sessionID string) *CartView
	AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*CartView, error)
	RemoveItem(sessionID string, itemID uuid.UUID) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (*CartView, error)
	Clear(sessionID string) *CartView
	ApplyCoupon(ctx context.Context, sessionID, code string) (*CartView, error)
	RemoveCoupon(sessionID string) *CartView
}

type CartService struct {
	store   *cart.Store
	catalog ICatalogService
	coupons ICouponService
}

func NewCartService(store *cart.Store, catalog ICatalogService, coupons ICouponService) *CartService {
	return &CartService{store: store, catalog: catalog, coupons: coupons}
}

func (s *CartService) Get(sessionID string) *CartView {
	return newCartView(s.store.Snapshot(sessionID))
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*CartView, error) {
	item, err := s.catalog.CartItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Update(sessionID, func(sess *cart.Session) error {
		return sess.Cart.Add(item)
	})
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return nil, invalid("quantity", err.Error())
	}
	if err != nil {
		return nil, err
	}
	return newCartView(snap), nil
}

func (s *CartService) RemoveItem(sessionID string, itemID uuid.UUID) (*CartView, error) {
	snap, err := s.store.Update(sessionID, func(sess *cart.Session) error {
		if !sess.Cart.Remove(itemID) {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newCartView(snap), nil
}

// SetQuantity sets a line's quantity. Raising a line that is not in the cart
// yet adds the item first.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 0 || quantity > cart.MaxLineQuantity {
		return nil, invalid("quantity", cart.ErrInvalidQuantity.Error())
	}

	var item *cart.Item
	if quantity > 0 {
		it, err := s.catalog.CartItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		item = &it
	}

	snap, err := s.store.Update(sessionID, func(sess *cart.Session) error {
		if item != nil && sess.Cart.Quantity(itemID) == 0 {
			if err := sess.Cart.Add(*item); err != nil {
				return err
			}
		}
		return sess.Cart.SetQuantity(itemID, quantity)
	})
	if errors.Is(err, cart.ErrLineNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return nil, invalid("quantity", err.Error())
	}
	if err != nil {
		return nil, err
	}
	return newCartView(snap), nil
}

func (s *CartService) Clear(sessionID string) *CartView {
	snap, _ := s.store.Update(sessionID, func(sess *cart.Session) error {
		sess.Cart.Clear()
		sess.Coupon = nil
		return nil
	})
	return newCartView(snap)
}

// ApplyCoupon replaces the session's coupon. An unknown or expired code
// leaves the previous selection in place.
func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code string) (*CartView, error) {
	coupon, err := s.coupons.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	snap, _ := s.store.Update(sessionID, func(sess *cart.Session) error {
		sess.Coupon = coupon
		return nil
	})
	return newCartView(snap), nil
}

func (s *CartService) RemoveCoupon(sessionID string) *CartView {
	snap, _ := s.store.Update(sessionID, func(sess *cart.Session) error {
		sess.Coupon = nil
		return nil
	})
	return newCartView(snap)
}
