package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cardapio-go/cart"
	"cardapio-go/events"
	"cardapio-go/models"
	"cardapio-go/pricing"
	"cardapio-go/repository"
	"cardapio-go/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardDetails are collected by the form and validated for presence only.
// They are never stored.
type CardDetails struct {
	Number     string
	HolderName string
	Expiry     string
	CVV        string
}

type CheckoutRequest struct {
	CustomerName  string
	CustomerPhone string
	PaymentMethod models.PaymentMethod
	Card          *CardDetails
	ChangeFor     *decimal.Decimal
}

type CheckoutResult struct {
	Order           *models.Order    `json:"order"`
	Quote           pricing.Quote    `json:"quote"`
	AwaitingPayment bool             `json:"awaiting_payment"`
	Pix             *utils.PixCharge `json:"pix,omitempty"`
	Change          *decimal.Decimal `json:"change,omitempty"`
}

type PixSettings struct {
	Key          string
	MerchantCity string
}

type ICheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*CheckoutResult, error)
	ConfirmPix(ctx context.Context, sessionID string) (*models.Order, error)
}

type CheckoutService struct {
	store     *cart.Store
	catalog   repository.ICatalogRepository
	orders    repository.IOrderRepository
	coupons   ICouponService
	publisher events.Publisher
	pix       PixSettings
	log       *slog.Logger
}

func NewCheckoutService(
	store *cart.Store,
	catalog repository.ICatalogRepository,
	orders repository.IOrderRepository,
	coupons ICouponService,
	publisher events.Publisher,
	pix PixSettings,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		store:     store,
		catalog:   catalog,
		orders:    orders,
		coupons:   coupons,
		publisher: publisher,
		pix:       pix,
		log:       log,
	}
}

func validateCheckout(req *CheckoutRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.CustomerName == "" {
		return invalid("customer_name", "customer name is required")
	}
	if len(req.CustomerName) > 100 {
		return invalid("customer_name", "customer name must be less than 100 characters")
	}
	if !req.PaymentMethod.Valid() {
		return invalid("payment_method", "payment method must be pix, card or cash")
	}
	if req.PaymentMethod == models.PaymentMethodCard {
		card := req.Card
		if card == nil {
			return invalid("card", "card details are required")
		}
		fields := []struct{ name, value string }{
			{"card.number", card.Number},
			{"card.holder_name", card.HolderName},
			{"card.expiry", card.Expiry},
			{"card.cvv", card.CVV},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				return invalid(f.name, "field is required")
			}
		}
	}
	if req.ChangeFor != nil && req.PaymentMethod != models.PaymentMethodCash {
		req.ChangeFor = nil
	}
	return nil
}

// Checkout turns the session's cart into an order. Items are re-read from
// the catalog and the coupon is resolved again, so the order carries the
// prices in effect at submission. PIX orders keep the cart until the
// customer confirms payment; card and cash orders clear it.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(&req); err != nil {
		return nil, err
	}

	snap := s.store.Snapshot(sessionID)
	if len(snap.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	items, subtotal, err := s.priceLines(ctx, snap.Lines)
	if err != nil {
		return nil, err
	}

	var coupon *pricing.Coupon
	if snap.Coupon != nil {
		coupon, err = s.coupons.Resolve(ctx, snap.Coupon.Code)
		if err != nil {
			if errors.Is(err, ErrCouponNotFound) {
				s.store.Update(sessionID, func(sess *cart.Session) error {
					sess.Coupon = nil
					return nil
				})
			}
			return nil, err
		}
	}
	quote := pricing.NewQuote(subtotal, coupon)

	var change *decimal.Decimal
	if req.ChangeFor != nil {
		if req.ChangeFor.LessThan(quote.Total) {
			return nil, invalid("change_for", fmt.Sprintf("change must be for at least %s", quote.Total.StringFixed(2)))
		}
		c := req.ChangeFor.Sub(quote.Total)
		change = &c
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		Total:         quote.Total,
		Status:        models.OrderStatusPending,
		Items:         items,
	}
	if req.CustomerPhone != "" {
		order.CustomerPhone = &req.CustomerPhone
	}
	if coupon != nil {
		code := coupon.Code
		order.CouponCode = &code
	}

	if err := s.orders.CreateOrder(ctx, order, "checkout"); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.log.Info("order created",
		slog.String("action", "checkout"),
		slog.String("order_id", order.ID.String()),
		slog.String("payment_method", string(order.PaymentMethod)),
		slog.String("total", order.Total.StringFixed(2)),
	)
	if err := s.publisher.Publish(ctx, events.NewOrderCreated(order)); err != nil {
		s.log.Error("failed to publish order event", slog.String("order_id", order.ID.String()), slog.Any("error", err))
	}

	result := &CheckoutResult{Order: order, Quote: quote, Change: change}
	if order.PaymentMethod == models.PaymentMethodPix {
		charge := utils.NewPixCharge(s.pix.Key, s.pix.MerchantCity, order.CustomerName, order.Total)
		result.Pix = &charge
		result.AwaitingPayment = true
		var superseded *uuid.UUID
		s.store.Update(sessionID, func(sess *cart.Session) error {
			id := order.ID
			superseded = sess.PendingOrderID
			sess.PendingOrderID = &id
			return nil
		})
		if superseded != nil {
			s.cancelSuperseded(ctx, *superseded)
		}
		return result, nil
	}

	s.store.Update(sessionID, func(sess *cart.Session) error {
		sess.Cart.Clear()
		sess.Coupon = nil
		sess.PendingOrderID = nil
		return nil
	})
	return result, nil
}

// cancelSuperseded cancels a PIX order that was never confirmed before the
// customer checked out again. Orders the restaurant already moved on are kept.
func (s *CheckoutService) cancelSuperseded(ctx context.Context, id uuid.UUID) {
	err := s.orders.TransitionStatus(ctx, id, models.OrderStatusPending, models.OrderStatusCancelled, "checkout")
	if errors.Is(err, repository.ErrStaleStatus) || errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Error("failed to cancel superseded pix order", slog.String("order_id", id.String()), slog.Any("error", err))
		return
	}
	s.log.Info("superseded pix order cancelled", slog.String("action", "checkout"), slog.String("order_id", id.String()))
	if err := s.publisher.Publish(ctx, events.NewStatusChanged(id, models.OrderStatusPending, models.OrderStatusCancelled)); err != nil {
		s.log.Error("failed to publish order event", slog.String("order_id", id.String()), slog.Any("error", err))
	}
}

// priceLines builds order items from the current catalog. Every line must
// reference an existing, available item.
func (s *CheckoutService) priceLines(ctx context.Context, lines []cart.Line) ([]models.OrderItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
	}
	found, err := s.catalog.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("load menu items: %w", err)
	}
	byID := make(map[uuid.UUID]models.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	items := make([]models.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > cart.MaxLineQuantity {
			return nil, decimal.Zero, invalid("items", fmt.Sprintf("%s has an invalid quantity", l.Name))
		}
		item, ok := byID[l.MenuItemID]
		if !ok {
			return nil, decimal.Zero, invalid("items", fmt.Sprintf("%s is no longer on the menu", l.Name))
		}
		if !item.IsAvailable {
			return nil, decimal.Zero, invalid("items", fmt.Sprintf("%s is not available", item.Name))
		}
		oi := models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   l.Quantity,
			Price:      item.Price,
		}
		items = append(items, oi)
		subtotal = subtotal.Add(oi.LineTotal())
	}
	return items, subtotal, nil
}

// ConfirmPix records the customer's report that the PIX payment was made
// and clears the cart. The order status is left to the restaurant.
func (s *CheckoutService) ConfirmPix(ctx context.Context, sessionID string) (*models.Order, error) {
	snap := s.store.Snapshot(sessionID)
	if snap.PendingOrderID == nil {
		return nil, ErrNoPendingPayment
	}

	order, err := s.orders.FindByID(ctx, *snap.PendingOrderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoPendingPayment
	}
	if err != nil {
		return nil, err
	}

	s.store.Update(sessionID, func(sess *cart.Session) error {
		sess.Cart.Clear()
		sess.Coupon = nil
		sess.PendingOrderID = nil
		return nil
	})
	s.log.Info("pix payment reported",
		slog.String("action", "pix_confirm"),
		slog.String("order_id", order.ID.String()),
	)
	return order, nil
}
