package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardapio-go/events"
	"cardapio-go/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutCashWithCoupon(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createPromotion(t, "PROMO20", 20, time.Now().AddDate(0, 0, 7))

	// 28.90 + 6.50 = 35.40, 20% off = 28.32
	e.addToCart(t, "s1", "Burger Bacon Supreme", 1)
	e.addToCart(t, "s1", "Refrigerante Lata", 1)
	_, err := e.carts.ApplyCoupon(ctx, "s1", "PROMO20")
	require.NoError(t, err)

	changeFor := decimal.NewFromInt(50)
	res, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{
		CustomerName:  "  João  ",
		CustomerPhone: "(11) 98888-7777",
		PaymentMethod: models.PaymentMethodCash,
		ChangeFor:     &changeFor,
	})
	require.NoError(t, err)
	assert.False(t, res.AwaitingPayment)
	assert.Nil(t, res.Pix)
	require.NotNil(t, res.Change)
	assert.Equal(t, "21.68", res.Change.StringFixed(2))

	order, err := e.orders.Get(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "João", order.CustomerName)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "PROMO20", *order.CouponCode)
	assert.Equal(t, "35.40", order.Subtotal.StringFixed(2))
	assert.Equal(t, "7.08", order.Discount.StringFixed(2))
	assert.Equal(t, "28.32", order.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	sum := decimal.Zero
	for _, it := range order.Items {
		sum = sum.Add(it.LineTotal())
	}
	assert.True(t, sum.Equal(order.Subtotal))

	view := e.carts.Get("s1")
	assert.Zero(t, view.ItemCount)
	assert.Nil(t, view.Coupon)

	evs := e.publisher.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.OrderCreated, evs[0].Type)
	assert.Equal(t, order.ID, evs[0].OrderID)
}

func TestCheckoutValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCard})
	assert.ErrorAs(t, err, new(ValidationError))

	e.addToCart(t, "s1", "Milkshake", 1)

	tests := []struct {
		name  string
		req   CheckoutRequest
		field string
	}{
		{"blank name", CheckoutRequest{CustomerName: "  ", PaymentMethod: models.PaymentMethodPix}, "customer_name"},
		{"unknown method", CheckoutRequest{CustomerName: "Ana", PaymentMethod: "boleto"}, "payment_method"},
		{"card missing cvv", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCard,
			Card: &CardDetails{Number: "4111111111111111", HolderName: "ANA", Expiry: "12/30"}}, "card.cvv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.checkout.Checkout(ctx, "s1", tt.req)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	low := decimal.NewFromInt(5)
	_, err = e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash, ChangeFor: &low})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "change_for", verr.Field)

	orders, err := e.orders.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 1, e.carts.Get("s1").ItemCount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	e := newEnv(t)
	_, err := e.checkout.Checkout(context.Background(), "empty", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutCardAcceptsAnyNumber(t *testing.T) {
	e := newEnv(t)
	e.addToCart(t, "s1", "Água Mineral", 2)

	res, err := e.checkout.Checkout(context.Background(), "s1", CheckoutRequest{
		CustomerName:  "Ana",
		PaymentMethod: models.PaymentMethodCard,
		Card:          &CardDetails{Number: "1234", HolderName: "ANA", Expiry: "01/99", CVV: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "7.00", res.Order.Total.StringFixed(2))
	assert.Nil(t, res.Change)
}

func TestCheckoutPixThenConfirm(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "s1", "Chicken Burger", 1)

	_, err := e.checkout.ConfirmPix(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoPendingPayment)

	res, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Maria", PaymentMethod: models.PaymentMethodPix})
	require.NoError(t, err)
	assert.True(t, res.AwaitingPayment)
	require.NotNil(t, res.Pix)
	assert.Equal(t, "pix@restaurante.com.br", res.Pix.Key)
	assert.Contains(t, res.Pix.Code, "540524.90")

	view := e.carts.Get("s1")
	assert.Equal(t, 1, view.ItemCount, "cart is kept until payment is confirmed")
	require.NotNil(t, view.PendingOrderID)
	assert.Equal(t, res.Order.ID, *view.PendingOrderID)

	order, err := e.checkout.ConfirmPix(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, res.Order.ID, order.ID)
	assert.Zero(t, e.carts.Get("s1").ItemCount)

	_, err = e.checkout.ConfirmPix(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}

func TestCheckoutPixTwiceCancelsFirstOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "s1", "Chicken Burger", 1)

	first, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Maria", PaymentMethod: models.PaymentMethodPix})
	require.NoError(t, err)
	second, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Maria", PaymentMethod: models.PaymentMethodPix})
	require.NoError(t, err)

	old, err := e.orders.Get(ctx, first.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, old.Status)
	current, err := e.orders.Get(ctx, second.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, current.Status)

	view := e.carts.Get("s1")
	require.NotNil(t, view.PendingOrderID)
	assert.Equal(t, second.Order.ID, *view.PendingOrderID)

	var cancelled bool
	for _, ev := range e.publisher.Events() {
		if ev.Type == events.OrderStatusChanged && ev.OrderID == first.Order.ID {
			cancelled = ev.Status == models.OrderStatusCancelled
		}
	}
	assert.True(t, cancelled)

	summary, err := e.reports.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalOrders)
}

func TestCheckoutPixKeepsOrderTheRestaurantStarted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "s1", "Chicken Burger", 1)

	first, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Maria", PaymentMethod: models.PaymentMethodPix})
	require.NoError(t, err)
	_, err = e.orders.Advance(ctx, first.Order.ID, "admin@cardapiogo.com")
	require.NoError(t, err)

	_, err = e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Maria", PaymentMethod: models.PaymentMethodPix})
	require.NoError(t, err)

	old, err := e.orders.Get(ctx, first.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, old.Status)
}

func TestCheckoutRejectsUnavailableItem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "s1", "Onion Rings", 1)

	onion := e.item(t, "Onion Rings")
	off := false
	_, err := e.catalog.UpdateMenuItem(ctx, onion.ID, MenuItemPatch{IsAvailable: &off})
	require.NoError(t, err)

	_, err = e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
}

func TestCheckoutUsesCurrentPrice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "s1", "Salada Caesar", 2)

	salad := e.item(t, "Salada Caesar")
	price := decimal.RequireFromString("20.00")
	_, err := e.catalog.UpdateMenuItem(ctx, salad.ID, MenuItemPatch{Price: &price})
	require.NoError(t, err)

	res, err := e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	require.NoError(t, err)
	assert.Equal(t, "40.00", res.Order.Total.StringFixed(2))
}

func TestCheckoutExpiredCoupon(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	e.coupons.now = func() time.Time { return now }
	e.createPromotion(t, "TODAY", 10, now)

	e.addToCart(t, "s1", "Petit Gateau", 1)
	_, err := e.carts.ApplyCoupon(ctx, "s1", "TODAY")
	require.NoError(t, err)

	now = now.AddDate(0, 0, 1)
	_, err = e.checkout.Checkout(ctx, "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrCouponNotFound)

	view := e.carts.Get("s1")
	assert.Nil(t, view.Coupon)
	assert.Equal(t, 1, view.ItemCount)
}

func TestCheckoutPublishFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.publisher.err = errors.New("broker down")
	e.addToCart(t, "s1", "Sorvete Artesanal", 1)

	res, err := e.checkout.Checkout(context.Background(), "s1", CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	require.NoError(t, err)
	assert.NotNil(t, res.Order)
}
