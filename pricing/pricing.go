package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Coupon is a resolved promotion that can be applied to a cart.
type Coupon struct {
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ValidUntil         time.Time `json:"valid_until"`
	Active             bool      `json:"-"`
}

// ValidOn reports whether the coupon can be used at t. The expiry is a
// calendar date and the whole expiry day counts, in t's location.
func (c Coupon) ValidOn(t time.Time) bool {
	if !c.Active || c.DiscountPercentage <= 0 || c.DiscountPercentage > 100 {
		return false
	}
	today := civilDate(t)
	until := time.Date(c.ValidUntil.Year(), c.ValidUntil.Month(), c.ValidUntil.Day(), 0, 0, 0, 0, time.UTC)
	return !until.Before(today)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Quote struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	CouponCode         string          `json:"coupon_code,omitempty"`
	DiscountPercentage int             `json:"discount_percentage"`
	Discount           decimal.Decimal `json:"discount"`
	Total              decimal.Decimal `json:"total"`
}

// NewQuote prices a subtotal with an optional coupon.
func NewQuote(subtotal decimal.Decimal, coupon *Coupon) Quote {
	q := Quote{
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Total:    subtotal,
	}
	if coupon == nil {
		return q
	}
	q.CouponCode = coupon.Code
	q.DiscountPercentage = coupon.DiscountPercentage
	q.Discount = Discount(subtotal, coupon.DiscountPercentage)
	q.Total = subtotal.Sub(q.Discount)
	return q
}

// Discount returns subtotal * pct / 100 rounded to cents. It is never
// negative and never larger than the subtotal.
func Discount(subtotal decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 || !subtotal.IsPositive() {
		return decimal.Zero
	}
	if pct > 100 {
		pct = 100
	}
	d := subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(2)
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
