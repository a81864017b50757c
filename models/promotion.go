package models

import (
	"time"

	"cardapio-go/pricing"

	"gorm.io/datatypes"
)

type Promotion struct {
	Base
	Code               string         `json:"code" gorm:"not null;uniqueIndex;size:64"`
	DiscountPercentage int            `json:"discount_percentage" gorm:"not null"`
	IsActive           bool           `json:"is_active" gorm:"not null"`
	ValidUntil         datatypes.Date `json:"valid_until" gorm:"not null"`
}

// Coupon returns the value used by pricing for this promotion.
func (p Promotion) Coupon() pricing.Coupon {
	return pricing.Coupon{
		Code:               p.Code,
		DiscountPercentage: p.DiscountPercentage,
		ValidUntil:         time.Time(p.ValidUntil),
		Active:             p.IsActive,
	}
}
