package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// forward holds the single successor of each non-terminal status.
var forward = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the forward successor of s. Terminal statuses have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// CanTransitionTo reports whether an administrator may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() || s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	successor, ok := forward[s]
	return ok && successor == next
}

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPix || m == PaymentMethodCard || m == PaymentMethodCash
}

type Order struct {
	Base
	CustomerName  string              `json:"customer_name" gorm:"not null"`
	CustomerPhone *string             `json:"customer_phone"`
	PaymentMethod PaymentMethod       `json:"payment_method" gorm:"not null;size:16"`
	Subtotal      decimal.Decimal     `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	CouponCode    *string             `json:"coupon_code"`
	Discount      decimal.Decimal     `json:"discount" gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal     `json:"total" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus         `json:"status" gorm:"not null;index;size:16"`
	Items         []OrderItem         `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusChange `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uuid.UUID       `json:"order_id" gorm:"type:char(36);not null;index"`
	MenuItemID uuid.UUID       `json:"menu_item_id" gorm:"type:char(36);not null;index"`
	Name       string          `json:"name" gorm:"not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusChange is one row of an order's status history.
type OrderStatusChange struct {
	ID         uint        `json:"-" gorm:"primaryKey"`
	OrderID    uuid.UUID   `json:"-" gorm:"type:char(36);not null;index"`
	FromStatus OrderStatus `json:"from_status" gorm:"size:16"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null;size:16"`
	ChangedBy  string      `json:"changed_by"`
	ChangedAt  time.Time   `json:"changed_at" gorm:"not null"`
}
