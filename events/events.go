// Package events carries order change notifications to whoever needs to
// refresh: the admin panel stream and, optionally, a Kafka topic.
package events

import (
	"context"
	"errors"
	"time"

	"cardapio-go/models"

	"github.com/google/uuid"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	Type       Type               `json:"type"`
	OrderID    uuid.UUID          `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Previous   models.OrderStatus `json:"previous_status,omitempty"`
	Total      string             `json:"total,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func NewOrderCreated(order *models.Order) Event {
	return Event{
		Type:       OrderCreated,
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	}
}

func NewStatusChanged(orderID uuid.UUID, from, to models.OrderStatus) Event {
	return Event{
		Type:       OrderStatusChanged,
		OrderID:    orderID,
		Status:     to,
		Previous:   from,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers an event. Callers treat a failure as non-fatal: the
// change it describes is already committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
