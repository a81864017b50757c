package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cardapio-go/events"
	"cardapio-go/models"
	"cardapio-go/repository"

	"github.com/google/uuid"
)

// IOrderService defines the administrative order operations.
type IOrderService interface {
	List(ctx context.Context, status string) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Advance(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error)
	Cancel(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, actor string) (*models.Order, error)
}

type OrderService struct {
	repo      repository.IOrderRepository
	publisher events.Publisher
	log       *slog.Logger
}

func NewOrderService(repo repository.IOrderRepository, publisher events.Publisher, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, log: log}
}

func (s *OrderService) List(ctx context.Context, status string) ([]models.Order, error) {
	filter := models.OrderStatus(status)
	if filter != "" && !filter.Valid() {
		return nil, invalid("status", "unknown order status")
	}
	return s.repo.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return order, err
}

// Advance moves the order to the next status of pending, preparing, ready,
// delivered.
func (s *OrderService) Advance(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := order.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s is final", ErrInvalidTransition, order.Status)
	}
	return s.transition(ctx, order, next, actor)
}

func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error) {
	return s.UpdateStatus(ctx, id, models.OrderStatusCancelled, actor)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, actor string) (*models.Order, error) {
	if !to.Valid() {
		return nil, invalid("status", "unknown order status")
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, to, actor)
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, to models.OrderStatus, actor string) (*models.Order, error) {
	from := order.Status
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}

	err := s.repo.TransitionStatus(ctx, order.ID, from, to, actor)
	switch {
	case errors.Is(err, repository.ErrStaleStatus):
		return nil, fmt.Errorf("%w: order was updated by someone else", ErrInvalidTransition)
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.log.Info("order status changed",
		slog.String("action", "order_status"),
		slog.String("order_id", order.ID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("by", actor),
	)
	if err := s.publisher.Publish(ctx, events.NewStatusChanged(order.ID, from, to)); err != nil {
		s.log.Error("failed to publish order event", slog.String("order_id", order.ID.String()), slog.Any("error", err))
	}

	return s.Get(ctx, order.ID)
}
