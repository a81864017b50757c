package services

import (
	"context"
	"testing"

	"cardapio-go/events"
	"cardapio-go/models"
	"cardapio-go/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, e *env, session string) *models.Order {
	t.Helper()
	e.addToCart(t, session, "Nuggets de Frango", 1)
	res, err := e.checkout.Checkout(context.Background(), session, CheckoutRequest{CustomerName: "Ana", PaymentMethod: models.PaymentMethodCash})
	require.NoError(t, err)
	return res.Order
}

func TestOrderAdvanceToDelivered(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	order := placeOrder(t, e, "s1")

	for _, want := range []models.OrderStatus{models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusDelivered} {
		got, err := e.orders.Advance(ctx, order.ID, "admin@cardapiogo.com")
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}

	_, err := e.orders.Advance(ctx, order.ID, "admin@cardapiogo.com")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = e.orders.Cancel(ctx, order.ID, "admin@cardapiogo.com")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	final, err := e.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, final.StatusHistory, 4)

	evs := e.publisher.Events()
	require.Len(t, evs, 4)
	assert.Equal(t, events.OrderStatusChanged, evs[3].Type)
	assert.Equal(t, models.OrderStatusDelivered, evs[3].Status)
	assert.Equal(t, models.OrderStatusReady, evs[3].Previous)
}

func TestOrderUpdateStatusRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	order := placeOrder(t, e, "s1")

	_, err := e.orders.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered, "admin")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.orders.UpdateStatus(ctx, order.ID, "shipped", "admin")
	assert.ErrorAs(t, err, new(ValidationError))

	got, err := e.orders.Cancel(ctx, order.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	_, err = e.orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, "admin")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.orders.Advance(ctx, uuid.New(), "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := placeOrder(t, e, "s1")
	placeOrder(t, e, "s2")

	_, err := e.orders.Advance(ctx, first.ID, "admin")
	require.NoError(t, err)

	all, err := e.orders.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := e.orders.List(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.NotEqual(t, first.ID, pending[0].ID)

	_, err = e.orders.List(ctx, "bogus")
	assert.ErrorAs(t, err, new(ValidationError))
}

// MockOrderRepository is a testify mock of repository.IOrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order, changedBy string) error {
	return m.Called(ctx, order, changedBy).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus, changedBy string) error {
	return m.Called(ctx, id, from, to, changedBy).Error(0)
}

func (m *MockOrderRepository) SalesSummary(ctx context.Context) (repository.SalesSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.SalesSummary), args.Error(1)
}

func (m *MockOrderRepository) TopItems(ctx context.Context, limit int) ([]repository.TopItem, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.TopItem), args.Error(1)
}

// A concurrent admin moved the order first: the conditional update matches
// no row and the caller gets a conflict instead of an illegal jump.
func TestOrderTransitionConflict(t *testing.T) {
	repo := new(MockOrderRepository)
	publisher := &recordingPublisher{}
	svc := NewOrderService(repo, publisher, discardLogger())

	order := &models.Order{Status: models.OrderStatusPending}
	order.ID = uuid.New()

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	repo.On("TransitionStatus", mock.Anything, order.ID, models.OrderStatusPending, models.OrderStatusPreparing, "admin").
		Return(repository.ErrStaleStatus)

	_, err := svc.Advance(context.Background(), order.ID, "admin")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, publisher.Events())
	repo.AssertExpectations(t)
}
