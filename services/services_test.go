package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cardapio-go/cart"
	"cardapio-go/events"
	"cardapio-go/models"
	"cardapio-go/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type env struct {
	db        *gorm.DB
	store     *cart.Store
	publisher *recordingPublisher
	catalog   *CatalogService
	coupons   *CouponService
	carts     *CartService
	checkout  *CheckoutService
	orders    *OrderService
	reports   *ReportService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repository.Open("sqlite", dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	require.NoError(t, repository.Seed(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	e := &env{db: db, store: cart.NewStore(time.Hour), publisher: &recordingPublisher{}}
	e.catalog = NewCatalogService(catalogRepo)
	e.coupons = NewCouponService(repository.NewPromotionRepository(db), time.UTC)
	e.carts = NewCartService(e.store, e.catalog, e.coupons)
	e.checkout = NewCheckoutService(e.store, catalogRepo, orderRepo, e.coupons, e.publisher,
		PixSettings{Key: "pix@restaurante.com.br", MerchantCity: "SAO PAULO"}, discardLogger())
	e.orders = NewOrderService(orderRepo, e.publisher, discardLogger())
	e.reports = NewReportService(orderRepo)
	return e
}

// item returns the seeded menu item with the given name.
func (e *env) item(t *testing.T, name string) models.MenuItem {
	t.Helper()
	items, err := e.catalog.ListMenu(context.Background(), AllCategories, true)
	require.NoError(t, err)
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("menu item %q not seeded", name)
	return models.MenuItem{}
}

func (e *env) addToCart(t *testing.T, session, name string, qty int) {
	t.Helper()
	it := e.item(t, name)
	for i := 0; i < qty; i++ {
		_, err := e.carts.AddItem(context.Background(), session, it.ID)
		require.NoError(t, err)
	}
}

func (e *env) createPromotion(t *testing.T, code string, pct int, validUntil time.Time) *models.Promotion {
	t.Helper()
	p, err := e.coupons.CreatePromotion(context.Background(), PromotionInput{
		Code:               code,
		DiscountPercentage: pct,
		IsActive:           true,
		ValidUntil:         validUntil.Format(dateLayout),
	})
	require.NoError(t, err)
	return p
}
