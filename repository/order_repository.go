package repository

import (
	"context"
	"time"

	"cardapio-go/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesSummary aggregates the orders that were not cancelled.
type SalesSummary struct {
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalOrders int64           `json:"total_orders"`
}

type TopItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
}

// IOrderRepository defines the interface for order data operations.
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, changedBy string) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus, changedBy string) error
	SalesSummary(ctx context.Context) (SalesSummary, error)
	TopItems(ctx context.Context, limit int) ([]TopItem, error)
}

// OrderRepository implements IOrderRepository for GORM.
type OrderRepository struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewOrderRepository(db *gorm.DB) IOrderRepository {
	return &OrderRepository{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateOrder writes the order, its items and the first status history row
// in one transaction.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, changedBy string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StatusHistory").Create(order).Error; err != nil {
			return err
		}
		change := models.OrderStatusChange{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: changedBy,
			ChangedAt: r.now(),
		}
		if err := tx.Create(&change).Error; err != nil {
			return err
		}
		order.StatusHistory = []models.OrderStatusChange{change}
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at, id") }).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// List returns orders newest first, optionally only those in status.
func (r *OrderRepository) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	query := r.DB.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	if status != "" {
		query = query.Where("status = ?", status)
	}

	orders := []models.Order{}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// TransitionStatus moves the order from one status to another only if it is
// still in from. It returns ErrStaleStatus when it is not, and ErrNotFound
// when the order does not exist.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus, changedBy string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.now()
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]interface{}{"status": to, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrStaleStatus
		}

		return tx.Create(&models.OrderStatusChange{
			OrderID:    id,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  changedBy,
			ChangedAt:  now,
		}).Error
	})
}

func (r *OrderRepository) SalesSummary(ctx context.Context) (SalesSummary, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status <> ?", models.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return SalesSummary{}, err
	}
	return SalesSummary{TotalSales: row.Total.Round(2), TotalOrders: row.Count}, nil
}

// TopItems ranks menu items by quantity sold in orders that were not cancelled.
func (r *OrderRepository) TopItems(ctx context.Context, limit int) ([]TopItem, error) {
	items := []TopItem{}
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("order_items.menu_item_id AS menu_item_id, MAX(order_items.name) AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", models.OrderStatusCancelled).
		Group("order_items.menu_item_id").
		Order("quantity DESC").
		Order("name").
		Limit(limit).
		Scan(&items).Error
	return items, err
}
