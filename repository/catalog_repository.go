package repository

import (
	"context"

	"cardapio-go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuFilter narrows a menu listing. An empty CategoryID means every category.
type MenuFilter struct {
	CategoryID    string
	AvailableOnly bool
}

// ICatalogRepository defines the data operations on categories and menu items.
type ICatalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	ListMenuItems(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) ICatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.DB.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) ListMenuItems(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	query := r.DB.WithContext(ctx).Preload("Category")
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	items := []models.MenuItem{}
	err := query.Order("category_id").Order("name").Find(&items).Error
	return items, err
}

func (r *CatalogRepository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// FindMenuItemsByIDs returns the live items among ids. Missing or deleted ids
// are simply absent from the result.
func (r *CatalogRepository) FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if len(ids) == 0 {
		return items, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return translate(r.DB.WithContext(ctx).Create(item).Error)
}

func (r *CatalogRepository) UpdateMenuItem(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.MenuItem, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		return tx.Model(&item).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.FindMenuItem(ctx, id)
}

func (r *CatalogRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
