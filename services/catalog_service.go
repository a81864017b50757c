package services

import (
	"context"
	"errors"
	"strings"

	"cardapio-go/cart"
	"cardapio-go/models"
	"cardapio-go/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "all"

type MenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  string
	IsAvailable bool
}

type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	CategoryID  *string
	IsAvailable *bool
}

type ICatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	// ListMenu returns the menu for a category ("" or "all" for every one).
	// Unavailable items are included only when includeUnavailable is set.
	ListMenu(ctx context.Context, category string, includeUnavailable bool) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID, includeUnavailable bool) (*models.MenuItem, error)
	CartItem(ctx context.Context, id uuid.UUID) (cart.Item, error)
	CreateMenuItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, patch MenuItemPatch) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type CatalogService struct {
	repo repository.ICatalogRepository
}

func NewCatalogService(repo repository.ICatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) ListMenu(ctx context.Context, category string, includeUnavailable bool) ([]models.MenuItem, error) {
	filter := repository.MenuFilter{AvailableOnly: !includeUnavailable}
	if category != "" && category != AllCategories {
		filter.CategoryID = category
	}
	return s.repo.ListMenuItems(ctx, filter)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uuid.UUID, includeUnavailable bool) (*models.MenuItem, error) {
	item, err := s.repo.FindMenuItem(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable && !includeUnavailable {
		return nil, ErrNotFound
	}
	return item, nil
}

// CartItem returns the cart view of an item that can currently be ordered.
func (s *CatalogService) CartItem(ctx context.Context, id uuid.UUID) (cart.Item, error) {
	item, err := s.repo.FindMenuItem(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return cart.Item{}, ErrNotFound
	}
	if err != nil {
		return cart.Item{}, err
	}
	if !item.IsAvailable {
		return cart.Item{}, invalid("menu_item_id", item.Name+" is not available")
	}
	return cart.Item{ID: item.ID, Name: item.Name, Price: item.Price}, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		IsAvailable: input.IsAvailable,
	}
	updates, err := s.validate(ctx, MenuItemPatch{
		Name:       &input.Name,
		Price:      &input.Price,
		CategoryID: &input.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	item.Name = updates["name"].(string)
	item.Price = updates["price"].(decimal.Decimal)
	item.CategoryID = updates["category_id"].(string)

	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.GetMenuItem(ctx, item.ID, true)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, id uuid.UUID, patch MenuItemPatch) (*models.MenuItem, error) {
	updates, err := s.validate(ctx, patch)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, invalid("body", "no update fields provided")
	}

	item, err := s.repo.UpdateMenuItem(ctx, id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteMenuItem(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// validate checks the set fields of patch and returns them as column updates.
func (s *CatalogService) validate(ctx context.Context, patch MenuItemPatch) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("name", "name is required")
		}
		updates["name"] = name
	}
	if patch.Description != nil {
		updates["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, invalid("price", "price must not be negative")
		}
		updates["price"] = patch.Price.Round(2)
	}
	if patch.Image != nil {
		updates["image"] = strings.TrimSpace(*patch.Image)
	}
	if patch.CategoryID != nil {
		categoryID := strings.TrimSpace(*patch.CategoryID)
		exists, err := s.repo.CategoryExists(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, invalid("category_id", "unknown category")
		}
		updates["category_id"] = categoryID
	}
	if patch.IsAvailable != nil {
		updates["is_available"] = *patch.IsAvailable
	}
	return updates, nil
}
