package repository

import (
	"context"

	"cardapio-go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IPromotionRepository defines the data operations on promotions (coupons).
type IPromotionRepository interface {
	List(ctx context.Context) ([]models.Promotion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	// FindActiveByCode looks up an active promotion by its upper-case code.
	// Expiry is checked by the caller.
	FindActiveByCode(ctx context.Context, code string) (*models.Promotion, error)
	Create(ctx context.Context, promotion *models.Promotion) error
	Save(ctx context.Context, promotion *models.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PromotionRepository struct {
	DB *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) IPromotionRepository {
	return &PromotionRepository{DB: db}
}

func (r *PromotionRepository) List(ctx context.Context) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&promotions).Error
	return promotions, err
}

func (r *PromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, translate(err)
	}
	return &promotion, nil
}

func (r *PromotionRepository) FindActiveByCode(ctx context.Context, code string) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.DB.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&promotion).Error
	if err != nil {
		return nil, translate(err)
	}
	return &promotion, nil
}

func (r *PromotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	return translate(r.DB.WithContext(ctx).Create(promotion).Error)
}

func (r *PromotionRepository) Save(ctx context.Context, promotion *models.Promotion) error {
	return translate(r.DB.WithContext(ctx).Save(promotion).Error)
}

func (r *PromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Promotion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
