package repository

import (
	"context"

	"cardapio-go/models"

	"gorm.io/gorm"
)

type ISettingsRepository interface {
	Get(ctx context.Context) (*models.RestaurantSettings, error)
	Save(ctx context.Context, settings *models.RestaurantSettings) error
}

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) ISettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get returns the settings row, creating it with the defaults when missing.
func (r *SettingsRepository) Get(ctx context.Context) (*models.RestaurantSettings, error) {
	settings := models.DefaultSettings()
	err := r.DB.WithContext(ctx).
		Where("id = ?", models.SettingsID).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *models.RestaurantSettings) error {
	settings.ID = models.SettingsID
	return r.DB.WithContext(ctx).Save(settings).Error
}
