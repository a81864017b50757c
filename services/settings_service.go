package services

import (
	"context"
	"strings"

	"cardapio-go/models"
	"cardapio-go/repository"
)

type SettingsPatch struct {
	RestaurantName *string
	Contact        *string
	Email          *string
	Address        *string
	OpeningHours   *string
	Description    *string
}

type ISettingsService interface {
	Get(ctx context.Context) (*models.RestaurantSettings, error)
	Update(ctx context.Context, patch SettingsPatch) (*models.RestaurantSettings, error)
}

type SettingsService struct {
	repo repository.ISettingsRepository
}

func NewSettingsService(repo repository.ISettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*models.RestaurantSettings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (*models.RestaurantSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.RestaurantName != nil {
		name := strings.TrimSpace(*patch.RestaurantName)
		if name == "" {
			return nil, invalid("restaurant_name", "restaurant name is required")
		}
		settings.RestaurantName = name
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&settings.Contact, patch.Contact)
	set(&settings.Email, patch.Email)
	set(&settings.Address, patch.Address)
	set(&settings.OpeningHours, patch.OpeningHours)
	set(&settings.Description, patch.Description)

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
