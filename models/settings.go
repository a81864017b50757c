package models

import "time"

// SettingsID is the primary key of the single restaurant_settings row.
const SettingsID uint = 1

type RestaurantSettings struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	RestaurantName string    `json:"restaurant_name" gorm:"not null"`
	Contact        string    `json:"contact"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	OpeningHours   string    `json:"opening_hours"`
	Description    string    `json:"description"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (RestaurantSettings) TableName() string {
	return "restaurant_settings"
}

func DefaultSettings() RestaurantSettings {
	return RestaurantSettings{
		ID:             SettingsID,
		RestaurantName: "CardápioGO Restaurant",
		Contact:        "(11) 99999-9999",
		Email:          "contato@cardapiogo.com",
		Address:        "Rua das Flores, 123 - Centro",
		OpeningHours:   "Seg-Dom: 11:00 às 23:00",
		Description:    "O melhor da gastronomia com tecnologia de ponta.",
	}
}
