package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID   string `json:"id" gorm:"primaryKey;size:64"`
	Name string `json:"name" gorm:"not null"`
	Icon string `json:"icon"`
}

type MenuItem struct {
	Base
	Name        string          `json:"name" gorm:"not null;index"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"category_id" gorm:"not null;index;size:64"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	IsAvailable bool            `json:"is_available" gorm:"not null"`

	// Soft delete keeps historic order lines pointing at a real row.
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
