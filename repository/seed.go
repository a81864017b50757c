package repository

import (
	"context"
	"fmt"

	"cardapio-go/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCategories = []models.Category{
	{ID: "burgers", Name: "Hambúrgueres", Icon: "🍔"},
	{ID: "drinks", Name: "Bebidas", Icon: "🥤"},
	{ID: "sides", Name: "Acompanhamentos", Icon: "🍟"},
	{ID: "desserts", Name: "Sobremesas", Icon: "🍰"},
}

type seedItem struct {
	name, description, price, image, category string
}

var seedMenu = []seedItem{
	{"Big Burger Clássico", "Dois hambúrgueres suculentos, queijo cheddar, alface, tomate, cebola e molho especial", "32.90", "/uploads/big-burger-classico.png", "burgers"},
	{"Burger Bacon Supreme", "Hambúrguer artesanal, bacon crocante, queijo swiss, cebola caramelizada e molho barbecue", "28.90", "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500&h=300&fit=crop", "burgers"},
	{"Chicken Burger", "Peito de frango grelhado, queijo mozzarella, alface, tomate e maionese temperada", "24.90", "https://images.unsplash.com/photo-1606755962773-d324e2dabd81?w=500&h=300&fit=crop", "burgers"},
	{"Veggie Burger", "Hambúrguer de grão-de-bico e quinoa, queijo vegano, alface, tomate e molho tahine", "26.90", "https://images.unsplash.com/photo-1512152272829-e3139592d56f?w=500&h=300&fit=crop", "burgers"},
	{"Refrigerante Lata", "Coca-Cola, Pepsi, Sprite, Fanta - 350ml gelado", "6.50", "https://images.unsplash.com/photo-1629203851122-3726ecdf080e?w=500&h=300&fit=crop", "drinks"},
	{"Suco Natural", "Laranja, limão, maracujá ou açaí - 400ml natural", "8.90", "https://images.unsplash.com/photo-1613478223719-2ab802602423?w=500&h=300&fit=crop", "drinks"},
	{"Milkshake", "Chocolate, morango ou baunilha com chantilly - 300ml", "12.90", "https://images.unsplash.com/photo-1572490122747-3968b75cc699?w=500&h=300&fit=crop", "drinks"},
	{"Água Mineral", "Água mineral sem gás - 500ml", "3.50", "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=500&h=300&fit=crop", "drinks"},
	{"Batata Frita Grande", "Porção generosa de batatas crocantes com sal especial", "14.90", "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?w=500&h=300&fit=crop", "sides"},
	{"Onion Rings", "Anéis de cebola empanados e fritos - 8 unidades", "12.90", "https://images.unsplash.com/photo-1639024471283-03518883512d?w=500&h=300&fit=crop", "sides"},
	{"Nuggets de Frango", "10 nuggets crocantes com molho barbecue ou mostarda", "16.90", "https://images.unsplash.com/photo-1562967914-608f82629710?w=500&h=300&fit=crop", "sides"},
	{"Salada Caesar", "Alface americana, croutons, parmesão e molho caesar", "18.90", "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=500&h=300&fit=crop", "sides"},
	{"Brownie com Sorvete", "Brownie de chocolate quente com sorvete de baunilha e calda", "15.90", "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=500&h=300&fit=crop", "desserts"},
	{"Cheesecake Frutas Vermelhas", "Fatia de cheesecake cremoso com calda de frutas vermelhas", "13.90", "https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?w=500&h=300&fit=crop", "desserts"},
	{"Sorvete Artesanal", "2 bolas de sorvete artesanal - sabores disponíveis no balcão", "8.90", "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=500&h=300&fit=crop", "desserts"},
	{"Petit Gateau", "Bolinho de chocolate quente com sorvete de creme", "17.90", "https://images.unsplash.com/photo-1540337706094-da10342c93d8?w=500&h=300&fit=crop", "desserts"},
}

// Seed inserts the categories, the sample menu (only into an empty catalog)
// and the default restaurant settings. It is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := append([]models.Category(nil), seedCategories...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}

		var count int64
		if err := tx.Unscoped().Model(&models.MenuItem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count menu items: %w", err)
		}
		if count == 0 {
			items := make([]models.MenuItem, 0, len(seedMenu))
			for _, s := range seedMenu {
				items = append(items, models.MenuItem{
					Name:        s.name,
					Description: s.description,
					Price:       decimal.RequireFromString(s.price),
					Image:       s.image,
					CategoryID:  s.category,
					IsAvailable: true,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("seed menu: %w", err)
			}
		}

		settings := models.DefaultSettings()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		return nil
	})
}
