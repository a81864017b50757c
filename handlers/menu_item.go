package handlers

import (
	"net/http"

	"cardapio-go/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CreateMenuItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Image       string           `json:"image"`
	CategoryID  string           `json:"category_id" binding:"required"`
	IsAvailable *bool            `json:"is_available"`
}

// UpdateMenuItemRequest uses pointers so that only the sent fields change.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	CategoryID  *string          `json:"category_id"`
	IsAvailable *bool            `json:"is_available"`
}

func (h *Handler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetMenuHandler lists the available items, optionally of one category
// (?category=burgers, or "all").
func (h *Handler) GetMenuHandler(c *gin.Context) {
	items, err := h.Catalog.ListMenu(c.Request.Context(), c.Query("category"), false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMenuItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	item, err := h.Catalog.GetMenuItem(c.Request.Context(), id, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) AdminListMenuHandler(c *gin.Context) {
	items, err := h.Catalog.ListMenu(c.Request.Context(), c.Query("category"), true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMenuItemHandler(c *gin.Context) {
	var request CreateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.MenuItemInput{
		Name:        request.Name,
		Description: request.Description,
		Price:       *request.Price,
		Image:       request.Image,
		CategoryID:  request.CategoryID,
		IsAvailable: true,
	}
	if request.IsAvailable != nil {
		input.IsAvailable = *request.IsAvailable
	}

	item, err := h.Catalog.CreateMenuItem(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var request UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Catalog.UpdateMenuItem(c.Request.Context(), id, services.MenuItemPatch{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Image:       request.Image,
		CategoryID:  request.CategoryID,
		IsAvailable: request.IsAvailable,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteMenuItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted menu item"})
}
