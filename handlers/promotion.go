package handlers

import (
	"net/http"
	"time"

	"cardapio-go/models"
	"cardapio-go/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePromotionRequest struct {
	Code               string `json:"code" binding:"required"`
	DiscountPercentage int    `json:"discount_percentage" binding:"required,min=1,max=100"`
	IsActive           *bool  `json:"is_active"`
	ValidUntil         string `json:"valid_until" binding:"required"`
}

type UpdatePromotionRequest struct {
	Code               *string `json:"code"`
	DiscountPercentage *int    `json:"discount_percentage"`
	IsActive           *bool   `json:"is_active"`
	ValidUntil         *string `json:"valid_until"`
}

// PromotionResponse reports valid_until as a plain YYYY-MM-DD date.
type PromotionResponse struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	IsActive           bool      `json:"is_active"`
	ValidUntil         string    `json:"valid_until"`
	CreatedAt          time.Time `json:"created_at"`
}

func newPromotionResponse(p *models.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:                 p.ID,
		Code:               p.Code,
		DiscountPercentage: p.DiscountPercentage,
		IsActive:           p.IsActive,
		ValidUntil:         time.Time(p.ValidUntil).Format("2006-01-02"),
		CreatedAt:          p.CreatedAt,
	}
}

func (h *Handler) ListPromotionsHandler(c *gin.Context) {
	promotions, err := h.Coupons.ListPromotions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]PromotionResponse, 0, len(promotions))
	for i := range promotions {
		response = append(response, newPromotionResponse(&promotions[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) CreatePromotionHandler(c *gin.Context) {
	var request CreatePromotionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.PromotionInput{
		Code:               request.Code,
		DiscountPercentage: request.DiscountPercentage,
		IsActive:           true,
		ValidUntil:         request.ValidUntil,
	}
	if request.IsActive != nil {
		input.IsActive = *request.IsActive
	}

	promotion, err := h.Coupons.CreatePromotion(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPromotionResponse(promotion))
}

func (h *Handler) UpdatePromotionHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "promotion_id")
	if !ok {
		return
	}

	var request UpdatePromotionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promotion, err := h.Coupons.UpdatePromotion(c.Request.Context(), id, services.PromotionPatch{
		Code:               request.Code,
		DiscountPercentage: request.DiscountPercentage,
		IsActive:           request.IsActive,
		ValidUntil:         request.ValidUntil,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPromotionResponse(promotion))
}

func (h *Handler) DeletePromotionHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "promotion_id")
	if !ok {
		return
	}
	if err := h.Coupons.DeletePromotion(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted promotion"})
}
