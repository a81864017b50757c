package handlers

import (
	"net/http"

	"cardapio-go/services"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsRequest struct {
	RestaurantName *string `json:"restaurant_name"`
	Contact        *string `json:"contact"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Address        *string `json:"address"`
	OpeningHours   *string `json:"opening_hours"`
	Description    *string `json:"description"`
}

func (h *Handler) GetSettingsHandler(c *gin.Context) {
	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettingsHandler(c *gin.Context) {
	var request UpdateSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Settings.Update(c.Request.Context(), services.SettingsPatch{
		RestaurantName: request.RestaurantName,
		Contact:        request.Contact,
		Email:          request.Email,
		Address:        request.Address,
		OpeningHours:   request.OpeningHours,
		Description:    request.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
