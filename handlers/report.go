package handlers

import (
	"net/http"
	"strconv"

	"cardapio-go/services"

	"github.com/gin-gonic/gin"
)

// GetReportHandler returns the sales summary. ?top= sets how many best
// sellers to include.
func (h *Handler) GetReportHandler(c *gin.Context) {
	top := services.DefaultTopItems
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive number"})
			return
		}
		top = n
	}

	report, err := h.Reports.Summary(c.Request.Context(), top)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
