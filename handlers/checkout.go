package handlers

import (
	"net/http"

	"cardapio-go/models"
	"cardapio-go/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CardRequest struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// CheckoutRequest is the checkout form. Card is required for card payments;
// change_for is only read for cash.
type CheckoutRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerPhone string           `json:"customer_phone"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=pix card cash"`
	Card          *CardRequest     `json:"card"`
	ChangeFor     *decimal.Decimal `json:"change_for"`
}

func (h *Handler) CheckoutHandler(c *gin.Context) {
	var request CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := services.CheckoutRequest{
		CustomerName:  request.CustomerName,
		CustomerPhone: request.CustomerPhone,
		PaymentMethod: models.PaymentMethod(request.PaymentMethod),
		ChangeFor:     request.ChangeFor,
	}
	if request.Card != nil {
		req.Card = &services.CardDetails{
			Number:     request.Card.Number,
			HolderName: request.Card.HolderName,
			Expiry:     request.Card.Expiry,
			CVV:        request.Card.CVV,
		}
	}

	result, err := h.Checkout.Checkout(c.Request.Context(), sessionID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ConfirmPixHandler is called when the customer reports the PIX payment as
// done. It completes the checkout of the pending order.
func (h *Handler) ConfirmPixHandler(c *gin.Context) {
	order, err := h.Checkout.ConfirmPix(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment reported", "order": order})
}
