package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionCookie     = "cart_session"
	sessionContextKey = "cart_session_id"
	sessionCookieAge  = 30 * 24 * 60 * 60
)

type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=99"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CartSession resolves the browsing session from the X-Session-ID header or
// the cart_session cookie, minting a new id when neither is a valid uuid.
// The id is echoed back in both.
func (h *Handler) CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(sessionContextKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionCookieAge, "/", "", h.SecureCookies, true)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func (h *Handler) GetCartHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Carts.Get(sessionID(c)))
}

func (h *Handler) ClearCartHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Carts.Clear(sessionID(c)))
}

func (h *Handler) AddCartItemHandler(c *gin.Context) {
	var request AddCartItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Carts.AddItem(c.Request.Context(), sessionID(c), uuid.MustParse(request.MenuItemID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) UpdateCartItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var request UpdateCartItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Carts.SetQuantity(c.Request.Context(), sessionID(c), id, *request.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveCartItemHandler takes one unit of the item out of the cart.
func (h *Handler) RemoveCartItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	view, err := h.Carts.RemoveItem(sessionID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ApplyCouponHandler(c *gin.Context) {
	var request ApplyCouponRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Carts.ApplyCoupon(c.Request.Context(), sessionID(c), request.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) RemoveCouponHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Carts.RemoveCoupon(sessionID(c)))
}
