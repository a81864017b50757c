package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cardapio-go/events"
	"cardapio-go/logging"
	"cardapio-go/models"
	"cardapio-go/services"
	"cardapio-go/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderFeed hands out subscriptions to order events.
type OrderFeed interface {
	Subscribe() (<-chan events.Event, func())
}

// Handler holds the services behind the HTTP API.
type Handler struct {
	Catalog  services.ICatalogService
	Coupons  services.ICouponService
	Carts    services.ICartService
	Checkout services.ICheckoutService
	Orders   services.IOrderService
	Auth     services.IAuthService
	Settings services.ISettingsService
	Reports  services.IReportService
	Feed     OrderFeed
	Tokens   *utils.TokenIssuer
	Log      *slog.Logger

	// SecureCookies marks the cart session cookie Secure.
	SecureCookies bool
	// KeepAlive is the interval of comment pings on the order stream.
	KeepAlive time.Duration
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", HealthHandler)

	// --- Authentication Routes ---
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.RegisterHandler)
		authGroup.POST("/login", h.LoginHandler)
		authGroup.POST("/admin/login", h.AdminLoginHandler)
	}

	// --- Public Menu Routes --- (Auth token not needed)
	publicGroup := router.Group("/public")
	{
		publicGroup.GET("/categories", h.ListCategoriesHandler)
		publicGroup.GET("/menu", h.GetMenuHandler)
		publicGroup.GET("/menu/:item_id", h.GetMenuItemHandler)
		publicGroup.GET("/settings", h.GetSettingsHandler)
	}

	// --- Cart and Checkout Routes --- (scoped by browsing session)
	cartGroup := router.Group("/cart", h.CartSession())
	{
		cartGroup.GET("", h.GetCartHandler)
		cartGroup.DELETE("", h.ClearCartHandler)
		cartGroup.POST("/items", h.AddCartItemHandler)
		cartGroup.PUT("/items/:item_id", h.UpdateCartItemHandler)
		cartGroup.DELETE("/items/:item_id", h.RemoveCartItemHandler)
		cartGroup.POST("/coupon", h.ApplyCouponHandler)
		cartGroup.DELETE("/coupon", h.RemoveCouponHandler)
	}
	checkoutGroup := router.Group("/checkout", h.CartSession())
	{
		checkoutGroup.POST("", h.CheckoutHandler)
		checkoutGroup.POST("/pix/confirm", h.ConfirmPixHandler)
	}

	// --- Admin Protected Routes ---
	adminGroup := router.Group("/admin", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin))
	{
		menuRoutes := adminGroup.Group("/menu")
		{
			menuRoutes.GET("", h.AdminListMenuHandler)
			menuRoutes.POST("", h.CreateMenuItemHandler)
			menuRoutes.PUT("/:item_id", h.UpdateMenuItemHandler)
			menuRoutes.DELETE("/:item_id", h.DeleteMenuItemHandler)
		}

		promotionRoutes := adminGroup.Group("/promotions")
		{
			promotionRoutes.GET("", h.ListPromotionsHandler)
			promotionRoutes.POST("", h.CreatePromotionHandler)
			promotionRoutes.PUT("/:promotion_id", h.UpdatePromotionHandler)
			promotionRoutes.DELETE("/:promotion_id", h.DeletePromotionHandler)
		}

		orderRoutes := adminGroup.Group("/orders")
		{
			orderRoutes.GET("", h.ListOrdersHandler)
			orderRoutes.GET("/stream", h.StreamOrdersHandler)
			orderRoutes.GET("/:order_id", h.GetOrderHandler)
			orderRoutes.POST("/:order_id/advance", h.AdvanceOrderHandler)
			orderRoutes.POST("/:order_id/cancel", h.CancelOrderHandler)
			orderRoutes.PUT("/:order_id/status", h.UpdateOrderStatusHandler)
		}

		adminGroup.GET("/settings", h.GetSettingsHandler)
		adminGroup.PUT("/settings", h.UpdateSettingsHandler)
		adminGroup.GET("/reports", h.GetReportHandler)
	}
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as a plain 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, services.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrCouponNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Invalid coupon"})
	case errors.Is(err, services.ErrEmptyCart):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicateCode),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNoPendingPayment):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrNotAdmin):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logging.FromContext(c, h.Log).Error("request failed",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
