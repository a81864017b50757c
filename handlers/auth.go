package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cardapio-go/models"
	"cardapio-go/services"
	"cardapio-go/utils"

	"github.com/gin-gonic/gin"
)

const UserClaimsHandlerKey = "user_claims"

// RegisterRequest struct to bind registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": profile.ID})
}

func (h *Handler) LoginHandler(c *gin.Context) {
	h.login(c, false)
}

// AdminLoginHandler only issues tokens to administrator accounts.
func (h *Handler) AdminLoginHandler(c *gin.Context) {
	h.login(c, true)
}

func (h *Handler) login(c *gin.Context, admin bool) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	login := h.Auth.Login
	if admin {
		login = h.Auth.AdminLogin
	}
	token, profile, err := login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
// The order stream also accepts the token in the access_token query
// parameter, since browsers cannot set headers on an EventSource.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		claims, err := h.Tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserClaimsHandlerKey, claims)
		c.Next()
	}
}

// RequireRole checks the role on the user's profile, so a demoted or
// deleted account loses access before its token expires.
func (h *Handler) RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := userClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User isn't authorized"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access forbidden"})
			return
		}

		current, err := h.Auth.CurrentRole(c.Request.Context(), claims.UserID)
		if errors.Is(err, services.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User isn't authorized"})
			return
		}
		if err != nil {
			h.respondError(c, err)
			return
		}
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access forbidden"})
			return
		}
		c.Next()
	}
}

func userClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(UserClaimsHandlerKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// actor names the signed-in user in the order status history.
func actor(c *gin.Context) string {
	if claims, ok := userClaims(c); ok {
		return claims.Email
	}
	return "unknown"
}
