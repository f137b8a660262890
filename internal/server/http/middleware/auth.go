package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quoteflow/internal/domain/model"
	pkgAuth "github.com/polkiloo/quoteflow/internal/pkg/auth"
	"github.com/polkiloo/quoteflow/internal/server/http/dto"
)

const (
	// CustomerContextKey is a gin context key for the authenticated actor.
	CustomerContextKey = "customer"
	authCookieName     = "quoteflow_token"
)

// Authenticator resolves an actor token to the customer it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Customer, error)
}

// AuthRequired ensures the request carries a valid actor token.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		customer, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, pkgAuth.ErrInvalidToken.Error())
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CustomerContextKey, customer)
		c.Next()
	}
}

// RequireStaff lets through only actors that may manage orders.
func RequireStaff() gin.HandlerFunc {
	return requireCapability(func(c *model.Customer) bool { return c.CanManageOrders() })
}

// RequireDealer lets through only actors that receive commissions.
func RequireDealer() gin.HandlerFunc {
	return requireCapability(func(c *model.Customer) bool { return c.CanReceiveCommission() })
}

func requireCapability(allowed func(*model.Customer) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := CurrentCustomer(c)
		if customer == nil {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !allowed(customer) {
			abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// CurrentCustomer returns the actor stored by AuthRequired, or nil.
func CurrentCustomer(c *gin.Context) *model.Customer {
	val, ok := c.Get(CustomerContextKey)
	if !ok {
		return nil
	}
	customer, _ := val.(*model.Customer)
	return customer
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
