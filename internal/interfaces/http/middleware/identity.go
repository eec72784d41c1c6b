package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkthread/backend/internal/interfaces/http/dto"
)

// Identity resolves the caller from the X-User-ID header set by the
// authenticating gateway in front of this service, and stores it in the
// request context for handlers and the request logger.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

// RequireUser rejects requests without a resolved user identity
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized,
				"User identity is required",
				requestID,
			))
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin routes. The gateway asserts the caller's
// role via the X-User-Role header; this service trusts that assertion
// the same way it trusts X-User-ID.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-Role") != "admin" {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Admin role is required",
				requestID,
			))
			return
		}
		c.Next()
	}
}

// GetUserID returns the resolved user identity, empty when anonymous
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
