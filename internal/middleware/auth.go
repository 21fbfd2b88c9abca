package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccountIDKey = "accountID"
	SessionIDKey = "sessionID"
	RoleKey      = "role"
)

// TokenValidator resolves a bearer token to its claims, failing for revoked sessions
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*utils.Claims, error)
}

func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Invalid or expired token"
			var appErr *appErrors.AppError
			if errors.As(err, &appErr) && appErr.Code == appErrors.CodeUnauthorized {
				message = appErr.Message
			} else if appErrors.CodeOf(err) == "" {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
				return
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(SessionIDKey, claims.SessionID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// GetAccountID returns the authenticated account id set by AuthMiddleware
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	return getUUID(c, AccountIDKey)
}

// GetSessionID returns the session the caller's token is bound to
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	return getUUID(c, SessionIDKey)
}

func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

func getUUID(c *gin.Context, key string) (uuid.UUID, bool) {
	value, exists := c.Get(key)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
