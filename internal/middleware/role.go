package middleware

import (
	"net/http"

	"flashdeals/internal/domain/account"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware must run after AuthMiddleware
func RoleMiddleware(allowedRoles ...account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := account.Role(GetRole(c))
		if role == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(account.RoleAdmin)
}

func VendorOnly() gin.HandlerFunc {
	return RoleMiddleware(account.RoleVendor)
}
