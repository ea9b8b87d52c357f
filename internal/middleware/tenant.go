package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantGuard rejects requests that reached a clinic-scoped route without a
// usable clinic identity. AuthMiddleware normally guarantees this; the guard
// is a backstop for routes wired outside the authenticated group by mistake,
// and for tokens whose tenant claim did not survive validation.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetTenantID(c); err != nil {
			abortAuth(c, http.StatusUnauthorized, "UNAUTHORIZED", "clinic context required")
			return
		}
		c.Next()
	}
}
