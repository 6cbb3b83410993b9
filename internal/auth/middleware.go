package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireServiceToken verifies a "Bearer <token>" Authorization header
// against svc and, on success, stashes the token subject in the gin
// context under "subject" for downstream handlers (audit logging).
func RequireServiceToken(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "missing bearer token",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := svc.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
