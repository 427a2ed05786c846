package middleware

import (
	"net/http"
	"strings"

	"hotelbookings/internal/config"
	jwtsvc "hotelbookings/internal/pkg/jwt"
	"hotelbookings/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAdmin protects the credential-gated analytics endpoints. It
// accepts Basic auth against the configured admin pair, or a Bearer
// token issued by the auth module. Anything else is a 401.
func RequireAdmin(admin config.AdminCredentials, jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, pass, ok := c.Request.BasicAuth(); ok {
			if admin.Verify(user, pass) {
				c.Next()
				return
			}
			unauthorized(c, "Invalid credentials")
			return
		}

		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			claims, err := jwt.ValidateToken(tokenStr)
			if err != nil || claims.Role != jwtsvc.RoleAdmin {
				unauthorized(c, "Invalid token")
				return
			}
			c.Set("username", claims.Username)
			c.Next()
			return
		}

		unauthorized(c, "Missing credentials")
	}
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Basic realm="bookings"`)
	response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
