package auth

import (
	"net/http"

	"hotelbookings/internal/config"
	jwtsvc "hotelbookings/internal/pkg/jwt"
	"hotelbookings/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exchanges the admin credentials for a bearer token usable on
// the gated analytics endpoints instead of Basic auth.
type Handler struct {
	admin config.AdminCredentials
	jwt   *jwtsvc.Service
}

func NewHandler(admin config.AdminCredentials, jwt *jwtsvc.Service) *Handler {
	return &Handler{admin: admin, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/token", h.Token)
}

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if !h.admin.Verify(req.Username, req.Password) {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}

	token, err := h.jwt.GenerateToken(req.Username, jwtsvc.RoleAdmin)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
