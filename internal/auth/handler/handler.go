package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/logger"
	"github.com/dyayaten/cybersahali/internal/middleware"
	"github.com/dyayaten/cybersahali/internal/session"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public credential routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/signup", h.Signup)
	r.GET("/verify-email", h.VerifyEmail)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)

	for _, route := range r.Routes() {
		logger.Info("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}

// Me returns the projection attached by the auth middleware.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.service.Logout(c.Request.Context(), cookie.Value); err != nil {
			logger.Error("logout failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging out"})
			return
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
