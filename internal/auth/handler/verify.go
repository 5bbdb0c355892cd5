package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/logger"
)

func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")

	err := h.service.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification token"})
			return
		}
		logger.Error("email verification failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during email verification"})
		return
	}

	c.Redirect(http.StatusFound, "/login?verified=true")
}
