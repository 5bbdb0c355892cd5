package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/auth/credentials"
	"github.com/dyayaten/cybersahali/internal/logger"
)

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logger.Error("forgot password failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password reset request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
		case errors.Is(err, credentials.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 8 characters"})
		default:
			logger.Error("reset password failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password reset"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
