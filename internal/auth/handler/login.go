package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/logger"
	"github.com/dyayaten/cybersahali/internal/session"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
		case errors.Is(err, auth.ErrNotVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please verify your email before logging in"})
		default:
			logger.Error("login failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		}
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    sess.User,
	})
}
