package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/auth/credentials"
	"github.com/dyayaten/cybersahali/internal/logger"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	err := h.service.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
		case errors.Is(err, credentials.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 8 characters"})
		default:
			logger.Error("signup failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully. Please check your email to verify your account.",
	})
}
