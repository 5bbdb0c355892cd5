package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/auth/handler"
	"github.com/dyayaten/cybersahali/internal/auth/store"
	"github.com/dyayaten/cybersahali/internal/config"
	"github.com/dyayaten/cybersahali/internal/email"
	"github.com/dyayaten/cybersahali/internal/middleware"
	"github.com/dyayaten/cybersahali/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	credentialRepo := store.NewPostgresRepository(infra.DB)

	mailer := email.NewSMTPSender(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.EmailFrom,
	)

	authService := auth.NewService(
		credentialRepo,
		sessionStore,
		mailer,
		cfg.BaseURL,
		cfg.ResetTokenTTL,
		cfg.SessionTTL,
	)

	authHandler := handler.NewHandler(authService)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Routes
	// ----------------------------

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(authMiddleware))

	protected.GET("/me", authHandler.Me)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
