package wire

import (
	"smart-dine/internal/adaptor"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	r.Route("/accounts", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/verify-email/{token}", authHandler.VerifyEmail)
		r.Post("/reset-password/{token}", authHandler.ResetPassword)
		r.Get("/verify-reset-token/{token}", authHandler.VerifyResetToken)

		// Credential and mail endpoints are throttled per client
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/resend-verification", authHandler.ResendVerification)
			r.Post("/forgot-password", authHandler.ForgotPassword)
		})

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, log))
			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
		})
	})
}
