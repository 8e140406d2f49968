package adaptor

import (
	"net/http"

	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/accounts/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful! Please check your email to verify your account.", resp)
}

// Login handles POST /api/accounts/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, sessionMeta(r))
	if err != nil {
		writeServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful!", resp)
}

// Logout handles POST /api/accounts/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Successfully logged out.", nil)
}

// VerifyEmail handles GET /api/accounts/verify-email/{token}
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, h.log, err, "verify email")
		return
	}

	if resp.AlreadyVerified {
		utils.ResponseSuccess(w, "Email already verified. You can now login.", resp)
		return
	}
	utils.ResponseSuccess(w, "Email verified successfully! You can now login.", resp)
}

// ResendVerification handles POST /api/accounts/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req request.EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResendVerification(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "resend verification")
		return
	}

	utils.ResponseSuccess(w, "Verification email sent! Please check your inbox.", nil)
}

// ForgotPassword handles POST /api/accounts/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.ForgotPassword(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, message, nil)
}

// ResetPassword handles POST /api/accounts/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), &req); err != nil {
		writeServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successfully! You can now login with your new password.", nil)
}

// VerifyResetToken handles GET /api/accounts/verify-reset-token/{token}
func (h *AuthHandler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	if err := h.service.VerifyResetToken(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, h.log, err, "verify reset token")
		return
	}

	utils.ResponseSuccess(w, "Token is valid.", response.TokenCheckResponse{Valid: true})
}
