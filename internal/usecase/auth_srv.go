package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const forgotPasswordGeneric = "If an account with this email exists, you will receive a password reset link."

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) (*response.VerifyEmailResponse, error)
	ResendVerification(ctx context.Context, req *request.EmailRequest) error
	// ForgotPassword returns the message to show; unknown addresses get a generic one.
	ForgotPassword(ctx context.Context, req *request.EmailRequest) (string, error)
	ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error
	VerifyResetToken(ctx context.Context, token string) error
}

type authService struct {
	repo     *repository.Repository
	tokens   TokenService
	notifier Notifier
	config   utils.SessionConfig
	log      *zap.Logger
	now      clock
}

func NewAuthService(
	repo *repository.Repository,
	tokens TokenService,
	notifier Notifier,
	config utils.SessionConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// 1. Field rules, first failure wins
	if username == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingUsername, "Username is required.")
	}
	if errs := utils.ValidateUsername(username); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeInvalidUsername, errs[0]).WithDetails(errs)
	}
	if email == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingEmail, "Email is required.")
	}
	if msg := utils.ValidateEmail(email); msg != "" {
		return nil, utils.ErrBadRequest(utils.CodeInvalidEmail, msg)
	}
	if req.Password == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingPassword, "Password is required.")
	}
	if errs := utils.ValidatePassword(req.Password); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeWeakPassword, errs[0]).WithDetails(errs)
	}

	// 2. Uniqueness, case-insensitive
	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrBadRequest(utils.CodeUsernameExists, "A user with this username already exists.")
	}

	existing, err = s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrBadRequest(utils.CodeEmailExists, "A user with this email already exists.")
	}

	// 3. Persist
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrBadRequest(utils.CodeDuplicate, "A user with this username or email already exists.")
		}
		return nil, err
	}

	if _, err := s.repo.Profile.GetOrCreate(ctx, user.ID); err != nil {
		s.log.Warn("Failed to create profile at registration", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	// 4. Verification mail; failure is reported, not rolled back
	emailSent := false
	token, err := s.tokens.IssueVerification(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to issue verification token", zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		emailSent = s.notifier.SendVerification(ctx, user, token.Token)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.Bool("email_sent", emailSent))

	return &response.RegisterResponse{
		EmailSent: emailSent,
		Username:  user.Username,
		Email:     user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	if email == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingEmail, "Email is required.")
	}
	if req.Password == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingPassword, "Password is required.")
	}
	if msg := utils.ValidateEmail(email); msg != "" {
		return nil, utils.ErrBadRequest(utils.CodeInvalidEmail, msg)
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.CodeNotRegistered,
			"No account found with this email. Please register first.")
	}

	// A missing profile is created unverified, so it gates the same way.
	profile, err := s.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !profile.EmailVerified {
		s.log.Warn("Login blocked, email not verified", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrForbidden(utils.CodeEmailNotVerified,
			"Please verify your email before logging in. Check your inbox for the verification link.").
			WithData(response.EmailData{Email: user.Email})
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrUnauthorized(utils.CodeInvalidCredentials, "Invalid credentials. Please check your password.")
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrForbidden(utils.CodeAccountDisabled, "Your account has been disabled.")
	}

	session, err := s.issueSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.LoginToResponse(user, session)
	return &resp, nil
}

// issueSession reuses the user's live session or opens a new one.
func (s *authService) issueSession(ctx context.Context, userID uuid.UUID, meta SessionMeta) (*entity.Session, error) {
	return issueSession(ctx, s.repo.Session, userID, meta, s.config.TTL(), s.now())
}

func issueSession(
	ctx context.Context,
	sessions repository.SessionRepository,
	userID uuid.UUID,
	meta SessionMeta,
	ttl time.Duration,
	now time.Time,
) (*entity.Session, error) {
	active, err := sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     userID,
		Token:      uuid.New(),
		ExpiresAt:  now.Add(ttl),
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}

	if err := sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	value, err := uuid.Parse(token)
	if err != nil {
		return utils.ErrUnauthorized(utils.CodeUnauthenticated, "Invalid token.")
	}

	if err := s.repo.Session.Delete(ctx, value); err != nil {
		return err
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, raw string) (*response.VerifyEmailResponse, error) {
	token, state, err := s.tokens.CheckVerification(ctx, raw)
	if err != nil {
		return nil, err
	}

	switch state {
	case TokenNotFound:
		return nil, utils.ErrBadRequest(utils.CodeInvalidToken, "Invalid verification link.")
	case TokenExpired:
		return nil, utils.ErrBadRequest(utils.CodeTokenExpired, "Verification link has expired. Please request a new one.")
	case TokenUsed:
		return &response.VerifyEmailResponse{AlreadyVerified: true}, nil
	}

	if err := s.repo.VerificationToken.MarkVerified(ctx, token.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Profile.SetEmailVerified(ctx, token.UserID, true); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}

	resp := &response.VerifyEmailResponse{}
	if user != nil {
		resp.Username = user.Username
	}

	s.log.Info("Email verified", zap.String("user_id", token.UserID.String()))
	return resp, nil
}

func (s *authService) ResendVerification(ctx context.Context, req *request.EmailRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return utils.ErrBadRequest(utils.CodeMissingEmail, "Please provide your email address.")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NewAppError(http.StatusNotFound, utils.CodeUserNotFound, "No account found with this email address.")
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if profile != nil && profile.EmailVerified {
		return utils.ErrBadRequest(utils.CodeAlreadyVerified, "Your email is already verified. You can login.")
	}

	token, err := s.tokens.ReissueVerification(ctx, user.ID)
	if err != nil {
		return err
	}

	if !s.notifier.SendVerification(ctx, user, token.Token) {
		return utils.NewAppError(http.StatusInternalServerError, utils.CodeEmailFailed,
			"Failed to send verification email. Please try again later.")
	}

	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.EmailRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", utils.ErrBadRequest(utils.CodeMissingEmail, "Please provide your email address.")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		s.log.Debug("Password reset requested for unknown email")
		return forgotPasswordGeneric, nil
	}

	token, err := s.tokens.IssueReset(ctx, user.ID)
	if err != nil {
		return "", err
	}

	if !s.notifier.SendPasswordReset(ctx, user, token.Token) {
		return "", utils.NewAppError(http.StatusInternalServerError, utils.CodeEmailFailed,
			"Failed to send reset email. Please try again later.")
	}

	return "Password reset link sent! Please check your email.", nil
}

func (s *authService) ResetPassword(ctx context.Context, raw string, req *request.ResetPasswordRequest) error {
	// 1. New password rules
	if req.Password == "" {
		return utils.ErrBadRequest(utils.CodeMissingPassword, "Please provide a new password.")
	}
	if errs := utils.ValidatePassword(req.Password); len(errs) > 0 {
		return utils.ErrBadRequest(utils.CodeWeakPassword, errs[0]).WithDetails(errs)
	}
	if req.Password != req.ConfirmPassword {
		return utils.ErrBadRequest(utils.CodePasswordMismatch, "Passwords do not match.")
	}

	// 2. Token state
	token, state, err := s.tokens.CheckReset(ctx, raw)
	if err != nil {
		return err
	}
	if appErr := resetTokenError(state, "Password reset link has expired. Please request a new one.",
		"This password reset link has already been used."); appErr != nil {
		return appErr
	}

	// 3. Consume first so two concurrent resets cannot both succeed
	consumed, err := s.repo.ResetToken.MarkUsed(ctx, token.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return utils.ErrBadRequest(utils.CodeTokenUsed, "This password reset link has already been used.")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.User.UpdatePassword(ctx, token.UserID, hashedPassword); err != nil {
		return err
	}

	// 4. Force re-login everywhere
	if err := s.repo.Session.DeleteAllByUser(ctx, token.UserID); err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", token.UserID.String()))
	return nil
}

func (s *authService) VerifyResetToken(ctx context.Context, raw string) error {
	_, state, err := s.tokens.CheckReset(ctx, raw)
	if err != nil {
		return err
	}

	if appErr := resetTokenError(state, "Password reset link has expired.", "This link has already been used."); appErr != nil {
		return appErr.WithData(response.TokenCheckResponse{Valid: false})
	}
	return nil
}

func resetTokenError(state TokenState, expiredMsg, usedMsg string) *utils.AppError {
	switch state {
	case TokenNotFound:
		return utils.ErrBadRequest(utils.CodeInvalidToken, "Invalid password reset link.")
	case TokenExpired:
		return utils.ErrBadRequest(utils.CodeTokenExpired, expiredMsg)
	case TokenUsed:
		return utils.ErrBadRequest(utils.CodeTokenUsed, usedMsg)
	}
	return nil
}
