package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenState is the outcome of checking a presented token.
type TokenState string

const (
	TokenValid    TokenState = "valid"
	TokenExpired  TokenState = "expired"
	TokenUsed     TokenState = "used"
	TokenNotFound TokenState = "not_found"
)

// TokenService mints and checks email verification and password reset tokens.
// Expiry is evaluated lazily against the creation time; nothing sweeps old rows.
type TokenService interface {
	// IssueVerification returns the user's live token when it has not expired,
	// otherwise replaces it with a fresh one.
	IssueVerification(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error)
	// ReissueVerification always drops the current token and creates a new one.
	ReissueVerification(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error)
	// IssueReset drops the user's unused reset tokens and creates a new one.
	IssueReset(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error)
	CheckVerification(ctx context.Context, raw string) (*entity.EmailVerificationToken, TokenState, error)
	CheckReset(ctx context.Context, raw string) (*entity.PasswordResetToken, TokenState, error)
}

type tokenService struct {
	verification repository.VerificationTokenRepository
	reset        repository.ResetTokenRepository
	config       utils.TokenConfig
	log          *zap.Logger
	now          clock
}

func NewTokenService(repo *repository.Repository, config utils.TokenConfig, log *zap.Logger) TokenService {
	if config.VerificationTTL <= 0 {
		config.VerificationTTL = entity.VerificationTokenTTL
	}
	if config.ResetTTL <= 0 {
		config.ResetTTL = entity.ResetTokenTTL
	}

	return &tokenService{
		verification: repo.VerificationToken,
		reset:        repo.ResetToken,
		config:       config,
		log:          log.With(zap.String("service", "token")),
		now:          time.Now,
	}
}

func (s *tokenService) IssueVerification(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error) {
	existing, err := s.verification.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !existing.IsExpired(s.now(), s.config.VerificationTTL) {
			return existing, nil
		}
		if err := s.verification.DeleteByUserID(ctx, userID); err != nil {
			return nil, err
		}
		s.log.Debug("Expired verification token replaced", zap.String("user_id", userID.String()))
	}

	return s.createVerification(ctx, userID)
}

func (s *tokenService) ReissueVerification(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error) {
	if err := s.verification.DeleteByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.createVerification(ctx, userID)
}

func (s *tokenService) createVerification(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error) {
	token := &entity.EmailVerificationToken{
		BaseSimple: entity.NewBaseSimple(s.now()),
		UserID:     userID,
		Token:      uuid.New(),
	}

	err := s.verification.Create(ctx, token)
	if errors.Is(err, repository.ErrDuplicate) {
		// a concurrent request won; hand out its token
		return s.verification.FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}

	return token, nil
}

func (s *tokenService) IssueReset(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error) {
	if err := s.reset.DeleteUnusedByUserID(ctx, userID); err != nil {
		return nil, err
	}

	token := &entity.PasswordResetToken{
		BaseSimple: entity.NewBaseSimple(s.now()),
		UserID:     userID,
		Token:      uuid.New(),
	}
	if err := s.reset.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("issue reset token: %w", err)
	}

	return token, nil
}

func (s *tokenService) CheckVerification(ctx context.Context, raw string) (*entity.EmailVerificationToken, TokenState, error) {
	value, err := uuid.Parse(raw)
	if err != nil {
		return nil, TokenNotFound, nil
	}

	token, err := s.verification.FindByToken(ctx, value)
	if err != nil {
		return nil, "", err
	}

	switch {
	case token == nil:
		return nil, TokenNotFound, nil
	case token.IsExpired(s.now(), s.config.VerificationTTL):
		return token, TokenExpired, nil
	case token.IsVerified:
		return token, TokenUsed, nil
	}
	return token, TokenValid, nil
}

func (s *tokenService) CheckReset(ctx context.Context, raw string) (*entity.PasswordResetToken, TokenState, error) {
	value, err := uuid.Parse(raw)
	if err != nil {
		return nil, TokenNotFound, nil
	}

	token, err := s.reset.FindByToken(ctx, value)
	if err != nil {
		return nil, "", err
	}

	switch {
	case token == nil:
		return nil, TokenNotFound, nil
	case token.IsExpired(s.now(), s.config.ResetTTL):
		return token, TokenExpired, nil
	case token.IsUsed:
		return token, TokenUsed, nil
	}
	return token, TokenValid, nil
}
