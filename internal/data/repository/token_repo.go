package repository

import (
	"context"
	"fmt"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *entity.EmailVerificationToken) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error)
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.EmailVerificationToken, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.PasswordResetToken, error)
	// MarkUsed flips is_used once. It reports false if the token was already used.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteUnusedByUserID(ctx context.Context, userID uuid.UUID) error
}

type verificationTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationTokenRepository(db database.PgxIface, log *zap.Logger) VerificationTokenRepository {
	return &verificationTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification_token")),
	}
}

const verificationTokenColumns = `id, user_id, token, is_verified, created_at`

func scanVerificationToken(row scanner) (*entity.EmailVerificationToken, error) {
	var t entity.EmailVerificationToken
	if err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.IsVerified, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *entity.EmailVerificationToken) error {
	query := `
		INSERT INTO email_verification_tokens (id, user_id, token, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, token.ID, token.UserID, token.Token, token.IsVerified, token.CreatedAt)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("create verification token for %s: %w", token.UserID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create verification token", zap.Error(err), zap.String("user_id", token.UserID.String()))
		return fmt.Errorf("create verification token for %s: %w", token.UserID, err)
	}

	return nil
}

func (r *verificationTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error) {
	query := `SELECT ` + verificationTokenColumns + ` FROM email_verification_tokens WHERE user_id = $1`

	token, err := scanVerificationToken(r.db.QueryRow(ctx, query, userID))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification token by user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find verification token for %s: %w", userID, err)
	}

	return token, nil
}

func (r *verificationTokenRepository) FindByToken(ctx context.Context, value uuid.UUID) (*entity.EmailVerificationToken, error) {
	query := `SELECT ` + verificationTokenColumns + ` FROM email_verification_tokens WHERE token = $1`

	token, err := scanVerificationToken(r.db.QueryRow(ctx, query, value))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification token", zap.Error(err))
		return nil, fmt.Errorf("find verification token: %w", err)
	}

	return token, nil
}

func (r *verificationTokenRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE email_verification_tokens SET is_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to mark token verified", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("mark verification token %s: %w", id, err)
	}
	return nil
}

func (r *verificationTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM email_verification_tokens WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete verification token", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("delete verification token for %s: %w", userID, err)
	}
	return nil
}

type resetTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResetTokenRepository(db database.PgxIface, log *zap.Logger) ResetTokenRepository {
	return &resetTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "reset_token")),
	}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, token.ID, token.UserID, token.Token, token.IsUsed, token.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create reset token", zap.Error(err), zap.String("user_id", token.UserID.String()))
		return fmt.Errorf("create reset token for %s: %w", token.UserID, err)
	}

	return nil
}

func (r *resetTokenRepository) FindByToken(ctx context.Context, value uuid.UUID) (*entity.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, is_used, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`

	var t entity.PasswordResetToken
	err := r.db.QueryRow(ctx, query, value).Scan(&t.ID, &t.UserID, &t.Token, &t.IsUsed, &t.CreatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reset token", zap.Error(err))
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	return &t, nil
}

func (r *resetTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET is_used = TRUE WHERE id = $1 AND is_used = FALSE`, id)
	if err != nil {
		r.log.Error("Failed to mark reset token used", zap.Error(err), zap.String("id", id.String()))
		return false, fmt.Errorf("mark reset token %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// DeleteUnusedByUserID drops outstanding links before a new one is issued.
func (r *resetTokenRepository) DeleteUnusedByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM password_reset_tokens WHERE user_id = $1 AND is_used = FALSE`, userID)
	if err != nil {
		r.log.Error("Failed to delete unused reset tokens", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("delete reset tokens for %s: %w", userID, err)
	}
	return nil
}
