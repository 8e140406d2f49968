package repository

import (
	"context"
	"fmt"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Profile, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	SetEmailVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

const profileColumns = `user_id, email_verified, phone, address, created_at, updated_at`

func scanProfile(row scanner) (*entity.Profile, error) {
	var p entity.Profile
	if err := row.Scan(&p.UserID, &p.EmailVerified, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find profile %s: %w", userID, err)
	}

	return profile, nil
}

func (r *profileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Profile, error) {
	profiles := make(map[uuid.UUID]*entity.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		r.log.Error("Failed to find profiles", zap.Error(err), zap.Int("count", len(userIDs)))
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles[profile.UserID] = profile
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, nil
}

// GetOrCreate returns the user's profile, inserting an unverified one if absent.
// Concurrent callers converge on the same row.
func (r *profileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `
		INSERT INTO profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.log.Error("Failed to get or create profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get or create profile %s: %w", userID, err)
	}

	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET email_verified = $2, phone = $3, address = $4, updated_at = $5
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.EmailVerified,
		profile.Phone,
		profile.Address,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return fmt.Errorf("update profile %s: %w", profile.UserID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", profile.UserID)
	}

	return nil
}

func (r *profileRepository) SetEmailVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	query := `
		INSERT INTO profiles (user_id, email_verified) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET email_verified = $2, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, verified); err != nil {
		r.log.Error("Failed to set email verified", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("set email verified %s: %w", userID, err)
	}

	return nil
}
