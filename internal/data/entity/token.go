package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = time.Hour
)

// EmailVerificationToken proves possession of a mailbox. One per user.
type EmailVerificationToken struct {
	BaseSimple
	UserID     uuid.UUID `db:"user_id"`
	Token      uuid.UUID `db:"token"`
	IsVerified bool      `db:"is_verified"`
}

// IsExpired is a pure function of the creation time.
func (t *EmailVerificationToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(t.CreatedAt.Add(ttl))
}

// PasswordResetToken is single-use; IsUsed never flips back.
type PasswordResetToken struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Token  uuid.UUID `db:"token"`
	IsUsed bool      `db:"is_used"`
}

func (t *PasswordResetToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(t.CreatedAt.Add(ttl))
}
