package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token. Logout deletes the row.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     uuid.UUID `db:"token"`
	UserAgent *string   `db:"user_agent"`
	IPAddress *string   `db:"ip_address"`
	ExpiresAt time.Time `db:"expires_at"`
}

// SessionUser is what the auth middleware needs about a session's owner.
type SessionUser struct {
	Session
	IsStaff bool
}
