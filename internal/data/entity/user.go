package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	IsActive     bool       `db:"is_active"`
	IsStaff      bool       `db:"is_staff"`
	IsSuperuser  bool       `db:"is_superuser"`
	LastLogin    *time.Time `db:"last_login"`
}

// IsAdmin is true for accounts allowed into the back office.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// Profile holds per-user contact details and the email verification flag.
// It is created lazily, see ProfileRepository.GetOrCreate.
type Profile struct {
	UserID        uuid.UUID `db:"user_id"`
	EmailVerified bool      `db:"email_verified"`
	Phone         *string   `db:"phone"`
	Address       *string   `db:"address"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	IsActive *bool
	IsStaff  *bool
	Search   string
}
