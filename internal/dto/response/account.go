package response

import (
	"time"

	"smart-dine/internal/data/entity"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	EmailSent bool   `json:"email_sent"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
}

type VerifyEmailResponse struct {
	AlreadyVerified bool   `json:"already_verified"`
	Username        string `json:"username,omitempty"`
}

type TokenCheckResponse struct {
	Valid bool `json:"valid"`
}

type EmailData struct {
	Email string `json:"email"`
}

// UserResponse is the account view shared by the profile endpoint and the back office.
type UserResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	IsActive      bool       `json:"is_active"`
	IsStaff       bool       `json:"is_staff"`
	IsSuperuser   bool       `json:"is_superuser"`
	EmailVerified bool       `json:"email_verified"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	DateJoined    time.Time  `json:"date_joined"`
	LastLogin     *time.Time `json:"last_login"`
}

type AdminCheckResponse struct {
	IsAdmin     bool   `json:"is_admin"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

type ToggleStatusResponse struct {
	IsActive bool `json:"is_active"`
}

func LoginToResponse(user *entity.User, session *entity.Session) LoginResponse {
	return LoginResponse{
		Token:       session.Token.String(),
		ExpiresAt:   session.ExpiresAt,
		UserID:      user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// UserToResponse tolerates a nil profile; phone and address are then empty.
func UserToResponse(user *entity.User, profile *entity.Profile) UserResponse {
	resp := UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		DateJoined:  user.CreatedAt,
		LastLogin:   user.LastLogin,
	}

	if profile != nil {
		resp.EmailVerified = profile.EmailVerified
		resp.Phone = deref(profile.Phone)
		resp.Address = deref(profile.Address)
	}

	return resp
}

func UsersToResponse(users []*entity.User, profiles map[uuid.UUID]*entity.Profile) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u, profiles[u.ID]))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
