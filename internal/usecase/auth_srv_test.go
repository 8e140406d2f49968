package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "Str0ng!Pass"

func newTestUser(t *testing.T, username, email string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.NewBase(time.Now()),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func newTestAuth(users ...*entity.User) (AuthService, *memRepo, *recordingNotifier) {
	repo, mem := newMemRepo(users...)
	notifier := &recordingNotifier{ok: true}
	tokens := NewTokenService(repo, utils.TokenConfig{}, zap.NewNop())
	return NewAuthService(repo, tokens, notifier, utils.SessionConfig{ExpiryHours: 24}, zap.NewNop()), mem, notifier
}

func TestRegister_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		req     request.RegisterRequest
		code    string
		message string
	}{
		{"missing username", request.RegisterRequest{Email: "a@b.co", Password: testPassword}, utils.CodeMissingUsername, "Username is required."},
		{"short username", request.RegisterRequest{Username: "ab", Email: "a@b.co", Password: testPassword}, utils.CodeInvalidUsername, "Username must be at least 3 characters long."},
		{"missing email", request.RegisterRequest{Username: "chef", Password: testPassword}, utils.CodeMissingEmail, "Email is required."},
		{"missing password", request.RegisterRequest{Username: "chef", Email: "chef@example.com"}, utils.CodeMissingPassword, "Password is required."},
		{"weak password", request.RegisterRequest{Username: "chef", Email: "chef@example.com", Password: "short"}, utils.CodeWeakPassword, "Password must be at least 8 characters long."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuth()
			_, err := svc.Register(context.Background(), &tt.req)
			appErr := requireAppError(t, err, http.StatusBadRequest, tt.code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestRegister_CreatesUserAndMailsToken(t *testing.T) {
	svc, mem, notifier := newTestAuth()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "chef",
		Email:    "chef@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.True(t, resp.EmailSent)
	assert.Equal(t, "chef", resp.Username)

	require.Len(t, notifier.verification, 1)
	user, _ := mem.users.FindByEmail(context.Background(), "chef@example.com")
	require.NotNil(t, user)
	assert.Equal(t, notifier.verification[0], mem.verification.byUser[user.ID].Token)
	assert.False(t, mem.profiles.byUser[user.ID].EmailVerified)
}

func TestRegister_UsernameTakenIgnoresCase(t *testing.T) {
	svc, _, _ := newTestAuth(newTestUser(t, "Chef", "first@example.com"))

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "chef",
		Email:    "second@example.com",
		Password: testPassword,
	})
	requireAppError(t, err, http.StatusBadRequest, utils.CodeUsernameExists)
}

func TestLogin_UnverifiedEmailIsBlocked(t *testing.T) {
	user := newTestUser(t, "chef", "chef@example.com")
	svc, mem, _ := newTestAuth(user)

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: testPassword}, SessionMeta{})
	appErr := requireAppError(t, err, http.StatusForbidden, utils.CodeEmailNotVerified)
	assert.Equal(t, response.EmailData{Email: user.Email}, appErr.Data)
	assert.Empty(t, mem.sessions.sessions)
}

func TestLogin_ReusesActiveSession(t *testing.T) {
	user := newTestUser(t, "chef", "chef@example.com")
	svc, mem, _ := newTestAuth(user)
	mem.profiles.byUser[user.ID] = &entity.Profile{UserID: user.ID, EmailVerified: true}

	ctx := context.Background()
	req := &request.LoginRequest{Email: "CHEF@example.com", Password: testPassword}

	first, err := svc.Login(ctx, req, SessionMeta{UserAgent: "test"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, req, SessionMeta{})
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Len(t, mem.sessions.sessions, 1)
	assert.Equal(t, 2, mem.users.login[user.ID])
}

func TestLogin_Failures(t *testing.T) {
	user := newTestUser(t, "chef", "chef@example.com")
	svc, mem, _ := newTestAuth(user)
	mem.profiles.byUser[user.ID] = &entity.Profile{UserID: user.ID, EmailVerified: true}
	ctx := context.Background()

	_, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: testPassword}, SessionMeta{})
	requireAppError(t, err, http.StatusNotFound, utils.CodeNotRegistered)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: user.Email, Password: "Wr0ng!Pass"}, SessionMeta{})
	requireAppError(t, err, http.StatusUnauthorized, utils.CodeInvalidCredentials)

	user.IsActive = false
	_, err = svc.Login(ctx, &request.LoginRequest{Email: user.Email, Password: testPassword}, SessionMeta{})
	requireAppError(t, err, http.StatusForbidden, utils.CodeAccountDisabled)
}

func TestVerifyEmail_MarksProfileAndIsIdempotent(t *testing.T) {
	svc, mem, notifier := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{Username: "chef", Email: "chef@example.com", Password: testPassword})
	require.NoError(t, err)
	raw := notifier.verification[0].String()

	resp, err := svc.VerifyEmail(ctx, raw)
	require.NoError(t, err)
	assert.False(t, resp.AlreadyVerified)
	assert.Equal(t, "chef", resp.Username)

	user, _ := mem.users.FindByEmail(ctx, "chef@example.com")
	assert.True(t, mem.profiles.byUser[user.ID].EmailVerified)

	resp, err = svc.VerifyEmail(ctx, raw)
	require.NoError(t, err)
	assert.True(t, resp.AlreadyVerified)

	_, err = svc.VerifyEmail(ctx, "garbage")
	requireAppError(t, err, http.StatusBadRequest, utils.CodeInvalidToken)
}

func TestForgotPassword_UnknownEmailGetsGenericMessage(t *testing.T) {
	svc, _, notifier := newTestAuth()

	msg, err := svc.ForgotPassword(context.Background(), &request.EmailRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Equal(t, forgotPasswordGeneric, msg)
	assert.Empty(t, notifier.reset)
}

func TestResetPassword_SingleUse(t *testing.T) {
	user := newTestUser(t, "chef", "chef@example.com")
	svc, mem, notifier := newTestAuth(user)
	ctx := context.Background()
	mem.sessions.sessions = append(mem.sessions.sessions, &entity.Session{
		BaseSimple: entity.NewBaseSimple(time.Now()),
		UserID:     user.ID,
		ExpiresAt:  time.Now().Add(time.Hour),
	})

	_, err := svc.ForgotPassword(ctx, &request.EmailRequest{Email: user.Email})
	require.NoError(t, err)
	require.Len(t, notifier.reset, 1)
	raw := notifier.reset[0].String()

	require.NoError(t, svc.VerifyResetToken(ctx, raw))

	newPassword := "N3w!Password"
	err = svc.ResetPassword(ctx, raw, &request.ResetPasswordRequest{Password: newPassword, ConfirmPassword: newPassword})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash(newPassword, user.PasswordHash))
	assert.Empty(t, mem.sessions.sessions)

	err = svc.ResetPassword(ctx, raw, &request.ResetPasswordRequest{Password: newPassword, ConfirmPassword: newPassword})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.CodeTokenUsed)
	assert.Equal(t, "This password reset link has already been used.", appErr.Message)
}

func TestResetPassword_Mismatch(t *testing.T) {
	svc, _, _ := newTestAuth()

	err := svc.ResetPassword(context.Background(), "whatever", &request.ResetPasswordRequest{
		Password:        "N3w!Password",
		ConfirmPassword: "N3w!Passw0rd",
	})
	requireAppError(t, err, http.StatusBadRequest, utils.CodePasswordMismatch)
}
