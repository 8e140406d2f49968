package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedIn(mem *memRepo, userID uuid.UUID) {
	mem.sessions.sessions = append(mem.sessions.sessions, &entity.Session{
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func TestSuperuserIsProtected(t *testing.T) {
	root := newTestUser(t, "root", "root@example.com")
	root.IsSuperuser = true
	repo, mem := newMemRepo(root)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	err := svc.DeleteUser(ctx, root.ID)
	appErr := requireAppError(t, err, http.StatusForbidden, utils.CodeForbidden)
	assert.Equal(t, "Cannot delete superuser", appErr.Message)

	_, err = svc.ToggleStatus(ctx, root.ID)
	appErr = requireAppError(t, err, http.StatusForbidden, utils.CodeForbidden)
	assert.Equal(t, "Cannot modify superuser", appErr.Message)

	assert.Contains(t, mem.users.byID, root.ID)
	assert.True(t, mem.users.byID[root.ID].IsActive)
}

func TestToggleStatus_DeactivationEndsSessions(t *testing.T) {
	user := newTestUser(t, "ali", "ali@example.com")
	other := newTestUser(t, "sara", "sara@example.com")
	repo, mem := newMemRepo(user, other)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()
	signedIn(mem, user.ID)
	signedIn(mem, other.ID)

	resp, err := svc.ToggleStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, mem.users.byID[user.ID].IsActive)
	require.Len(t, mem.sessions.sessions, 1)
	assert.Equal(t, other.ID, mem.sessions.sessions[0].UserID)

	// reactivation leaves sessions alone
	signedIn(mem, user.ID)
	resp, err = svc.ToggleStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Len(t, mem.sessions.sessions, 2)
}

func TestDeleteUser(t *testing.T) {
	user := newTestUser(t, "ali", "ali@example.com")
	repo, mem := newMemRepo(user)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.NotContains(t, mem.users.byID, user.ID)

	err := svc.DeleteUser(ctx, user.ID)
	requireAppError(t, err, http.StatusNotFound, utils.CodeNotFound)
}
