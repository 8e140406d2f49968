package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memReport struct {
	repository.ReportRepository
	top       []*entity.ItemSales
	lastLimit int
	lastDays  int
}

func (m *memReport) TopItems(_ context.Context, limit int, _ *time.Time) ([]*entity.ItemSales, error) {
	m.lastLimit = limit
	if limit < len(m.top) {
		return m.top[:limit], nil
	}
	return m.top, nil
}

func (m *memReport) DailyRevenue(_ context.Context, days int) ([]*entity.DailyRevenue, error) {
	m.lastDays = days
	return nil, nil
}

func (m *memReport) OrderTypeBreakdown(_ context.Context, _ *time.Time) ([]*entity.OrderTypeStats, error) {
	return nil, nil
}

func TestAdminLogin(t *testing.T) {
	staff := newTestUser(t, "manager", "manager@example.com")
	staff.IsStaff = true
	customer := newTestUser(t, "diner", "diner@example.com")

	repo, mem := newMemRepo(staff, customer)
	svc := NewAdminService(repo, utils.SessionConfig{ExpiryHours: 24}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Login(ctx, &request.AdminLoginRequest{Email: "manager@example.com"}, SessionMeta{})
	requireAppError(t, err, http.StatusBadRequest, utils.CodeValidation)

	_, err = svc.Login(ctx, &request.AdminLoginRequest{Email: "ghost@example.com", Password: testPassword}, SessionMeta{})
	requireAppError(t, err, http.StatusUnauthorized, utils.CodeInvalidCredentials)

	_, err = svc.Login(ctx, &request.AdminLoginRequest{Email: customer.Email, Password: testPassword}, SessionMeta{})
	appErr := requireAppError(t, err, http.StatusForbidden, utils.CodeNotAuthorized)
	assert.Equal(t, "You are not authorized to access admin panel", appErr.Message)

	_, err = svc.Login(ctx, &request.AdminLoginRequest{Email: staff.Email, Password: "Wr0ng!Pass"}, SessionMeta{})
	requireAppError(t, err, http.StatusUnauthorized, utils.CodeInvalidCredentials)

	resp, err := svc.Login(ctx, &request.AdminLoginRequest{Email: "  Manager@Example.com ", Password: testPassword}, SessionMeta{})
	require.NoError(t, err)
	assert.True(t, resp.IsStaff)
	require.Len(t, mem.sessions.sessions, 1)
	assert.Equal(t, resp.Token, mem.sessions.sessions[0].Token.String())
}

func TestAdminCheck(t *testing.T) {
	staff := newTestUser(t, "manager", "manager@example.com")
	staff.IsSuperuser = true
	customer := newTestUser(t, "diner", "diner@example.com")

	repo, _ := newMemRepo(staff, customer)
	svc := NewAdminService(repo, utils.SessionConfig{}, zap.NewNop())

	resp, err := svc.Check(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.True(t, resp.IsSuperuser)

	_, err = svc.Check(context.Background(), customer.ID)
	requireAppError(t, err, http.StatusForbidden, utils.CodeNotAuthorized)
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 30, ClampDays(0))
	assert.Equal(t, 1, ClampDays(-5))
	assert.Equal(t, 7, ClampDays(7))
	assert.Equal(t, 365, ClampDays(1000))
}

func TestSalesReportAndPopularItems(t *testing.T) {
	report := &memReport{}
	for i := 0; i < 3; i++ {
		report.top = append(report.top, &entity.ItemSales{ItemName: "Item", TotalRevenue: decimal.NewFromInt(int64(100 * (3 - i)))})
	}
	repo, _ := newMemRepo()
	repo.Report = report
	svc := NewAdminService(repo, utils.SessionConfig{}, zap.NewNop())
	ctx := context.Background()

	sales, err := svc.SalesReport(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, 365, report.lastDays)
	assert.Equal(t, 10, report.lastLimit)
	assert.Len(t, sales.TopItems, 3)
	assert.NotNil(t, sales.DailyRevenue)

	items, err := svc.PopularItems(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "300.00", items[0].TotalRevenue)

	_, err = svc.PopularItems(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, report.lastLimit)
}
