package usecase

import (
	"context"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recentLimit        = 5
	defaultReportDays  = 30
	maxReportDays      = 365
	salesReportTopSize = 10
)

// AdminService is the back-office login plus the dashboard and report aggregations.
// Catalog, order, reservation and user management live in their own services.
type AdminService interface {
	Login(ctx context.Context, req *request.AdminLoginRequest, meta SessionMeta) (*response.LoginResponse, error)
	Check(ctx context.Context, userID uuid.UUID) (*response.AdminCheckResponse, error)
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	SalesReport(ctx context.Context, days int) (*response.SalesReportResponse, error)
	PopularItems(ctx context.Context, limit int) ([]response.ItemSalesResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	config utils.SessionConfig
	log    *zap.Logger
	now    clock
}

func NewAdminService(repo *repository.Repository, config utils.SessionConfig, log *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "admin")),
		now:    time.Now,
	}
}

func (s *adminService) Login(ctx context.Context, req *request.AdminLoginRequest, meta SessionMeta) (*response.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, utils.ErrBadRequest(utils.CodeValidation, "Email and password are required")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUnauthorized(utils.CodeInvalidCredentials, "Invalid credentials. No user found with this email.")
	}
	if !user.IsAdmin() {
		s.log.Warn("Admin login by non-staff account", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrForbidden(utils.CodeNotAuthorized, "You are not authorized to access admin panel")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Admin login with wrong password", zap.String("user_id", user.ID.String()))
		return nil, utils.ErrUnauthorized(utils.CodeInvalidCredentials, "Invalid credentials. Please check your password.")
	}
	if !user.IsActive {
		return nil, utils.ErrForbidden(utils.CodeAccountDisabled, "Your account has been disabled.")
	}

	session, err := issueSession(ctx, s.repo.Session, user.ID, meta, s.config.TTL(), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Admin logged in", zap.String("user_id", user.ID.String()))

	resp := response.LoginToResponse(user, session)
	return &resp, nil
}

func (s *adminService) Check(ctx context.Context, userID uuid.UUID) (*response.AdminCheckResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsAdmin() {
		return nil, utils.ErrForbidden(utils.CodeNotAuthorized, "Not authorized")
	}

	return &response.AdminCheckResponse{
		IsAdmin:     true,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Username:    user.Username,
		Email:       user.Email,
	}, nil
}

func (s *adminService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	orders, err := s.repo.Report.OrderStats(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.repo.Report.ReservationStats(ctx)
	if err != nil {
		return nil, err
	}
	menu, err := s.repo.Report.MenuStats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Report.UserStats(ctx)
	if err != nil {
		return nil, err
	}

	recentOrders, err := s.repo.Order.FindAll(ctx, entity.OrderFilter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	recentReservations, err := s.repo.Reservation.FindAll(ctx, entity.ReservationFilter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}

	resp := response.Dashboard(orders, reservations, menu, users, recentOrders, recentReservations)
	return &resp, nil
}

// ClampDays bounds a report window to [1, 365]; zero means the 30 day default.
func ClampDays(days int) int {
	switch {
	case days == 0:
		return defaultReportDays
	case days < 1:
		return 1
	case days > maxReportDays:
		return maxReportDays
	}
	return days
}

func (s *adminService) SalesReport(ctx context.Context, days int) (*response.SalesReportResponse, error) {
	days = ClampDays(days)

	daily, err := s.repo.Report.DailyRevenue(ctx, days)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.Report.TopItems(ctx, salesReportTopSize, nil)
	if err != nil {
		return nil, err
	}
	types, err := s.repo.Report.OrderTypeBreakdown(ctx, nil)
	if err != nil {
		return nil, err
	}

	resp := response.SalesReport(daily, top, types)
	return &resp, nil
}

func (s *adminService) PopularItems(ctx context.Context, limit int) ([]response.ItemSalesResponse, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	items, err := s.repo.Report.TopItems(ctx, limit, nil)
	if err != nil {
		return nil, err
	}
	return response.ItemSalesToResponse(items), nil
}
