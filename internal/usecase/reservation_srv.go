package usecase

import (
	"context"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/metrics"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultGuests = 2

// Actor is the caller of an ownership-checked operation.
type Actor struct {
	UserID  uuid.UUID
	IsStaff bool
}

type ReservationService interface {
	// Create books a table for userID, or as a guest when userID is nil.
	// Status and table number are honoured only when staff is true.
	Create(ctx context.Context, userID *uuid.UUID, req *request.CreateReservationRequest, staff bool) (*response.ReservationResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error)
	// Cancel is allowed for the owner and for staff.
	Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*response.ReservationResponse, error)

	List(ctx context.Context, filter entity.ReservationFilter) ([]response.ReservationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.ReservationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateReservationStatusRequest) (*response.ReservationStatusResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
		now:  time.Now,
	}
}

func parseReservationDate(value string) (time.Time, error) {
	date, ok := utils.ParseDate(value)
	if !ok {
		return time.Time{}, utils.ErrBadRequest(utils.CodeInvalidDate, "Invalid date format. Use YYYY-MM-DD.")
	}
	return date, nil
}

// parseReservationTime normalises HH:MM or HH:MM:SS to HH:MM:SS.
func parseReservationTime(value string) (string, error) {
	t, ok := utils.ParseClock(value)
	if !ok {
		return "", utils.ErrBadRequest(utils.CodeInvalidTime, "Invalid time format. Use HH:MM or HH:MM:SS.")
	}
	return t.Format(time.TimeOnly), nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *reservationService) Create(ctx context.Context, userID *uuid.UUID, req *request.CreateReservationRequest, staff bool) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	date, err := parseReservationDate(req.Date)
	if err != nil {
		return nil, err
	}
	at, err := parseReservationTime(req.Time)
	if err != nil {
		return nil, err
	}

	reservation := &entity.Reservation{
		Base:            entity.NewBase(s.now()),
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Date:            date,
		Time:            at,
		Guests:          defaultGuests,
		Status:          entity.ReservationStatusPending,
		SpecialRequests: req.SpecialRequests,
	}
	if req.Guests != nil {
		reservation.Guests = *req.Guests
	}
	if staff {
		if status := strings.TrimSpace(req.Status); status != "" {
			reservation.Status = status
		}
		reservation.TableNumber = nonEmpty(req.TableNumber)
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, err
	}

	metrics.RecordReservationCreated()
	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("date", req.Date),
		zap.Int("guests", reservation.Guests))

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) ListMine(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) findReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, utils.ErrNotFound("Reservation not found")
	}
	return reservation, nil
}

func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff && !reservation.IsOwnedBy(actor.UserID) {
		s.log.Warn("Cancel rejected, not owner",
			zap.String("reservation_id", id.String()),
			zap.String("user_id", actor.UserID.String()))
		return nil, errNotAuthorized("You are not authorized to cancel this reservation.")
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, utils.ErrBadRequest(utils.CodeAlreadyCancelled, "Reservation is already cancelled.")
	}

	reservation.Status = entity.ReservationStatusCancelled
	reservation.UpdatedAt = s.now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation cancelled", zap.String("reservation_id", id.String()))

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) List(ctx context.Context, filter entity.ReservationFilter) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) Get(ctx context.Context, id uuid.UUID) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseReservationDate(*req.Date)
		if err != nil {
			return nil, err
		}
		reservation.Date = date
	}
	if req.Time != nil {
		at, err := parseReservationTime(*req.Time)
		if err != nil {
			return nil, err
		}
		reservation.Time = at
	}
	if req.Name != nil {
		reservation.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		reservation.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		reservation.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Guests != nil {
		reservation.Guests = *req.Guests
	}
	if req.TableNumber != nil {
		reservation.TableNumber = nonEmpty(req.TableNumber)
	}
	if req.Status != nil {
		if status := strings.TrimSpace(*req.Status); status != "" {
			reservation.Status = status
		}
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}
	reservation.UpdatedAt = s.now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// UpdateStatus sets any non-empty field of req; the status value is not restricted.
func (s *reservationService) UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateReservationStatusRequest) (*response.ReservationStatusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if status := strings.TrimSpace(req.Status); status != "" {
		reservation.Status = status
	}
	if table := nonEmpty(&req.TableNumber); table != nil {
		reservation.TableNumber = table
	}
	reservation.UpdatedAt = s.now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation status changed",
		zap.String("reservation_id", id.String()),
		zap.String("status", reservation.Status))

	return &response.ReservationStatusResponse{
		Status:      reservation.Status,
		TableNumber: reservation.TableNumber,
	}, nil
}

func (s *reservationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findReservation(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}
