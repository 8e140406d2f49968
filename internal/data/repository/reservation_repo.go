package repository

import (
	"context"
	"fmt"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
	FindAll(ctx context.Context, filter entity.ReservationFilter) ([]*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationSelect = `
	SELECT r.id, r.user_id, r.name, r.email, r.phone, r.date,
	       to_char(r.time, 'HH24:MI:SS'), r.guests, r.table_number, r.status,
	       r.special_requests, r.created_at, r.updated_at, u.email
	FROM reservations r
	LEFT JOIN users u ON u.id = r.user_id
`

func scanReservation(row scanner) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Name,
		&res.Email,
		&res.Phone,
		&res.Date,
		&res.Time,
		&res.Guests,
		&res.TableNumber,
		&res.Status,
		&res.SpecialRequests,
		&res.CreatedAt,
		&res.UpdatedAt,
		&res.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, name, email, phone, date, time, guests,
		                          table_number, status, special_requests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::time, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.Name,
		reservation.Email,
		reservation.Phone,
		reservation.Date,
		reservation.Time,
		reservation.Guests,
		reservation.TableNumber,
		reservation.Status,
		reservation.SpecialRequests,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("email", reservation.Email),
		)
		return fmt.Errorf("create reservation for %s: %w", reservation.Email, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	reservation, err := scanReservation(r.db.QueryRow(ctx, reservationSelect+` WHERE r.id = $1`, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find reservation %s: %w", id, err)
	}

	return reservation, nil
}

func (r *reservationRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	return r.query(ctx, reservationSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func (r *reservationRepository) FindAll(ctx context.Context, filter entity.ReservationFilter) ([]*entity.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(reservationSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argCount := 1

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Date != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.date = $%d::date", argCount))
		args = append(args, *filter.Date)
		argCount++
	}
	if filter.DateFrom != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.date >= $%d::date", argCount))
		args = append(args, *filter.DateFrom)
		argCount++
	}
	if filter.DateTo != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.date <= $%d::date", argCount))
		args = append(args, *filter.DateTo)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY r.date DESC, r.time DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filter.Limit)
	}

	return r.query(ctx, queryBuilder.String(), args...)
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET name = $2, email = $3, phone = $4, date = $5, time = $6::time, guests = $7,
		    table_number = $8, status = $9, special_requests = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Name,
		reservation.Email,
		reservation.Phone,
		reservation.Date,
		reservation.Time,
		reservation.Guests,
		reservation.TableNumber,
		reservation.Status,
		reservation.SpecialRequests,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update reservation", zap.Error(err), zap.String("id", reservation.ID.String()))
		return fmt.Errorf("update reservation %s: %w", reservation.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID)
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id)
	}

	return nil
}
