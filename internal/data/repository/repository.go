package repository

import (
	"errors"

	"smart-dine/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert or update hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	User              UserRepository
	Profile           ProfileRepository
	Session           SessionRepository
	VerificationToken VerificationTokenRepository
	ResetToken        ResetTokenRepository
	Category          CategoryRepository
	MenuItem          MenuItemRepository
	Order             OrderRepository
	Reservation       ReservationRepository
	Report            ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:              NewUserRepository(db, log),
		Profile:           NewProfileRepository(db, log),
		Session:           NewSessionRepository(db, log),
		VerificationToken: NewVerificationTokenRepository(db, log),
		ResetToken:        NewResetTokenRepository(db, log),
		Category:          NewCategoryRepository(db, log),
		MenuItem:          NewMenuItemRepository(db, log),
		Order:             NewOrderRepository(db, log),
		Reservation:       NewReservationRepository(db, log),
		Report:            NewReportRepository(db, log),
	}
}
