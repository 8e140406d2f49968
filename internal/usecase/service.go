package usecase

import (
	"time"

	"smart-dine/internal/data/repository"
	"smart-dine/pkg/cache"
	"smart-dine/pkg/mailer"
	"smart-dine/pkg/payment"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

// Infra bundles the outbound collaborators the services talk to.
type Infra struct {
	Mailer    mailer.Sender
	Templates *mailer.Renderer
	Payments  payment.Gateway
	Cache     cache.Cache
}

type Service struct {
	Token       TokenService
	Notify      Notifier
	Auth        AuthService
	User        UserService
	Menu        MenuService
	Order       OrderService
	Reservation ReservationService
	Payment     PaymentService
	Admin       AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, infra Infra, log *zap.Logger) *Service {
	tokens := NewTokenService(repo, config.Token, log)
	notifier := NewNotifier(infra.Mailer, infra.Templates, config.App.FrontendURL, config.Token, log)

	return &Service{
		Token:       tokens,
		Notify:      notifier,
		Auth:        NewAuthService(repo, tokens, notifier, config.Session, log),
		User:        NewUserService(repo, log),
		Menu:        NewMenuService(repo, infra.Cache, config.Redis.CacheTTL, log),
		Order:       NewOrderService(repo, config.Order, log),
		Reservation: NewReservationService(repo, log),
		Payment:     NewPaymentService(infra.Payments, config, log),
		Admin:       NewAdminService(repo, config.Session, log),
	}
}

// clock is overridden in tests.
type clock func() time.Time
