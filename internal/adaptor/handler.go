package adaptor

import (
	"smart-dine/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Menu        *MenuHandler
	Order       *OrderHandler
	Reservation *ReservationHandler
	Payment     *PaymentHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Menu:        NewMenuHandler(service.Menu, log),
		Order:       NewOrderHandler(service.Order, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Payment:     NewPaymentHandler(service.Payment, log),
		Admin:       NewAdminHandler(service.Admin, log),
	}
}
