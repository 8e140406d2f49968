package wire

import (
	"smart-dine/internal/adaptor"
	"smart-dine/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, limiter *middleware.RateLimiter) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/config", paymentHandler.Config)
		// processor callbacks arrive in bursts and are authenticated by signature
		r.Post("/webhook", paymentHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)
			r.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
			r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
			r.Get("/session-status", paymentHandler.SessionStatus)
		})
	})
}
