package adaptor

import (
	"io"
	"net/http"

	"smart-dine/internal/dto/request"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody matches the processor's documented payload ceiling.
const maxWebhookBody = 65536

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Config handles GET /api/payments/config
func (h *PaymentHandler) Config(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Payment config retrieved", h.service.Config())
}

// CreateCheckoutSession handles POST /api/payments/create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.CreateCheckoutSession(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create checkout session")
		return
	}

	utils.ResponseSuccess(w, "Checkout session created", session)
}

// CreatePaymentIntent handles POST /api/payments/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentIntentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, "Payment intent created", intent)
}

// SessionStatus handles GET /api/payments/session-status?session_id=
func (h *PaymentHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.SessionStatus(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "session status")
		return
	}

	utils.ResponseSuccess(w, "Session status retrieved", status)
}

// Webhook handles POST /api/payments/webhook. The body is read raw so the
// signature is checked against the exact bytes sent.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, utils.CodeInvalidPayload, "Invalid payload", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeServiceError(w, h.log, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
