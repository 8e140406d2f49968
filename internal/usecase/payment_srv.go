package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/metrics"
	"smart-dine/pkg/payment"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

const minimumIntentAmount = 100 // minor units

// PaymentService turns checkout payloads into processor requests. It keeps no state.
type PaymentService interface {
	Config() response.PaymentConfigResponse
	CreateCheckoutSession(ctx context.Context, req *request.CheckoutSessionRequest) (*response.CheckoutSessionResponse, error)
	CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error)
	SessionStatus(ctx context.Context, sessionID string) (*response.SessionStatusResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	gateway     payment.Gateway
	config      utils.StripeConfig
	frontendURL string
	production  bool
	log         *zap.Logger
}

func NewPaymentService(gateway payment.Gateway, config *utils.Config, log *zap.Logger) PaymentService {
	currency := config.Stripe.Currency
	if currency == "" {
		currency = "pkr"
	}
	stripeConfig := config.Stripe
	stripeConfig.Currency = currency

	return &paymentService{
		gateway:     gateway,
		config:      stripeConfig,
		frontendURL: config.App.FrontendURL,
		production:  config.App.IsProduction(),
		log:         log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Config() response.PaymentConfigResponse {
	return response.PaymentConfigResponse{PublishableKey: s.config.PublishableKey}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// BuildLineItems maps a checkout payload to processor line items: one
// aggregate line for a table reservation, one line per food item otherwise.
func BuildLineItems(req *request.CheckoutSessionRequest) []payment.LineItem {
	if req.OrderType == request.PaymentForReservation {
		guests := "N/A"
		if req.Guests != nil {
			guests = fmt.Sprintf("%d", *req.Guests)
		}
		return []payment.LineItem{{
			Name: "Table Reservation - " + orDefault(req.TableName, "Table"),
			Description: fmt.Sprintf("Date: %s, Time: %s, Guests: %s",
				orDefault(req.Date, "N/A"), orDefault(req.Time, "N/A"), guests),
			UnitAmount: payment.ToMinorUnits(req.TotalAmount),
			Quantity:   1,
		}}
	}

	items := make([]payment.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		name := orDefault(it.Name, "Food Item")
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, payment.LineItem{
			Name:        name,
			Description: orDefault(it.Description, "Delicious "+name),
			UnitAmount:  payment.ToMinorUnits(it.Price),
			Quantity:    int64(quantity),
		})
	}
	return items
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req *request.CheckoutSessionRequest) (*response.CheckoutSessionResponse, error) {
	if req.OrderType == "" {
		req.OrderType = request.PaymentForFood
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	lineItems := BuildLineItems(req)
	if len(lineItems) == 0 {
		return nil, utils.ErrBadRequest(utils.CodeEmptyOrder, "No items to pay for.")
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		LineItems:     lineItems,
		Currency:      s.config.Currency,
		CustomerEmail: strings.TrimSpace(req.Email),
		Metadata: map[string]string{
			"order_type":    req.OrderType,
			"customer_name": req.Name,
		},
		SuccessURL: s.frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.frontendURL + "/payment-cancelled",
	})
	metrics.RecordPaymentRequest("checkout_session", err == nil)
	if err != nil {
		return nil, s.processorError(err)
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("order_type", req.OrderType),
		zap.Int("line_items", len(lineItems)))

	return &response.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	amount := payment.ToMinorUnits(req.Amount)
	if amount < minimumIntentAmount {
		return nil, utils.ErrBadRequest(utils.CodeInvalidAmount, "Amount must be at least 1 PKR")
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, payment.IntentParams{
		Amount:   amount,
		Currency: s.config.Currency,
		Metadata: map[string]string{
			"order_type":     orDefault(req.OrderType, request.PaymentForFood),
			"customer_name":  req.Name,
			"customer_email": req.Email,
		},
	})
	metrics.RecordPaymentRequest("payment_intent", err == nil)
	if err != nil {
		return nil, s.processorError(err)
	}

	return &response.PaymentIntentResponse{ClientSecret: secret}, nil
}

func (s *paymentService) SessionStatus(ctx context.Context, sessionID string) (*response.SessionStatusResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, utils.ErrBadRequest(utils.CodeMissingSessionID, "Session ID is required")
	}

	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	metrics.RecordPaymentRequest("session_status", err == nil)
	if err != nil {
		return nil, s.processorError(err)
	}

	return &response.SessionStatusResponse{
		Status:        status.PaymentStatus,
		CustomerEmail: status.CustomerEmail,
	}, nil
}

// HandleWebhook verifies and logs processor events. Recognised events do not
// change order or reservation state.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifiesWebhooks() {
		if s.production {
			s.log.Error("Webhook received but no signing secret is configured")
			return utils.NewAppError(http.StatusServiceUnavailable, utils.CodeWebhookUnverified,
				"Webhook signing secret is not configured")
		}
		s.log.Warn("Webhook signature not verified, no signing secret configured")
	}

	event, err := s.gateway.ParseWebhook(payload, signature)
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		s.log.Warn("Webhook signature rejected")
		return utils.ErrBadRequest(utils.CodeInvalidSignature, "Invalid signature")
	case errors.Is(err, payment.ErrInvalidPayload):
		return utils.ErrBadRequest(utils.CodeInvalidPayload, "Invalid payload")
	case err != nil:
		return err
	}

	metrics.RecordWebhookEvent(event.Type, event.Verified)

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("object_id", event.ObjectID),
		zap.Bool("verified", event.Verified),
	}
	switch event.Type {
	case payment.EventCheckoutCompleted:
		s.log.Info("Payment completed for checkout session", fields...)
	case payment.EventPaymentIntentSucceeded:
		s.log.Info("Payment intent succeeded", fields...)
	default:
		s.log.Debug("Webhook event ignored", append(fields, zap.String("type", event.Type))...)
	}

	return nil
}

func (s *paymentService) processorError(err error) error {
	var procErr *payment.ProcessorError
	if errors.As(err, &procErr) {
		return utils.ErrBadRequest(utils.CodePaymentError, procErr.Message)
	}
	return err
}
