package usecase

import (
	"context"
	"net/http"
	"testing"

	"smart-dine/internal/dto/request"
	"smart-dine/pkg/payment"
	"smart-dine/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPayments(gateway *stubGateway, env string) PaymentService {
	config := &utils.Config{
		App: utils.AppConfig{Env: env, FrontendURL: "http://localhost:3000"},
	}
	return NewPaymentService(gateway, config, zap.NewNop())
}

func TestBuildLineItems_Food(t *testing.T) {
	items := BuildLineItems(&request.CheckoutSessionRequest{
		OrderType: request.PaymentForFood,
		Items: []request.CheckoutItem{
			{Name: "Biryani", Price: decimal.RequireFromString("450.50"), Quantity: 2},
			{Name: "Lassi", Description: "Sweet", Price: decimal.NewFromInt(120)},
		},
	})

	require.Len(t, items, 2)
	assert.Equal(t, payment.LineItem{Name: "Biryani", Description: "Delicious Biryani", UnitAmount: 45050, Quantity: 2}, items[0])
	assert.Equal(t, payment.LineItem{Name: "Lassi", Description: "Sweet", UnitAmount: 12000, Quantity: 1}, items[1])
}

func TestBuildLineItems_Reservation(t *testing.T) {
	guests := 4
	items := BuildLineItems(&request.CheckoutSessionRequest{
		OrderType:   request.PaymentForReservation,
		TotalAmount: decimal.NewFromInt(500),
		Date:        "2024-06-01",
		Time:        "19:30",
		Guests:      &guests,
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Table Reservation - Table", items[0].Name)
	assert.Equal(t, "Date: 2024-06-01, Time: 19:30, Guests: 4", items[0].Description)
	assert.Equal(t, int64(50000), items[0].UnitAmount)
}

func TestCreateCheckoutSession_PassesRedirects(t *testing.T) {
	gateway := &stubGateway{}
	svc := newTestPayments(gateway, "development")

	resp, err := svc.CreateCheckoutSession(context.Background(), &request.CheckoutSessionRequest{
		Items: []request.CheckoutItem{{Name: "Naan", Price: decimal.NewFromInt(40), Quantity: 3}},
		Email: "sara@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "pkr", gateway.checkout.Currency)
	assert.Equal(t, "http://localhost:3000/payment-success?session_id={CHECKOUT_SESSION_ID}", gateway.checkout.SuccessURL)
	assert.Equal(t, request.PaymentForFood, gateway.checkout.Metadata["order_type"])
}

func TestCreateCheckoutSession_ProcessorError(t *testing.T) {
	gateway := &stubGateway{err: &payment.ProcessorError{Op: "create checkout session", Message: "Invalid API Key provided"}}
	svc := newTestPayments(gateway, "development")

	_, err := svc.CreateCheckoutSession(context.Background(), &request.CheckoutSessionRequest{
		Items: []request.CheckoutItem{{Name: "Naan", Price: decimal.NewFromInt(40)}},
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.CodePaymentError)
	assert.Equal(t, "Invalid API Key provided", appErr.Message)
}

func TestCreatePaymentIntent_MinimumAmount(t *testing.T) {
	svc := newTestPayments(&stubGateway{}, "development")

	_, err := svc.CreatePaymentIntent(context.Background(), &request.PaymentIntentRequest{Amount: decimal.RequireFromString("0.99")})
	requireAppError(t, err, http.StatusBadRequest, utils.CodeInvalidAmount)

	resp, err := svc.CreatePaymentIntent(context.Background(), &request.PaymentIntentRequest{Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", resp.ClientSecret)
}

func TestSessionStatus_RequiresID(t *testing.T) {
	svc := newTestPayments(&stubGateway{}, "development")

	_, err := svc.SessionStatus(context.Background(), "  ")
	requireAppError(t, err, http.StatusBadRequest, utils.CodeMissingSessionID)
}

func TestHandleWebhook(t *testing.T) {
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, ObjectID: "cs_1"}

	t.Run("production without secret", func(t *testing.T) {
		svc := newTestPayments(&stubGateway{event: event}, "production")
		err := svc.HandleWebhook(context.Background(), []byte(`{}`), "")
		requireAppError(t, err, http.StatusServiceUnavailable, utils.CodeWebhookUnverified)
	})

	t.Run("development accepts unverified", func(t *testing.T) {
		svc := newTestPayments(&stubGateway{event: event}, "development")
		assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), ""))
	})

	t.Run("bad signature", func(t *testing.T) {
		svc := newTestPayments(&stubGateway{verifies: true, err: payment.ErrInvalidSignature}, "production")
		err := svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
		requireAppError(t, err, http.StatusBadRequest, utils.CodeInvalidSignature)
	})

	t.Run("bad payload", func(t *testing.T) {
		svc := newTestPayments(&stubGateway{verifies: true, err: payment.ErrInvalidPayload}, "production")
		err := svc.HandleWebhook(context.Background(), []byte(`nope`), "t=1,v1=x")
		requireAppError(t, err, http.StatusBadRequest, utils.CodeInvalidPayload)
	})
}
