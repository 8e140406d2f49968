package payment

import (
	"context"
	"errors"

	"smart-dine/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type stripeGateway struct {
	api           *client.API
	webhookSecret string
	log           *zap.Logger
}

func NewStripeGateway(config utils.StripeConfig, log *zap.Logger) Gateway {
	api := &client.API{}
	api.Init(config.SecretKey, nil)

	log = log.With(zap.String("gateway", "stripe"))
	if config.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, payment requests will fail")
	}

	return &stripeGateway{
		api:           api,
		webhookSecret: config.WebhookSecret,
		log:           log,
	}
}

func processorError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &ProcessorError{Op: op, Message: stripeErr.Msg, Err: err}
	}
	return &ProcessorError{Op: op, Message: err.Error(), Err: err}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
	}
	params.Context = ctx

	for _, item := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.log.Warn("Checkout session rejected", zap.Error(err))
		return nil, processorError("create checkout session", err)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, p IntentParams) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.log.Warn("Payment intent rejected", zap.Error(err))
		return "", processorError("create payment intent", err)
	}

	return intent.ClientSecret, nil
}

func (g *stripeGateway) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, processorError("retrieve checkout session", err)
	}

	status := &SessionStatus{PaymentStatus: string(session.PaymentStatus)}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email := session.CustomerDetails.Email
		status.CustomerEmail = &email
	}

	return status, nil
}

func (g *stripeGateway) VerifiesWebhooks() bool {
	return g.webhookSecret != ""
}

func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if g.webhookSecret == "" {
		return parseUnverified(payload)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if isSignatureError(err) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidPayload
	}

	return &Event{
		ID:       event.ID,
		Type:     string(event.Type),
		ObjectID: gjson.GetBytes(event.Data.Raw, "id").String(),
		Verified: true,
	}, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

func parseUnverified(payload []byte) (*Event, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrInvalidPayload
	}

	fields := gjson.GetManyBytes(payload, "id", "type", "data.object.id")
	return &Event{
		ID:       fields[0].String(),
		Type:     fields[1].String(),
		ObjectID: fields[2].String(),
		Verified: false,
	}, nil
}
