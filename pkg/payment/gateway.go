// Package payment talks to the external payment processor.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// ProcessorError carries the processor's own message so callers can pass it through.
type ProcessorError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProcessorError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64 // minor units
	Quantity    int64
}

type CheckoutParams struct {
	LineItems     []LineItem
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type SessionStatus struct {
	PaymentStatus string
	CustomerEmail *string
}

type IntentParams struct {
	Amount   int64 // minor units
	Currency string
	Metadata map[string]string
}

// Event is the part of a webhook event the service cares about.
type Event struct {
	ID       string
	Type     string
	ObjectID string
	Verified bool
}

const (
	EventCheckoutCompleted      = "checkout.session.completed"
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, params IntentParams) (clientSecret string, err error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	// ParseWebhook verifies the signature when a secret is configured,
	// otherwise it only parses the payload and marks the event unverified.
	ParseWebhook(payload []byte, signature string) (*Event, error)
	VerifiesWebhooks() bool
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts an amount to the currency's smallest unit, truncating.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}
