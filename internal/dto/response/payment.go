package response

// JSON names follow what the browser payment SDK integration expects.

type PaymentConfigResponse struct {
	PublishableKey string `json:"publishableKey"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type SessionStatusResponse struct {
	Status        string  `json:"status"`
	CustomerEmail *string `json:"customer_email"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}
