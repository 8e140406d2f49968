package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field. Clients switch on these values.
const (
	CodeValidation         = "validation_error"
	CodeMissingUsername    = "missing_username"
	CodeInvalidUsername    = "invalid_username"
	CodeMissingEmail       = "missing_email"
	CodeInvalidEmail       = "invalid_email"
	CodeMissingPassword    = "missing_password"
	CodeWeakPassword       = "weak_password"
	CodePasswordMismatch   = "password_mismatch"
	CodeUsernameExists     = "username_exists"
	CodeEmailExists        = "email_exists"
	CodeNotRegistered      = "not_registered"
	CodeEmailNotVerified   = "email_not_verified"
	CodeInvalidCredentials = "invalid_credentials"
	CodeAccountDisabled    = "account_disabled"
	CodeTokenExpired       = "token_expired"
	CodeInvalidToken       = "invalid_token"
	CodeTokenUsed          = "token_used"
	CodeAlreadyVerified    = "already_verified"
	CodeEmailFailed        = "email_failed"
	CodeUserNotFound       = "user_not_found"
	CodeUnauthenticated    = "unauthenticated"
	CodeNotAuthorized      = "not_authorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeDuplicate          = "duplicate"
	CodeEmptyOrder         = "empty_order"
	CodeItemUnavailable    = "item_unavailable"
	CodeInvalidDate        = "invalid_date"
	CodeInvalidTime        = "invalid_time"
	CodeAlreadyCancelled   = "already_cancelled"
	CodeMissingStatus      = "missing_status"
	CodeInvalidAmount      = "invalid_amount"
	CodeMissingSessionID   = "missing_session_id"
	CodePaymentError       = "payment_error"
	CodeInvalidPayload     = "invalid_payload"
	CodeInvalidSignature   = "invalid_signature"
	CodeWebhookUnverified  = "webhook_not_configured"
	CodeRateLimited        = "rate_limited"
	CodeServerError        = "server_error"
)

// AppError is a user-facing failure with a stable code and HTTP status.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details any
	Data    any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithData returns a copy of e carrying extra payload.
func (e *AppError) WithData(data any) *AppError {
	cp := *e
	cp.Data = data
	return &cp
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func ErrBadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message)
}

func ErrUnauthorized(code, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, code, message)
}

func ErrForbidden(code, message string) *AppError {
	return NewAppError(http.StatusForbidden, code, message)
}

func ErrNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

// AsAppError unwraps err into an *AppError when it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
