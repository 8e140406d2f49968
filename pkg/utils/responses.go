package utils

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. Error holds the machine-readable code.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ResponseJSON writes a success envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, message, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, message, data)
}

// ------------- Error responses -------------

// ResponseError writes an AppError using its own status and code.
func ResponseError(w http.ResponseWriter, err *AppError) {
	writeJSON(w, err.Status, ErrorResponse{
		Status:  false,
		Error:   err.Code,
		Message: err.Message,
		Details: err.Details,
		Data:    err.Data,
	})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, code, message string, details any) {
	ResponseError(w, ErrBadRequest(code, message).WithDetails(details))
}

// returns 400 with the field map produced by ValidateStruct
func ResponseValidation(w http.ResponseWriter, errors map[string]string) {
	ResponseBadRequest(w, CodeValidation, FirstValidationMessage(errors), errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, ErrUnauthorized(CodeUnauthenticated, message))
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, ErrForbidden(CodeNotAuthorized, message))
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, ErrNotFound(message))
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, NewAppError(http.StatusInternalServerError, CodeServerError, message))
}
