package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an API error. Every failure that crosses the handler
// boundary is one of these; the HTTP status and response envelope are derived
// from the kind alone.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindConflict       Kind = "CONFLICT"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindForbidden      Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindSessionExpired Kind = "SESSION_EXPIRED"
	KindTokenInvalid   Kind = "TOKEN_INVALID"
	KindInvalidOTP     Kind = "INVALID_OTP"
	KindInternal       Kind = "INTERNAL_FAILURE"
)

// APIError carries a kind, a client-safe message and the HTTP status to
// render. Services return *APIError for expected failures and plain errors
// for unexpected ones; the boundary handler maps the latter to KindInternal.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// New builds an APIError with an explicit status.
func New(kind Kind, status int, message string) *APIError {
	return &APIError{Kind: kind, Status: status, Message: message}
}

func Validation(message string) *APIError {
	return New(KindValidation, http.StatusBadRequest, message)
}

func Conflict(message string) *APIError {
	return New(KindConflict, http.StatusBadRequest, message)
}

func Unauthorized(message string) *APIError {
	return New(KindUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return New(KindForbidden, http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return New(KindNotFound, http.StatusNotFound, message)
}

// SessionExpired and TokenInvalid both render as 401. The original service
// mixed 400 and 401 across call sites; 401 is the standardized choice here.
func SessionExpired(message string) *APIError {
	return New(KindSessionExpired, http.StatusUnauthorized, message)
}

func TokenInvalid(message string) *APIError {
	return New(KindTokenInvalid, http.StatusUnauthorized, message)
}

// InvalidOTP is a 400: the activation token is fine, the submitted code is not.
func InvalidOTP(message string) *APIError {
	return New(KindInvalidOTP, http.StatusBadRequest, message)
}

func Internal(message string) *APIError {
	return New(KindInternal, http.StatusInternalServerError, message)
}

// AsAPIError unwraps err into an *APIError, falling back to a generic
// internal failure so no raw error text leaks to clients.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("internal server error")
}

// Envelope is the uniform response body shared by success and failure paths.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Fail renders an error as the response envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message, Data: nil}
}

// OK renders a success payload as the response envelope.
func OK(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}
