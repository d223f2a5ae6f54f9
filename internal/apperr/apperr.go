package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured error surfaced to API clients. Code is stable and
// machine-readable; Message is safe to show to end users. The wrapped cause
// is only exposed outside production mode.
type Error struct {
	Code       string `json:"code"`
	Status     int    `json:"-"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"` // seconds, rate limiting only

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches errors by code so sentinel comparisons like
// errors.Is(err, apperr.InvalidToken()) work across instances.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithCause attaches an internal cause without changing the client-facing
// code or message.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

func MissingToken() *Error {
	return &Error{Code: "MissingToken", Status: http.StatusUnauthorized, Message: "missing authorization token"}
}

func InvalidToken() *Error {
	return &Error{Code: "InvalidToken", Status: http.StatusUnauthorized, Message: "invalid or expired token"}
}

func TokenRevoked() *Error {
	return &Error{Code: "TokenRevoked", Status: http.StatusUnauthorized, Message: "token has been revoked"}
}

func CsrfMismatch() *Error {
	return &Error{Code: "CsrfMismatch", Status: http.StatusForbidden, Message: "CSRF token missing or mismatched"}
}

func RateLimited(retryAfter int) *Error {
	return &Error{Code: "RateLimited", Status: http.StatusTooManyRequests, Message: "too many requests", RetryAfter: retryAfter}
}

func AlreadyExists(what string) *Error {
	return &Error{Code: "AlreadyExists", Status: http.StatusConflict, Message: what + " already exists"}
}

func InvalidCredentials() *Error {
	return &Error{Code: "InvalidCredentials", Status: http.StatusUnauthorized, Message: "invalid email or password"}
}

func NotFound(what string) *Error {
	return &Error{Code: "NotFound", Status: http.StatusNotFound, Message: what + " not found"}
}

func Forbidden() *Error {
	return &Error{Code: "Forbidden", Status: http.StatusForbidden, Message: "you do not have access to this resource"}
}

func GenerationFailed(cause error) *Error {
	return &Error{Code: "GenerationFailed", Status: http.StatusBadGateway, Message: "image generation failed", cause: cause}
}

func ValidationFailed(msg string) *Error {
	return &Error{Code: "ValidationFailed", Status: http.StatusBadRequest, Message: msg}
}

func Internal(cause error) *Error {
	return &Error{Code: "Internal", Status: http.StatusInternalServerError, Message: "internal server error", cause: cause}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
