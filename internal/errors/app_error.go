package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	// MessageKey selects a localized user message from the catalogue.
	MessageKey string
	// Retryable marks failures the caller may safely repeat.
	Retryable bool
	// RetryAfter is sent as the Retry-After header when positive.
	RetryAfter time.Duration
	// Internal keeps Detail out of client responses; it is still logged.
	Internal bool
	Err      error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", e.Code),
		slog.String("message", e.Message),
	}

	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithMessageKey(key string) *AppError {
	e.MessageKey = key

	return e
}

const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeGatewayConfig        = "GATEWAY_CONFIG_ERROR"
	ErrCodeGatewayCommunication = "GATEWAY_COMMUNICATION_ERROR"
	ErrCodeVerificationMismatch = "VERIFICATION_MISMATCH"
	ErrCodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeRateLimited          = "RATE_LIMITED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

// GatewayConfigError is raised before any network call when the selected
// gateway is unknown, disabled or lacks credentials. The message stays generic;
// the reason goes to Detail for admin logs.
func GatewayConfigError(reason string) *AppError {
	e := NewAppError(ErrCodeGatewayConfig, "Selected payment method is currently unavailable", http.StatusBadRequest).
		WithDetail(reason).
		WithMessageKey(MsgGatewayUnavailable)
	e.Internal = true

	return e
}

func GatewayCommunicationError(gateway string) *AppError {
	e := NewAppError(ErrCodeGatewayCommunication, "Payment provider could not be reached, please try again", http.StatusServiceUnavailable).
		WithDetail("gateway: " + gateway).
		WithMessageKey(MsgGatewayUnreachable)
	e.Retryable = true
	e.Internal = true

	return e
}

func VerificationMismatchError(reason string) *AppError {
	e := NewAppError(ErrCodeVerificationMismatch, "Payment could not be confirmed", http.StatusConflict).
		WithDetail(reason).
		WithMessageKey(MsgPaymentNotConfirmed)
	e.Internal = true

	return e
}

func ConcurrencyConflictError(message string) *AppError {
	e := NewAppError(ErrCodeConcurrencyConflict, message, http.StatusConflict)
	e.Retryable = true

	return e
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

// CartLockedError rejects cart changes while a payment for the cart is pending.
func CartLockedError() *AppError {
	message, _ := Localize(MsgCartLocked, DefaultLanguage)

	return ConflictError(message).WithMessageKey(MsgCartLocked)
}

func RateLimitedError(retryAfter time.Duration) *AppError {
	message, _ := Localize(MsgTooManyAttempts, DefaultLanguage)

	e := NewAppError(ErrCodeRateLimited, message, http.StatusTooManyRequests).WithMessageKey(MsgTooManyAttempts)
	e.Retryable = true
	e.RetryAfter = retryAfter

	return e
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// IsRetryable reports whether err carries a retryable AppError.
func IsRetryable(err error) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Retryable
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
