package errors

import (
	"fmt"
	"time"
)

// ErrorCode classifies gateway errors for the HTTP error handler and logs.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Session / authorization errors.
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Upstream ledger backend errors.
	ErrCodeUpstreamRejected    ErrorCode = "UPSTREAM_REJECTED"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"

	ErrCodeCacheError ErrorCode = "CACHE_ERROR"
)

// AppError is the typed application error carried through gin's error list
// and rendered by the error-handler middleware.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
	Cause     error          `json:"-"`

	// Redirect is the route the frontend should navigate to when the error
	// implies leaving the current screen (expired session, missing role).
	Redirect string `json:"redirect,omitempty"`

	// UpstreamStatus preserves the HTTP status of an upstream rejection so it
	// can be mirrored to the browser.
	UpstreamStatus int `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeForbidden || e.Code == ErrCodeSessionExpired
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeCacheError
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func (e *AppError) WithRedirect(route string) *AppError {
	e.Redirect = route
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Timestamp: time.Now()}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// NewValidationError reports a single failed field the way the signup form
// did: the field name plus a human-readable reason.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, reason).WithDetail("field", field)
}

// NewSessionExpiredError is produced by the upstream client after a 401 and
// always sends the browser back to the login screen.
func NewSessionExpiredError() *AppError {
	return New(ErrCodeSessionExpired, "Session expired. Please login again.").
		WithRedirect("/login")
}

// NewUnauthorizedError gates unauthenticated access to protected subtrees.
func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, reason).WithRedirect("/login")
}

// NewForbiddenError gates authenticated non-admin access to the admin subtree.
func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, reason).WithRedirect("/dashboard")
}

// NewUpstreamRejectedError mirrors a business rejection from the ledger
// backend, preserving its message and status.
func NewUpstreamRejectedError(status int, message string) *AppError {
	e := New(ErrCodeUpstreamRejected, message)
	e.UpstreamStatus = status
	return e
}

// NewUpstreamUnavailableError covers transport-level failures talking to the
// ledger backend. The message matches what every screen showed for a failed
// fetch.
func NewUpstreamUnavailableError(err error) *AppError {
	return Wrap(err, ErrCodeUpstreamUnavailable, "Network error. Please try again.")
}

// AsAppError casts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
