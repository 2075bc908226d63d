package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/common/logger"
)

// RequestID tags every request with an X-Request-ID, generating one when the
// client did not supply it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestIDFrom returns the request ID set by RequestID.
func RequestIDFrom(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}

// Recovery converts panics into the standard error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", fmt.Sprintf("%v", recovered)).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error")
		sendErrorResponse(c, appErr)
	})
}

// ErrorHandler renders the last error a handler attached via c.Error as the
// standard envelope. Handlers never write error responses themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
		}
		sendErrorResponse(c, appErr)
	}
}

// errorEnvelope mirrors the upstream response shape so browser code handles
// gateway and upstream failures identically.
type errorEnvelope struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Code      errors.ErrorCode `json:"code"`
	Redirect  string           `json:"redirect,omitempty"`
	Details   map[string]any   `json:"details,omitempty"`
	RequestID string           `json:"request_id"`
	Timestamp time.Time        `json:"timestamp"`
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := RequestIDFrom(c)
	appErr.WithRequestID(requestID)

	logError(c, appErr)

	message := appErr.Message
	if message == "" {
		message = "Request failed. Please try again."
	}

	c.Abort()
	c.JSON(httpStatus(appErr), errorEnvelope{
		Success:   false,
		Message:   message,
		Code:      appErr.Code,
		Redirect:  appErr.Redirect,
		Details:   appErr.Details,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func httpStatus(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized, errors.ErrCodeSessionExpired:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUpstreamRejected:
		if appErr.UpstreamStatus >= 400 && appErr.UpstreamStatus < 500 {
			return appErr.UpstreamStatus
		}
		return http.StatusBadRequest
	case errors.ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	case errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(c *gin.Context, appErr *errors.AppError) {
	event := logger.Error()
	switch {
	case appErr.IsValidation():
		event = logger.Info()
	case appErr.IsUnauthorized():
		event = logger.Warn()
	case appErr.Code == errors.ErrCodeUpstreamRejected:
		event = logger.Info()
	}

	event.
		Str("request_id", appErr.RequestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message).
		Err(appErr.Cause).
		Msg("Request failed")
}
