package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/common/logger"
	"qfs-ledger-gateway/internal/features/auth/models"
	sessionmodels "qfs-ledger-gateway/internal/features/session/models"
	"qfs-ledger-gateway/internal/features/session/store"
	"qfs-ledger-gateway/internal/upstream"
)

// Routes the frontend is sent to after auth transitions.
const (
	RouteLogin          = "/login"
	RouteUserDashboard  = "/dashboard"
	RouteAdminDashboard = "/admindashboard"
)

// Service implements the four credential flows plus whoami and logout. It is
// the only writer of the session store: a successful login is the only
// operation that creates a session, and logout or an upstream 401 are the
// only operations that destroy one.
type Service struct {
	backend  *upstream.Client
	sessions *store.Resolver
}

func NewService(backend *upstream.Client, sessions *store.Resolver) *Service {
	return &Service{backend: backend, sessions: sessions}
}

// Login exchanges credentials for a session. On success both token and
// profile are written together into the tier selected by req.Remember. On
// failure nothing is touched; a failed login never destroys a session that
// another tab is still using.
func (s *Service) Login(ctx context.Context, sid string, req models.LoginRequest) (*models.LoginResult, error) {
	payload := map[string]string{"email": req.Email, "password": req.Password}
	data, err := s.backend.Call(ctx, http.MethodPost, "/api/auth/login", nil, payload)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeUpstreamRejected && appErr.Message == "" {
			appErr.Message = "Login failed. Please check your credentials."
		}
		return nil, err
	}

	var result struct {
		Token string                 `json:"token"`
		User  *sessionmodels.Profile `json:"user"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "Network error. Please try again.")
	}
	if result.Token == "" {
		return nil, errors.New(errors.ErrCodeUpstreamRejected, "Login failed. Please check your credentials.")
	}

	if err := s.sessions.Set(ctx, sid, result.Token, result.User, req.Remember); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "Failed to store session")
	}

	redirect := RouteUserDashboard
	if result.User.IsAdmin() {
		redirect = RouteAdminDashboard
	}

	logger.Info().
		Str("sid", sid).
		Str("role", roleOf(result.User)).
		Bool("durable", req.Remember).
		Msg("Session established")

	return &models.LoginResult{User: result.User, Redirect: redirect}, nil
}

// Register validates the signup form and forwards it. No session is
// established: the user is sent to the login screen to sign in with the new
// credentials.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (json.RawMessage, error) {
	if fieldErrors := ValidateRegistration(req); len(fieldErrors) > 0 {
		appErr := errors.New(errors.ErrCodeValidation, "Please fill all required fields correctly")
		for field, reason := range fieldErrors {
			appErr.WithDetail(field, reason)
		}
		return nil, appErr
	}

	payload := map[string]string{
		"email":     req.Email,
		"password":  req.Password,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"phone":     req.Phone,
		"country":   req.Country,
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/auth/register", nil, payload)
}

// ForgotPassword requests a one-time reset code. The code in the response is
// shown once to the user and never persisted by the gateway.
func (s *Service) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, errors.NewValidationError("email", "Please enter your email address")
	}
	if !ValidEmail(req.Email) {
		return nil, errors.NewValidationError("email", "Please enter a valid email address")
	}

	data, err := s.backend.Call(ctx, http.MethodPost, "/api/auth/forgot-password", nil, map[string]string{"email": req.Email})
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeUpstreamRejected && appErr.Message == "" {
			appErr.Message = "Failed to generate reset code"
		}
		return nil, err
	}
	return data, nil
}

// ResetPassword validates and forwards a password reset. The code is
// uppercased before submission; length is enforced before any network call.
func (s *Service) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (json.RawMessage, error) {
	if message := ValidateReset(req); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]string{
		"email":           strings.TrimSpace(req.Email),
		"resetCode":       NormalizeResetCode(req.ResetCode),
		"newPassword":     req.NewPassword,
		"confirmPassword": req.ConfirmPassword,
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/auth/reset-password", nil, payload)
}

// Whoami fetches the authoritative user record and refreshes the cached
// profile copy in whichever tier holds the session. Dashboards call this on
// every mount instead of trusting the login-time snapshot.
func (s *Service) Whoami(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, *sessionmodels.Profile, error) {
	data, err := s.backend.Call(ctx, http.MethodGet, "/api/auth/me", creds, nil)
	if err != nil {
		return nil, nil, err
	}

	var result struct {
		User *sessionmodels.Profile `json:"user"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "Network error. Please try again.")
	}

	if result.User != nil {
		if err := s.sessions.Refresh(ctx, creds.SID, result.User); err != nil {
			logger.Warn().Err(err).Str("sid", creds.SID).Msg("Failed to refresh cached profile")
		}
	}
	return data, result.User, nil
}

// Logout clears the session from every tier. Idempotent: logging out twice,
// or without a session, succeeds.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to clear session")
	}
	return nil
}

func roleOf(p *sessionmodels.Profile) string {
	if p == nil {
		return ""
	}
	return p.Role
}
