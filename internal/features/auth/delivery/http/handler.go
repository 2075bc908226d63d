package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/features/auth/models"
	"qfs-ledger-gateway/internal/features/auth/service"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
)

// Thirty days, matching "Remember this device".
const durableCookieMaxAge = 30 * 24 * 60 * 60

type Handler struct {
	service      *service.Service
	guard        *sessionmw.Guard
	cookieName   string
	cookieSecure bool
}

func NewHandler(svc *service.Service, guard *sessionmw.Guard, cookieName string, cookieSecure bool) *Handler {
	return &Handler{service: svc, guard: guard, cookieName: cookieName, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
		auth.POST("/forgot-password", h.forgotPassword)
		auth.POST("/reset-password", h.resetPassword)
		// Logout is deliberately unguarded: clearing a session that does not
		// exist must still succeed.
		auth.POST("/logout", h.logout)
	}

	protected.GET("/auth/me", h.me)
}

// @Summary Sign in
// @Description Exchange email/password for a gateway session. The response carries the profile and the role-based redirect target.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Login rejected"
// @Failure 502 {object} map[string]interface{} "Backend unreachable"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	// Reuse the browser's session ID when it already has one so a re-login
	// replaces the old session instead of orphaning it.
	sid := h.guard.SID(c)
	if sid == "" {
		sid = uuid.NewString()
	}

	result, err := h.service.Login(c.Request.Context(), sid, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	maxAge := 0 // session cookie: gone when the browser closes
	if req.Remember {
		maxAge = durableCookieMaxAge
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sid, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful! Redirecting...",
		"data":    result,
	})
}

// @Summary Register
// @Description Create an account. No session is established; the user signs in afterwards.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body models.RegisterRequest true "Registration form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Account created successfully! Please sign in.",
		"data":     data,
		"redirect": service.RouteLogin,
	})
}

// @Summary Request password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{} "One-time reset code with expiry"
// @Failure 400 {object} map[string]interface{}
// @Router /auth/forgot-password [post]
func (h *Handler) forgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// @Summary Reset password with a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.ResetPassword(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Password reset successfully! Please sign in.",
		"data":     data,
		"redirect": service.RouteLogin,
	})
}

// @Summary Current user
// @Description Fetches the authoritative profile from the ledger backend and refreshes the cached copy.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Session expired"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	creds := sessionmw.CredentialsFrom(c)
	data, _, err := h.service.Whoami(c.Request.Context(), creds)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// @Summary Sign out
// @Description Clears the session from every tier and expires the cookie. Idempotent.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), h.guard.SID(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": service.RouteLogin})
}
