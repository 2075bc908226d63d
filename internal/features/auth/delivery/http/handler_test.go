package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonmw "qfs-ledger-gateway/internal/common/middleware"
	"qfs-ledger-gateway/internal/features/auth/service"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
	"qfs-ledger-gateway/internal/features/session/store"
	"qfs-ledger-gateway/internal/upstream"
)

const testCookie = "qfs_session"

type authFixture struct {
	router   *gin.Engine
	resolver *store.Resolver
	durable  *store.MemoryStore
	tab      *store.MemoryStore
}

func newAuthFixture(t *testing.T, backendHandler http.HandlerFunc) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(backendHandler)
	t.Cleanup(backend.Close)

	durable := store.NewMemoryStore()
	tab := store.NewMemoryStore()
	resolver := store.NewResolver(durable, tab)

	client := upstream.NewClient(backend.URL, 5*time.Second, resolver)
	guard := sessionmw.NewGuard(resolver, testCookie)
	handler := NewHandler(service.NewService(client, resolver), guard, testCookie, false)

	router := gin.New()
	router.Use(commonmw.RequestID())
	router.Use(commonmw.ErrorHandler())
	public := router.Group("/api")
	protected := router.Group("/api", guard.RequireSession())
	handler.RegisterRoutes(public, protected)

	return &authFixture{router: router, resolver: resolver, durable: durable, tab: tab}
}

func (f *authFixture) do(method, path, body, sid string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookie {
			return cookie
		}
	}
	return nil
}

func loginBackend(token, role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"token": token,
					"user":  map[string]any{"id": "u-1", "email": "ada@example.com", "role": role},
				},
			})
		case "/api/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"user": map[string]any{"id": "u-1", "email": "ada@example.com", "role": role, "kycStatus": "verified"},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestLoginEstablishesTabSession(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))

	w := f.do(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"pw","remember":false}`, "")

	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, 0, cookie.MaxAge, "session cookie must not persist")

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "/dashboard", body.Data.Redirect)

	// Remember unchecked puts the session in the tab tier only.
	ctx := context.Background()
	token, ok, err := f.tab.Token(ctx, cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)

	_, ok, err = f.durable.Token(ctx, cookie.Value)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginWithRememberUsesDurableTier(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))

	w := f.do(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"pw","remember":true}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)

	_, ok, err := f.durable.Token(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginAdminRedirect(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "admin"))

	w := f.do(http.MethodPost, "/api/auth/login", `{"email":"root@example.com","password":"pw"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/admindashboard", body.Data.Redirect)
}

// A failed login must leave an existing session untouched; another tab may
// still be using it.
func TestFailedLoginKeepsExistingSession(t *testing.T) {
	f := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":""}`))
	})
	ctx := context.Background()
	require.NoError(t, f.resolver.Set(ctx, "sid", "tok", nil, true))

	w := f.do(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`, "sid")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Login failed. Please check your credentials.", body.Message)

	_, ok, err := f.resolver.Token(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, ok, "existing session must survive a failed login")
}

func TestMeRefreshesCachedProfile(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))
	ctx := context.Background()
	require.NoError(t, f.resolver.Set(ctx, "sid", "tok-1", nil, true))

	w := f.do(http.MethodGet, "/api/auth/me", "", "sid")

	require.Equal(t, http.StatusOK, w.Code)

	profile, ok, err := f.resolver.Profile(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "verified", profile.KycStatus)
}

func TestMeWithoutSession(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))

	w := f.do(http.MethodGet, "/api/auth/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body.Redirect)
}

func TestLogoutClearsSessionAndCookie(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))
	ctx := context.Background()
	require.NoError(t, f.resolver.Set(ctx, "sid", "tok-1", nil, true))

	w := f.do(http.MethodPost, "/api/auth/logout", "", "sid")

	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0, "cookie must be expired")

	_, ok, err := f.resolver.Token(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutWithoutSessionSucceeds(t *testing.T) {
	f := newAuthFixture(t, loginBackend("tok-1", "user"))

	w := f.do(http.MethodPost, "/api/auth/logout", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterValidationShortCircuits(t *testing.T) {
	f := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for an invalid registration")
	})

	w := f.do(http.MethodPost, "/api/auth/register", `{"email":"bad","password":"weak","firstName":"A","lastName":"","phone":"1","country":""}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.NotEmpty(t, body.Details["email"])
	assert.NotEmpty(t, body.Details["password"])
}

// Reset code length is checked before any upstream call.
func TestResetPasswordRejectsShortCodeLocally(t *testing.T) {
	f := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for an invalid reset code")
	})

	w := f.do(http.MethodPost, "/api/auth/reset-password",
		`{"email":"ada@example.com","resetCode":"AB12","newPassword":"Abcdef1!","confirmPassword":"Abcdef1!"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Reset code must be 8 characters", body.Message)
}

func TestResetPasswordUppercasesCode(t *testing.T) {
	var submitted map[string]string
	f := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/reset-password", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	w := f.do(http.MethodPost, "/api/auth/reset-password",
		`{"email":"ada@example.com","resetCode":" ab12cd34 ","newPassword":"Abcdef1!","confirmPassword":"Abcdef1!"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AB12CD34", submitted["resetCode"])
}
