package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qfs-ledger-gateway/internal/common/errors"
)

type recordingInvalidator struct {
	cleared []string
}

func (r *recordingInvalidator) Clear(_ context.Context, sid string) error {
	r.cleared = append(r.cleared, sid)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingInvalidator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sessions := &recordingInvalidator{}
	return NewClient(server.URL, 5*time.Second, sessions), sessions
}

func TestCallReturnsEnvelopeData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"value":42}}`))
	})

	creds := &Credentials{SID: "sid", Token: "tok"}
	data, err := client.Call(context.Background(), http.MethodGet, "/api/thing", creds, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"value":42}`, string(data))
}

func TestCallWithoutCredentialsSendsNoAuthHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	_, err := client.Call(context.Background(), http.MethodPost, "/api/auth/login", nil, map[string]string{"email": "a@b.co"})
	require.NoError(t, err)
}

func TestCallUnauthorizedClearsSession(t *testing.T) {
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	creds := &Credentials{SID: "sid", Token: "stale"}
	_, err := client.Call(context.Background(), http.MethodGet, "/api/auth/me", creds, nil)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionExpired, appErr.Code)
	assert.Equal(t, "/login", appErr.Redirect)
	assert.Equal(t, []string{"sid"}, sessions.cleared)
}

// A 401 on an unauthenticated call (a failed login) must not destroy whatever
// session the browser already has.
func TestCallUnauthorizedWithoutCredentialsKeepsSession(t *testing.T) {
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	_, err := client.Call(context.Background(), http.MethodPost, "/api/auth/login", nil, map[string]string{})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamRejected, appErr.Code)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	assert.Empty(t, sessions.cleared)
}

func TestCallRejectionKeepsMessageVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"message":"Insufficient balance"}`))
	})

	creds := &Credentials{SID: "sid", Token: "tok"}
	_, err := client.Call(context.Background(), http.MethodPost, "/api/wallet/withdraw/request", creds, map[string]any{})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamRejected, appErr.Code)
	assert.Equal(t, "Insufficient balance", appErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.UpstreamStatus)
}

func TestCallSuccessFalseIsRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"No"}`))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/api/thing", nil, nil)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamRejected, appErr.Code)
}

func TestCallTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, time.Second, &recordingInvalidator{})

	_, err := client.Call(context.Background(), http.MethodGet, "/api/thing", nil, nil)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamUnavailable, appErr.Code)
	assert.Equal(t, "Network error. Please try again.", appErr.Message)
}

func TestCallRawPassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	creds := &Credentials{SID: "sid", Token: "tok"}
	resp, err := client.CallRaw(context.Background(), http.MethodGet, "/api/admin/kyc/1/document", creds, "", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Len(t, resp.Body, 4)
}

func TestCallRawUnauthorizedClearsSession(t *testing.T) {
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	creds := &Credentials{SID: "sid", Token: "stale"}
	_, err := client.CallRaw(context.Background(), http.MethodPost, "/api/kyc/upload", creds, "multipart/form-data", nil)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionExpired, appErr.Code)
	assert.Equal(t, []string{"sid"}, sessions.cleared)
}
