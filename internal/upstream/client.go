// Package upstream talks to the remote ledger backend. The backend is the
// source of truth for balances, transactions, KYC state and roles, and this
// package is the only place that speaks to it.
//
// It also owns the single cross-cutting 401 policy: any unauthorized response
// to an authorized call clears the stored session before the error reaches a
// handler, so an expired token results in exactly one global sign-out instead
// of a dead screen.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/common/logger"
)

// SessionInvalidator is the slice of the session store the client needs to
// enforce the 401 policy.
type SessionInvalidator interface {
	Clear(ctx context.Context, sid string) error
}

// Credentials authorize one upstream call on behalf of a gateway session.
type Credentials struct {
	SID   string
	Token string
}

// Envelope is the response wrapper the ledger backend uses on every endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	base       string
	httpClient *http.Client
	sessions   SessionInvalidator
}

func NewClient(baseURL string, timeout time.Duration, sessions SessionInvalidator) *Client {
	return &Client{
		base:       strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
	}
}

// Call performs a JSON request against the backend and returns the envelope
// data on success. body may be nil. creds may be nil for the public auth
// endpoints.
//
// Error mapping follows the client-observable taxonomy: transport failures
// become UPSTREAM_UNAVAILABLE, a 401 on an authorized call becomes
// SESSION_EXPIRED (after the session is cleared), everything else that is not
// a success envelope becomes UPSTREAM_REJECTED carrying the backend message.
func (c *Client) Call(ctx context.Context, method, path string, creds *Credentials, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}
	defer resp.Body.Close()

	if expired := c.interceptUnauthorized(ctx, resp.StatusCode, creds); expired != nil {
		return nil, expired
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "Network error. Please try again.")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && envelope.Success {
		return envelope.Data, nil
	}

	// The backend message is kept verbatim, even when empty; each flow picks
	// its own fallback string and the error handler has a last-resort one.
	return nil, errors.NewUpstreamRejectedError(resp.StatusCode, envelope.Message)
}

// RawResponse carries a non-JSON upstream payload (KYC document bytes).
type RawResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// CallRaw forwards a request whose response is passed through verbatim. The
// request body, when present, is streamed with the supplied content type
// (used for multipart KYC uploads). The 401 policy applies here too.
func (c *Client) CallRaw(ctx context.Context, method, path string, creds *Credentials, contentType string, body io.Reader) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build upstream request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}
	defer resp.Body.Close()

	if expired := c.interceptUnauthorized(ctx, resp.StatusCode, creds); expired != nil {
		return nil, expired
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}
	return &RawResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        payload,
	}, nil
}

// Ping checks that the backend answers at all. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("upstream http %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request, creds *Credentials) {
	if creds != nil && creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}
}

// interceptUnauthorized implements the global sign-out: a 401 on an
// authorized call invalidates the stored session before the caller sees the
// error. Unauthenticated calls (login itself) are exempt so a failed login
// never destroys an existing session.
func (c *Client) interceptUnauthorized(ctx context.Context, status int, creds *Credentials) error {
	if status != http.StatusUnauthorized || creds == nil {
		return nil
	}
	if err := c.sessions.Clear(ctx, creds.SID); err != nil {
		logger.Warn().Err(err).Str("sid", creds.SID).Msg("Failed to clear session after upstream 401")
	}
	return errors.NewSessionExpiredError()
}
