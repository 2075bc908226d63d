package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"qfs-ledger-gateway/internal/common/logger"
)

// Pinger keeps the upstream host awake. The hosting tier spins the backend
// down after a few idle minutes; the original frontend pinged it from every
// visitor's navbar on a 4-minute timer. The gateway owns a single pinger
// instead, stopped by root context cancellation.
type Pinger struct {
	base       string
	interval   time.Duration
	httpClient *http.Client
}

func NewPinger(baseURL string, interval time.Duration) *Pinger {
	return &Pinger{
		base:       baseURL,
		interval:   interval,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Run pings immediately, then on every tick until ctx is cancelled.
func (p *Pinger) Run(ctx context.Context) {
	p.ping(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	// Cache-busting query param, same trick the frontend used.
	url := fmt.Sprintf("%s/?_=%d", p.base, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("Upstream keepalive ping failed")
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	logger.Debug().Int("status", resp.StatusCode).Msg("Upstream keepalive ping")
}
