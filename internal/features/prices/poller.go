package prices

import (
	"context"
	"time"

	"qfs-ledger-gateway/internal/common/logger"
)

// Poller refreshes the price cache on a fixed interval. A failed refresh is
// logged and the cached quotes stay as they are.
type Poller struct {
	client   *Client
	cache    *Cache
	interval time.Duration
}

func NewPoller(client *Client, cache *Cache, interval time.Duration) *Poller {
	return &Poller{client: client, cache: cache, interval: interval}
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	quotes, err := p.client.Fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Price refresh failed, keeping cached quotes")
		return
	}
	if err := p.cache.Put(ctx, quotes); err != nil {
		logger.Warn().Err(err).Msg("Failed to store refreshed quotes")
		return
	}
	logger.Debug().Int("assets", len(quotes)).Msg("Price cache refreshed")
}
