// Package prices keeps a cached USD quote for every supported asset. Quotes
// come from the CoinGecko simple-price API on a slow poll; readers only ever
// see the cache, so a provider outage degrades to stale prices instead of
// failed requests.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qfs-ledger-gateway/internal/assets"
	"qfs-ledger-gateway/internal/common/errors"
)

type Client struct {
	base       string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:       strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the current USD price for every supported asset, keyed by
// asset slug.
func (c *Client) Fetch(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(assets.All()))
	for _, asset := range assets.All() {
		ids = append(ids, asset.CoinGeckoID)
	}

	endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd",
		c.base, url.QueryEscape(strings.Join(ids, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build price request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeUpstreamUnavailable, fmt.Sprintf("price provider http %d", resp.StatusCode))
	}

	var quotes map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamUnavailable, "decode price response")
	}

	result := make(map[string]float64, len(assets.All()))
	for _, asset := range assets.All() {
		if quote, ok := quotes[asset.CoinGeckoID]; ok {
			result[asset.Slug] = quote.USD
		}
	}
	return result, nil
}
