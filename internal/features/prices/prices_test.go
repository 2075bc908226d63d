package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qfs-ledger-gateway/internal/upstream"
)

type noopInvalidator struct{}

func (noopInvalidator) Clear(context.Context, string) error { return nil }

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client)
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	require.NoError(t, cache.Put(ctx, map[string]float64{"bitcoin": 64000.5, "toncoin": 5.4}))

	quotes, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 64000.5, quotes["bitcoin"])
	assert.Equal(t, 5.4, quotes["toncoin"])
}

func TestCacheEmptyBeforeFirstRefresh(t *testing.T) {
	cache := newTestCache(t)

	quotes, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestClientFetchMapsProviderIDsToSlugs(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("ids"), "the-open-network")
		assert.Contains(t, r.URL.Query().Get("ids"), "binancecoin")
		_, _ = w.Write([]byte(`{
			"bitcoin": {"usd": 64000},
			"binancecoin": {"usd": 580},
			"the-open-network": {"usd": 5.4}
		}`))
	}))
	t.Cleanup(provider.Close)

	client := NewClient(provider.URL, 5*time.Second)
	quotes, err := client.Fetch(context.Background())

	require.NoError(t, err)
	// Quotes come back keyed by platform slug, not provider ID.
	assert.Equal(t, 64000.0, quotes["bitcoin"])
	assert.Equal(t, 580.0, quotes["binance-coin"])
	assert.Equal(t, 5.4, quotes["toncoin"])
	_, hasProviderID := quotes["the-open-network"]
	assert.False(t, hasProviderID)
}

func TestClientFetchProviderError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(provider.Close)

	client := NewClient(provider.URL, 5*time.Second)
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}

// A failed refresh keeps the previous quotes.
func TestPollerKeepsStaleQuotesOnFailure(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	require.NoError(t, cache.Put(ctx, map[string]float64{"bitcoin": 60000}))

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(provider.Close)

	poller := NewPoller(NewClient(provider.URL, time.Second), cache, time.Hour)
	poller.refresh(ctx)

	quotes, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, quotes["bitcoin"])
}

func TestPollerRefreshUpdatesCache(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bitcoin": {"usd": 64000}}`))
	}))
	t.Cleanup(provider.Close)

	poller := NewPoller(NewClient(provider.URL, time.Second), cache, time.Hour)
	poller.refresh(ctx)

	quotes, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 64000.0, quotes["bitcoin"])
}

func TestHoldingsConvertsUSDBalances(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	require.NoError(t, cache.Put(ctx, map[string]float64{"bitcoin": 50000, "ethereum": 2500}))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{
			"id":"u-1","role":"user",
			"wallet":{"balances":{"bitcoin":1000,"ethereum":500,"tether":25},"totalValue":1525}
		}}}`))
	}))
	t.Cleanup(backend.Close)

	svc := NewService(upstream.NewClient(backend.URL, 5*time.Second, noopInvalidator{}), cache)
	holdings, err := svc.Holdings(ctx, &upstream.Credentials{SID: "sid", Token: "tok"})
	require.NoError(t, err)

	byAsset := make(map[string]Holding, len(holdings))
	for _, h := range holdings {
		byAsset[h.Cryptocurrency] = h
	}

	assert.InDelta(t, 0.02, byAsset["bitcoin"].Amount, 1e-9)
	assert.InDelta(t, 0.2, byAsset["ethereum"].Amount, 1e-9)
	assert.Equal(t, 1000.0, byAsset["bitcoin"].UsdValue)

	// No cached quote means no conversion, not an error.
	assert.Equal(t, 25.0, byAsset["tether"].UsdValue)
	assert.Zero(t, byAsset["tether"].Amount)

	// Every supported asset appears, including ones with zero balance.
	assert.Zero(t, byAsset["toncoin"].UsdValue)
}
