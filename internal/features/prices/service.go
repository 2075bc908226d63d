package prices

import (
	"context"
	"encoding/json"
	"net/http"

	"qfs-ledger-gateway/internal/assets"
	"qfs-ledger-gateway/internal/common/errors"
	sessionmodels "qfs-ledger-gateway/internal/features/session/models"
	"qfs-ledger-gateway/internal/upstream"
)

// Holding is one row of the portfolio view: the USD balance the ledger tracks
// plus the coin amount it converts to at the cached price.
type Holding struct {
	Cryptocurrency string  `json:"cryptocurrency"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	UsdValue       float64 `json:"usdValue"`
	PriceUsd       float64 `json:"priceUsd"`
	Amount         float64 `json:"amount"`
}

type Service struct {
	backend *upstream.Client
	cache   *Cache
}

func NewService(backend *upstream.Client, cache *Cache) *Service {
	return &Service{backend: backend, cache: cache}
}

// Quotes returns the cached USD price per supported asset slug.
func (s *Service) Quotes(ctx context.Context) (map[string]float64, error) {
	return s.cache.Get(ctx)
}

// Holdings joins the live wallet balances with the cached quotes. Balances the
// ledger tracks in USD are converted to coin amounts; a missing or zero quote
// yields an amount of zero rather than an error.
func (s *Service) Holdings(ctx context.Context, creds *upstream.Credentials) ([]Holding, error) {
	data, err := s.backend.Call(ctx, http.MethodGet, "/api/auth/me", creds, nil)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		User *sessionmodels.Profile `json:"user"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil || decoded.User == nil {
		return nil, errors.New(errors.ErrCodeUpstreamUnavailable, "Network error. Please try again.")
	}

	quotes, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	holdings := make([]Holding, 0, len(assets.All()))
	for _, asset := range assets.All() {
		usd := decoded.User.Wallet.Balances[asset.Slug]
		price := quotes[asset.Slug]

		holding := Holding{
			Cryptocurrency: asset.Slug,
			Symbol:         asset.Symbol,
			Name:           asset.DisplayName,
			UsdValue:       usd,
			PriceUsd:       price,
		}
		if price > 0 {
			holding.Amount = usd / price
		}
		holdings = append(holdings, holding)
	}
	return holdings, nil
}
