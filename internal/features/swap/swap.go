// Package swap fronts the asset-swap operation. Rates and execution are the
// ledger backend's business; the gateway rejects only requests that could
// never execute.
package swap

import (
	"context"
	"encoding/json"
	"net/http"

	"qfs-ledger-gateway/internal/assets"
	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/upstream"
)

type ExecuteRequest struct {
	FromCrypto string  `json:"fromCrypto"`
	ToCrypto   string  `json:"toCrypto"`
	Amount     float64 `json:"amount"`
}

type Service struct {
	backend *upstream.Client
}

func NewService(backend *upstream.Client) *Service {
	return &Service{backend: backend}
}

// Validate returns a rejection message, empty when the request is acceptable.
func Validate(req ExecuteRequest) string {
	if req.Amount <= 0 {
		return "Please enter a valid swap amount"
	}
	if !assets.IsSupported(req.FromCrypto) || !assets.IsSupported(req.ToCrypto) {
		return "Unsupported cryptocurrency"
	}
	if req.FromCrypto == req.ToCrypto {
		return "Cannot swap a cryptocurrency to itself"
	}
	return ""
}

func (s *Service) Execute(ctx context.Context, creds *upstream.Credentials, req ExecuteRequest) (json.RawMessage, error) {
	if message := Validate(req); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]any{
		"fromCrypto": req.FromCrypto,
		"toCrypto":   req.ToCrypto,
		"amount":     req.Amount,
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/swap/execute", creds, payload)
}
