// Package card implements the virtual-card program gate. Card issuance is not
// live upstream yet; the gateway enforces the balance floor and acknowledges
// qualifying applications.
package card

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"qfs-ledger-gateway/internal/common/errors"
	sessionmodels "qfs-ledger-gateway/internal/features/session/models"
	"qfs-ledger-gateway/internal/upstream"
)

// MinBalanceUSD is the portfolio value floor for opening a virtual card.
const MinBalanceUSD = 3000.0

type Eligibility struct {
	Eligible   bool    `json:"eligible"`
	TotalValue float64 `json:"totalValue"`
	Minimum    float64 `json:"minimum"`
	Shortfall  float64 `json:"shortfall"`
}

type CreateRequest struct {
	CardholderName string `json:"cardholderName"`
	CardType       string `json:"cardType"`
}

type CreateResult struct {
	Status      string      `json:"status"`
	Eligibility Eligibility `json:"eligibility"`
}

type Service struct {
	backend *upstream.Client
}

func NewService(backend *upstream.Client) *Service {
	return &Service{backend: backend}
}

// Eligibility derives the card gate from the live profile. The backend has no
// card endpoint, so the portfolio value comes from the same /me call the
// session refresh uses.
func (s *Service) Eligibility(ctx context.Context, creds *upstream.Credentials) (*Eligibility, error) {
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

	total := decoded.User.Wallet.TotalValue
	elig := &Eligibility{
		Eligible:   total >= MinBalanceUSD,
		TotalValue: total,
		Minimum:    MinBalanceUSD,
	}
	if !elig.Eligible {
		elig.Shortfall = MinBalanceUSD - total
	}
	return elig, nil
}

// Create accepts a card application from an eligible account. Applications are
// acknowledged but not forwarded while issuance is pending upstream.
func (s *Service) Create(ctx context.Context, creds *upstream.Credentials, req CreateRequest) (*CreateResult, error) {
	if strings.TrimSpace(req.CardholderName) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Please enter the cardholder name")
	}

	elig, err := s.Eligibility(ctx, creds)
	if err != nil {
		return nil, err
	}
	if !elig.Eligible {
		message := fmt.Sprintf("A minimum balance of $%.2f is required to create a virtual card. You need $%.2f more.", MinBalanceUSD, elig.Shortfall)
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	return &CreateResult{Status: "pending", Eligibility: *elig}, nil
}
