package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/features/wallet/models"
	"qfs-ledger-gateway/internal/upstream"
)

// Service fronts the wallet operations of the ledger backend: deposit and
// withdrawal requests, transaction history and external wallet linking. All
// state lives upstream; the gateway contributes pre-flight validation only.
type Service struct {
	backend *upstream.Client
}

func NewService(backend *upstream.Client) *Service {
	return &Service{backend: backend}
}

func (s *Service) RequestDeposit(ctx context.Context, creds *upstream.Credentials, req models.DepositRequest) (json.RawMessage, error) {
	if message := ValidateDeposit(req); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]any{
		"amount":         req.Amount,
		"cryptocurrency": req.Cryptocurrency,
	}
	if req.TxHash != "" {
		payload["txHash"] = req.TxHash
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/wallet/deposit/request", creds, payload)
}

func (s *Service) RequestWithdrawal(ctx context.Context, creds *upstream.Credentials, req models.WithdrawRequest) (json.RawMessage, error) {
	if message := ValidateWithdraw(req); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]any{
		"amount":         req.Amount,
		"cryptocurrency": req.Cryptocurrency,
		"toAddress":      strings.TrimSpace(req.ToAddress),
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/wallet/withdraw/request", creds, payload)
}

func (s *Service) Transactions(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/wallet/transactions", creds, nil)
}

func (s *Service) LinkWallet(ctx context.Context, creds *upstream.Credentials, req models.LinkRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.WalletName) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Please enter a wallet name")
	}
	if message := ValidatePhrase(req.Phrase); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]string{
		"walletName": strings.TrimSpace(req.WalletName),
		"phrase":     strings.TrimSpace(req.Phrase),
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/wallet/link", creds, payload)
}
