package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"qfs-ledger-gateway/internal/assets"
	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/features/admin/models"
	walletsvc "qfs-ledger-gateway/internal/features/wallet/service"
	"qfs-ledger-gateway/internal/upstream"
)

// Service fronts the admin console operations. Every decision (confirming a
// deposit, verifying KYC, suspending an account) is executed upstream; the
// gateway contributes pre-flight validation and the role gate in front of it.
type Service struct {
	backend *upstream.Client
}

func NewService(backend *upstream.Client) *Service {
	return &Service{backend: backend}
}

func (s *Service) Users(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/users", creds, nil)
}

func (s *Service) SuspendUser(ctx context.Context, creds *upstream.Credentials, userID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/users/"+userID+"/suspend", creds, nil)
}

func (s *Service) ActivateUser(ctx context.Context, creds *upstream.Credentials, userID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/users/"+userID+"/activate", creds, nil)
}

func (s *Service) FundUser(ctx context.Context, creds *upstream.Credentials, userID string, req models.FundRequest) (json.RawMessage, error) {
	if req.Amount <= 0 {
		return nil, errors.New(errors.ErrCodeValidation, "Please enter a valid amount")
	}
	if !assets.IsSupported(req.Cryptocurrency) {
		return nil, errors.New(errors.ErrCodeValidation, "Unsupported cryptocurrency")
	}

	payload := map[string]any{
		"cryptocurrency": req.Cryptocurrency,
		"amount":         req.Amount,
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/users/"+userID+"/fund", creds, payload)
}

func (s *Service) PendingDeposits(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/admin/transactions/deposits/pending", creds, nil)
}

func (s *Service) ConfirmDeposit(ctx context.Context, creds *upstream.Credentials, txID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/transactions/deposits/"+txID+"/confirm", creds, nil)
}

func (s *Service) RejectDeposit(ctx context.Context, creds *upstream.Credentials, txID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/transactions/deposits/"+txID+"/reject", creds, nil)
}

func (s *Service) PendingWithdrawals(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/admin/transactions/withdrawals/pending", creds, nil)
}

func (s *Service) ConfirmWithdrawal(ctx context.Context, creds *upstream.Credentials, txID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/transactions/withdrawals/"+txID+"/confirm", creds, nil)
}

func (s *Service) RejectWithdrawal(ctx context.Context, creds *upstream.Credentials, txID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/transactions/withdrawals/"+txID+"/reject", creds, nil)
}

func (s *Service) PendingKyc(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/admin/kyc/pending", creds, nil)
}

// KycDocument fetches the submitted document bytes for review. The response
// is passed through verbatim because the backend serves raw image or PDF data.
func (s *Service) KycDocument(ctx context.Context, creds *upstream.Credentials, submissionID string) (*upstream.RawResponse, error) {
	return s.backend.CallRaw(ctx, http.MethodGet, "/api/admin/kyc/"+submissionID+"/document", creds, "", nil)
}

func (s *Service) VerifyKyc(ctx context.Context, creds *upstream.Credentials, submissionID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/kyc/"+submissionID+"/verify", creds, nil)
}

func (s *Service) RejectKyc(ctx context.Context, creds *upstream.Credentials, submissionID string) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/kyc/"+submissionID+"/reject", creds, nil)
}

func (s *Service) CryptoAddresses(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/admin/crypto-addresses", creds, nil)
}

func (s *Service) SetCryptoAddress(ctx context.Context, creds *upstream.Credentials, req models.AddressRequest) (json.RawMessage, error) {
	if !assets.IsSupported(req.Cryptocurrency) {
		return nil, errors.New(errors.ErrCodeValidation, "Unsupported cryptocurrency")
	}
	if message := walletsvc.ValidateAddress(req.Cryptocurrency, req.Address); message != "" {
		return nil, errors.New(errors.ErrCodeValidation, message)
	}

	payload := map[string]string{
		"cryptocurrency": req.Cryptocurrency,
		"address":        strings.TrimSpace(req.Address),
	}
	if req.Network != "" {
		payload["network"] = req.Network
	}
	return s.backend.Call(ctx, http.MethodPost, "/api/admin/crypto-addresses", creds, payload)
}

func (s *Service) LinkedWallets(ctx context.Context, creds *upstream.Credentials) (json.RawMessage, error) {
	return s.backend.Call(ctx, http.MethodGet, "/api/admin/wallets/linked", creds, nil)
}
