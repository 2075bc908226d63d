package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xssnick/tonutils-go/address"

	"qfs-ledger-gateway/internal/assets"
	"qfs-ledger-gateway/internal/features/wallet/models"
)

// MinWithdrawalUSD is the platform-wide withdrawal floor.
const MinWithdrawalUSD = 10.0

var (
	bitcoinAddrPattern  = regexp.MustCompile(`^(1|3|bc1)[a-zA-HJ-NP-Z0-9]{25,39}$`)
	ethereumAddrPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	tronAddrPattern     = regexp.MustCompile(`^T[a-zA-Z0-9]{33}$`)
	phraseWordPattern   = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidateAddress checks a destination address against the format rules of
// the asset. Toncoin addresses are parsed structurally (checksum included);
// for assets without a dedicated rule only a length sanity check applies.
// Returns an empty string when the address is acceptable.
func ValidateAddress(cryptocurrency, addr string) string {
	trimmed := strings.TrimSpace(addr)

	switch cryptocurrency {
	case "bitcoin":
		if !bitcoinAddrPattern.MatchString(trimmed) {
			return "Invalid Bitcoin address format"
		}
	case "ethereum":
		if !ethereumAddrPattern.MatchString(trimmed) {
			return "Invalid Ethereum address format"
		}
	case "tether":
		if !ethereumAddrPattern.MatchString(trimmed) {
			return "Invalid Tether address format"
		}
	case "tron":
		if !tronAddrPattern.MatchString(trimmed) {
			return "Invalid TRON address format"
		}
	case "toncoin":
		if _, err := address.ParseAddr(trimmed); err != nil {
			return "Invalid Toncoin address format"
		}
	default:
		if len(trimmed) < 20 {
			return "Address appears too short"
		}
	}
	return ""
}

// ValidateWithdraw runs the pre-flight checks for a withdrawal request.
// Balance sufficiency is the backend's decision; the gateway only rejects
// what could never be valid.
func ValidateWithdraw(req models.WithdrawRequest) string {
	if req.Amount <= 0 {
		return "Please enter a valid withdrawal amount"
	}
	if req.Amount < MinWithdrawalUSD {
		return fmt.Sprintf("Minimum withdrawal amount is $%.0f", MinWithdrawalUSD)
	}
	if !assets.IsSupported(req.Cryptocurrency) {
		return "Unsupported cryptocurrency"
	}
	return ValidateAddress(req.Cryptocurrency, req.ToAddress)
}

// ValidateDeposit runs the pre-flight checks for a deposit request.
func ValidateDeposit(req models.DepositRequest) string {
	if req.Amount <= 0 {
		return "Please enter a valid deposit amount"
	}
	if !assets.IsSupported(req.Cryptocurrency) {
		return "Unsupported cryptocurrency"
	}
	return ""
}

// ValidatePhrase checks a wallet recovery phrase: 12 to 24 words, letters
// only. Returns an empty string when acceptable.
func ValidatePhrase(phrase string) string {
	words := strings.Fields(strings.TrimSpace(phrase))

	if len(words) < 12 {
		return "Recovery phrase must be at least 12 words"
	}
	if len(words) > 24 {
		return "Recovery phrase cannot exceed 24 words"
	}
	for _, word := range words {
		if !phraseWordPattern.MatchString(word) {
			return "Recovery phrase should contain only letters"
		}
	}
	return ""
}
