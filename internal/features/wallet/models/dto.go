package models

type DepositRequest struct {
	Amount         float64 `json:"amount"`
	Cryptocurrency string  `json:"cryptocurrency"`
	// TxHash is optional; depositors may file the request before broadcasting.
	TxHash string `json:"txHash,omitempty"`
}

type WithdrawRequest struct {
	Amount         float64 `json:"amount"`
	Cryptocurrency string  `json:"cryptocurrency"`
	ToAddress      string  `json:"toAddress"`
}

// LinkRequest connects an external wallet by recovery phrase. The phrase is
// forwarded to the ledger backend and never stored by the gateway.
type LinkRequest struct {
	WalletName string `json:"walletName"`
	Phrase     string `json:"phrase"`
}
