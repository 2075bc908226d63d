package models

// FundRequest credits a user's balance from the admin console.
type FundRequest struct {
	Cryptocurrency string  `json:"cryptocurrency"`
	Amount         float64 `json:"amount"`
}

// AddressRequest registers a platform deposit address for one asset.
type AddressRequest struct {
	Cryptocurrency string `json:"cryptocurrency"`
	Address        string `json:"address"`
	Network        string `json:"network,omitempty"`
}
