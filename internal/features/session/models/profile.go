package models

import "time"

// Roles as reported by the upstream ledger backend. Only RoleAdmin unlocks the
// admin subtree; super_admin exists upstream but is not special-cased here.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// KYC statuses. Advisory only: they drive badges and disabled buttons in the
// frontend, never route access.
const (
	KycNotSubmitted = "not_submitted"
	KycPending      = "pending"
	KycVerified     = "verified"
	KycRejected     = "rejected"
)

// Wallet is the USD-denominated balance projection inside a profile.
// Balances are keyed by asset slug and valued in USD, not token units.
type Wallet struct {
	Balances   map[string]float64 `json:"balances"`
	TotalValue float64            `json:"totalValue"`
}

// Profile is the cached projection of the upstream user record. It is written
// at login, refreshed on every whoami and never treated as authoritative.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	KycStatus string    `json:"kycStatus"`
	IsActive  bool      `json:"isActive"`
	Wallet    Wallet    `json:"wallet"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// IsAdmin reports whether the profile may enter the admin subtree.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
