package models

import sessionmodels "qfs-ledger-gateway/internal/features/session/models"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Remember selects the durable session tier ("Remember this device").
	Remember bool `json:"remember"`
}

type LoginResult struct {
	User *sessionmodels.Profile `json:"user"`
	// Redirect is the route the frontend should navigate to, derived from the
	// user's role.
	Redirect string `json:"redirect"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	ResetCode       string `json:"resetCode"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
