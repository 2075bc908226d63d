package service

import (
	"regexp"
	"strings"

	"qfs-ledger-gateway/internal/features/auth/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
	// The signup meter counts any non-alphanumeric as special; the reset
	// classifier historically used a fixed punctuation set. Both are kept.
	specialPattern      = regexp.MustCompile(`[^A-Za-z0-9]`)
	resetSpecialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

const resetCodeLength = 8

// PasswordStrengthScore is the signup meter: 25 points for each of length≥8,
// an uppercase letter, a digit and a special character, capped at 100. The
// score is monotone in the number of criteria met. Registration requires ≥50.
func PasswordStrengthScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score += 25
	}
	if upperPattern.MatchString(password) {
		score += 25
	}
	if digitPattern.MatchString(password) {
		score += 25
	}
	if specialPattern.MatchString(password) {
		score += 25
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Password strength classes used by the reset flow.
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// PasswordStrengthLabel is the reset-flow classifier: five unweighted checks
// (length≥8, lower, upper, digit, special); all five is strong, three or four
// is medium, less is weak. Empty input has no class.
func PasswordStrengthLabel(password string) string {
	if password == "" {
		return ""
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if lowerPattern.MatchString(password) {
		score++
	}
	if upperPattern.MatchString(password) {
		score++
	}
	if digitPattern.MatchString(password) {
		score++
	}
	if resetSpecialPattern.MatchString(password) {
		score++
	}

	switch {
	case score >= 5:
		return StrengthStrong
	case score >= 3:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// ValidEmail reports whether the address passes the simple format check used
// by every auth form.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeResetCode trims and uppercases a reset code the way the reset form
// did before submission. Validity is checked separately.
func NormalizeResetCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateRegistration runs the gateway-side checks before any upstream call.
// It returns a map of field name to human-readable reason, empty when the
// request is acceptable.
func ValidateRegistration(req models.RegisterRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.FirstName) == "" {
		fieldErrors["firstName"] = "First name is required"
	} else if len(strings.TrimSpace(req.FirstName)) < 2 {
		fieldErrors["firstName"] = "First name must be at least 2 characters"
	}

	if strings.TrimSpace(req.LastName) == "" {
		fieldErrors["lastName"] = "Last name is required"
	} else if len(strings.TrimSpace(req.LastName)) < 2 {
		fieldErrors["lastName"] = "Last name must be at least 2 characters"
	}

	if strings.TrimSpace(req.Email) == "" {
		fieldErrors["email"] = "Email is required"
	} else if !ValidEmail(req.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}

	if strings.TrimSpace(req.Phone) == "" {
		fieldErrors["phone"] = "Phone number is required"
	} else if len(strings.TrimSpace(req.Phone)) < 5 {
		fieldErrors["phone"] = "Please enter a valid phone number"
	}

	if req.Country == "" {
		fieldErrors["country"] = "Country is required"
	}

	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(req.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	} else if PasswordStrengthScore(req.Password) < 50 {
		fieldErrors["password"] = "Password is too weak. Please use a stronger password"
	}

	return fieldErrors
}

// ValidateReset checks the reset-password request. It returns a single
// message; the reset form surfaced one error at a time.
func ValidateReset(req models.ResetPasswordRequest) string {
	if strings.TrimSpace(req.Email) == "" {
		return "Please enter your email address"
	}
	if strings.TrimSpace(req.ResetCode) == "" {
		return "Please enter the reset code"
	}
	if len(strings.TrimSpace(req.ResetCode)) != resetCodeLength {
		return "Reset code must be 8 characters"
	}
	if req.NewPassword == "" {
		return "Please enter a new password"
	}
	if len(req.NewPassword) < 8 {
		return "Password must be at least 8 characters"
	}
	if req.NewPassword != req.ConfirmPassword {
		return "Passwords do not match"
	}
	if PasswordStrengthLabel(req.NewPassword) == StrengthWeak {
		return "Please choose a stronger password"
	}
	return ""
}
