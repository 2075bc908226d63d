package store

import (
	"context"

	"qfs-ledger-gateway/internal/features/session/models"
)

// Store holds the {token, profile} pair for a gateway session ID. Token and
// profile are written together by Set and removed together by Clear; no state
// may survive where one outlives the other.
//
// Absence is not an error: lookups return a false second value when the
// session is unknown. A stored profile that no longer decodes resolves to
// absent rather than failing the lookup.
type Store interface {
	Set(ctx context.Context, sid, token string, profile *models.Profile) error
	Token(ctx context.Context, sid string) (string, bool, error)
	Profile(ctx context.Context, sid string) (*models.Profile, bool, error)
	Clear(ctx context.Context, sid string) error
}
