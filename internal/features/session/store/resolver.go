package store

import (
	"context"

	"qfs-ledger-gateway/internal/features/session/models"
)

// Resolver encodes the tier precedence that the browser app left implicit in
// repeated `localStorage || sessionStorage` lookups: the durable tier is
// consulted first, then the tab tier, and the first present value wins. When
// both tiers hold different tokens the durable tier wins for both the token
// and the profile, so a session never mixes values from two tiers.
type Resolver struct {
	durable Store
	tab     Store
}

func NewResolver(durable, tab Store) *Resolver {
	return &Resolver{durable: durable, tab: tab}
}

func (r *Resolver) tiers() []Store { return []Store{r.durable, r.tab} }

// Token returns the first present token across tiers.
func (r *Resolver) Token(ctx context.Context, sid string) (string, bool, error) {
	for _, tier := range r.tiers() {
		token, ok, err := tier.Token(ctx, sid)
		if err != nil {
			return "", false, err
		}
		if ok {
			return token, true, nil
		}
	}
	return "", false, nil
}

// Profile returns the profile from the first tier that holds the token, so
// that token and profile always come from the same tier.
func (r *Resolver) Profile(ctx context.Context, sid string) (*models.Profile, bool, error) {
	tier, err := r.holdingTier(ctx, sid)
	if err != nil || tier == nil {
		return nil, false, err
	}
	return tier.Profile(ctx, sid)
}

// Set writes the session into exactly one tier: the durable one when the user
// asked to be remembered, the tab tier otherwise. Any copy in the other tier
// is removed so the tiers cannot diverge for the same session ID.
func (r *Resolver) Set(ctx context.Context, sid, token string, profile *models.Profile, durable bool) error {
	target, other := r.durable, r.tab
	if !durable {
		target, other = r.tab, r.durable
	}
	if err := other.Clear(ctx, sid); err != nil {
		return err
	}
	return target.Set(ctx, sid, token, profile)
}

// Refresh replaces the stored profile in whichever tier holds the session,
// keeping the existing token. It is a no-op for unknown sessions.
func (r *Resolver) Refresh(ctx context.Context, sid string, profile *models.Profile) error {
	tier, err := r.holdingTier(ctx, sid)
	if err != nil || tier == nil {
		return err
	}
	token, ok, err := tier.Token(ctx, sid)
	if err != nil || !ok {
		return err
	}
	return tier.Set(ctx, sid, token, profile)
}

// Clear removes the session from every tier. Clearing an unknown session is a
// no-op; logout must never fail because there was nothing to log out.
func (r *Resolver) Clear(ctx context.Context, sid string) error {
	for _, tier := range r.tiers() {
		if err := tier.Clear(ctx, sid); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) holdingTier(ctx context.Context, sid string) (Store, error) {
	for _, tier := range r.tiers() {
		_, ok, err := tier.Token(ctx, sid)
		if err != nil {
			return nil, err
		}
		if ok {
			return tier, nil
		}
	}
	return nil, nil
}
