package location

import (
	"context"
	"log"
	"sync"
)

// Negotiator walks the permission state machine: none -> requesting ->
// {foreground-only, denied}, with an optional, declinable upgrade from
// foreground-only to full. It also obtains one position fix as proof
// the granted tier is actually usable.
type Negotiator struct {
	provider Provider

	mu   sync.Mutex
	tier Tier
}

func NewNegotiator(provider Provider) *Negotiator {
	return &Negotiator{provider: provider, tier: TierNone}
}

// Tier returns the current permission tier.
func (n *Negotiator) Tier() Tier {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tier
}

// Ensure resolves the highest usable tier. Already-granted permission
// returns immediately with a fresh fix. An ungranted foreground tier
// is requested; denial is terminal for this attempt but recoverable by
// calling Ensure again after the user changes system settings.
func (n *Negotiator) Ensure(ctx context.Context) (Tier, Position, error) {
	n.setTier(TierRequesting)

	fg, err := n.provider.ForegroundStatus(ctx)
	if err != nil {
		return n.fail(TierDenied, ErrUnavailable)
	}

	if fg == StatusGranted {
		tier := TierForegroundOnly
		if bg, err := n.provider.BackgroundStatus(ctx); err == nil && bg == StatusGranted {
			tier = TierFull
		}
		return n.resolveFix(ctx, tier)
	}

	requested, err := n.provider.RequestForeground(ctx)
	if err != nil {
		return n.fail(TierDenied, ErrUnavailable)
	}
	if requested != StatusGranted {
		return n.fail(TierDenied, ErrPermissionDenied)
	}

	return n.resolveFix(ctx, TierForegroundOnly)
}

// OfferBackgroundUpgrade requests the background tier. Declining keeps
// the session at foreground-only; only a grant moves the tier forward.
func (n *Negotiator) OfferBackgroundUpgrade(ctx context.Context) Tier {
	n.mu.Lock()
	if n.tier != TierForegroundOnly {
		tier := n.tier
		n.mu.Unlock()
		return tier
	}
	n.mu.Unlock()

	status, err := n.provider.RequestBackground(ctx)
	if err != nil {
		log.Printf("background permission request failed: %v", err)
		return n.Tier()
	}
	if status == StatusGranted {
		n.setTier(TierFull)
	}
	return n.Tier()
}

func (n *Negotiator) resolveFix(ctx context.Context, tier Tier) (Tier, Position, error) {
	pos, err := n.provider.CurrentPosition(ctx)
	if err != nil {
		// Permission state is intact; only the fix failed.
		n.setTier(tier)
		return tier, Position{}, ErrUnavailable
	}
	n.setTier(tier)
	return tier, pos, nil
}

func (n *Negotiator) fail(tier Tier, err error) (Tier, Position, error) {
	n.setTier(tier)
	return tier, Position{}, err
}

func (n *Negotiator) setTier(tier Tier) {
	n.mu.Lock()
	n.tier = tier
	n.mu.Unlock()
}
