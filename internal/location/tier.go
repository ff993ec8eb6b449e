package location

// Tier is the granted level of location access. Transitions only move
// forward toward Full or ForegroundOnly, or terminate at Denied.
type Tier string

const (
	TierNone           Tier = "none"
	TierRequesting     Tier = "requesting"
	TierForegroundOnly Tier = "foreground-only"
	TierFull           Tier = "full"
	TierDenied         Tier = "denied"
)

// Usable reports whether tracking may start at this tier.
func (t Tier) Usable() bool {
	return t == TierForegroundOnly || t == TierFull
}
