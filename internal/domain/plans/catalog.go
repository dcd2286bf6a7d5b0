package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierStarter = "starter"
	TierPro     = "pro"
	TierElite   = "elite"
)

// Commission rates per tier. Starter carries the highest rate, so it
// doubles as the fallback for unknown or unset tiers: fee calculation
// must never silently drop to zero.
var commissionRates = map[string]float64{
	TierStarter: 0.15,
	TierPro:     0.10,
	TierElite:   0.05,
}

// RateOf returns the platform commission rate for a mentor's plan tier.
func RateOf(tier string) float64 {
	t := strings.ToLower(strings.TrimSpace(tier))
	if rate, ok := commissionRates[t]; ok {
		return rate
	}
	return commissionRates[TierStarter]
}
