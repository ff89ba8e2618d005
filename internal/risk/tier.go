package risk

// Tier buckets a risk percentage for guidance selection.
type Tier string

const (
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very_high"
)

// ClassifyTier maps a clamped, rounded percentage to its tier.
// Boundaries: >=30 very high, >=20 high, else moderate.
func ClassifyTier(riskPercent float64) Tier {
	switch {
	case riskPercent >= 30:
		return TierVeryHigh
	case riskPercent >= 20:
		return TierHigh
	default:
		return TierModerate
	}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierModerate, TierHigh, TierVeryHigh:
		return true
	}
	return false
}
