// Package guidance holds the static clinical recommendation catalog keyed by
// risk tier. The risk core never reads this; it exists for presentation
// layers to render next to a computed result.
package guidance

import (
	"github.com/prime-cardio/cvdrisk/internal/risk"
)

type Guidance struct {
	Tier            risk.Tier `json:"tier"`
	Severity        string    `json:"severity"` // info|warning|critical
	Color           string    `json:"color"`
	Title           string    `json:"title"`
	Recommendations []string  `json:"recommendations"`
	Monitoring      string    `json:"monitoring"`
}

var catalog = map[risk.Tier]Guidance{
	risk.TierModerate: {
		Tier:     risk.TierModerate,
		Severity: "info",
		Color:    "green",
		Title:    "Moderate Risk Management",
		Recommendations: []string{
			"Moderate intensity statin",
			"Target SBP <140 mmHg",
			"Lifestyle counseling",
		},
		Monitoring: "Routine follow-up",
	},
	risk.TierHigh: {
		Tier:     risk.TierHigh,
		Severity: "warning",
		Color:    "orange",
		Title:    "High Risk Management",
		Recommendations: []string{
			"Moderate-high intensity statin",
			"Target SBP <130 mmHg",
			"Lifestyle modifications",
		},
		Monitoring: "Biannual monitoring",
	},
	risk.TierVeryHigh: {
		Tier:     risk.TierVeryHigh,
		Severity: "critical",
		Color:    "red",
		Title:    "Very High Risk Management",
		Recommendations: []string{
			"High-intensity statin (atorvastatin 40-80mg or rosuvastatin 20-40mg)",
			"Consider PCSK9 inhibitor if LDL >=1.8 mmol/L",
			"Target SBP <130 mmHg if tolerated",
		},
		Monitoring: "Annual monitoring",
	},
}

// For returns the guidance block for a tier.
func For(t risk.Tier) (Guidance, bool) {
	g, ok := catalog[t]
	return g, ok
}

// All returns the catalog in ascending severity order.
func All() []Guidance {
	return []Guidance{
		catalog[risk.TierModerate],
		catalog[risk.TierHigh],
		catalog[risk.TierVeryHigh],
	}
}
