package risk

import "math"

// SMART2 coefficients (Hageman et al., SMART2 risk score). The linear
// predictor is centered on a 60-year-old normotensive male with LDL 2.5.
const (
	coefIntercept    = -8.1937
	coefAgePerYear   = 0.0635 // per year above/below 60
	coefFemale       = -0.3372
	coefDiabetes     = 0.5034
	coefSmoker       = 0.7862
	coefEGFRBelow30  = 0.9235
	coefEGFR30to60   = 0.5539
	coefPolyvascular = 0.5434 // two or more vascular territories
	coefLDLPerMmol   = 0.2436 // per mmol/L above/below 2.5
	coefSBPPerMmHg   = 0.0083 // per mmHg above/below 120

	ageCenter = 60.0
	ldlCenter = 2.5
	sbpCenter = 120.0

	// 10-year baseline scaling of the Gompertz transform.
	baselineScale = 10.0
)

// Clamp bounds for the reported percentage.
const (
	MinRiskPercent = 1.0
	MaxRiskPercent = 99.0
)

// Result is the outcome of one risk computation.
type Result struct {
	// RiskPercent is the 10-year event risk in [1.0, 99.0], one decimal.
	RiskPercent float64 `json:"risk_percent"`
	Tier        Tier    `json:"tier"`
}

// Compute evaluates the SMART2 model for one profile. It is pure and
// stateless; identical profiles always yield identical results. Non-finite
// numbers or an unknown sex return ErrIncompleteProfile.
//
// The percentage is clamped to [1.0, 99.0] and then rounded half away from
// zero to one decimal. The transform uses the exact exponential.
func Compute(p Profile) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	lp := linearPredictor(p)
	raw := 100 * (1 - math.Exp(-math.Exp(lp)*baselineScale))
	pct := math.Round(clamp(raw, MinRiskPercent, MaxRiskPercent)*10) / 10
	return Result{RiskPercent: pct, Tier: ClassifyTier(pct)}, nil
}

// ComputeRaw parses a form-submitted profile and computes its risk.
func ComputeRaw(r RawProfile) (Result, error) {
	p, err := r.Parse()
	if err != nil {
		return Result{}, err
	}
	return Compute(p)
}

func linearPredictor(p Profile) float64 {
	lp := coefIntercept
	lp += coefAgePerYear * (p.Age - ageCenter)
	if p.Sex == SexFemale {
		lp += coefFemale
	}
	if p.Diabetes {
		lp += coefDiabetes
	}
	if p.CurrentSmoker {
		lp += coefSmoker
	}
	// eGFR bands are mutually exclusive; >=60 contributes nothing.
	switch {
	case p.EGFR < 30:
		lp += coefEGFRBelow30
	case p.EGFR < 60:
		lp += coefEGFR30to60
	}
	if p.VascularTerritoryCount() >= 2 {
		lp += coefPolyvascular
	}
	lp += coefLDLPerMmol * (p.LDL - ldlCenter)
	lp += coefSBPPerMmHg * (p.SystolicBP - sbpCenter)
	return lp
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
