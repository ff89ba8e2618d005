package risk

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Profile is one patient's risk-factor set, fully owned by the caller.
// Numeric fields outside clinical ranges are accepted and extrapolated,
// not corrected.
type Profile struct {
	Age                     float64 `json:"age"`
	Sex                     Sex     `json:"sex"`
	Diabetes                bool    `json:"diabetes"`
	CurrentSmoker           bool    `json:"current_smoker"`
	EGFR                    float64 `json:"egfr"`
	LDL                     float64 `json:"ldl"`
	SystolicBP              float64 `json:"systolic_bp"`
	CoronaryArteryDisease   bool    `json:"coronary_artery_disease"`
	PriorStrokeOrTIA        bool    `json:"prior_stroke_or_tia"`
	PeripheralArteryDisease bool    `json:"peripheral_artery_disease"`
}

// VascularTerritoryCount counts the vascular beds with documented disease.
func (p Profile) VascularTerritoryCount() int {
	n := 0
	for _, b := range []bool{p.CoronaryArteryDisease, p.PriorStrokeOrTIA, p.PeripheralArteryDisease} {
		if b {
			n++
		}
	}
	return n
}

// ErrIncompleteProfile is returned whenever a profile field is missing or
// cannot be coerced to its expected type. The caller should re-prompt for
// complete input; it must never substitute a default risk value.
var ErrIncompleteProfile = errors.New("incomplete or invalid patient profile")

func (p Profile) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"age", p.Age}, {"egfr", p.EGFR}, {"ldl", p.LDL}, {"systolic_bp", p.SystolicBP},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrIncompleteProfile, f.name)
		}
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("%w: sex must be male or female", ErrIncompleteProfile)
	}
	return nil
}

// RawProfile holds form-submitted values before coercion. Empty strings are
// missing fields; booleans accept the usual yes/no spellings.
type RawProfile struct {
	Age                     string `json:"age"`
	Sex                     string `json:"sex"`
	Diabetes                string `json:"diabetes"`
	CurrentSmoker           string `json:"current_smoker"`
	EGFR                    string `json:"egfr"`
	LDL                     string `json:"ldl"`
	SystolicBP              string `json:"systolic_bp"`
	CoronaryArteryDisease   string `json:"coronary_artery_disease"`
	PriorStrokeOrTIA        string `json:"prior_stroke_or_tia"`
	PeripheralArteryDisease string `json:"peripheral_artery_disease"`
}

// Parse coerces a raw profile. Missing and malformed fields both surface as
// ErrIncompleteProfile; the wrapped message names the first offending field.
func (r RawProfile) Parse() (Profile, error) {
	var p Profile
	var err error
	if p.Age, err = parseNum("age", r.Age); err != nil {
		return Profile{}, err
	}
	if p.EGFR, err = parseNum("egfr", r.EGFR); err != nil {
		return Profile{}, err
	}
	if p.LDL, err = parseNum("ldl", r.LDL); err != nil {
		return Profile{}, err
	}
	if p.SystolicBP, err = parseNum("systolic_bp", r.SystolicBP); err != nil {
		return Profile{}, err
	}
	switch strings.ToLower(strings.TrimSpace(r.Sex)) {
	case "male", "m":
		p.Sex = SexMale
	case "female", "f":
		p.Sex = SexFemale
	case "":
		return Profile{}, fmt.Errorf("%w: missing field sex", ErrIncompleteProfile)
	default:
		return Profile{}, fmt.Errorf("%w: cannot parse sex %q", ErrIncompleteProfile, r.Sex)
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  *bool
	}{
		{"diabetes", r.Diabetes, &p.Diabetes},
		{"current_smoker", r.CurrentSmoker, &p.CurrentSmoker},
		{"coronary_artery_disease", r.CoronaryArteryDisease, &p.CoronaryArteryDisease},
		{"prior_stroke_or_tia", r.PriorStrokeOrTIA, &p.PriorStrokeOrTIA},
		{"peripheral_artery_disease", r.PeripheralArteryDisease, &p.PeripheralArteryDisease},
	} {
		v, err := parseBool(f.name, f.raw)
		if err != nil {
			return Profile{}, err
		}
		*f.dst = v
	}
	return p, nil
}

func parseNum(name, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: missing field %s", ErrIncompleteProfile, name)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v, nil
	}
	// tolerate a trailing unit, e.g. "140 mmHg"
	if sp := strings.Fields(s); len(sp) > 0 {
		if v, err := strconv.ParseFloat(sp[0], 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot parse %s %q", ErrIncompleteProfile, name, s)
}

func parseBool(name, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y":
		return true, nil
	default:
		return false, fmt.Errorf("%w: cannot parse %s %q", ErrIncompleteProfile, name, s)
	}
}

// FactorSummary lists the profile's contributing risk factors for display.
func (p Profile) FactorSummary() []string {
	out := []string{
		fmt.Sprintf("Age: %g", p.Age),
		fmt.Sprintf("Sex: %s", p.Sex),
		fmt.Sprintf("LDL-C: %g mmol/L", p.LDL),
		fmt.Sprintf("SBP: %g mmHg", p.SystolicBP),
	}
	if p.Diabetes {
		out = append(out, "Diabetes: Yes")
	}
	if p.CurrentSmoker {
		out = append(out, "Smoker: Yes")
	}
	if p.EGFR < 60 {
		out = append(out, fmt.Sprintf("eGFR: %g (CKD)", p.EGFR))
	}
	if n := p.VascularTerritoryCount(); n > 0 {
		out = append(out, fmt.Sprintf("Vascular Territories: %d", n))
	}
	return out
}
