package assessment

import "github.com/prime-cardio/cvdrisk/internal/risk"

// Assessment is one persisted risk computation: the profile as entered plus
// the result the model produced for it at that time.
type Assessment struct {
	ID          string       `json:"id"`
	PatientRef  string       `json:"patient_ref,omitempty"` // free-text MRN or label
	ClinicianID string       `json:"clinician_id"`
	Profile     risk.Profile `json:"profile"`
	RiskPercent float64      `json:"risk_percent"`
	Tier        risk.Tier    `json:"tier"`
	CreatedAt   int64        `json:"created_at"`
}
