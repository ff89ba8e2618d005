package http

import (
	"encoding/json"
	"net/http"

	"github.com/prime-cardio/cvdrisk/internal/guidance"
	"github.com/prime-cardio/cvdrisk/internal/risk"

	"github.com/go-chi/chi/v5"
)

// computeRequest uses pointers so absent fields are distinguishable from
// zero values. Disease flags default to false (unchecked boxes).
type computeRequest struct {
	Age                     *float64 `json:"age"`
	Sex                     *string  `json:"sex"`
	Diabetes                bool     `json:"diabetes"`
	CurrentSmoker           bool     `json:"current_smoker"`
	EGFR                    *float64 `json:"egfr"`
	LDL                     *float64 `json:"ldl"`
	SystolicBP              *float64 `json:"systolic_bp"`
	CoronaryArteryDisease   bool     `json:"coronary_artery_disease"`
	PriorStrokeOrTIA        bool     `json:"prior_stroke_or_tia"`
	PeripheralArteryDisease bool     `json:"peripheral_artery_disease"`

	PatientRef string `json:"patient_ref,omitempty"`
}

func (req computeRequest) missing() []string {
	var out []string
	if req.Age == nil {
		out = append(out, "age")
	}
	if req.Sex == nil {
		out = append(out, "sex")
	}
	if req.EGFR == nil {
		out = append(out, "egfr")
	}
	if req.LDL == nil {
		out = append(out, "ldl")
	}
	if req.SystolicBP == nil {
		out = append(out, "systolic_bp")
	}
	return out
}

func (req computeRequest) profile() risk.Profile {
	return risk.Profile{
		Age:                     *req.Age,
		Sex:                     risk.Sex(*req.Sex),
		Diabetes:                req.Diabetes,
		CurrentSmoker:           req.CurrentSmoker,
		EGFR:                    *req.EGFR,
		LDL:                     *req.LDL,
		SystolicBP:              *req.SystolicBP,
		CoronaryArteryDisease:   req.CoronaryArteryDisease,
		PriorStrokeOrTIA:        req.PriorStrokeOrTIA,
		PeripheralArteryDisease: req.PeripheralArteryDisease,
	}
}

type computeResponse struct {
	Result   risk.Result       `json:"result"`
	Factors  []string          `json:"factors"`
	Guidance guidance.Guidance `json:"guidance"`
}

// decodeAndCompute is shared by the stateless and persisting endpoints.
// A non-nil *computeResponse means the response has NOT been written yet.
func decodeAndCompute(w http.ResponseWriter, r *http.Request) (computeRequest, risk.Profile, *computeResponse) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return req, risk.Profile{}, nil
	}
	if miss := req.missing(); len(miss) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":          "incomplete profile",
			"missing_fields": miss,
		})
		return req, risk.Profile{}, nil
	}
	p := req.profile()
	res, err := risk.Compute(p)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return req, risk.Profile{}, nil
	}
	g, _ := guidance.For(res.Tier)
	return req, p, &computeResponse{Result: res, Factors: p.FactorSummary(), Guidance: g}
}

// ComputeRiskHandler evaluates the model without persisting anything.
func ComputeRiskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _, resp := decodeAndCompute(w, r)
		if resp == nil {
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func GuidanceCatalogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(guidance.All())
	}
}

func GuidanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tier := risk.Tier(chi.URLParam(r, "tier"))
		g, ok := guidance.For(tier)
		if !ok {
			http.Error(w, "unknown tier", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(g)
	}
}
