package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prime-cardio/cvdrisk/internal/assessment"
	authmw "github.com/prime-cardio/cvdrisk/internal/auth/middleware"
	"github.com/prime-cardio/cvdrisk/internal/rbac"
	"github.com/prime-cardio/cvdrisk/internal/risk"

	"github.com/go-chi/chi/v5"
)

const fullBody = `{
	"age": 75, "sex": "male", "diabetes": true, "current_smoker": true,
	"egfr": 45, "ldl": 4.5, "systolic_bp": 160,
	"coronary_artery_disease": true, "prior_stroke_or_tia": true
}`

func TestComputeRiskHandler(t *testing.T) {
	req := httptest.NewRequest("POST", "/risk", strings.NewReader(fullBody))
	rec := httptest.NewRecorder()
	ComputeRiskHandler()(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp computeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	if resp.Result.RiskPercent != 16.2 || resp.Result.Tier != risk.TierModerate {
		t.Fatalf("expected 16.2/moderate, got %+v", resp.Result)
	}
	if len(resp.Factors) == 0 || resp.Guidance.Title == "" {
		t.Fatalf("expected factors and guidance in response: %+v", resp)
	}
}

func TestComputeRiskMissingFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/risk", strings.NewReader(`{"sex":"male","ldl":2.5}`))
	rec := httptest.NewRecorder()
	ComputeRiskHandler()(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp struct {
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	want := map[string]bool{"age": true, "egfr": true, "systolic_bp": true}
	if len(resp.MissingFields) != len(want) {
		t.Fatalf("expected %d missing fields, got %v", len(want), resp.MissingFields)
	}
	for _, f := range resp.MissingFields {
		if !want[f] {
			t.Fatalf("unexpected missing field %q", f)
		}
	}
}

func TestComputeRiskBadSex(t *testing.T) {
	body := strings.Replace(fullBody, `"male"`, `"unknown"`, 1)
	rec := httptest.NewRecorder()
	ComputeRiskHandler()(rec, httptest.NewRequest("POST", "/risk", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestComputeRiskBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ComputeRiskHandler()(rec, httptest.NewRequest("POST", "/risk", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func asUser(r *http.Request, sub, role string) *http.Request {
	ctx := authmw.WithSubject(r.Context(), sub)
	ctx = rbac.WithRole(ctx, role)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateAndGetAssessment(t *testing.T) {
	store := assessment.NewInMemoryStore()
	checker := rbac.NewChecker(nil)

	req := asUser(httptest.NewRequest("POST", "/assessments", strings.NewReader(fullBody)), "dr-kim", "clinician")
	rec := httptest.NewRecorder()
	CreateAssessmentHandler(store, nil)(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var a assessment.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	if a.ID == "" || a.ClinicianID != "dr-kim" || a.RiskPercent != 16.2 {
		t.Fatalf("bad assessment: %+v", a)
	}

	// Owner can read it back.
	get := asUser(httptest.NewRequest("GET", "/assessments/"+a.ID, nil), "dr-kim", "clinician")
	get = withURLParam(get, "assessmentID", a.ID)
	rec = httptest.NewRecorder()
	GetAssessmentHandler(store, checker)(rec, get)
	if rec.Code != 200 {
		t.Fatalf("owner read: expected 200, got %d", rec.Code)
	}

	// Another clinician cannot.
	get = asUser(httptest.NewRequest("GET", "/assessments/"+a.ID, nil), "dr-osei", "clinician")
	get = withURLParam(get, "assessmentID", a.ID)
	rec = httptest.NewRecorder()
	GetAssessmentHandler(store, checker)(rec, get)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner read: expected 403, got %d", rec.Code)
	}

	// An auditor can.
	get = asUser(httptest.NewRequest("GET", "/assessments/"+a.ID, nil), "aud-1", "auditor")
	get = withURLParam(get, "assessmentID", a.ID)
	rec = httptest.NewRecorder()
	GetAssessmentHandler(store, checker)(rec, get)
	if rec.Code != 200 {
		t.Fatalf("auditor read: expected 200, got %d", rec.Code)
	}
}

func TestGetAssessmentNotFound(t *testing.T) {
	store := assessment.NewInMemoryStore()
	get := asUser(httptest.NewRequest("GET", "/assessments/nope", nil), "dr-kim", "clinician")
	get = withURLParam(get, "assessmentID", "nope")
	rec := httptest.NewRecorder()
	GetAssessmentHandler(store, rbac.NewChecker(nil))(rec, get)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListAssessmentsScoping(t *testing.T) {
	store := assessment.NewInMemoryStore()
	for _, c := range []string{"dr-kim", "dr-osei"} {
		_, err := store.Put(assessment.Assessment{
			ClinicianID: c,
			Profile:     risk.Profile{Age: 60, Sex: risk.SexMale, EGFR: 90, LDL: 2.5, SystolicBP: 120},
			RiskPercent: 1.0, Tier: risk.TierModerate,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	checker := rbac.NewChecker(nil)

	// Clinician sees only their own regardless of the query filter.
	req := asUser(httptest.NewRequest("GET", "/assessments?clinician=dr-osei", nil), "dr-kim", "clinician")
	rec := httptest.NewRecorder()
	ListAssessmentsHandler(store, checker)(rec, req)
	var out []assessment.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(out) != 1 || out[0].ClinicianID != "dr-kim" {
		t.Fatalf("clinician scope broken: %+v", out)
	}

	// Auditor sees everything.
	req = asUser(httptest.NewRequest("GET", "/assessments", nil), "aud-1", "auditor")
	rec = httptest.NewRecorder()
	ListAssessmentsHandler(store, checker)(rec, req)
	out = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("auditor should see 2, got %d", len(out))
	}
}

func TestGuidanceHandlers(t *testing.T) {
	rec := httptest.NewRecorder()
	GuidanceCatalogHandler()(rec, httptest.NewRequest("GET", "/guidance", nil))
	var all []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil || len(all) != 3 {
		t.Fatalf("expected 3 catalog entries: %v %v", len(all), err)
	}

	get := withURLParam(httptest.NewRequest("GET", "/guidance/very_high", nil), "tier", "very_high")
	rec = httptest.NewRecorder()
	GuidanceHandler()(rec, get)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	get = withURLParam(httptest.NewRequest("GET", "/guidance/extreme", nil), "tier", "extreme")
	rec = httptest.NewRecorder()
	GuidanceHandler()(rec, get)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
