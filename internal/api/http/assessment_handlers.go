package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/prime-cardio/cvdrisk/internal/assessment"
	"github.com/prime-cardio/cvdrisk/internal/audit"
	authmw "github.com/prime-cardio/cvdrisk/internal/auth/middleware"
	"github.com/prime-cardio/cvdrisk/internal/rbac"

	"github.com/go-chi/chi/v5"
)

// CreateAssessmentHandler computes and persists under the calling clinician.
// The audit append is best-effort; a failed append never fails the request.
func CreateAssessmentHandler(store assessment.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, p, resp := decodeAndCompute(w, r)
		if resp == nil {
			return
		}
		a := assessment.Assessment{
			PatientRef:  req.PatientRef,
			ClinicianID: authmw.SubjectFromContext(r.Context()),
			Profile:     p,
			RiskPercent: resp.Result.RiskPercent,
			Tier:        resp.Result.Tier,
		}
		a, err := store.Put(a)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if events != nil {
			data, _ := json.Marshal(map[string]any{"risk_percent": a.RiskPercent, "tier": a.Tier})
			if err := events.Append(r.Context(), audit.Event{
				Actor: a.ClinicianID, Type: audit.TypeAssessmentCreated,
				Key: a.ID, DataJSON: string(data),
			}); err != nil {
				log.Printf("audit append failed for %s: %v", a.ID, err)
			}
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(a)
	}
}

func GetAssessmentHandler(store assessment.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assessmentID")
		a, err := store.Get(id)
		if err != nil {
			if errors.Is(err, assessment.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		owner := sub != "" && a.ClinicianID == sub
		if !(owner && checker.Has(role, "assessment:view-own")) && !checker.Has(role, "assessment:view-all") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

func ListAssessmentsHandler(store assessment.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinician := r.URL.Query().Get("clinician")
		role := rbac.RoleFromContext(r.Context())
		if !checker.Has(role, "assessment:view-all") {
			// view-own only: force the filter to the caller.
			clinician = authmw.SubjectFromContext(r.Context())
			if clinician == "" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}
		limit := 0
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		out, err := store.List(clinician, limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
