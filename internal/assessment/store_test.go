package assessment

import (
	"errors"
	"testing"

	"github.com/prime-cardio/cvdrisk/internal/risk"
)

func sample(clinician string) Assessment {
	return Assessment{
		PatientRef:  "MRN-1042",
		ClinicianID: clinician,
		Profile:     risk.Profile{Age: 72, Sex: risk.SexFemale, EGFR: 55, LDL: 3.9, SystolicBP: 155},
		RiskPercent: 4.2,
		Tier:        risk.TierModerate,
	}
}

func TestPutAssignsIDAndTimestamp(t *testing.T) {
	st := NewInMemoryStore()
	a, err := st.Put(sample("dr-kim"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" || a.CreatedAt == 0 {
		t.Fatalf("expected generated id and timestamp: %+v", a)
	}
	got, err := st.Get(a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PatientRef != "MRN-1042" || got.Profile.Age != 72 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	st := NewInMemoryStore()
	if _, err := st.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByClinician(t *testing.T) {
	st := NewInMemoryStore()
	for i, c := range []string{"dr-kim", "dr-kim", "dr-osei"} {
		a := sample(c)
		a.CreatedAt = int64(100 + i)
		if _, err := st.Put(a); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}
	all, err := st.List("", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3, got %d (%v)", len(all), err)
	}
	if all[0].CreatedAt < all[1].CreatedAt {
		t.Fatalf("expected newest-first ordering")
	}
	mine, err := st.List("dr-kim", 0)
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 for dr-kim, got %d (%v)", len(mine), err)
	}
	one, err := st.List("", 1)
	if err != nil || len(one) != 1 {
		t.Fatalf("expected limit applied, got %d (%v)", len(one), err)
	}
}
