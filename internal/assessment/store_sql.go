package assessment

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/prime-cardio/cvdrisk/internal/risk"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(a Assessment) (Assessment, error) {
	if a.ID == "" {
		a.ID = randID()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	pj, err := json.Marshal(a.Profile)
	if err != nil {
		return Assessment{}, err
	}
	_, err = s.db.Exec(`INSERT INTO assessments (id,patient_ref,clinician_id,profile_json,risk_percent,tier,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PatientRef, a.ClinicianID, string(pj), a.RiskPercent, string(a.Tier), a.CreatedAt)
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *SQLStore) Get(id string) (Assessment, error) {
	row := s.db.QueryRow(`SELECT id,patient_ref,clinician_id,profile_json,risk_percent,tier,created_at
		FROM assessments WHERE id=$1`, id)
	return scanAssessment(row.Scan)
}

func (s *SQLStore) List(clinicianID string, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows *sql.Rows
	var err error
	if clinicianID == "" {
		rows, err = s.db.Query(`SELECT id,patient_ref,clinician_id,profile_json,risk_percent,tier,created_at
			FROM assessments ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	} else {
		rows, err = s.db.Query(`SELECT id,patient_ref,clinician_id,profile_json,risk_percent,tier,created_at
			FROM assessments WHERE clinician_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`, clinicianID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssessment(scan func(...any) error) (Assessment, error) {
	var a Assessment
	var pjson, tier string
	if err := scan(&a.ID, &a.PatientRef, &a.ClinicianID, &pjson, &a.RiskPercent, &tier, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	a.Tier = risk.Tier(tier)
	if err := json.Unmarshal([]byte(pjson), &a.Profile); err != nil {
		return Assessment{}, err
	}
	return a, nil
}
