package audit

import (
	"context"
	"database/sql"
	"time"
)

// Event is one append-only audit row. Data carries a JSON payload.
type Event struct {
	Offset    int64
	Actor     string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

const (
	TypeAssessmentCreated = "AssessmentCreated"
	TypeRiskComputed      = "RiskComputed"
)

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (actor, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Actor, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
