package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO compliance_audit_events
			(id, occurred_at, case_id, proposed_action, decision, compliance_status,
			 risk_score, approval_level, request_id, engine_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.CaseID,
		event.ProposedAction,
		event.Decision,
		event.ComplianceStatus,
		event.RiskScore,
		event.ApprovalLevel,
		event.RequestID,
		event.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID string) ([]Event, error) {
	query := `
		SELECT id, occurred_at, case_id, proposed_action, decision, compliance_status,
		       risk_score, approval_level, request_id, engine_version
		FROM compliance_audit_events
		WHERE case_id = $1
		ORDER BY occurred_at
	`
	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.CaseID,
			&e.ProposedAction,
			&e.Decision,
			&e.ComplianceStatus,
			&e.RiskScore,
			&e.ApprovalLevel,
			&e.RequestID,
			&e.EngineVersion,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
