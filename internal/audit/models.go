package audit

import "time"

// Event is the audit trail entry for one decision evaluation. Keep it
// transport-agnostic so stores and sinks can fan out; the full decision
// record lives with the caller, this carries only the queryable summary.
type Event struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	CaseID           string    `json:"case_id,omitempty"`
	ProposedAction   string    `json:"proposed_action"`
	Decision         string    `json:"decision"`
	ComplianceStatus string    `json:"compliance_status"`
	RiskScore        float64   `json:"risk_score"`
	ApprovalLevel    string    `json:"approval_level"`
	RequestID        string    `json:"request_id,omitempty"`
	EngineVersion    string    `json:"engine_version"`
}
