package decision

import (
	"github.com/google/uuid"

	"fairgate/internal/compliance"
	"fairgate/internal/domain"
	"fairgate/internal/ethics"
	"fairgate/internal/explain"
)

// newDecisionID is the default decision ID source.
func newDecisionID() string {
	return uuid.NewString()
}

// EngineVersion is stamped into every decision record's audit metadata.
const EngineVersion = "1.0.0"

// Config carries the arbitration constants. Defaults match the published
// engine contract; tests override confidences to probe arbitration branches.
type Config struct {
	// EngineVersion is reported in audit metadata.
	EngineVersion string

	// DefaultConfidence applies to every decision unless a branch overrides it.
	DefaultConfidence float64

	// AllowedConfidence applies when every check passes cleanly.
	AllowedConfidence float64
}

// DefaultConfig returns the published arbitration constants.
func DefaultConfig() Config {
	return Config{
		EngineVersion:     EngineVersion,
		DefaultConfidence: 0.85,
		AllowedConfidence: 0.92,
	}
}

// HumanOverride describes whether and how a human may override the decision.
type HumanOverride struct {
	Allowed               bool                 `json:"allowed"`
	RequiresJustification bool                 `json:"requires_justification"`
	ApprovalLevel         domain.ApprovalLevel `json:"approval_level"`
}

// AuditMetadata ties a record to its evaluation for downstream audit queries.
type AuditMetadata struct {
	DecisionID            string `json:"decision_id"`
	Timestamp             string `json:"timestamp"`
	DecisionEngineVersion string `json:"decision_engine_version"`
}

// Record is the complete decision output. It is immutable once produced and
// serializes as-is; field names and nesting are load-bearing for existing
// consumers.
type Record struct {
	CaseID     string `json:"case_id,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`

	ProposedAction string          `json:"proposed_action"`
	Decision       domain.Decision `json:"decision"`
	Confidence     float64         `json:"confidence"`

	ComplianceValidation  compliance.Result   `json:"compliance_validation"`
	EthicalRiskAssessment ethics.Assessment   `json:"ethical_risk_assessment"`
	Explanation           explain.Explanation `json:"explanation"`

	AllowedActions     []string                 `json:"allowed_actions"`
	BlockedActions     []string                 `json:"blocked_actions"`
	AlternativeActions []compliance.Alternative `json:"alternative_actions"`

	HumanOverride HumanOverride `json:"human_override"`
	AuditMetadata AuditMetadata `json:"audit_metadata"`
}
