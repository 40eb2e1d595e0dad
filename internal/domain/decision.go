package domain

// Decision enumerates the terminal outcomes of one evaluation. Every request
// resolves to exactly one of these; no request spans multiple decisions.
type Decision string

const (
	DecisionAllowed        Decision = "ALLOWED"
	DecisionBlocked        Decision = "BLOCKED"
	DecisionReviewRequired Decision = "REVIEW_REQUIRED"
)

// ApprovalLevel identifies who may review or override a decision.
type ApprovalLevel string

const (
	ApprovalSupervisor        ApprovalLevel = "supervisor"
	ApprovalComplianceOfficer ApprovalLevel = "compliance_officer"
)
