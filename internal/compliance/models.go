package compliance

import "fairgate/internal/domain"

// CheckStatus is the outcome of a single regulatory check.
type CheckStatus string

const (
	CheckPass    CheckStatus = "PASS"
	CheckWarning CheckStatus = "WARNING"
	CheckFail    CheckStatus = "FAIL"
)

// Status is the aggregate outcome across all checks.
type Status string

const (
	StatusPassed             Status = "PASSED"
	StatusPassedWithWarnings Status = "PASSED_WITH_WARNINGS"
	StatusFailed             Status = "FAILED"
)

// Severity grades a violation. CRITICAL violations can escalate the approval
// level required to override a blocked action.
type Severity string

const (
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Rule identifiers for violations, stable across the wire format.
const (
	RuleTimeWindow       = "FDCPA_TIME_WINDOW"
	RuleContactFrequency = "CFPB_CONTACT_FREQUENCY"
	RuleConsent          = "TCPA_CONSENT_VIOLATION"
	RuleDisputeHandling  = "FDCPA_DISPUTE_HANDLING"
	RuleBankruptcyStay   = "BANKRUPTCY_AUTO_STAY_VIOLATION"
)

// Violation is a structured FAIL outcome carrying the legal basis, severity,
// and override eligibility, plus rule-specific detail fields.
type Violation struct {
	Rule            string   `json:"rule"`
	LegalReference  string   `json:"legal_reference"`
	Severity        Severity `json:"severity"`
	Reason          string   `json:"reason,omitempty"`
	OverrideAllowed bool     `json:"override_allowed"`

	NextAllowedTime   string           `json:"next_allowed_time,omitempty"`
	CurrentUsage      string           `json:"current_usage,omitempty"`
	ResetDate         string           `json:"reset_date,omitempty"`
	PotentialPenalty  string           `json:"potential_penalty,omitempty"`
	ConsentedChannels []domain.Channel `json:"consented_channels,omitempty"`
	BankruptcyCase    string           `json:"bankruptcy_case,omitempty"`
	FilingDate        string           `json:"filing_date,omitempty"`
	MandatoryAction   string           `json:"mandatory_action,omitempty"`
}

// Warning is a structured non-blocking concern raised by a check.
type Warning struct {
	Type                    string   `json:"type"`
	Description             string   `json:"description"`
	Policy                  string   `json:"policy,omitempty"`
	RequiredAction          string   `json:"required_action,omitempty"`
	VulnerabilityCategories []string `json:"vulnerability_categories,omitempty"`
}

// CheckResult is the outcome of one regulatory check.
type CheckResult struct {
	CheckName string      `json:"check_name"`
	Status    CheckStatus `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Violation *Violation  `json:"violation,omitempty"`
	Warning   *Warning    `json:"warning,omitempty"`
}

// Result aggregates all checks for one proposed action. Checks, violations,
// and warnings preserve check evaluation order.
type Result struct {
	Status     Status        `json:"status"`
	Checks     []CheckResult `json:"checks_performed"`
	Violations []Violation   `json:"violated_rules"`
	Warnings   []Warning     `json:"warnings"`
}

// HasViolation reports whether the result carries a violation of the given rule.
func (r Result) HasViolation(rule string) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Alternative is a compliant substitute for a blocked action.
type Alternative struct {
	Action           string `json:"action"`
	ComplianceStatus string `json:"compliance_status"`
	Reason           string `json:"reason"`
}

// Compliance status values for alternatives.
const (
	AlternativeAllowed          = "ALLOWED"
	AlternativeAllowedWithDelay = "ALLOWED_WITH_DELAY"
	AlternativeRequired         = "REQUIRED"
)
