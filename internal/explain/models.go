package explain

// AlternativeExplanation describes one safer substitute for a blocked action.
type AlternativeExplanation struct {
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	Status    string `json:"status"`
}

// Alternative status values in blocked-action explanations.
const (
	AlternativeMandatory        = "MANDATORY"
	AlternativeRecommended      = "RECOMMENDED"
	AlternativeAllowedWithDelay = "ALLOWED_WITH_DELAY"
)

// Explanation is the multi-section, reviewer-facing narrative for one
// decision. Sections not applicable to the decision outcome are omitted from
// the encoded form.
//
// WhyNotAlternatives is a string for review-required decisions and a list of
// AlternativeExplanation for blocked ones; it stays untyped so the wire shape
// matches what existing consumers already parse.
type Explanation struct {
	DecisionSummary    string   `json:"decision_summary"`
	WhyThisAction      string   `json:"why_this_action,omitempty"`
	WhyNotAlternatives any      `json:"why_not_alternatives,omitempty"`
	WhyBlocked         []string `json:"why_blocked,omitempty"`
	PrinciplesApplied  []string `json:"principles_applied"`
	LegalJustification string   `json:"legal_justification,omitempty"`
	ExpectedOutcome    string   `json:"expected_outcome,omitempty"`
}
