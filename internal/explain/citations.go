package explain

import "fairgate/internal/compliance"

// DefaultCitations maps violation rules to their legal citations. The
// fallback for unknown rules is a pointer at internal policy rather than an
// empty string.
func DefaultCitations() map[string]string {
	return map[string]string{
		compliance.RuleTimeWindow:       "FDCPA 15 USC § 1692c(a)(1)",
		compliance.RuleContactFrequency: "CFPB Regulation F 12 CFR § 1006.14",
		compliance.RuleConsent:          "TCPA 47 USC § 227",
		compliance.RuleDisputeHandling:  "FDCPA 15 USC § 1692g(b)",
		compliance.RuleBankruptcyStay:   "11 USC § 362 - Automatic Stay",
	}
}

const fallbackCitation = "See compliance policy"
