package compliance

import (
	"fmt"

	"fairgate/internal/domain"
)

// SuggestAlternatives proposes compliant substitutes for a blocked action.
// Suggestions are ordered: consented email first, then a delayed retry on the
// blocked channel, then mandatory validation when a dispute blocks collection.
func (v *Validator) SuggestAlternatives(action string, cc domain.CaseContext, result Result) []Alternative {
	alternatives := []Alternative{}

	if domain.HasConsent(cc.ConsentStatus, domain.ChannelEmail) {
		alternatives = append(alternatives, Alternative{
			Action:           "send_email",
			ComplianceStatus: AlternativeAllowed,
			Reason:           "Email channel available with no time/frequency restrictions in most cases",
		})
	}

	ch := domain.ChannelFromAction(action)
	if limit, ok := v.policy.FrequencyLimits[ch]; ok {
		alternatives = append(alternatives, Alternative{
			Action:           fmt.Sprintf("wait_%dd_then_%s", limit.PeriodDays, ch),
			ComplianceStatus: AlternativeAllowedWithDelay,
			Reason:           fmt.Sprintf("Wait %d days for frequency limit reset", limit.PeriodDays),
		})
	}

	if result.HasViolation(RuleDisputeHandling) {
		alternatives = append(alternatives, Alternative{
			Action:           "provide_debt_validation",
			ComplianceStatus: AlternativeRequired,
			Reason:           "Legal requirement to validate debt before continued collection",
		})
	}

	return alternatives
}
