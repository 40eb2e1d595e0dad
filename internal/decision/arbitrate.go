package decision

import (
	"fmt"

	"fairgate/internal/compliance"
	"fairgate/internal/domain"
	"fairgate/internal/ethics"
)

// verdict is the outcome of arbitration, before explanation and record
// assembly.
type verdict struct {
	decision        domain.Decision
	reason          string
	confidence      float64
	overrideAllowed bool
	approvalLevel   domain.ApprovalLevel
	allowedActions  []string
	blockedActions  []string
}

// arbitrate combines the compliance and ethics results into a final decision.
// Precedence, first match wins: regulatory failure, then ethical veto, then
// supervisor triggers, then compliance warnings, then allowed.
func (c Config) arbitrate(action string, cc domain.CaseContext, comp compliance.Result, eth ethics.Assessment) verdict {
	if comp.Status == compliance.StatusFailed {
		overrideAllowed := true
		approval := domain.ApprovalSupervisor
		for _, v := range comp.Violations {
			if !v.OverrideAllowed {
				overrideAllowed = false
			}
			if v.Severity == compliance.SeverityCritical {
				approval = domain.ApprovalComplianceOfficer
			}
		}
		return verdict{
			decision:        domain.DecisionBlocked,
			reason:          "Compliance validation failed",
			confidence:      c.DefaultConfidence,
			overrideAllowed: overrideAllowed,
			approvalLevel:   approval,
			allowedActions:  []string{},
			blockedActions:  []string{action},
		}
	}

	if eth.Recommendation == ethics.RecommendDoNotProceed {
		return verdict{
			decision:        domain.DecisionBlocked,
			reason:          fmt.Sprintf("Ethical risk too high (%v/100)", eth.TotalScore),
			confidence:      c.DefaultConfidence,
			overrideAllowed: true,
			approvalLevel:   domain.ApprovalComplianceOfficer,
			allowedActions:  []string{},
			blockedActions:  []string{action},
		}
	}

	if eth.Recommendation == ethics.RecommendSupervisorApproval || cc.DebtorInfo.VulnerabilityFlag {
		return verdict{
			decision:        domain.DecisionReviewRequired,
			reason:          "Vulnerable debtor or moderate ethical risk",
			confidence:      c.DefaultConfidence,
			overrideAllowed: true,
			approvalLevel:   domain.ApprovalSupervisor,
			allowedActions:  []string{},
			blockedActions:  []string{},
		}
	}

	if comp.Status == compliance.StatusPassedWithWarnings {
		return verdict{
			decision:        domain.DecisionReviewRequired,
			reason:          "Compliance warnings detected",
			confidence:      c.DefaultConfidence,
			overrideAllowed: true,
			approvalLevel:   domain.ApprovalSupervisor,
			allowedActions:  []string{action},
			blockedActions:  []string{},
		}
	}

	return verdict{
		decision:        domain.DecisionAllowed,
		reason:          "All checks passed",
		confidence:      c.AllowedConfidence,
		overrideAllowed: false,
		approvalLevel:   domain.ApprovalSupervisor,
		allowedActions:  []string{action},
		blockedActions:  []string{},
	}
}
