package explain

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"fairgate/internal/compliance"
	"fairgate/internal/domain"
	"fairgate/internal/ethics"
)

// GeneratorSuite tests the explanation sections per decision outcome.
//
// Justification: explanations are the audit-facing record of why an action
// was allowed or stopped. Section presence per outcome and the legal
// citations embedded in blocked narratives are contractual for reviewers.
type GeneratorSuite struct {
	suite.Suite
	gen *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.gen = NewGenerator()
}

func passedResult() compliance.Result {
	return compliance.Result{
		Status: compliance.StatusPassed,
		Checks: []compliance.CheckResult{
			{CheckName: "contact_time_window", Status: compliance.CheckPass},
			{CheckName: "frequency_limits", Status: compliance.CheckPass},
			{CheckName: "channel_consent", Status: compliance.CheckPass},
		},
	}
}

func (s *GeneratorSuite) TestAllowed() {
	cc := domain.CaseContext{
		DaysOverdue:    45,
		ConsentStatus:  "all",
		ContactHistory: domain.ContactHistory{PastContactCount: 2},
	}
	eth := ethics.Assessment{
		TotalScore:  12.5,
		RiskFactors: []string{"✓ Low contact frequency (within reasonable limits)"},
	}

	e := s.gen.Explain(domain.DecisionAllowed, "send_email", cc, passedResult(), eth)

	s.Run("summary renders action and score", func() {
		s.Contains(e.DecisionSummary, "Recommended Action: Send Email - Payment Reminder")
		s.Contains(e.DecisionSummary, "Decision: ✅ ALLOWED")
		s.Contains(e.DecisionSummary, "Ethical Risk Score: 12.5/100 (Low)")
	})

	s.Run("rationale covers urgency and checks", func() {
		s.Contains(e.WhyThisAction, "Case is 45 days overdue (moderate urgency) with 2 previous contact attempts.")
		s.Contains(e.WhyThisAction, "ML-predicted payment probability: 50% (medium likelihood of success).")
		s.Contains(e.WhyThisAction, "- Contact Time Window: PASS")
		s.Contains(e.WhyThisAction, "Ethical risk score: 12.5/100 (low harm potential)")
		s.Contains(e.WhyThisAction, "Positive indicators:")
	})

	s.Run("email outcome predicts dual probabilities", func() {
		s.Equal("50% probability of payment within 7 days; 78% probability of engagement (reply/call back)",
			e.ExpectedOutcome)
	})

	s.Run("blocked sections are absent", func() {
		s.Empty(e.WhyBlocked)
		s.Nil(e.WhyNotAlternatives)
		s.Empty(e.LegalJustification)
	})

	s.Run("principles include least harm and consent", func() {
		s.Contains(e.PrinciplesApplied,
			"✓ Least Harmful Action: Selected option with ethical risk score 12.5/100 (among available compliant alternatives)")
		s.Contains(e.PrinciplesApplied, "✓ Consent-First Principle: Using only consented channels (all)")
		s.Contains(e.PrinciplesApplied, "✓ Graduated Response: Action follows 2 previous contact attempt(s)")
	})
}

func (s *GeneratorSuite) TestBlocked() {
	cc := domain.CaseContext{ConsentStatus: "email"}
	comp := compliance.Result{
		Status: compliance.StatusFailed,
		Violations: []compliance.Violation{
			{
				Rule:             compliance.RuleConsent,
				Reason:           "SMS channel not consented (consent: email)",
				Severity:         compliance.SeverityCritical,
				OverrideAllowed:  true,
				PotentialPenalty: "$500-$1,500 per message",
			},
			{
				Rule:            compliance.RuleDisputeHandling,
				Reason:          "Debt disputed - validation required before continued collection",
				Severity:        compliance.SeverityCritical,
				OverrideAllowed: false,
			},
		},
	}
	eth := ethics.Assessment{TotalScore: 35}

	e := s.gen.Explain(domain.DecisionBlocked, "send_sms", cc, comp, eth)

	s.Run("summary counts violations", func() {
		s.Contains(e.DecisionSummary, "Decision: 🚫 BLOCKED")
		s.Contains(e.DecisionSummary, "Compliance Status: FAILED (2 violations)")
	})

	s.Run("blocked reasons carry citations and penalties", func() {
		s.Require().Len(e.WhyBlocked, 2)
		s.Contains(e.WhyBlocked[0], "LEGAL VIOLATION: SMS channel not consented (consent: email)")
		s.Contains(e.WhyBlocked[0], "Legal Reference: TCPA 47 USC § 227")
		s.Contains(e.WhyBlocked[0], "Severity: CRITICAL")
		s.Contains(e.WhyBlocked[0], "Potential Penalty: $500-$1,500 per message")
		s.NotContains(e.WhyBlocked[1], "Potential Penalty")
	})

	s.Run("alternatives list is typed for blocked decisions", func() {
		alts, ok := e.WhyNotAlternatives.([]AlternativeExplanation)
		s.Require().True(ok)
		s.Require().Len(alts, 2)
		s.Equal("document_dispute_and_provide_validation", alts[0].Action)
		s.Equal(AlternativeMandatory, alts[0].Status)
		s.Equal("send_email_instead", alts[1].Action)
		s.Equal(AlternativeRecommended, alts[1].Status)
	})

	s.Run("legal justification enumerates violations", func() {
		s.Contains(e.LegalJustification, "Legal Violations Preventing Action:")
		s.Contains(e.LegalJustification, "1. TCPA_CONSENT_VIOLATION")
		s.Contains(e.LegalJustification, "2. FDCPA_DISPUTE_HANDLING")
		s.Contains(e.LegalJustification, "Override: NOT PERMITTED (critical violation)")
		s.Contains(e.LegalJustification, "regulatory liability")
	})
}

func (s *GeneratorSuite) TestBlockedHighRisk() {
	comp := compliance.Result{
		Status: compliance.StatusFailed,
		Violations: []compliance.Violation{
			{Rule: compliance.RuleContactFrequency, Reason: "PHONE limit reached: 3/3 in 7 days", Severity: compliance.SeverityHigh, OverrideAllowed: true},
		},
	}
	eth := ethics.Assessment{
		TotalScore: 82,
		RiskFactors: []string{
			"✗ High contact frequency: 6 attempts in past 7 days (high harassment risk)",
			"✓ Debtor showing good faith effort (payment promise)",
		},
	}

	e := s.gen.Explain(domain.DecisionBlocked, "send_phone_call", domain.CaseContext{}, comp, eth)

	s.Run("ethical concern appended above threshold", func() {
		s.Require().Len(e.WhyBlocked, 3)
		s.Contains(e.WhyBlocked[1], "ETHICAL CONCERN: Ethical risk score 82/100")
	})

	s.Run("only negative factors are listed", func() {
		s.Contains(e.WhyBlocked[2], "RISK FACTORS IDENTIFIED:")
		s.Contains(e.WhyBlocked[2], "✗ High contact frequency")
		s.NotContains(e.WhyBlocked[2], "✓")
	})

	s.Run("frequency violation suggests cooldown retry", func() {
		alts, ok := e.WhyNotAlternatives.([]AlternativeExplanation)
		s.Require().True(ok)
		s.Require().Len(alts, 1)
		s.Equal("wait_and_retry_after_cooldown", alts[0].Action)
		s.Equal(AlternativeAllowedWithDelay, alts[0].Status)
	})
}

func (s *GeneratorSuite) TestReviewRequired() {
	s.Run("vulnerability driven review", func() {
		cc := domain.CaseContext{
			DebtorInfo: domain.DebtorInfo{
				VulnerabilityFlag:    true,
				VulnerabilityReasons: []string{"elderly", "medical_hardship"},
			},
		}
		eth := ethics.Assessment{TotalScore: 16.25, Recommendation: ethics.RecommendProceedWithCaution}

		e := s.gen.Explain(domain.DecisionReviewRequired, "send_payment_plan_offer", cc, passedResult(), eth)

		s.Contains(e.DecisionSummary, "Decision: ⚠️ SUPERVISOR APPROVAL REQUIRED")
		s.Contains(e.WhyThisAction, "Vulnerability Status: elderly, medical_hardship")
		s.Contains(e.WhyThisAction, "Recommended Approach: Send Email - Payment Plan Offer")
		s.Contains(e.WhyThisAction, "- Payment plan offer balances recovery goals with ethical treatment")
		s.Contains(e.WhyThisAction, "- Medical hardship may limit earning capacity")
		s.Contains(e.WhyThisAction, "- Elderly status requires extra care in communication tone")

		approval, ok := e.WhyNotAlternatives.(string)
		s.Require().True(ok)
		s.Contains(approval, "Approval Required: Vulnerable debtor protection policy")
		s.Contains(approval, "Categories: elderly, medical_hardship")
	})

	s.Run("score driven review", func() {
		eth := ethics.Assessment{TotalScore: 55, Recommendation: ethics.RecommendSupervisorApproval}

		e := s.gen.Explain(domain.DecisionReviewRequired, "send_phone_call", domain.CaseContext{}, passedResult(), eth)

		s.Contains(e.WhyThisAction, "Vulnerability Status: Moderate ethical risk")
		s.NotContains(e.WhyThisAction, "Payment plan offer balances")

		approval, ok := e.WhyNotAlternatives.(string)
		s.Require().True(ok)
		s.Contains(approval, "Approval Required: Moderate ethical risk (score: 55/100)")
		s.Contains(approval, "Best balance of recovery and ethical treatment")
	})
}

func (s *GeneratorSuite) TestOutcomePrediction() {
	prob := 40.0
	cc := domain.CaseContext{PaymentProbability: &prob}

	s.Run("payment plan adds twenty points", func() {
		e := s.gen.Explain(domain.DecisionAllowed, "send_payment_plan_offer", cc, passedResult(), ethics.Assessment{})
		s.Equal("60% probability of payment arrangement within 7 days (payment plan offers typically increase engagement)",
			e.ExpectedOutcome)
	})

	s.Run("plain action reports raw probability", func() {
		e := s.gen.Explain(domain.DecisionAllowed, "escalate", cc, passedResult(), ethics.Assessment{})
		s.Equal("40% probability of successful payment outcome", e.ExpectedOutcome)
	})
}

func (s *GeneratorSuite) TestHumanizeAction() {
	tests := []struct {
		action string
		want   string
	}{
		{"send_email", "Send Email - Payment Reminder"},
		{"send_sms", "Send SMS - Payment Notice"},
		{"send_phone_call", "Place Phone Call - Account Discussion"},
		{"escalate_to_supervisor", "Escalate to Next Level"},
		{"custom_action", "Custom Action"},
	}
	for _, tt := range tests {
		s.Run(tt.action, func() {
			s.Equal(tt.want, humanizeAction(tt.action))
		})
	}
}

func (s *GeneratorSuite) TestUnknownRuleCitation() {
	comp := compliance.Result{
		Status:     compliance.StatusFailed,
		Violations: []compliance.Violation{{Rule: "STATE_LAW_XYZ", Reason: "State restriction", Severity: compliance.SeverityHigh}},
	}
	e := s.gen.Explain(domain.DecisionBlocked, "send_email", domain.CaseContext{}, comp, ethics.Assessment{})

	s.Contains(e.WhyBlocked[0], "Legal Reference: See compliance policy")
}
