package ethics

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"fairgate/internal/domain"
)

// ScorerSuite tests the risk formulas and recommendation tiers.
//
// Justification: the dimension formulas carry exact coefficients and caps
// that downstream arbitration depends on. Table cases pin the arithmetic;
// scenario cases pin the tier boundaries at 40 and 70.
type ScorerSuite struct {
	suite.Suite
	scorer *Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerSuite))
}

func (s *ScorerSuite) SetupTest() {
	s.scorer = NewScorer()
}

func (s *ScorerSuite) TestHarassmentRisk() {
	s.Run("zero for untouched case", func() {
		a := s.scorer.Assess("send_email", domain.CaseContext{})
		s.Zero(a.RiskBreakdown.HarassmentRisk)
	})

	s.Run("frequency component is 15 per contact capped at 60", func() {
		events := func(n int) []domain.ContactEvent {
			es := make([]domain.ContactEvent, n)
			for i := range es {
				es[i] = domain.ContactEvent{Channel: "email"}
			}
			return es
		}

		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{ContactsLast7Days: events(2)}}
		s.Equal(30.0, s.scorer.Assess("send_sms", cc).RiskBreakdown.HarassmentRisk)

		cc.ContactHistory.ContactsLast7Days = events(10)
		s.Equal(60.0, s.scorer.Assess("send_sms", cc).RiskBreakdown.HarassmentRisk)
	})

	s.Run("same channel repetition adds up to 25", func() {
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{
			ContactsLast7Days: []domain.ContactEvent{
				{Channel: "sms"}, {Channel: "sms"},
			},
		}}
		// 2 contacts * 15 = 30, same channel ratio 1.0 * 25 = 25
		s.Equal(55.0, s.scorer.Assess("send_sms", cc).RiskBreakdown.HarassmentRisk)
	})

	s.Run("aggressive tone adds up to 20", func() {
		// 3 aggressive phrases saturate tone: demand, immediately, final notice.
		a := s.scorer.Assess("demand_immediately_final notice", domain.CaseContext{})
		s.Equal(20.0, a.RiskBreakdown.HarassmentRisk)
	})
}

func (s *ScorerSuite) TestPressureRisk() {
	s.Run("escalations contribute 20 each capped at 40", func() {
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{EscalationCount: 1}}
		s.Equal(20.0, s.scorer.Assess("send_email", cc).RiskBreakdown.PsychologicalPressureRisk)

		cc.ContactHistory.EscalationCount = 5
		s.Equal(40.0, s.scorer.Assess("send_email", cc).RiskBreakdown.PsychologicalPressureRisk)
	})

	s.Run("legal threat on a fresh case adds 30", func() {
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{PastContactCount: 1}}
		// "legal action" is both aggressive (tone) and a legal keyword; the
		// pressure dimension sees urgency 0, time pressure 0, legal 30.
		a := s.scorer.Assess("threaten_legal action", cc)
		s.Equal(30.0, a.RiskBreakdown.PsychologicalPressureRisk)
	})

	s.Run("legal language after sustained contact is not flagged", func() {
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{PastContactCount: 5}}
		a := s.scorer.Assess("legal_referral", cc)
		s.Equal(0.0, a.RiskBreakdown.PsychologicalPressureRisk)
	})

	s.Run("deadline on a young case adds 8", func() {
		cc := domain.CaseContext{DaysOverdue: 30}
		a := s.scorer.Assess("email_with_deadline", cc)
		// deadline is also an urgency keyword: 1/2 * 15 + 0.8 * 10 = 15.5
		s.Equal(15.5, a.RiskBreakdown.PsychologicalPressureRisk)
	})

	s.Run("deadline on an old case carries no time pressure", func() {
		cc := domain.CaseContext{DaysOverdue: 90}
		a := s.scorer.Assess("email_with_deadline", cc)
		s.Equal(7.5, a.RiskBreakdown.PsychologicalPressureRisk)
	})
}

func (s *ScorerSuite) TestVulnerabilityRisk() {
	s.Run("zero without the flag", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityDetails: domain.VulnerabilityDetails{MedicalDebtIndicator: true},
		}}
		s.Zero(s.scorer.Assess("send_email", cc).RiskBreakdown.VulnerableDebtorRisk)
	})

	s.Run("flag alone scores 50", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{VulnerabilityFlag: true}}
		s.Equal(50.0, s.scorer.Assess("send_email", cc).RiskBreakdown.VulnerableDebtorRisk)
	})

	s.Run("elderly multiplier raises 50 to 65", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag:    true,
			VulnerabilityReasons: []string{"elderly"},
		}}
		s.Equal(65.0, s.scorer.Assess("send_email", cc).RiskBreakdown.VulnerableDebtorRisk)
	})

	s.Run("medical debt with full hardship clamps at 100", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag:    true,
			VulnerabilityReasons: []string{"cognitive_impairment"},
			VulnerabilityDetails: domain.VulnerabilityDetails{
				MedicalDebtIndicator: true,
				RecentHardship:       true,
				IncomeStatus:         domain.IncomeStatusFixedSocialSecurity,
			},
		}}
		// (50 + 30 + 1.0*20) * 1.3 = 130, clamped to 100.
		s.Equal(100.0, s.scorer.Assess("send_email", cc).RiskBreakdown.VulnerableDebtorRisk)
	})

	s.Run("hardship severity saturates at 1", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag: true,
			VulnerabilityDetails: domain.VulnerabilityDetails{
				RecentHardship: true,
				IncomeStatus:   domain.IncomeStatusFixedSocialSecurity,
			},
		}}
		// 50 + (0.5+0.3)*20 = 66
		s.Equal(66.0, s.scorer.Assess("send_email", cc).RiskBreakdown.VulnerableDebtorRisk)
	})
}

func (s *ScorerSuite) TestRecommendationTiers() {
	s.Run("empty case proceeds with caution", func() {
		a := s.scorer.Assess("send_email", domain.CaseContext{})
		s.Zero(a.TotalScore)
		s.Equal(RecommendProceedWithCaution, a.Recommendation)
	})

	s.Run("flagged elderly debtor stays advisory only", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag:    true,
			VulnerabilityReasons: []string{"elderly"},
		}}
		a := s.scorer.Assess("send_email", cc)
		// 65 * 0.25 = 16.25
		s.Equal(16.25, a.TotalScore)
		s.Equal(RecommendProceedWithCaution, a.Recommendation)
	})

	s.Run("heavy contact pressure requires supervisor approval", func() {
		count := 10
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{
			CountLast7Days:  &count,
			EscalationCount: 3,
		}}
		a := s.scorer.Assess("send_email", cc)
		// harassment 60 * 0.40 + pressure 40 * 0.35 = 38; below 40 still cautious.
		s.Equal(38.0, a.TotalScore)
		s.Equal(RecommendProceedWithCaution, a.Recommendation)

		cc.DebtorInfo.VulnerabilityFlag = true
		a = s.scorer.Assess("send_email", cc)
		// 38 + 50 * 0.25 = 50.5
		s.Equal(50.5, a.TotalScore)
		s.Equal(RecommendSupervisorApproval, a.Recommendation)
	})

	s.Run("maximal case must not proceed", func() {
		count := 10
		cc := domain.CaseContext{
			DaysOverdue: 10,
			ContactHistory: domain.ContactHistory{
				CountLast7Days:   &count,
				EscalationCount:  3,
				PastContactCount: 1,
			},
			DebtorInfo: domain.DebtorInfo{
				VulnerabilityFlag:    true,
				VulnerabilityReasons: []string{"elderly"},
				VulnerabilityDetails: domain.VulnerabilityDetails{MedicalDebtIndicator: true},
			},
		}
		a := s.scorer.Assess("demand_legal action_immediately_deadline", cc)
		s.GreaterOrEqual(a.TotalScore, 70.0)
		s.Equal(RecommendDoNotProceed, a.Recommendation)
	})
}

func (s *ScorerSuite) TestRiskFactors() {
	s.Run("quiet case reports low frequency", func() {
		a := s.scorer.Assess("send_email", domain.CaseContext{})
		s.Contains(a.RiskFactors, "✓ Low contact frequency (within reasonable limits)")
	})

	s.Run("payment promise is a good faith signal", func() {
		cc := domain.CaseContext{ResponseHistory: domain.ResponseHistoryPartialPaymentPromise}
		a := s.scorer.Assess("send_email", cc)
		s.Contains(a.RiskFactors, "✓ Debtor showing good faith effort (payment promise)")
	})

	s.Run("high contact frequency is named", func() {
		count := 6
		cc := domain.CaseContext{ContactHistory: domain.ContactHistory{
			CountLast7Days: &count,
		}}
		a := s.scorer.Assess("escalate_demand_immediately_final notice", cc)
		s.Contains(a.RiskFactors,
			"✗ High contact frequency: 6 attempts in past 7 days (high harassment risk)")
	})

	s.Run("vulnerable debtor is named with reasons", func() {
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag:    true,
			VulnerabilityReasons: []string{"elderly", "medical_hardship"},
			VulnerabilityDetails: domain.VulnerabilityDetails{MedicalDebtIndicator: true},
		}}
		a := s.scorer.Assess("send_email", cc)
		s.Contains(a.RiskFactors, "✗ Debtor flagged as vulnerable (elderly, medical_hardship)")
	})
}

func (s *ScorerSuite) TestHarmMinimizingAlternative() {
	s.Run("high risk suggests a payment plan", func() {
		count := 10
		cc := domain.CaseContext{DebtorInfo: domain.DebtorInfo{VulnerabilityFlag: true},
			ContactHistory: domain.ContactHistory{CountLast7Days: &count, EscalationCount: 3}}
		a := s.scorer.Assess("send_sms", cc)

		s.Equal("send_payment_plan_offer", a.HarmMinimizingAlternative.Action)
		s.Equal(22.0, a.HarmMinimizingAlternative.ExpectedRisk)
	})

	s.Run("low risk sms downgrades to email", func() {
		a := s.scorer.Assess("send_sms", domain.CaseContext{})
		s.Equal("send_email_reminder", a.HarmMinimizingAlternative.Action)
		s.Equal(10.0, a.HarmMinimizingAlternative.ExpectedRisk)
	})

	s.Run("non intrusive action waits and retries", func() {
		a := s.scorer.Assess("send_email", domain.CaseContext{})
		s.Equal("wait_72h_then_gentle_reminder", a.HarmMinimizingAlternative.Action)
		s.Equal(15.0, a.HarmMinimizingAlternative.ExpectedRisk)
	})
}

func (s *ScorerSuite) TestScoresStayInRange() {
	count := 50
	cc := domain.CaseContext{
		ContactHistory: domain.ContactHistory{
			CountLast7Days:   &count,
			EscalationCount:  20,
			PastContactCount: 0,
		},
		DebtorInfo: domain.DebtorInfo{
			VulnerabilityFlag:    true,
			VulnerabilityReasons: []string{"elderly"},
			VulnerabilityDetails: domain.VulnerabilityDetails{
				MedicalDebtIndicator: true,
				RecentHardship:       true,
				IncomeStatus:         domain.IncomeStatusFixedSocialSecurity,
			},
		},
	}
	a := s.scorer.Assess("demand_legal action_immediately_urgent_deadline_final notice", cc)

	for name, v := range map[string]float64{
		"total":         a.TotalScore,
		"harassment":    a.RiskBreakdown.HarassmentRisk,
		"pressure":      a.RiskBreakdown.PsychologicalPressureRisk,
		"vulnerability": a.RiskBreakdown.VulnerableDebtorRisk,
	} {
		s.GreaterOrEqual(v, 0.0, name)
		s.LessOrEqual(v, 100.0, name)
	}
}
