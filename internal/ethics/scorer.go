// Package ethics quantifies the potential harm of a proposed collection
// action across three dimensions: harassment, psychological pressure, and
// vulnerable-debtor impact. Each dimension scores 0 to 100; a weighted total
// maps to an advisory recommendation.
package ethics

import (
	"fmt"
	"math"
	"strings"

	"fairgate/internal/domain"
)

// Scorer assesses ethical risk. It is stateless and safe for concurrent use.
type Scorer struct {
	weights    Weights
	thresholds Thresholds
	matcher    Matcher
}

// Option configures the Scorer.
type Option func(*Scorer)

// WithMatcher substitutes the keyword matcher, typically with an NLP-backed
// implementation.
func WithMatcher(m Matcher) Option {
	return func(s *Scorer) {
		s.matcher = m
	}
}

// WithWeights overrides the dimension weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// NewScorer builds a scorer with the default weights, thresholds, and
// substring keyword matcher.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
		matcher:    SubstringMatcher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assess scores the proposed action against the case context. It always
// returns a complete assessment; there is no error path.
func (s *Scorer) Assess(action string, cc domain.CaseContext) Assessment {
	harassment := s.harassmentRisk(action, cc)
	pressure := s.pressureRisk(action, cc)
	vulnerability := s.vulnerabilityRisk(cc)

	total := harassment*s.weights.Harassment +
		pressure*s.weights.PsychologicalPressure +
		vulnerability*s.weights.VulnerableDebtor

	return Assessment{
		TotalScore:     round2(total),
		Recommendation: s.recommend(total),
		RiskBreakdown: RiskBreakdown{
			HarassmentRisk:            round2(harassment),
			PsychologicalPressureRisk: round2(pressure),
			VulnerableDebtorRisk:      round2(vulnerability),
		},
		RiskFactors:               s.riskFactors(action, cc, harassment, pressure, vulnerability),
		HarmMinimizingAlternative: s.harmMinimizingAlternative(action, total),
	}
}

// harassmentRisk combines contact frequency, channel monotony, and message
// tone. Frequency contributes up to 60 points, channel repetition up to 25,
// tone up to 20.
func (s *Scorer) harassmentRisk(action string, cc domain.CaseContext) float64 {
	frequency := math.Min(float64(cc.ContactHistory.TotalLast7Days())*15, 60)

	ch := domain.ChannelFromAction(action)
	channel := cc.ContactHistory.SameChannelRatio(ch) * 25

	tone := s.messageTone(action) * 20

	return clamp(frequency + channel + tone)
}

// pressureRisk combines escalation history, urgency manipulation, artificial
// time pressure, and premature legal threats.
func (s *Scorer) pressureRisk(action string, cc domain.CaseContext) float64 {
	escalation := math.Min(float64(cc.ContactHistory.EscalationCount)*20, 40)

	urgency := s.urgencyManipulation(action) * 15
	timePressure := s.timePressure(action, cc) * 10
	legalThreat := s.falseLegalThreat(action, cc) * 30

	return clamp(escalation + urgency + timePressure + legalThreat)
}

// vulnerabilityRisk is zero unless the case carries a vulnerability flag.
// Flagged cases start at 50, add medical-debt and hardship components, and
// multiply by 1.3 for elderly or cognitively impaired debtors.
func (s *Scorer) vulnerabilityRisk(cc domain.CaseContext) float64 {
	if !cc.DebtorInfo.VulnerabilityFlag {
		return 0
	}

	risk := 50.0
	details := cc.DebtorInfo.VulnerabilityDetails
	if details.MedicalDebtIndicator {
		risk += 30
	}
	risk += s.hardshipSeverity(details) * 20

	if cc.DebtorInfo.HasVulnerabilityReason("elderly") || cc.DebtorInfo.HasVulnerabilityReason("cognitive_impairment") {
		risk *= 1.3
	}

	return clamp(risk)
}

func (s *Scorer) recommend(total float64) Recommendation {
	switch {
	case total >= s.thresholds.Medium:
		return RecommendDoNotProceed
	case total >= s.thresholds.Low:
		return RecommendSupervisorApproval
	default:
		return RecommendProceedWithCaution
	}
}

// riskFactors produces the human-readable factor list shown to reviewers.
// Negative factors carry a leading cross mark, positive factors a check mark.
func (s *Scorer) riskFactors(action string, cc domain.CaseContext, harassment, pressure, vulnerability float64) []string {
	factors := []string{}

	if harassment > 60 {
		factors = append(factors, fmt.Sprintf(
			"✗ High contact frequency: %d attempts in past 7 days (high harassment risk)",
			cc.ContactHistory.TotalLast7Days()))
	}

	if pressure > 60 {
		lower := strings.ToLower(action)
		if strings.Contains(lower, "escalat") || strings.Contains(lower, "legal") {
			factors = append(factors, "✗ Language contains escalation threats without legal basis")
		}
	}

	if vulnerability > 60 {
		factors = append(factors, fmt.Sprintf(
			"✗ Debtor flagged as vulnerable (%s)",
			strings.Join(cc.DebtorInfo.VulnerabilityReasons, ", ")))
	}

	if harassment < 30 {
		factors = append(factors, "✓ Low contact frequency (within reasonable limits)")
	}

	if cc.ResponseHistory == domain.ResponseHistoryPartialPaymentPromise {
		factors = append(factors, "✓ Debtor showing good faith effort (payment promise)")
	}

	return factors
}

// harmMinimizingAlternative suggests the least harmful substitute for the
// proposed action given its current risk.
func (s *Scorer) harmMinimizingAlternative(action string, currentRisk float64) Alternative {
	lower := strings.ToLower(action)

	if currentRisk > 50 && !strings.Contains(lower, "payment_plan") {
		return Alternative{
			Action:       "send_payment_plan_offer",
			ExpectedRisk: 22,
			Rationale:    "Empathetic approach more likely to succeed with less harm",
		}
	}

	if strings.Contains(lower, "sms") || strings.Contains(lower, "phone") {
		return Alternative{
			Action:       "send_email_reminder",
			ExpectedRisk: math.Max(currentRisk-15, 10),
			Rationale:    "Email allows debtor to respond at convenience, less intrusive",
		}
	}

	return Alternative{
		Action:       "wait_72h_then_gentle_reminder",
		ExpectedRisk: math.Max(currentRisk-20, 15),
		Rationale:    "Additional time may allow debtor to respond without pressure",
	}
}

// messageTone scores tone aggressiveness on a 0 to 1 scale; three aggressive
// phrases saturate it.
func (s *Scorer) messageTone(action string) float64 {
	return math.Min(float64(s.matcher.Count(action, AggressiveKeywords))/3, 1)
}

// urgencyManipulation scores manufactured urgency on a 0 to 1 scale; two
// urgency phrases saturate it.
func (s *Scorer) urgencyManipulation(action string) float64 {
	return math.Min(float64(s.matcher.Count(action, UrgencyKeywords))/2, 1)
}

// timePressure flags deadline language on cases that are not yet
// time-critical.
func (s *Scorer) timePressure(action string, cc domain.CaseContext) float64 {
	if strings.Contains(strings.ToLower(action), "deadline") && cc.DaysOverdue < 60 {
		return 0.8
	}
	return 0
}

// falseLegalThreat flags legal threat language before the case has been
// through enough contact attempts to plausibly justify it.
func (s *Scorer) falseLegalThreat(action string, cc domain.CaseContext) float64 {
	if s.matcher.Any(action, LegalKeywords) && cc.ContactHistory.PastContactCount < 4 {
		return 1
	}
	return 0
}

func (s *Scorer) hardshipSeverity(details domain.VulnerabilityDetails) float64 {
	severity := 0.0
	if details.RecentHardship {
		severity += 0.5
	}
	if details.IncomeStatus == domain.IncomeStatusFixedSocialSecurity {
		severity += 0.3
	}
	if details.MedicalDebtIndicator {
		severity += 0.2
	}
	return math.Min(severity, 1)
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
