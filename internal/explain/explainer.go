// Package explain renders decisions into reviewer-facing natural language
// with legal citations. Generation never fails: missing inputs degrade to
// neutral wording, since an unexplained decision is worse than a blandly
// explained one.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"fairgate/internal/compliance"
	"fairgate/internal/domain"
	"fairgate/internal/ethics"
)

// Generator renders explanations. It is stateless and safe for concurrent
// use.
type Generator struct {
	citations map[string]string
}

// NewGenerator builds a generator with the default citation table.
func NewGenerator() *Generator {
	return &Generator{citations: DefaultCitations()}
}

// Explain produces the full explanation for one decision. Sections are
// populated according to the outcome: allowed actions get a rationale and
// outcome prediction, blocked actions get violation detail and alternatives,
// review-required actions get approval context.
func (g *Generator) Explain(
	decision domain.Decision,
	action string,
	cc domain.CaseContext,
	comp compliance.Result,
	eth ethics.Assessment,
) Explanation {
	e := Explanation{
		DecisionSummary:   g.decisionSummary(decision, action, comp, eth),
		PrinciplesApplied: g.principles(decision, cc, eth),
	}

	switch decision {
	case domain.DecisionAllowed:
		e.WhyThisAction = g.explainAllowed(cc, comp, eth)
		e.ExpectedOutcome = g.outcomePrediction(action, cc)
	case domain.DecisionBlocked:
		e.WhyBlocked = g.explainBlocked(comp, eth)
		e.WhyNotAlternatives = g.saferAlternatives(action, cc, comp)
		e.LegalJustification = g.legalJustification(comp)
	case domain.DecisionReviewRequired:
		e.WhyThisAction = g.explainReviewRequired(action, cc, eth)
		e.WhyNotAlternatives = g.explainApprovalNeeded(cc, eth)
	}

	return e
}

func (g *Generator) decisionSummary(decision domain.Decision, action string, comp compliance.Result, eth ethics.Assessment) string {
	score := formatScore(eth.TotalScore)

	switch decision {
	case domain.DecisionAllowed:
		return strings.TrimSpace(fmt.Sprintf(`
Recommended Action: %s

Decision: ✅ ALLOWED
Compliance Status: %s
Ethical Risk Score: %s/100 (Low)

This action has passed all compliance checks and carries low ethical risk.
Proceed with action as recommended.
`, humanizeAction(action), comp.Status, score))

	case domain.DecisionBlocked:
		plural := ""
		if len(comp.Violations) > 1 {
			plural = "s"
		}
		return strings.TrimSpace(fmt.Sprintf(`
Proposed Action: %s

Decision: 🚫 BLOCKED
Compliance Status: FAILED (%d violation%s)
Ethical Risk Score: %s/100

This action violates regulatory requirements and cannot proceed. See details below.
`, humanizeAction(action), len(comp.Violations), plural, score))

	default:
		return strings.TrimSpace(fmt.Sprintf(`
Proposed Action: %s

Decision: ⚠️ SUPERVISOR APPROVAL REQUIRED
Compliance Status: %s
Ethical Risk Score: %s/100 (Moderate)
Recommendation: %s

This action requires human review before proceeding. See approval requirements below.
`, humanizeAction(action), comp.Status, score, eth.Recommendation))
	}
}

func (g *Generator) explainAllowed(cc domain.CaseContext, comp compliance.Result, eth ethics.Assessment) string {
	urgency := "high"
	if cc.DaysOverdue < 60 {
		urgency = "moderate"
	}

	prob := cc.PaymentProbabilityOrDefault()
	likelihood := "low"
	switch {
	case prob > 60:
		likelihood = "high"
	case prob > 40:
		likelihood = "medium"
	}

	pastContacts := cc.ContactHistory.PastContactCount
	plural := "s"
	if pastContacts == 1 {
		plural = ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Case is %d days overdue (%s urgency) with %d previous contact attempt%s.\n\n",
		cc.DaysOverdue, urgency, pastContacts, plural)
	fmt.Fprintf(&b, "ML-predicted payment probability: %s%% (%s likelihood of success).\n\n",
		formatScore(prob), likelihood)

	b.WriteString("Compliance validation:\n")
	for _, check := range comp.Checks {
		fmt.Fprintf(&b, "- %s: %s\n", titleize(check.CheckName), check.Status)
	}

	harm := "moderate"
	if eth.TotalScore < 40 {
		harm = "low"
	}
	fmt.Fprintf(&b, "\nEthical risk score: %s/100 (%s harm potential)\n", formatScore(eth.TotalScore), harm)

	var positive []string
	for _, f := range eth.RiskFactors {
		if strings.HasPrefix(f, "✓") {
			positive = append(positive, f)
		}
	}
	if len(positive) > 0 {
		b.WriteString("\nPositive indicators:\n")
		for _, f := range positive {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	return strings.TrimSpace(b.String())
}

func (g *Generator) explainBlocked(comp compliance.Result, eth ethics.Assessment) []string {
	reasons := []string{}

	for _, v := range comp.Violations {
		reason := v.Reason
		if reason == "" {
			reason = "Unspecified violation"
		}
		text := fmt.Sprintf("LEGAL VIOLATION: %s", reason)
		text += fmt.Sprintf("\n  Legal Reference: %s", g.citation(v.Rule))
		text += fmt.Sprintf("\n  Severity: %s", v.Severity)
		if v.PotentialPenalty != "" {
			text += fmt.Sprintf("\n  Potential Penalty: %s", v.PotentialPenalty)
		}
		reasons = append(reasons, text)
	}

	if eth.TotalScore > 70 {
		reasons = append(reasons, fmt.Sprintf(
			"ETHICAL CONCERN: Ethical risk score %s/100 exceeds acceptable threshold. "+
				"This action carries high risk of harassment claims or consumer harm.",
			formatScore(eth.TotalScore)))
	}

	var negative []string
	for _, f := range eth.RiskFactors {
		if strings.HasPrefix(f, "✗") {
			negative = append(negative, f)
		}
	}
	if len(negative) > 0 {
		reasons = append(reasons, "RISK FACTORS IDENTIFIED:\n  "+strings.Join(negative, "\n  "))
	}

	return reasons
}

func (g *Generator) saferAlternatives(action string, cc domain.CaseContext, comp compliance.Result) []AlternativeExplanation {
	alternatives := []AlternativeExplanation{}

	if comp.HasViolation(compliance.RuleDisputeHandling) {
		alternatives = append(alternatives, AlternativeExplanation{
			Action:    "document_dispute_and_provide_validation",
			Rationale: "Legal requirement under FDCPA §809(b) to validate debt before continued collection",
			Status:    AlternativeMandatory,
		})
	}

	if domain.HasConsent(cc.ConsentStatus, domain.ChannelEmail) && domain.ChannelFromAction(action) == domain.ChannelSMS {
		alternatives = append(alternatives, AlternativeExplanation{
			Action:    "send_email_instead",
			Rationale: "Email channel has consent and avoids TCPA violation risk",
			Status:    AlternativeRecommended,
		})
	}

	if comp.HasViolation(compliance.RuleContactFrequency) {
		alternatives = append(alternatives, AlternativeExplanation{
			Action:    "wait_and_retry_after_cooldown",
			Rationale: "Allows frequency limit reset period to pass, then retry with compliant timing",
			Status:    AlternativeAllowedWithDelay,
		})
	}

	return alternatives
}

func (g *Generator) explainReviewRequired(action string, cc domain.CaseContext, eth ethics.Assessment) string {
	status := "Moderate ethical risk"
	if len(cc.DebtorInfo.VulnerabilityReasons) > 0 {
		status = strings.Join(cc.DebtorInfo.VulnerabilityReasons, ", ")
	}

	var b strings.Builder
	b.WriteString("This case requires supervisor review for the following reasons:\n\n")
	fmt.Fprintf(&b, "Vulnerability Status: %s\n", status)
	fmt.Fprintf(&b, "Ethical Risk Score: %s/100 (Moderate - between 40 and 70)\n\n", formatScore(eth.TotalScore))
	fmt.Fprintf(&b, "Recommended Approach: %s\n\n", humanizeAction(action))
	b.WriteString("Rationale:\n")

	if strings.Contains(strings.ToLower(action), "payment_plan") {
		b.WriteString("- Payment plan offer balances recovery goals with ethical treatment\n")
		b.WriteString("- Debtor has shown willingness to pay, suggesting good faith effort\n")
	}
	b.WriteString("- Empathetic approach more likely to succeed than aggressive tactics\n")

	if len(cc.DebtorInfo.VulnerabilityReasons) > 0 {
		b.WriteString("\nVulnerable Debtor Considerations:\n")
		if cc.DebtorInfo.HasVulnerabilityReason("medical_hardship") {
			b.WriteString("- Medical hardship may limit earning capacity\n")
		}
		if cc.DebtorInfo.HasVulnerabilityReason("elderly") {
			b.WriteString("- Elderly status requires extra care in communication tone\n")
		}
	}

	b.WriteString("\nSupervisor should review and approve approach before proceeding.")
	return strings.TrimSpace(b.String())
}

func (g *Generator) explainApprovalNeeded(cc domain.CaseContext, eth ethics.Assessment) string {
	if len(cc.DebtorInfo.VulnerabilityReasons) > 0 {
		return strings.TrimSpace(fmt.Sprintf(`
Approval Required: Vulnerable debtor protection policy

Categories: %s

Policy Requirements:
- All actions on vulnerable debtors must be reviewed by supervisor
- Ensure communication tone is empathetic and non-coercive
- Verify proposed terms are reasonable given debtor circumstances
- Document approval decision and reasoning

This is a company policy safeguard to prevent harm to vulnerable consumers.
`, strings.Join(cc.DebtorInfo.VulnerabilityReasons, ", ")))
	}

	return strings.TrimSpace(fmt.Sprintf(`
Approval Required: Moderate ethical risk (score: %s/100)

While this action passes compliance checks, the ethical risk score falls in the moderate range (40-70).
Supervisor review ensures:
- Approach is proportional to case circumstances
- No unintended pressure tactics
- Best balance of recovery and ethical treatment

Approval serves as quality control checkpoint for borderline cases.
`, formatScore(eth.TotalScore)))
}

func (g *Generator) principles(decision domain.Decision, cc domain.CaseContext, eth ethics.Assessment) []string {
	principles := []string{}

	if decision == domain.DecisionAllowed {
		principles = append(principles, fmt.Sprintf(
			"✓ Least Harmful Action: Selected option with ethical risk score %s/100 "+
				"(among available compliant alternatives)", formatScore(eth.TotalScore)))
	}

	if cc.ConsentStatus != "" && cc.ConsentStatus != "none" {
		principles = append(principles, fmt.Sprintf(
			"✓ Consent-First Principle: Using only consented channels (%s)", cc.ConsentStatus))
	}

	if cc.DebtorInfo.VulnerabilityFlag {
		principles = append(principles,
			"✓ Vulnerable Debtor Protection: Enhanced safeguards applied for vulnerable consumer")
	}

	principles = append(principles,
		"✓ Transparency Principle: Communication must be factually accurate with no misleading urgency")

	if cc.ContactHistory.PastContactCount > 0 {
		principles = append(principles, fmt.Sprintf(
			"✓ Graduated Response: Action follows %d previous contact attempt(s)",
			cc.ContactHistory.PastContactCount))
	}

	return principles
}

func (g *Generator) legalJustification(comp compliance.Result) string {
	if len(comp.Violations) == 0 {
		return "No legal violations detected."
	}

	var b strings.Builder
	b.WriteString("Legal Violations Preventing Action:\n\n")

	for i, v := range comp.Violations {
		reason := v.Reason
		if reason == "" {
			reason = "Unspecified"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, v.Rule)
		fmt.Fprintf(&b, "   Citation: %s\n", g.citation(v.Rule))
		fmt.Fprintf(&b, "   Violation: %s\n", reason)
		if v.PotentialPenalty != "" {
			fmt.Fprintf(&b, "   Penalty Risk: %s\n", v.PotentialPenalty)
		}
		if !v.OverrideAllowed {
			b.WriteString("   Override: NOT PERMITTED (critical violation)\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Proceeding with this action would expose the company to regulatory liability.")
	return b.String()
}

func (g *Generator) outcomePrediction(action string, cc domain.CaseContext) string {
	prob := cc.PaymentProbabilityOrDefault()
	lower := strings.ToLower(action)

	switch {
	case strings.Contains(lower, "payment_plan"):
		return fmt.Sprintf("%s%% probability of payment arrangement within 7 days (payment plan offers typically increase engagement)",
			formatScore(prob+20))
	case strings.Contains(lower, "email"):
		return fmt.Sprintf("%s%% probability of payment within 7 days; %s%% probability of engagement (reply/call back)",
			formatScore(prob), formatScore(prob+28))
	default:
		return fmt.Sprintf("%s%% probability of successful payment outcome", formatScore(prob))
	}
}

func (g *Generator) citation(rule string) string {
	if c, ok := g.citations[rule]; ok {
		return c
	}
	return fallbackCitation
}

// actionNames maps action codes to display names. Matching is ordered
// substring matching, so the order here is significant.
var actionNames = []struct {
	code string
	name string
}{
	{"send_email", "Send Email - Payment Reminder"},
	{"send_sms", "Send SMS - Payment Notice"},
	{"send_phone_call", "Place Phone Call - Account Discussion"},
	{"send_payment_plan_offer", "Send Email - Payment Plan Offer"},
	{"escalate", "Escalate to Next Level"},
	{"legal_referral", "Refer to Legal Department"},
	{"provide_debt_validation", "Send Debt Validation Notice"},
}

func humanizeAction(action string) string {
	lower := strings.ToLower(action)
	for _, a := range actionNames {
		if strings.Contains(lower, a.code) {
			return a.name
		}
	}
	return titleize(action)
}

// titleize converts snake_case identifiers to spaced Title Case.
func titleize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatScore renders a score without trailing zeros, so whole numbers print
// as integers.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
