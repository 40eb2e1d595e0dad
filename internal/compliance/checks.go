package compliance

import (
	"fmt"
	"strings"
	"time"

	"fairgate/internal/domain"
)

// Check names, in evaluation order.
const (
	CheckNameContactTimeWindow = "contact_time_window"
	CheckNameFrequencyLimits   = "frequency_limits"
	CheckNameChannelConsent    = "channel_consent"
	CheckNameDisputeHandling   = "dispute_handling"
	CheckNameVulnerableDebtor  = "vulnerable_debtor"
	CheckNameBankruptcyStay    = "bankruptcy_stay"
)

// checkContactTimeWindow enforces FDCPA §805(a): no voice or SMS contact
// before 08:00 or after 21:00 debtor local time. Timezone resolution failures
// degrade to WARNING rather than blocking the pipeline.
func (v *Validator) checkContactTimeWindow(action string, cc domain.CaseContext, now time.Time) CheckResult {
	ch := domain.ChannelFromAction(action)
	if ch != domain.ChannelPhone && ch != domain.ChannelSMS {
		return CheckResult{CheckName: CheckNameContactTimeWindow, Status: CheckPass, Reason: "N/A for this channel"}
	}

	tzName := cc.DebtorInfo.Timezone
	if tzName == "" {
		tzName = v.policy.DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return CheckResult{
			CheckName: CheckNameContactTimeWindow,
			Status:    CheckWarning,
			Reason:    fmt.Sprintf("Timezone error: %v", err),
		}
	}

	local := now.In(loc)
	hour := local.Hour()
	if hour < v.policy.ContactHours.Start || hour >= v.policy.ContactHours.End {
		next := time.Date(local.Year(), local.Month(), local.Day(), v.policy.ContactHours.Start, 0, 0, 0, loc)
		if hour >= v.policy.ContactHours.End {
			next = next.AddDate(0, 0, 1)
		}
		return CheckResult{
			CheckName: CheckNameContactTimeWindow,
			Status:    CheckFail,
			Reason:    fmt.Sprintf("Contact attempted at %02d:00 (outside allowed hours 8 AM - 9 PM)", hour),
			Violation: &Violation{
				Rule:            RuleTimeWindow,
				LegalReference:  "FDCPA 15 USC § 1692c(a)(1)",
				Severity:        SeverityHigh,
				Reason:          fmt.Sprintf("Contact attempted at %02d:00 (outside allowed hours 8 AM - 9 PM)", hour),
				OverrideAllowed: true,
				NextAllowedTime: next.Format(time.RFC3339),
			},
		}
	}

	return CheckResult{CheckName: CheckNameContactTimeWindow, Status: CheckPass, Reason: "Within allowed hours"}
}

// checkFrequencyLimits enforces CFPB Regulation F contact frequency caps per
// channel.
func (v *Validator) checkFrequencyLimits(action string, cc domain.CaseContext, now time.Time) CheckResult {
	ch := domain.ChannelFromAction(action)
	limit, ok := v.policy.FrequencyLimits[ch]
	if !ok {
		return CheckResult{CheckName: CheckNameFrequencyLimits, Status: CheckPass, Reason: "No limit for this action"}
	}

	used := cc.ContactHistory.CountInWindow(ch, limit.PeriodDays)
	channelName := strings.ToUpper(string(ch))

	if used >= limit.Count {
		reason := fmt.Sprintf("%s limit reached: %d/%d in %d days", channelName, used, limit.Count, limit.PeriodDays)
		return CheckResult{
			CheckName: CheckNameFrequencyLimits,
			Status:    CheckFail,
			Reason:    reason,
			Violation: &Violation{
				Rule:            RuleContactFrequency,
				LegalReference:  "CFPB Regulation F 12 CFR § 1006.14",
				Severity:        SeverityHigh,
				Reason:          reason,
				OverrideAllowed: true,
				CurrentUsage:    fmt.Sprintf("%d/%d", used, limit.Count),
				ResetDate:       now.AddDate(0, 0, limit.PeriodDays).Format(time.RFC3339),
			},
		}
	}

	return CheckResult{
		CheckName: CheckNameFrequencyLimits,
		Status:    CheckPass,
		Reason:    fmt.Sprintf("%s: %d/%d used", channelName, used, limit.Count),
	}
}

// checkConsent enforces TCPA prior-express-consent requirements. Only the SMS
// channel fails on missing consent; the phone branch resolves the consent set
// but does not fail. That asymmetry matches current enforcement policy and is
// kept deliberately.
func (v *Validator) checkConsent(action string, cc domain.CaseContext, _ time.Time) CheckResult {
	ch := domain.ChannelFromAction(action)
	if ch != domain.ChannelSMS && ch != domain.ChannelPhone {
		return CheckResult{CheckName: CheckNameChannelConsent, Status: CheckPass, Reason: "No consent required"}
	}

	consented := domain.ParseConsent(cc.ConsentStatus)

	if ch == domain.ChannelSMS && !containsChannel(consented, domain.ChannelSMS) {
		reason := fmt.Sprintf("SMS channel not consented (consent: %s)", cc.ConsentStatus)
		return CheckResult{
			CheckName: CheckNameChannelConsent,
			Status:    CheckFail,
			Reason:    reason,
			Violation: &Violation{
				Rule:              RuleConsent,
				LegalReference:    "TCPA 47 USC § 227",
				Severity:          SeverityCritical,
				Reason:            reason,
				OverrideAllowed:   true,
				PotentialPenalty:  "$500-$1,500 per message",
				ConsentedChannels: consented,
			},
		}
	}

	return CheckResult{CheckName: CheckNameChannelConsent, Status: CheckPass, Reason: "Channel consented"}
}

// checkDisputeHandling enforces FDCPA §809(b): collection must cease on a
// disputed debt until validation is provided. Never overridable.
func (v *Validator) checkDisputeHandling(_ string, cc domain.CaseContext, _ time.Time) CheckResult {
	disputed := cc.DisputeStatus == domain.DisputeDisputed || cc.DisputeStatus == domain.DisputeValidationRequested
	if disputed && !cc.DisputeDetails.ValidationProvided {
		reason := "Debt disputed - validation required before continued collection"
		return CheckResult{
			CheckName: CheckNameDisputeHandling,
			Status:    CheckFail,
			Reason:    reason,
			Violation: &Violation{
				Rule:            RuleDisputeHandling,
				LegalReference:  "FDCPA 15 USC § 1692g(b)",
				Severity:        SeverityCritical,
				Reason:          reason,
				OverrideAllowed: false,
				MandatoryAction: "PROVIDE_DEBT_VALIDATION",
			},
		}
	}

	return CheckResult{CheckName: CheckNameDisputeHandling, Status: CheckPass}
}

// checkVulnerableDebtor applies company policy protections for vulnerable
// consumers. It warns rather than fails: the action may proceed, but only
// after supervisor review.
func (v *Validator) checkVulnerableDebtor(_ string, cc domain.CaseContext, _ time.Time) CheckResult {
	if !cc.DebtorInfo.VulnerabilityFlag {
		return CheckResult{CheckName: CheckNameVulnerableDebtor, Status: CheckPass}
	}

	reasons := cc.DebtorInfo.VulnerabilityReasons
	joined := strings.Join(reasons, ", ")
	return CheckResult{
		CheckName: CheckNameVulnerableDebtor,
		Status:    CheckWarning,
		Reason:    fmt.Sprintf("Vulnerable debtor flag active: %s", joined),
		Warning: &Warning{
			Type:                    "VULNERABLE_DEBTOR_PROTECTION",
			Description:             fmt.Sprintf("Case flagged for: %s", joined),
			Policy:                  "COMPANY_POLICY_VDP_2024",
			RequiredAction:          "Supervisor approval required before any contact",
			VulnerabilityCategories: reasons,
		},
	}
}

// checkBankruptcyStay enforces 11 USC § 362: with an automatic stay active,
// all collection activity is prohibited regardless of action or channel.
// Never overridable.
func (v *Validator) checkBankruptcyStay(_ string, cc domain.CaseContext, _ time.Time) CheckResult {
	bk := cc.BankruptcyDetails
	if !bk.AutomaticStayActive {
		return CheckResult{CheckName: CheckNameBankruptcyStay, Status: CheckPass}
	}

	reason := "Bankruptcy automatic stay active - all collection prohibited"
	return CheckResult{
		CheckName: CheckNameBankruptcyStay,
		Status:    CheckFail,
		Reason:    reason,
		Violation: &Violation{
			Rule:             RuleBankruptcyStay,
			LegalReference:   "11 USC § 362 - Automatic Stay",
			Severity:         SeverityCritical,
			Reason:           reason,
			OverrideAllowed:  false,
			BankruptcyCase:   bk.CaseNumber,
			FilingDate:       bk.FilingDate,
			PotentialPenalty: "Contempt of court, damages, attorney fees",
			MandatoryAction:  "CEASE_ALL_COLLECTION_IMMEDIATELY",
		},
	}
}

func containsChannel(channels []domain.Channel, ch domain.Channel) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}
