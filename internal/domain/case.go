package domain

import "time"

// DefaultPaymentProbability is assumed when the upstream predictor did not
// populate the feature.
const DefaultPaymentProbability = 50.0

// DisputeStatus enumerates the debt dispute states relevant to collection.
type DisputeStatus string

const (
	DisputeNone                DisputeStatus = "none"
	DisputeDisputed            DisputeStatus = "disputed"
	DisputeValidationRequested DisputeStatus = "validation_requested"
)

// ResponseHistoryPartialPaymentPromise marks a debtor who promised a partial
// payment; it is treated as a good-faith signal during risk scoring.
const ResponseHistoryPartialPaymentPromise = "partial_payment_promise"

// CaseContext is the read-only input bundle evaluated per decision request.
// No component mutates it; every component reads it and returns new derived
// records. Field names mirror the wire format consumed by existing clients.
type CaseContext struct {
	CaseID     string `json:"case_id,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`

	DebtorInfo      DebtorInfo     `json:"debtor_info"`
	ContactHistory  ContactHistory `json:"contact_history"`
	ConsentStatus   string         `json:"consent_status,omitempty"`
	DisputeStatus   DisputeStatus  `json:"dispute_status,omitempty"`
	DisputeDetails  DisputeDetails `json:"dispute_details,omitempty"`
	ResponseHistory string         `json:"response_history,omitempty"`

	BankruptcyDetails BankruptcyDetails `json:"bankruptcy_details,omitempty"`

	DaysOverdue int     `json:"days_overdue"`
	Amount      float64 `json:"amount"`

	// PaymentProbability is populated by the upstream predictor before the
	// context reaches this engine. Nil means unknown and defaults to 50.
	PaymentProbability *float64 `json:"payment_probability,omitempty"`
}

// PaymentProbabilityOrDefault returns the predicted payment probability,
// substituting the documented default when the predictor left it unset.
func (c CaseContext) PaymentProbabilityOrDefault() float64 {
	if c.PaymentProbability == nil {
		return DefaultPaymentProbability
	}
	return *c.PaymentProbability
}

// DebtorInfo carries debtor attributes relevant to compliance and harm
// assessment. Only derived, non-identifying attributes belong here.
type DebtorInfo struct {
	Timezone             string               `json:"timezone,omitempty"`
	VulnerabilityFlag    bool                 `json:"vulnerability_flag,omitempty"`
	VulnerabilityReasons []string             `json:"vulnerability_reasons,omitempty"`
	VulnerabilityDetails VulnerabilityDetails `json:"vulnerability_details,omitempty"`
}

// HasVulnerabilityReason reports whether the debtor was flagged for the given
// category.
func (d DebtorInfo) HasVulnerabilityReason(reason string) bool {
	for _, r := range d.VulnerabilityReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// VulnerabilityDetails refines a vulnerability flag with hardship indicators.
type VulnerabilityDetails struct {
	MedicalDebtIndicator bool   `json:"medical_debt_indicator,omitempty"`
	RecentHardship       bool   `json:"recent_hardship,omitempty"`
	IncomeStatus         string `json:"income_status,omitempty"`
}

// IncomeStatusFixedSocialSecurity identifies debtors on fixed social security
// income, which raises hardship severity.
const IncomeStatusFixedSocialSecurity = "fixed_income_social_security"

// DisputeDetails records the state of a debt dispute.
type DisputeDetails struct {
	ValidationProvided bool `json:"validation_provided,omitempty"`
}

// BankruptcyDetails records an active or past bankruptcy filing.
type BankruptcyDetails struct {
	AutomaticStayActive bool   `json:"automatic_stay_active,omitempty"`
	CaseNumber          string `json:"case_number,omitempty"`
	FilingDate          string `json:"filing_date,omitempty"`
}

// ContactEvent is one past outreach attempt.
type ContactEvent struct {
	Channel    string    `json:"channel"`
	OccurredAt time.Time `json:"occurred_at,omitempty"`
}

// ContactHistory summarizes past outreach. Callers may supply the full event
// list per window, a precomputed total per window, or (for SMS) only a
// same-day counter; all three representations are accepted.
type ContactHistory struct {
	ContactsLast7Days []ContactEvent `json:"contacts_last_7_days,omitempty"`
	ContactsLast1Day  []ContactEvent `json:"contacts_last_1_days,omitempty"`

	CountLast7Days *int `json:"count_last_7_days,omitempty"`
	CountLast1Day  *int `json:"count_last_1_days,omitempty"`

	SMSCountToday    int `json:"sms_count_today,omitempty"`
	EscalationCount  int `json:"escalation_count,omitempty"`
	PastContactCount int `json:"past_contact_count,omitempty"`
}

// CountInWindow counts contacts toward a channel's frequency limit. The event
// list is preferred and is filtered by channel; the precomputed window counter
// is used next and is taken as-is; the per-channel-today counter is the
// last-resort fallback for SMS.
func (h ContactHistory) CountInWindow(ch Channel, windowDays int) int {
	events, counter := h.window(windowDays)
	if events != nil {
		n := 0
		for _, e := range events {
			if Channel(e.Channel) == ch {
				n++
			}
		}
		return n
	}
	if counter != nil {
		return *counter
	}
	if ch == ChannelSMS {
		return h.SMSCountToday
	}
	return 0
}

// TotalLast7Days returns the total contact count over the 7-day window
// regardless of channel, preferring the event list over the counter.
func (h ContactHistory) TotalLast7Days() int {
	if h.ContactsLast7Days != nil {
		return len(h.ContactsLast7Days)
	}
	if h.CountLast7Days != nil {
		return *h.CountLast7Days
	}
	return 0
}

// SameChannelRatio is the fraction of last-7-day contacts that used the given
// channel. Zero when there is no event history to inspect.
func (h ContactHistory) SameChannelRatio(ch Channel) float64 {
	if len(h.ContactsLast7Days) == 0 {
		return 0
	}
	same := 0
	for _, e := range h.ContactsLast7Days {
		if Channel(e.Channel) == ch {
			same++
		}
	}
	return float64(same) / float64(len(h.ContactsLast7Days))
}

func (h ContactHistory) window(days int) ([]ContactEvent, *int) {
	switch days {
	case 1:
		return h.ContactsLast1Day, h.CountLast1Day
	default:
		return h.ContactsLast7Days, h.CountLast7Days
	}
}
