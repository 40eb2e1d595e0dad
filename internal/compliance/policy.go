package compliance

import "fairgate/internal/domain"

// FrequencyLimit caps contacts on one channel within a rolling window.
type FrequencyLimit struct {
	Count      int
	PeriodDays int
}

// ContactHours is the permitted local-time contact window. Start is inclusive,
// End exclusive (hour of day).
type ContactHours struct {
	Start int
	End   int
}

// Policy is the immutable configuration a Validator evaluates against. It is
// constructed once at startup and shared across requests; alternate
// jurisdictions swap the whole object rather than mutating it.
type Policy struct {
	FrequencyLimits map[domain.Channel]FrequencyLimit
	ContactHours    ContactHours

	// DefaultTimezone is assumed when the debtor record has no timezone.
	DefaultTimezone string
}

// DefaultPolicy returns the FDCPA/TCPA/Regulation F policy for US collections:
// phone 3 per 7 days, SMS 1 per day, email 2 per 7 days, contact between
// 08:00 and 21:00 debtor local time.
func DefaultPolicy() Policy {
	return Policy{
		FrequencyLimits: map[domain.Channel]FrequencyLimit{
			domain.ChannelPhone: {Count: 3, PeriodDays: 7},
			domain.ChannelSMS:   {Count: 1, PeriodDays: 1},
			domain.ChannelEmail: {Count: 2, PeriodDays: 7},
		},
		ContactHours:    ContactHours{Start: 8, End: 21},
		DefaultTimezone: "America/New_York",
	}
}
