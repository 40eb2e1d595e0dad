package domain

import "strings"

// Channel identifies the communication channel implied by an action name.
type Channel string

const (
	ChannelPhone Channel = "phone"
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelOther Channel = "other"
)

// ChannelFromAction extracts the communication channel from an action string.
// Matching is substring based so compound action names like "send_sms" or
// "wait_7d_then_phone" resolve to their channel. SMS is matched before email
// and phone so "sms" never falls through to another channel.
func ChannelFromAction(action string) Channel {
	a := strings.ToLower(action)
	switch {
	case strings.Contains(a, "sms"):
		return ChannelSMS
	case strings.Contains(a, "email"):
		return ChannelEmail
	case strings.Contains(a, "phone"), strings.Contains(a, "call"):
		return ChannelPhone
	default:
		return ChannelOther
	}
}

// ParseConsent expands a consent grant string into the set of consented
// channels. The literal "all" grants phone, SMS and email; "none" or an empty
// string grants nothing; anything else is split on "_" and "," so formats like
// "phone_email" and "sms,email" both parse.
func ParseConsent(consent string) []Channel {
	switch consent {
	case "all":
		return []Channel{ChannelPhone, ChannelSMS, ChannelEmail}
	case "none", "":
		return nil
	}
	parts := strings.FieldsFunc(consent, func(r rune) bool {
		return r == '_' || r == ','
	})
	channels := make([]Channel, 0, len(parts))
	for _, p := range parts {
		channels = append(channels, Channel(strings.ToLower(strings.TrimSpace(p))))
	}
	return channels
}

// HasConsent reports whether the consent grant covers the given channel.
func HasConsent(consent string, ch Channel) bool {
	for _, c := range ParseConsent(consent) {
		if c == ch {
			return true
		}
	}
	return false
}
