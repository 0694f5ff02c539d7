package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Severity is the display tone derived from an urgency level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityNeutral Severity = "neutral"
)

// Severity maps urgency to a display tone. Unknown urgencies degrade to
// neutral instead of erroring; display never rejects a server value.
func (u Urgency) Severity() Severity {
	switch u {
	case UrgencyHigh:
		return SeverityError
	case UrgencyMedium:
		return SeverityWarning
	case UrgencyLow:
		return SeveritySuccess
	default:
		return SeverityNeutral
	}
}

// Glyph returns the marker shown next to a broadcast type. Unrecognised
// types fall back to the announcement glyph.
func (t BroadcastType) Glyph() string {
	switch t {
	case TypeAlert:
		return "⚠️"
	case TypeMaintenance:
		return "🔧"
	case TypeUpdate:
		return "🔄"
	case TypeNews:
		return "📰"
	case TypeMeeting:
		return "👥"
	default:
		return "📢"
	}
}

// ExcerptLimit is the rune count at which list views truncate a message.
const ExcerptLimit = 200

// Excerpt returns the message shortened to limit runes with an ellipsis
// marker. Presentation only; the stored message is never mutated.
func Excerpt(message string, limit int) string {
	if utf8.RuneCountInString(message) <= limit {
		return message
	}
	runes := []rune(message)
	return string(runes[:limit]) + "..."
}

// RelativeTime renders t relative to now, e.g. "5 minutes ago" or
// "in 2 days".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		phrase = "less than a minute"
	case d < time.Hour:
		phrase = plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		phrase = plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		phrase = plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		phrase = plural(int(d.Hours()/(24*30)), "month")
	default:
		phrase = plural(int(d.Hours()/(24*365)), "year")
	}

	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}

func plural(n int, unit string) string {
	if n <= 1 {
		n = 1
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
