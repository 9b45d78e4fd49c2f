package agent

// Log prefixes
const (
	LogPrefixInvoke = "internal.agent.Invoke"
	LogPrefixRecord = "internal.agent.Record"
)

const (
	// DefaultTimezone is used when a unit has no timezone configured.
	DefaultTimezone = "UTC"

	// DateFormatISO is the date layout used in the time context.
	DateFormatISO = "2006-01-02"

	// TimeContextTemplate is appended to system prompts of units that need to
	// resolve relative dates ("this week", "yesterday").
	TimeContextTemplate = `

[Current date context]
- Today: %s (%s)
- This week: %s to %s
- Yesterday: %s
Resolve relative dates against these values and never ask the user for today's date.`
)
