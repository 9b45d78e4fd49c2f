package streaming

import "time"

const logPrefix = "internal.streaming.Run"

const (
	DefaultHeartbeatInterval = 15 * time.Second
	DefaultIdleTimeout       = 90 * time.Second
	DefaultOverallTimeout    = 180 * time.Second
)

// User-facing error messages
const (
	MsgAgentFailure   = "The %s step failed. Please try again."
	MsgOverallTimeout = "This request took too long. Try simplifying your query."
	MsgIdleTimeout    = "The response stalled. Please try again."
	MsgInternal       = "Something went wrong. Please try again."
)

// Result is how a stream session ended.
type Result string

const (
	ResultCompleted      Result = "completed"
	ResultFailed         Result = "failed"
	ResultOverallTimeout Result = "overall_timeout"
	ResultIdleTimeout    Result = "idle_timeout"
	ResultCancelled      Result = "cancelled"
)
