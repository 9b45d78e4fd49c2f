package streamclient

import "time"

const (
	DefaultOverallTimeout = 180 * time.Second
	DefaultIdleTimeout    = 90 * time.Second

	// StreamPath is the chat endpoint relative to the API base URL.
	StreamPath = "/api/v1/chat/stream"

	HeaderConversationID = "X-Conversation-ID"
)

// User-facing failure messages
const (
	MsgOverallTimeout = "The request took too long. Try simplifying your query."
	MsgIdle           = "The connection stalled. Please try again."
	MsgNetwork        = "Network connection lost. Check your connection and try again."
)
