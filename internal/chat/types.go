package chat

// MaxMessageRunes bounds a single user message.
const MaxMessageRunes = 8000

// StreamInput is a validated-on-open chat request. An empty ConversationID
// starts a new conversation.
type StreamInput struct {
	ConversationID string
	Message        string
	Agent          string
}
