package repository

// CreateConversationOptions holds parameters for creating a conversation.
// An empty ID lets the repository generate one.
type CreateConversationOptions struct {
	ID string
}

// ReadHistoryOptions selects turns of one conversation. Limit > 0 keeps only
// the most recent Limit turns.
type ReadHistoryOptions struct {
	ConversationID string
	Limit          int
}
