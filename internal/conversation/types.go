package conversation

import "multi-agent-chat/internal/model"

// --- UseCase Inputs ---

type HistoryInput struct {
	ConversationID string
	Limit          int
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Conversation model.Conversation
}

type HistoryOutput struct {
	Conversation model.Conversation
	Turns        []model.Turn
}
