package usecase

import (
	"context"

	"multi-agent-chat/internal/conversation"
	repo "multi-agent-chat/internal/conversation/repository"
)

// Create starts a new, empty conversation.
func (uc *implUseCase) Create(ctx context.Context) (conversation.CreateOutput, error) {
	c, err := uc.repo.CreateConversation(ctx, repo.CreateConversationOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.conversation.usecase.Create: %v", err)
		return conversation.CreateOutput{}, err
	}
	return conversation.CreateOutput{Conversation: c}, nil
}

// History returns a conversation header and its turns in order. Returns
// ErrConversationNotFound for unknown ids.
func (uc *implUseCase) History(ctx context.Context, input conversation.HistoryInput) (conversation.HistoryOutput, error) {
	if !conversation.ValidID(input.ConversationID) {
		return conversation.HistoryOutput{}, conversation.ErrInvalidConversationID
	}

	c, err := uc.repo.GetConversation(ctx, input.ConversationID)
	if err != nil {
		return conversation.HistoryOutput{}, err
	}

	turns, err := uc.repo.ReadHistory(ctx, repo.ReadHistoryOptions{
		ConversationID: input.ConversationID,
		Limit:          input.Limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.conversation.usecase.History ReadHistory: %v", err)
		return conversation.HistoryOutput{}, err
	}

	return conversation.HistoryOutput{Conversation: c, Turns: turns}, nil
}
