package usecase

import (
	"context"
	"errors"
	"testing"

	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/conversation/repository/memory"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/log"
)

func newTestUseCase(t *testing.T) (*implUseCase, func(model.Turn)) {
	t.Helper()
	repo, err := memory.New(10, log.NewNop())
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	appendTurn := func(turn model.Turn) {
		if _, err := repo.AppendTurn(context.Background(), turn); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}
	return New(repo, log.NewNop()), appendTurn
}

func TestCreate(t *testing.T) {
	uc, _ := newTestUseCase(t)

	out, err := uc.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conversation.ValidID(out.Conversation.ID) {
		t.Errorf("expected a valid generated id, got %q", out.Conversation.ID)
	}
}

func TestHistory(t *testing.T) {
	uc, appendTurn := newTestUseCase(t)
	for _, q := range []string{"Hi", "Hi", "Hi"} {
		appendTurn(model.NewTurn("conv-1", "news", q, model.Content{Text: "Hello"}))
	}

	out, err := uc.History(context.Background(), conversation.HistoryInput{ConversationID: "conv-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(out.Turns))
	}
	if out.Conversation.TurnCount != 3 {
		t.Errorf("expected turn count 3, got %d", out.Conversation.TurnCount)
	}

	limited, err := uc.History(context.Background(), conversation.HistoryInput{ConversationID: "conv-1", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited.Turns) != 1 || limited.Turns[0].Seq != 3 {
		t.Errorf("expected only the latest turn, got %+v", limited.Turns)
	}
}

func TestHistory_Errors(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.History(context.Background(), conversation.HistoryInput{ConversationID: "bad id"})
	if !errors.Is(err, conversation.ErrInvalidConversationID) {
		t.Errorf("expected ErrInvalidConversationID, got %v", err)
	}

	_, err = uc.History(context.Background(), conversation.HistoryInput{ConversationID: "missing"})
	if !errors.Is(err, conversation.ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}
