package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"multi-agent-chat/internal/chat"
	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/internal/streaming"
	"multi-agent-chat/pkg/stream"
)

// Open implements chat.UseCase.
func (uc *implUseCase) Open(ctx context.Context, input chat.StreamInput) (chat.Stream, error) {
	if !slices.Contains(uc.pipeline.Families(), input.Agent) {
		return nil, fmt.Errorf("%w: %q", chat.ErrUnknownAgent, input.Agent)
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, chat.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > chat.MaxMessageRunes {
		return nil, chat.ErrMessageTooLong
	}

	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = conversation.NewID()
	} else if !conversation.ValidID(conversationID) {
		return nil, conversation.ErrInvalidConversationID
	}

	session := streaming.NewSession(conversationID)
	if !uc.active.acquire(conversationID, session.ID) {
		uc.l.Warnf(ctx, "internal.chat.usecase.Open: conversation %s busy", conversationID)
		return nil, chat.ErrConversationBusy
	}

	return &openStream{
		uc:      uc,
		session: session,
		request: pipeline.Request{
			ConversationID: conversationID,
			Message:        message,
			Family:         input.Agent,
		},
	}, nil
}

// Agents implements chat.UseCase.
func (uc *implUseCase) Agents() []string {
	return uc.pipeline.Families()
}

type openStream struct {
	uc      *implUseCase
	session *streaming.Session
	request pipeline.Request
	once    sync.Once
}

func (s *openStream) ConversationID() string { return s.session.ConversationID }

func (s *openStream) SessionID() string { return s.session.ID }

func (s *openStream) Run(ctx context.Context, w stream.Writer) streaming.Outcome {
	defer s.Close()
	return s.uc.runner.Run(ctx, s.session, w, func(ctx context.Context, emit pipeline.Emitter) error {
		return s.uc.pipeline.Handle(ctx, s.request, emit)
	})
}

func (s *openStream) Close() {
	s.once.Do(func() {
		s.uc.active.release(s.session.ConversationID, s.session.ID)
	})
}
