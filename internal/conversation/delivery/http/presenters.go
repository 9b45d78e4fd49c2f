package http

import (
	"errors"

	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/response"
)

const maxTurnsLimit = 500

// --- Request DTOs ---

type turnsReq struct {
	ID    string `form:"-"`
	Limit int    `form:"limit"`
}

func (r turnsReq) validate() error {
	if r.Limit < 0 || r.Limit > maxTurnsLimit {
		return errors.New("limit must be between 0 and 500")
	}
	return nil
}

func (r turnsReq) toInput() conversation.HistoryInput {
	return conversation.HistoryInput{
		ConversationID: r.ID,
		Limit:          r.Limit,
	}
}

// --- Response DTOs ---

type conversationResp struct {
	ID        string    `json:"id"`
	TurnCount int64             `json:"turn_count"`
	CreatedAt response.DateTime `json:"created_at"`
	UpdatedAt response.DateTime `json:"updated_at"`
}

func newConversationResp(c model.Conversation) conversationResp {
	return conversationResp{
		ID:        c.ID,
		TurnCount: c.TurnCount,
		CreatedAt: response.DateTime(c.CreatedAt),
		UpdatedAt: response.DateTime(c.UpdatedAt),
	}
}

type createResp struct {
	Conversation conversationResp `json:"conversation"`
}

func (h *handler) newCreateResp(out conversation.CreateOutput) createResp {
	return createResp{Conversation: newConversationResp(out.Conversation)}
}

type turnResp struct {
	Seq       int64             `json:"seq"`
	AgentName string            `json:"agent_name"`
	User      model.Message     `json:"user"`
	Agent     model.Message     `json:"agent"`
	CreatedAt response.DateTime `json:"created_at"`
}

type turnsResp struct {
	Conversation conversationResp `json:"conversation"`
	Turns        []turnResp       `json:"turns"`
}

func (h *handler) newTurnsResp(out conversation.HistoryOutput) turnsResp {
	turns := make([]turnResp, len(out.Turns))
	for i, t := range out.Turns {
		turns[i] = turnResp{
			Seq:       t.Seq,
			AgentName: t.AgentName,
			User:      t.User,
			Agent:     t.Agent,
			CreatedAt: response.DateTime(t.CreatedAt),
		}
	}
	return turnsResp{
		Conversation: newConversationResp(out.Conversation),
		Turns:        turns,
	}
}
