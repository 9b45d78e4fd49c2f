package http

import "multi-agent-chat/internal/chat"

// HeaderConversationID tells clients which conversation a stream belongs to,
// including one created by the request itself.
const HeaderConversationID = "X-Conversation-ID"

// --- Request DTOs ---

type streamReq struct {
	ConversationID string `json:"conversation_id" binding:"omitempty,max=64"`
	Message        string `json:"message" binding:"required"`
	Agent          string `json:"agent" binding:"required"`
}

func (r streamReq) toInput() chat.StreamInput {
	return chat.StreamInput{
		ConversationID: r.ConversationID,
		Message:        r.Message,
		Agent:          r.Agent,
	}
}

type wsQuery struct {
	ConversationID string `form:"conversation_id" binding:"omitempty,max=64"`
	Agent          string `form:"agent" binding:"required"`
}

// wsMessage is the first client frame of a WebSocket stream.
type wsMessage struct {
	Message string `json:"message"`
}

// --- Response DTOs ---

type agentsResp struct {
	Agents []string `json:"agents"`
}
