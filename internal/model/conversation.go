package model

import "time"

// Role identifies the author of a message inside a Turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Table is a structured tabular result.
type Table struct {
	Description string           `json:"description"`
	Rows        []map[string]any `json:"rows"`
}

// Chart is a structured chart result. PlotData holds series for client-side
// rendering; Artifact holds a pre-rendered image or document reference.
type Chart struct {
	Description string `json:"description"`
	PlotData    any    `json:"plot_data,omitempty"`
	Artifact    string `json:"artifact,omitempty"`
	Interactive bool   `json:"interactive,omitempty"`
}

// Content is the body of a message: text and/or a structured payload.
type Content struct {
	Text  string `json:"text,omitempty"`
	Table *Table `json:"table,omitempty"`
	Chart *Chart `json:"chart,omitempty"`
}

// IsEmpty reports whether c carries nothing.
func (c Content) IsEmpty() bool {
	return c.Text == "" && c.Table == nil && c.Chart == nil
}

// Message is one side of a Turn.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// Turn is one user message plus the agent's final response. Seq is assigned by
// the Session Store and increases monotonically per conversation.
type Turn struct {
	Seq            int64     `json:"seq"`
	ConversationID string    `json:"conversation_id"`
	User           Message   `json:"user"`
	Agent          Message   `json:"agent"`
	AgentName      string    `json:"agent_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTurn builds an unsequenced Turn from a user input and an agent response.
func NewTurn(conversationID, agentName, input string, response Content) Turn {
	return Turn{
		ConversationID: conversationID,
		User:           Message{Role: RoleUser, Content: Content{Text: input}},
		Agent:          Message{Role: RoleAgent, Content: response},
		AgentName:      agentName,
		CreatedAt:      time.Now().UTC(),
	}
}

// Conversation is the header record of a conversation.
type Conversation struct {
	ID        string    `json:"id"`
	TurnCount int64     `json:"turn_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
