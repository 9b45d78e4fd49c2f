package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/model"
)

const timeLayout = time.RFC3339Nano

func (r *implRepository) CreateConversation(ctx context.Context, opt repository.CreateConversationOptions) (model.Conversation, error) {
	id := opt.ID
	if id == "" {
		id = conversation.NewID()
	}
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, updated_at) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		id, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateConversation"), err)
		return model.Conversation{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Conversation{}, fmt.Errorf("%w: conversation %s", repository.ErrAlreadyExists, id)
	}

	return model.Conversation{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *implRepository) GetConversation(ctx context.Context, id string) (model.Conversation, error) {
	var (
		c                    model.Conversation
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, turn_count, created_at, updated_at FROM conversations WHERE id = ?`, id,
	).Scan(&c.ID, &c.TurnCount, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Conversation{}, conversation.ErrConversationNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetConversation"), err)
		return model.Conversation{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	c.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return c, nil
}

func (r *implRepository) AppendTurn(ctx context.Context, turn model.Turn) (model.Turn, error) {
	if turn.ConversationID == "" {
		return model.Turn{}, conversation.ErrInvalidConversationID
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	userJSON, err := json.Marshal(turn.User.Content)
	if err != nil {
		return model.Turn{}, fmt.Errorf("encoding user content: %w", err)
	}
	agentJSON, err := json.Marshal(turn.Agent.Content)
	if err != nil {
		return model.Turn{}, fmt.Errorf("encoding agent content: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	defer tx.Rollback()

	ts := turn.CreatedAt.Format(timeLayout)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, updated_at) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		turn.ConversationID, ts, ts,
	); err != nil {
		r.l.Errorf(ctx, "%s: ensure conversation: %v", r.dsn("AppendTurn"), err)
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE conversation_id = ?`, turn.ConversationID,
	).Scan(&turn.Seq); err != nil {
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO turns (conversation_id, seq, agent_name, user_content, agent_content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		turn.ConversationID, turn.Seq, turn.AgentName, string(userJSON), string(agentJSON), ts,
	); err != nil {
		r.l.Errorf(ctx, "%s: insert turn: %v", r.dsn("AppendTurn"), err)
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET turn_count = ?, updated_at = ? WHERE id = ?`,
		turn.Seq, ts, turn.ConversationID,
	); err != nil {
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Turn{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	return turn, nil
}

func (r *implRepository) ReadHistory(ctx context.Context, opt repository.ReadHistoryOptions) ([]model.Turn, error) {
	query := `SELECT seq, agent_name, user_content, agent_content, created_at FROM turns
		WHERE conversation_id = ? ORDER BY seq`
	args := []any{opt.ConversationID}
	if opt.Limit > 0 {
		// newest Limit turns, returned oldest first
		query = `SELECT seq, agent_name, user_content, agent_content, created_at FROM (
			SELECT * FROM turns WHERE conversation_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq`
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ReadHistory"), err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var (
			t                   model.Turn
			userJSON, agentJSON string
			createdAt           string
		)
		if err := rows.Scan(&t.Seq, &t.AgentName, &userJSON, &agentJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
		}
		t.ConversationID = opt.ConversationID
		t.User.Role = model.RoleUser
		t.Agent.Role = model.RoleAgent
		if err := json.Unmarshal([]byte(userJSON), &t.User.Content); err != nil {
			return nil, fmt.Errorf("decoding turn %d user content: %w", t.Seq, err)
		}
		if err := json.Unmarshal([]byte(agentJSON), &t.Agent.Content); err != nil {
			return nil, fmt.Errorf("decoding turn %d agent content: %w", t.Seq, err)
		}
		t.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return turns, nil
}
