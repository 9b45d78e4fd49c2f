package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/llmprovider"
	"multi-agent-chat/pkg/log"
)

// Unit is a named, stateless wrapper around one completion call.
type Unit struct {
	cfg UnitConfig
	llm Completer
	l   log.Logger
	now func() time.Time
}

// NewUnit creates a Unit.
func NewUnit(cfg UnitConfig, llm Completer, l log.Logger) *Unit {
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	return &Unit{cfg: cfg, llm: llm, l: l, now: time.Now}
}

// Name returns the unit name.
func (u *Unit) Name() string {
	return u.cfg.Name
}

// Invoke runs one completion. With a non-nil onDelta the answer is streamed
// through it. mem must match inv.Scope: NoMemory (or nil) for none, a Memory
// from NewMemory for full.
//
// A full-scope invocation reads history before the call and records exactly
// one turn after it. If ctx is done by the time the completion returns, the
// result is discarded and nothing is recorded.
func (u *Unit) Invoke(ctx context.Context, inv Invocation, mem Memory, onDelta DeltaFunc) (Result, error) {
	if mem == nil {
		mem = NoMemory
	}
	if !inv.Scope.Valid() || mem.Scope() != inv.Scope {
		return Result{}, fmt.Errorf("%w: declared %s, got %s", ErrScopeMismatch, inv.Scope, mem.Scope())
	}
	if strings.TrimSpace(inv.Input) == "" {
		return Result{}, ErrEmptyInput
	}

	history, err := mem.History(ctx)
	if err != nil {
		return Result{}, err
	}

	req := u.buildRequest(history, inv.Input)

	var resp *llmprovider.Response
	if onDelta != nil {
		resp, err = u.llm.StreamContent(ctx, req, llmprovider.DeltaFunc(onDelta))
	} else {
		resp, err = u.llm.GenerateContent(ctx, req)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		u.l.Infof(ctx, "%s: %s cancelled, result discarded: %v", LogPrefixInvoke, u.cfg.Name, ctxErr)
		return Result{}, ctxErr
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", u.cfg.Name, err)
	}

	result := Result{Text: resp.Text, Usage: resp.Usage}

	if inv.Scope == model.MemoryFull {
		turn, err := mem.Record(ctx, u.cfg.Name, inv.Input, model.Content{Text: resp.Text})
		if err != nil {
			u.l.Errorf(ctx, "%s: %s: %v", LogPrefixRecord, u.cfg.Name, err)
			return Result{}, err
		}
		result.Turn = &turn
	}

	return result, nil
}

func (u *Unit) buildRequest(history []model.Turn, input string) *llmprovider.Request {
	system := u.cfg.SystemPrompt
	if u.cfg.WithTimeContext {
		system += buildTimeContext(u.cfg.Timezone, u.now())
	}

	messages := make([]llmprovider.Message, 0, 2*len(history)+1)
	for _, t := range history {
		messages = append(messages,
			llmprovider.Message{Role: llmprovider.RoleUser, Text: t.User.Content.Text},
			llmprovider.Message{Role: llmprovider.RoleAssistant, Text: describeContent(t.Agent.Content)},
		)
	}
	messages = append(messages, llmprovider.Message{Role: llmprovider.RoleUser, Text: input})

	return &llmprovider.Request{
		SystemInstruction: system,
		Messages:          messages,
		Temperature:       u.cfg.Temperature,
		MaxTokens:         u.cfg.MaxTokens,
	}
}

// describeContent flattens a stored answer into prompt text.
func describeContent(c model.Content) string {
	parts := make([]string, 0, 3)
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	if c.Table != nil {
		parts = append(parts, fmt.Sprintf("[table: %s, %d rows]", c.Table.Description, len(c.Table.Rows)))
	}
	if c.Chart != nil {
		parts = append(parts, fmt.Sprintf("[chart: %s]", c.Chart.Description))
	}
	return strings.Join(parts, "\n")
}
