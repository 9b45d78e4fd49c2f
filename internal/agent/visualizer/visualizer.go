package visualizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/log"
)

// Visualizer produces at most one table or chart from a specialist answer.
type Visualizer interface {
	Visualize(ctx context.Context, family, request, answer string) (model.Content, bool, error)
}

type implVisualizer struct {
	llm agent.Completer
	l   log.Logger
}

// New creates a Visualizer.
func New(llm agent.Completer, l log.Logger) Visualizer {
	return &implVisualizer{llm: llm, l: l}
}

// Visualize runs with scope none. ok is false when the unit chose no payload
// or produced one that cannot be rendered; only completion failures are errors.
func (v *implVisualizer) Visualize(ctx context.Context, family, request, answer string) (model.Content, bool, error) {
	unit := agent.NewUnit(agent.UnitConfig{
		Name:         UnitName,
		SystemPrompt: fmt.Sprintf(PromptVisualizerSystem, family),
		Temperature:  VisualizerTemperature,
		MaxTokens:    VisualizerMaxTokens,
	}, v.llm, v.l)

	res, err := unit.Invoke(ctx, agent.Invocation{
		Input: fmt.Sprintf(PromptVisualizerInput, request, answer),
		Scope: model.MemoryNone,
	}, agent.NoMemory, nil)
	if err != nil {
		return model.Content{}, false, err
	}

	var out output
	if err := json.Unmarshal([]byte(agent.StripCodeFence(res.Text)), &out); err != nil {
		v.l.Warnf(ctx, "%s: unparseable answer, skipping: %v", LogPrefixVisualize, err)
		return model.Content{}, false, nil
	}

	content, ok := out.content()
	if !ok && out.Kind != KindNone && out.Kind != "" {
		v.l.Warnf(ctx, "%s: incomplete %s payload, skipping", LogPrefixVisualize, out.Kind)
	}
	return content, ok, nil
}

func (o output) content() (model.Content, bool) {
	switch o.Kind {
	case KindTable:
		if len(o.Rows) == 0 {
			return model.Content{}, false
		}
		return model.Content{Table: &model.Table{Description: o.Description, Rows: o.Rows}}, true

	case KindChart:
		plot, ok := decodePlot(o.PlotData)
		if !ok {
			return model.Content{}, false
		}
		return model.Content{Chart: &model.Chart{Description: o.Description, PlotData: plot}}, true

	case KindInteractiveChart:
		plot, hasPlot := decodePlot(o.PlotData)
		if !hasPlot && strings.TrimSpace(o.Artifact) == "" {
			return model.Content{}, false
		}
		return model.Content{Chart: &model.Chart{
			Description: o.Description,
			PlotData:    plot,
			Artifact:    o.Artifact,
			Interactive: true,
		}}, true
	}
	return model.Content{}, false
}

func decodePlot(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	var plot any
	if err := json.Unmarshal(raw, &plot); err != nil {
		return nil, false
	}
	return plot, true
}
