package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-agent-chat/config"
	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/agent/visualizer"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/conversation/repository/memory"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/internal/router"
	"multi-agent-chat/pkg/llmprovider"
	"multi-agent-chat/pkg/log"
	"multi-agent-chat/pkg/stream"
)

// roleLLM answers by the kind of unit calling it, recognised from its prompt.
type roleLLM struct {
	mu sync.Mutex

	route      string
	visual     string
	answer     []string
	classErr   error
	answerErr  error
	visualErr  error
	historyLen []int
	lastSeen   []llmprovider.Message
}

func (f *roleLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return f.StreamContent(ctx, req, func(string) error { return nil })
}

func (f *roleLLM) StreamContent(ctx context.Context, req *llmprovider.Request, onDelta llmprovider.DeltaFunc) (*llmprovider.Response, error) {
	switch {
	case strings.Contains(req.SystemInstruction, "semantic router"):
		if f.classErr != nil {
			return nil, f.classErr
		}
		return &llmprovider.Response{Text: `{"route":"` + f.route + `","confidence":90}`}, nil

	case strings.Contains(req.SystemInstruction, "into a visualization"):
		if f.visualErr != nil {
			return nil, f.visualErr
		}
		return &llmprovider.Response{Text: f.visual}, nil
	}

	f.mu.Lock()
	f.historyLen = append(f.historyLen, len(req.Messages)-1)
	f.lastSeen = req.Messages
	f.mu.Unlock()

	for _, d := range f.answer {
		if err := onDelta(d); err != nil {
			return nil, err
		}
	}
	if f.answerErr != nil {
		return nil, f.answerErr
	}
	return &llmprovider.Response{Text: strings.Join(f.answer, "")}, nil
}

type recorder struct {
	events []stream.Event
}

func (r *recorder) Emit(e stream.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []stream.Type {
	out := make([]stream.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func setup(t *testing.T, llm *roleLLM) (pipeline.UseCase, repository.Repository) {
	t.Helper()
	l := log.NewNop()

	store, err := memory.New(16, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	families := pipeline.DefaultFamilies()
	rt, err := router.New(llm, pipeline.RouterFamilies(families), l)
	require.NoError(t, err)

	uc := New(l, Config{Agents: map[string]config.AgentConfig{}}, llm, store, rt, visualizer.New(llm, l), families)
	return uc, store
}

func history(t *testing.T, store repository.Repository, id string) int {
	t.Helper()
	turns, err := store.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: id})
	require.NoError(t, err)
	return len(turns)
}

func TestHandle_RepeatedMessagesAccumulateHistory(t *testing.T) {
	llm := &roleLLM{answer: []string{"Hello", "!"}}
	uc, store := setup(t, llm)

	for i := 0; i < 3; i++ {
		rec := &recorder{}
		err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "Hi", Family: pipeline.FamilyNews}, rec)
		require.NoError(t, err)
		assert.Equal(t, []stream.Type{stream.TypeStatus, stream.TypeChunk, stream.TypeChunk}, rec.types())
	}

	assert.Equal(t, 3, history(t, store, "c1"))
	// each call saw every earlier turn as a user/assistant pair
	assert.Equal(t, []int{0, 2, 4}, llm.historyLen)

	rec := &recorder{}
	require.NoError(t, uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "Hi", Family: pipeline.FamilyNews}, rec))
	assert.Equal(t, 6, llm.historyLen[3])
}

func TestHandle_VisualizationRoute(t *testing.T) {
	llm := &roleLLM{
		route:  pipeline.RouteVisualization,
		answer: []string{"BTC: 1", "\nETH: 2"},
		visual: `{"kind":"chart","description":"prices","plot_data":{"data":[{"y":[1,2]}]}}`,
	}
	uc, store := setup(t, llm)

	rec := &recorder{}
	err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "chart crypto", Family: pipeline.FamilyMarket}, rec)
	require.NoError(t, err)

	assert.Equal(t, []stream.Type{
		stream.TypeStatus, // classify
		stream.TypeStatus, // specialize
		stream.TypeChunk,
		stream.TypeChunk,
		stream.TypeStatus, // visualize
		stream.TypeChart,
	}, rec.types())

	charts := 0
	for _, e := range rec.events {
		if _, ok := e.(stream.Chart); ok {
			charts++
		}
	}
	assert.Equal(t, 1, charts)

	turns, err := store.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: "c1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "BTC: 1\nETH: 2", turns[0].Agent.Content.Text)
	assert.Equal(t, pipeline.RouteVisualization, turns[0].AgentName)
	require.NotNil(t, turns[0].Agent.Content.Chart)
	assert.Equal(t, "prices", turns[0].Agent.Content.Chart.Description)

	// the stored chart is part of the next request's history
	llm.route = pipeline.RouteMarketData
	require.NoError(t, uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "and now?", Family: pipeline.FamilyMarket}, &recorder{}))
	require.Len(t, llm.lastSeen, 3)
	assert.Equal(t, "BTC: 1\nETH: 2\n[chart: prices]", llm.lastSeen[1].Text)
}

func TestHandle_DataRouteSkipsVisualization(t *testing.T) {
	llm := &roleLLM{route: pipeline.RouteMarketData, answer: []string{"Gold is up"}}
	uc, _ := setup(t, llm)

	rec := &recorder{}
	err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "gold?", Family: pipeline.FamilyMarket}, rec)
	require.NoError(t, err)
	assert.Equal(t, []stream.Type{stream.TypeStatus, stream.TypeStatus, stream.TypeChunk}, rec.types())
}

func TestHandle_PricingTableAndDesignArtifact(t *testing.T) {
	llm := &roleLLM{answer: []string{"ok"}, visual: `{"kind":"table","description":"tiers","rows":[{"tier":"pro","price":20}]}`}
	uc, store := setup(t, llm)

	rec := &recorder{}
	require.NoError(t, uc.Handle(context.Background(), pipeline.Request{ConversationID: "p1", Message: "price tiers", Family: pipeline.FamilyPricing}, rec))
	last := rec.events[len(rec.events)-1]
	table, ok := last.(stream.Table)
	require.True(t, ok, "last event %T", last)
	assert.Equal(t, "tiers", table.Value)
	assert.Len(t, table.TableData, 1)

	turns, err := store.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: "p1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	require.NotNil(t, turns[0].Agent.Content.Table)
	assert.Equal(t, "ok", turns[0].Agent.Content.Text)

	llm.visual = `{"kind":"interactive_chart","description":"mock","artifact":"<svg/>"}`
	rec = &recorder{}
	require.NoError(t, uc.Handle(context.Background(), pipeline.Request{ConversationID: "d1", Message: "sales chart", Family: pipeline.FamilyDesign}, rec))
	last = rec.events[len(rec.events)-1]
	assert.Equal(t, stream.TypeInteractiveChart, last.Type())
}

func TestHandle_StageFailures(t *testing.T) {
	boom := errors.New("completion failed")

	tcs := []struct {
		name      string
		llm       *roleLLM
		family    string
		wantStage string
		wantTurns int
	}{
		{
			name:      "classify",
			llm:       &roleLLM{classErr: boom},
			family:    pipeline.FamilyMarket,
			wantStage: pipeline.StageClassify,
		},
		{
			name:      "specialize",
			llm:       &roleLLM{answer: []string{"par"}, answerErr: boom},
			family:    pipeline.FamilyNews,
			wantStage: pipeline.StageSpecialize,
		},
		{
			name:      "visualize keeps the recorded answer",
			llm:       &roleLLM{answer: []string{"ok"}, visualErr: boom},
			family:    pipeline.FamilyPricing,
			wantStage: pipeline.StageVisualize,
			wantTurns: 1,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := setup(t, tc.llm)

			err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "q", Family: tc.family}, &recorder{})
			var se *pipeline.StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.wantStage, se.Stage)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tc.wantTurns, history(t, store, "c1"))
		})
	}
}

func TestHandle_CancelledIsNotAStageError(t *testing.T) {
	uc, store := setup(t, &roleLLM{answer: []string{"x"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uc.Handle(ctx, pipeline.Request{ConversationID: "c1", Message: "q", Family: pipeline.FamilyNews}, &recorder{})
	assert.ErrorIs(t, err, context.Canceled)
	var se *pipeline.StageError
	assert.False(t, errors.As(err, &se))
	assert.Equal(t, 0, history(t, store, "c1"))
}

func TestHandle_EmitterStops(t *testing.T) {
	uc, store := setup(t, &roleLLM{answer: []string{"a", "b"}})
	closed := errors.New("closed")

	err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "q", Family: pipeline.FamilyNews},
		pipeline.EmitterFunc(func(e stream.Event) error {
			if _, ok := e.(stream.Chunk); ok {
				return closed
			}
			return nil
		}))
	assert.ErrorIs(t, err, closed)
	assert.Equal(t, 0, history(t, store, "c1"))
}

func TestHandle_Validation(t *testing.T) {
	uc, _ := setup(t, &roleLLM{})

	err := uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: "q", Family: "weather"}, &recorder{})
	assert.ErrorIs(t, err, pipeline.ErrUnknownFamily)

	err = uc.Handle(context.Background(), pipeline.Request{ConversationID: "c1", Message: " ", Family: pipeline.FamilyNews}, &recorder{})
	assert.ErrorIs(t, err, pipeline.ErrEmptyMessage)

	assert.Equal(t, []string{pipeline.FamilyMarket, pipeline.FamilyPricing, pipeline.FamilyNews, pipeline.FamilyDesign}, uc.Families())
}

func TestMemoryGrant_SingleFullScope(t *testing.T) {
	g := &memoryGrant{conversationID: "c1"}

	_, err := g.full()
	require.NoError(t, err)
	_, err = g.full()
	assert.ErrorIs(t, err, pipeline.ErrMultipleFullScope)
}

func TestHandle_VisualizeCancelledKeepsAnswer(t *testing.T) {
	uc, store := setup(t, &roleLLM{answer: []string{"ok"}, visual: `{"kind":"none"}`})

	ctx, cancel := context.WithCancel(context.Background())
	err := uc.Handle(ctx, pipeline.Request{ConversationID: "c1", Message: "q", Family: pipeline.FamilyPricing},
		pipeline.EmitterFunc(func(e stream.Event) error {
			if s, ok := e.(stream.Status); ok && s.Message == pipeline.StatusVisualizing {
				cancel()
				return context.Canceled
			}
			return nil
		}))
	assert.ErrorIs(t, err, context.Canceled)

	turns, err := store.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: "c1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Nil(t, turns[0].Agent.Content.Table)
}

func TestPendingMemory(t *testing.T) {
	l := log.NewNop()
	store, err := memory.New(4, l)
	require.NoError(t, err)
	defer store.Close()

	p := newPendingMemory(agent.NewMemory(store, "c1", 0))

	// nothing held, nothing written
	require.NoError(t, p.commit(context.Background(), model.Content{}))
	assert.Equal(t, 0, history(t, store, "c1"))

	_, err = p.Record(context.Background(), "news", "q", model.Content{Text: "a"})
	require.NoError(t, err)
	_, err = p.Record(context.Background(), "news", "q", model.Content{Text: "b"})
	assert.ErrorIs(t, err, agent.ErrMemoryCommitted)
	assert.Equal(t, 0, history(t, store, "c1"))

	chart := &model.Chart{Description: "d"}
	require.NoError(t, p.commit(context.Background(), model.Content{Chart: chart}))
	turns, err := store.ReadHistory(context.Background(), repository.ReadHistoryOptions{ConversationID: "c1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "a", turns[0].Agent.Content.Text)
	assert.Equal(t, chart, turns[0].Agent.Content.Chart)

	// the underlying memory records at most once
	assert.ErrorIs(t, p.commit(context.Background(), model.Content{}), agent.ErrMemoryCommitted)
}
