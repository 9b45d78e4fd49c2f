package usecase

import (
	"multi-agent-chat/config"
	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/agent/visualizer"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/internal/router"
	"multi-agent-chat/pkg/log"
)

// Config holds the pipeline tunables.
type Config struct {
	// HistoryTurns bounds the history a full-scope agent reads; 0 means all.
	HistoryTurns int
	Agents       map[string]config.AgentConfig
	Timezone     string
}

type implUseCase struct {
	l          log.Logger
	store      repository.TurnRepository
	router     router.Router
	visualizer visualizer.Visualizer

	historyTurns int
	families     map[string]pipeline.Family
	order        []string
	// units holds one specialist per family/route.
	units map[string]*agent.Unit
}

// New creates a pipeline over families. The router must know every
// classified family.
func New(
	l log.Logger,
	cfg Config,
	llm agent.Completer,
	store repository.TurnRepository,
	rt router.Router,
	vis visualizer.Visualizer,
	families []pipeline.Family,
) pipeline.UseCase {
	uc := &implUseCase{
		l:            l,
		store:        store,
		router:       rt,
		visualizer:   vis,
		historyTurns: cfg.HistoryTurns,
		families:     make(map[string]pipeline.Family, len(families)),
		units:        make(map[string]*agent.Unit),
	}

	for _, f := range families {
		uc.families[f.Name] = f
		uc.order = append(uc.order, f.Name)

		tuning := cfg.Agents[f.Name]
		for _, r := range f.Routes {
			uc.units[unitKey(f.Name, r.Name)] = agent.NewUnit(agent.UnitConfig{
				Name:            r.Name,
				SystemPrompt:    r.SystemPrompt,
				Temperature:     tuning.Temperature,
				MaxTokens:       tuning.MaxTokens,
				WithTimeContext: r.WithTimeContext,
				Timezone:        cfg.Timezone,
			}, llm, l)
		}
	}

	return uc
}

func unitKey(family, route string) string {
	return family + "/" + route
}
