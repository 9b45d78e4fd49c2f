package router

import (
	"context"
	"fmt"
	"strings"

	"multi-agent-chat/internal/agent"
	"multi-agent-chat/pkg/log"
)

// Router is the interface for semantic routing
type Router interface {
	Classify(ctx context.Context, family, message string) (Decision, error)
}

type familyRouter struct {
	family Family
	routes map[string]struct{}
	unit   *agent.Unit
}

// SemanticRouter classifies a message into one route of its family using the LLM.
// It never sees conversation history.
type SemanticRouter struct {
	families map[string]*familyRouter
	l        log.Logger
}

var _ Router = (*SemanticRouter)(nil)

// New creates a SemanticRouter with one classification unit per family.
func New(llm agent.Completer, families []Family, l log.Logger) (*SemanticRouter, error) {
	r := &SemanticRouter{
		families: make(map[string]*familyRouter, len(families)),
		l:        l,
	}

	for _, f := range families {
		if len(f.Routes) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoRoutes, f.Name)
		}
		if f.Fallback == "" {
			f.Fallback = f.Routes[0].Name
		}

		var lines strings.Builder
		routes := make(map[string]struct{}, len(f.Routes))
		for _, rt := range f.Routes {
			routes[rt.Name] = struct{}{}
			fmt.Fprintf(&lines, PromptRouteLine, rt.Name, rt.Description)
		}
		if _, ok := routes[f.Fallback]; !ok {
			return nil, fmt.Errorf("router: fallback %q is not a route of %s", f.Fallback, f.Name)
		}

		r.families[f.Name] = &familyRouter{
			family: f,
			routes: routes,
			unit: agent.NewUnit(agent.UnitConfig{
				Name:         UnitName,
				SystemPrompt: fmt.Sprintf(PromptRouterSystem, f.Name, lines.String()),
				Temperature:  RouterTemperature,
				MaxTokens:    RouterMaxTokens,
			}, llm, l),
		}
	}

	return r, nil
}
