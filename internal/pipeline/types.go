package pipeline

import "multi-agent-chat/pkg/stream"

// Request is one user message routed to an agent family.
type Request struct {
	ConversationID string
	Message        string
	Family         string
}

// Emitter receives pipeline events in order. An error means the stream is no
// longer accepting events and the pipeline must stop.
type Emitter interface {
	Emit(e stream.Event) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(e stream.Event) error

func (f EmitterFunc) Emit(e stream.Event) error { return f(e) }

// Route is one specialist of a family.
type Route struct {
	Name         string
	Description  string
	SystemPrompt string
	// Visualize runs the visualization stage after this specialist.
	Visualize       bool
	WithTimeContext bool
}

// Family is a topology: a family with more than one route is classified first.
type Family struct {
	Name   string
	Routes []Route
}

// Classified reports whether the family runs the classification stage.
func (f Family) Classified() bool {
	return len(f.Routes) > 1
}

// Route returns the route named name, or the first route.
func (f Family) Route(name string) Route {
	for _, r := range f.Routes {
		if r.Name == name {
			return r
		}
	}
	return f.Routes[0]
}
