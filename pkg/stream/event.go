// Package stream implements the chat event protocol: a closed set of typed
// events, their JSON encoding, and SSE and WebSocket framing.
package stream

import (
	"encoding/json"
	"time"
)

// Type is the wire discriminator carried in every event's "type" field.
type Type string

const (
	TypeStatus           Type = "status"
	TypeChunk            Type = "chunk"
	TypeTable            Type = "table"
	TypeChart            Type = "chart"
	TypeInteractiveChart Type = "interactive_chart"
	TypeHeartbeat        Type = "heartbeat"
	TypeError            Type = "error"
	TypeDone             Type = "done"
)

// Error reasons.
const (
	ReasonAgentFailure   = "agent_failure"
	ReasonOverallTimeout = "overall_timeout"
	ReasonIdleTimeout    = "idle_timeout"
	ReasonInternal       = "internal"
)

// Event is one protocol event. The set of implementations is closed to this
// package; switch on the concrete type to handle them.
type Event interface {
	Type() Type
	event()
}

// Status announces a stage transition. Stage names the pipeline stage that
// starts, if any.
type Status struct {
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

// Chunk carries incremental answer text.
type Chunk struct {
	Value string `json:"value"`
}

// Table carries a tabular result.
type Table struct {
	Value     string           `json:"value"`
	TableData []map[string]any `json:"table_data"`
}

// Chart carries a chart as plot data or a rendered artifact. Interactive
// selects the interactive_chart wire type.
type Chart struct {
	Value       string `json:"value"`
	PlotData    any    `json:"plot_data,omitempty"`
	Artifact    string `json:"artifact,omitempty"`
	Interactive bool   `json:"-"`
}

// Heartbeat is a keep-alive with no content.
type Heartbeat struct {
	Timestamp time.Time `json:"timestamp"`
}

// Error reports a failure. Stage names the pipeline stage, if any; Reason is
// one of the Reason constants.
type Error struct {
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Done marks the end of the stream.
type Done struct{}

func (Status) Type() Type    { return TypeStatus }
func (Chunk) Type() Type     { return TypeChunk }
func (Table) Type() Type     { return TypeTable }
func (Heartbeat) Type() Type { return TypeHeartbeat }
func (Error) Type() Type     { return TypeError }
func (Done) Type() Type      { return TypeDone }

func (c Chart) Type() Type {
	if c.Interactive {
		return TypeInteractiveChart
	}
	return TypeChart
}

func (Status) event()    {}
func (Chunk) event()     {}
func (Table) event()     {}
func (Chart) event()     {}
func (Heartbeat) event() {}
func (Error) event()     {}
func (Done) event()      {}

// IsSubstantive reports whether e carries progress or content. Heartbeats and
// terminal events are not substantive.
func IsSubstantive(e Event) bool {
	switch e.(type) {
	case Status, Chunk, Table, Chart:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether e ends a stream.
func IsTerminal(e Event) bool {
	switch e.(type) {
	case Error, Done:
		return true
	default:
		return false
	}
}

// MarshalJSON methods add the "type" discriminator next to the payload fields.

func (e Status) MarshalJSON() ([]byte, error) {
	type payload Status
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Chunk) MarshalJSON() ([]byte, error) {
	type payload Chunk
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Table) MarshalJSON() ([]byte, error) {
	type payload Table
	if e.TableData == nil {
		e.TableData = []map[string]any{}
	}
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Chart) MarshalJSON() ([]byte, error) {
	type payload Chart
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Heartbeat) MarshalJSON() ([]byte, error) {
	type payload Heartbeat
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Error) MarshalJSON() ([]byte, error) {
	type payload Error
	return json.Marshal(struct {
		Type Type `json:"type"`
		payload
	}{e.Type(), payload(e)})
}

func (e Done) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Type `json:"type"`
	}{e.Type()})
}
