package visualizer

// Log prefixes
const (
	LogPrefixVisualize = "internal.agent.visualizer.Visualize"
)

// UnitName is the agent name of the visualization unit.
const UnitName = "visualizer"

const (
	VisualizerTemperature = 0.2
	VisualizerMaxTokens   = 4096
)

// Kind is the payload shape the visualization unit chose.
type Kind string

const (
	KindNone             Kind = "none"
	KindTable            Kind = "table"
	KindChart            Kind = "chart"
	KindInteractiveChart Kind = "interactive_chart"
)

const (
	PromptVisualizerSystem = `You turn a specialist's answer into a visualization for the %q assistant.
Decide whether a table, a chart, an interactive chart or nothing fits the user's request best.

Reply with JSON only:
{
  "kind": "table|chart|interactive_chart|none",
  "description": "one sentence describing the payload",
  "rows": [{"column": "value"}],
  "plot_data": {"data": [], "layout": {}},
  "artifact": "self-contained HTML for interactive charts"
}
Use "rows" only for tables. Use "plot_data" for charts. Interactive charts need "plot_data" or "artifact".
Answer {"kind":"none"} when nothing useful can be visualized.`

	PromptVisualizerInput = "User request:\n%s\n\nSpecialist answer:\n%s"
)
