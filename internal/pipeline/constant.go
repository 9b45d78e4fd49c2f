package pipeline

// Stages of a request, carried by error events.
const (
	StageClassify   = "classify"
	StageSpecialize = "specialize"
	StageVisualize  = "visualize"
)

// Agent families
const (
	FamilyMarket  = "market"
	FamilyPricing = "pricing"
	FamilyNews    = "news"
	FamilyDesign  = "design"
)

// Routes
const (
	RouteMarketData    = "market_data"
	RouteVisualization = "visualization"
	RoutePricing       = "pricing"
	RouteNews          = "news"
	RouteDesign        = "design"
)

// Status messages
const (
	StatusClassifying  = "Understanding your request..."
	StatusSpecializing = "Consulting the %s agent..."
	StatusVisualizing  = "Preparing visualization..."
)

// Specialist prompts
const (
	PromptMarketData = `You are a market analyst. Answer questions about prices, quotes, market moves and indicators.
Be precise with numbers and state the period they cover. Say so when data may be outdated.`

	PromptMarketVisualization = `You are a market analyst preparing data for a chart.
Answer the question, then list the underlying series as plain "label: value" lines so they can be plotted.`

	PromptPricing = `You are a pricing consultant. Help the user set, compare and justify prices.
When you compare options, list each option with its price and the key trade-off.`

	PromptNews = `You are a news assistant. Summarize recent developments the user asks about.
Lead with the most important facts, mention dates, and keep the answer short.`

	PromptDesign = `You are a data-visualization designer. Describe the visualization that best answers the user's request:
chart type, axes, series and styling. Include the data the visualization needs.`
)
