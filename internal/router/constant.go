package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// UnitName is the agent name of the classification unit.
const UnitName = "classifier"

// Router prompts
const (
	PromptRouterSystem = `You are a semantic router for the %q assistant. Decide which specialist should answer the user's message.

Available routes:
%s
Reply with JSON only, in this format:
{
  "route": "<one of the route names above>",
  "confidence": 0-100,
  "reasoning": "short explanation"
}`

	PromptRouteLine = "- %s: %s\n"
)

// Router configuration
const (
	RouterTemperature        = 0.1
	RouterMaxTokens          = 256
	RouterFallbackConfidence = 50
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgJSONParseFailed = "Failed to parse JSON, falling back to default route"
	ErrMsgEmptyResponse   = "Empty LLM response, falling back to default route"
	ErrMsgUnknownRoute    = "Unknown route in LLM response, falling back to default route"
)

// Fallback reasons
const (
	ReasonParsingError  = "Fallback due to parsing error"
	ReasonEmptyResponse = "Fallback due to empty response"
	ReasonUnknownRoute  = "Fallback due to unknown route"
)
