package router

import (
	"context"
	"encoding/json"
	"fmt"

	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/model"
)

// Classify picks the route for message within family. LLM failures are
// returned; unusable answers fall back to the family's default route.
func (r *SemanticRouter) Classify(ctx context.Context, family, message string) (Decision, error) {
	fr, ok := r.families[family]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}

	res, err := fr.unit.Invoke(ctx, agent.Invocation{Input: message, Scope: model.MemoryNone}, agent.NoMemory, nil)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %s: %w", LogPrefixClassify, ErrMsgLLMCallFailed, err)
	}

	responseText := agent.StripCodeFence(res.Text)
	if responseText == "" {
		r.l.Warnf(ctx, "%s: %s", LogPrefixClassify, ErrMsgEmptyResponse)
		return fr.fallback(ReasonEmptyResponse), nil
	}

	var output Decision
	if err := json.Unmarshal([]byte(responseText), &output); err != nil {
		r.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgJSONParseFailed, err)
		return fr.fallback(ReasonParsingError), nil
	}

	if _, ok := fr.routes[output.Route]; !ok {
		r.l.Warnf(ctx, "%s: %s: %q", LogPrefixClassify, ErrMsgUnknownRoute, output.Route)
		return fr.fallback(ReasonUnknownRoute), nil
	}

	r.l.Infof(ctx, "%s: %s classified as %s (confidence: %d%%)", LogPrefixClassify, family, output.Route, output.Confidence)
	return output, nil
}

func (fr *familyRouter) fallback(reason string) Decision {
	return Decision{
		Route:      fr.family.Fallback,
		Confidence: RouterFallbackConfidence,
		Reasoning:  reason,
	}
}
