package llmprovider

import (
	"context"

	"multi-agent-chat/pkg/gemini"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toGeminiRequest(req))
	if err != nil {
		return nil, err
	}
	return a.toResponse(resp), nil
}

// StreamContent implements Provider interface
func (a *GeminiAdapter) StreamContent(ctx context.Context, req *Request, onDelta DeltaFunc) (*Response, error) {
	resp, err := a.client.StreamGenerateContent(ctx, toGeminiRequest(req), onDelta)
	if err != nil {
		return nil, err
	}
	return a.toResponse(resp), nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func (a *GeminiAdapter) toResponse(resp *gemini.Response) *Response {
	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
}

func toGeminiRequest(req *Request) *gemini.Request {
	out := &gemini.Request{
		Contents:    make([]gemini.Content, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != "" {
		out.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.SystemInstruction}}}
	}
	for _, msg := range req.Messages {
		role := gemini.RoleUser
		if msg.Role == RoleAssistant {
			role = gemini.RoleModel
		}
		out.Contents = append(out.Contents, gemini.Content{Role: role, Parts: []gemini.Part{{Text: msg.Text}}})
	}
	return out
}
