package llmprovider

import "context"

// DeltaFunc receives streamed text fragments in arrival order. Returning an
// error aborts the stream.
type DeltaFunc func(delta string) error

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// StreamContent streams the completion through onDelta and returns the
	// assembled response. Providers without native streaming emit the whole
	// completion as a single delta.
	StreamContent(ctx context.Context, req *Request, onDelta DeltaFunc) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Model returns the model being used
	Model() string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message
type Message struct {
	Role string // "user", "assistant"
	Text string
}

// Response represents a normalized LLM generation response
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// streamOnce adapts a unary call to the streaming contract.
func streamOnce(ctx context.Context, p Provider, req *Request, onDelta DeltaFunc) (*Response, error) {
	resp, err := p.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Text != "" {
		if err := onDelta(resp.Text); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
