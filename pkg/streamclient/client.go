package streamclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"multi-agent-chat/pkg/log"
)

// Request is the body of a stream request.
type Request struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
	Agent          string `json:"agent"`
}

// Client opens chat streams against a server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        Config
	l          log.Logger
}

// NewClient creates a Client. httpClient must not set a Timeout shorter than
// the overall stream timeout; nil uses a client without one.
func NewClient(baseURL string, httpClient *http.Client, cfg Config, l log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cfg:        cfg,
		l:          l,
	}
}

// Stream posts req and consumes the response with a new Consumer, which is
// returned so callers can inspect its state and failure. Non-200 responses
// yield an *HTTPError before any event is read.
func (c *Client) Stream(ctx context.Context, req Request, h Handler) (*Consumer, Transcript, error) {
	consumer := NewConsumer(c.cfg, h, c.l)
	transcript, err := c.StreamWith(ctx, consumer, req)
	return consumer, transcript, err
}

// StreamWith is Stream with a caller-owned Consumer, for callers that need to
// Cancel it from another goroutine.
func (c *Client) StreamWith(ctx context.Context, consumer *Consumer, req Request) (Transcript, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Transcript{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+StreamPath, bytes.NewReader(body))
	if err != nil {
		return Transcript{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Transcript{}, consumer.fail(&Failure{Kind: FailureNetwork, Message: MsgNetwork, Err: err})
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return Transcript{}, decodeHTTPError(resp)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		return Transcript{}, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("unexpected content type %q", ct)}
	}

	transcript, err := consumer.Consume(ctx, resp.Body)
	transcript.ConversationID = resp.Header.Get(HeaderConversationID)
	return transcript, err
}

// decodeHTTPError reads the JSON error envelope of a rejected request.
func decodeHTTPError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		envelope.Message = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: envelope.Message}
}
