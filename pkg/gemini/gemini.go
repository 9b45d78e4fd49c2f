package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// newGeminiImpl creates a new Gemini implementation
func newGeminiImpl(cfg Config) *geminiImpl {
	return &geminiImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     cfg.APIURL,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a generation request to Gemini API
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.post(ctx, "generateContent", "", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gemini: failed to decode response: %w", err)
	}

	return &Response{Text: result.text(), Usage: result.usage()}, nil
}

// StreamGenerateContent calls streamGenerateContent with alt=sse and forwards each
// candidate text fragment to onDelta.
func (g *geminiImpl) StreamGenerateContent(ctx context.Context, req *Request, onDelta func(string) error) (*Response, error) {
	resp, err := g.post(ctx, "streamGenerateContent", "alt=sse&", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var (
		full  strings.Builder
		usage Usage
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, ssePrefix))
		if payload == "" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return nil, fmt.Errorf("gemini: failed to decode stream chunk: %w", err)
		}
		if chunk.UsageMetadata != nil {
			usage = chunk.usage()
		}

		text := chunk.text()
		if text == "" {
			continue
		}
		full.WriteString(text)
		if err := onDelta(text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gemini: stream read failed: %w", err)
	}

	return &Response{Text: full.String(), Usage: usage}, nil
}

// Model returns the model being used
func (g *geminiImpl) Model() string {
	return g.model
}

// post sends the request to the given method and returns the response on 200.
// The caller closes the body.
func (g *geminiImpl) post(ctx context.Context, method, query string, req *Request) (*http.Response, error) {
	url := fmt.Sprintf("%s/models/%s:%s?%skey=%s", g.apiURL, g.model, method, query, g.apiKey)

	body, err := json.Marshal(g.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to call API: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini: API error %d: %s", resp.StatusCode, string(raw))
	}

	return resp, nil
}

// transformRequest converts request to Gemini API format
func (g *geminiImpl) transformRequest(req *Request) generateRequest {
	out := generateRequest{
		SystemInstruction: req.SystemInstruction,
		Contents:          req.Contents,
	}
	if out.Contents == nil {
		out.Contents = []Content{}
	}

	if req.Temperature > 0 || req.MaxTokens > 0 {
		out.GenerationConfig = &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	return out
}
