package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"multi-agent-chat/pkg/gemini"
)

type wireRequest struct {
	SystemInstruction *gemini.Content  `json:"system_instruction"`
	Contents          []gemini.Content `json:"contents"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Contents[0].Parts[0].Text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"candidates": [{"content": {"parts": [{"text": "mocked response string"}], "role": "model"}}],
				"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
			}`))
		case strings.HasSuffix(r.URL.Path, ":streamGenerateContent"):
			if r.URL.Query().Get("alt") != "sse" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			for _, piece := range []string{"Hel", "lo", " there"} {
				fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":%q}],\"role\":\"model\"}}]}\r\n\r\n", piece)
			}
			fmt.Fprint(w, "data: {\"candidates\":[],\"usageMetadata\":{\"promptTokenCount\":2,\"candidatesTokenCount\":3,\"totalTokenCount\":5}}\r\n\r\n")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newClient(t *testing.T, url string) gemini.IGemini {
	t.Helper()
	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func userRequest(text string) *gemini.Request {
	return &gemini.Request{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: "be brief"}}},
		Contents:          []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: text}}}},
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != gemini.DefaultModel {
		t.Errorf("expected default model %s, got %s", gemini.DefaultModel, client.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	client := newClient(t, ts.URL)

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), userRequest("Hello world"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "mocked response string" {
			t.Errorf("unexpected content response: %s", resp.Text)
		}
		if resp.Usage.TotalTokens != 7 {
			t.Errorf("expected 7 total tokens, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		if _, err := client.GenerateContent(context.Background(), userRequest("cause_500")); err == nil {
			t.Fatal("expected error from 500 response")
		}
	})
}

func TestStreamGenerateContent(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	client := newClient(t, ts.URL)

	t.Run("Deltas In Order", func(t *testing.T) {
		var deltas []string
		resp, err := client.StreamGenerateContent(context.Background(), userRequest("Hi"), func(d string) error {
			deltas = append(deltas, d)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(deltas, "|") != "Hel|lo| there" {
			t.Errorf("unexpected deltas: %v", deltas)
		}
		if resp.Text != "Hello there" {
			t.Errorf("unexpected full text: %q", resp.Text)
		}
		if resp.Usage.OutputTokens != 3 {
			t.Errorf("expected 3 output tokens, got %d", resp.Usage.OutputTokens)
		}
	})

	t.Run("Callback Error Aborts", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		_, err := client.StreamGenerateContent(context.Background(), userRequest("Hi"), func(string) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Fatalf("expected callback error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected stream to stop after first delta, got %d calls", calls)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		_, err := client.StreamGenerateContent(context.Background(), userRequest("cause_500"), func(string) error { return nil })
		if err == nil {
			t.Fatal("expected error from 500 response")
		}
	})
}
