package streamclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-agent-chat/pkg/log"
	"multi-agent-chat/pkg/stream"
)

func TestClient_Stream(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, StreamPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		stream.SetHeaders(w.Header())
		w.Header().Set(HeaderConversationID, "c1")
		sw := stream.NewSSEWriter(w)
		_ = sw.WriteEvent(stream.Status{Message: "Consulting the news agent..."})
		_ = sw.WriteEvent(stream.Chunk{Value: "Headlines"})
		_ = sw.WriteEvent(stream.Done{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil, Config{OverallTimeout: time.Second, IdleTimeout: time.Second}, log.NewNop())
	consumer, tr, err := c.Stream(context.Background(), Request{ConversationID: "c1", Message: "news?", Agent: "news"}, nil)
	require.NoError(t, err)

	assert.Equal(t, Request{ConversationID: "c1", Message: "news?", Agent: "news"}, got)
	assert.Equal(t, StateCompleted, consumer.State())
	assert.Equal(t, "Headlines", tr.Text)
	assert.Equal(t, "c1", tr.ConversationID)
}

func TestClient_RejectedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error_code":409,"message":"conversation busy"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, Config{}, log.NewNop())
	consumer, _, err := c.Stream(context.Background(), Request{Message: "hi", Agent: "news"}, nil)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.StatusCode)
	assert.Equal(t, "conversation busy", he.Message)
	assert.Equal(t, StateIdle, consumer.State())
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil, Config{}, log.NewNop())
	consumer, _, err := c.Stream(context.Background(), Request{Message: "hi", Agent: "news"}, nil)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, FailureNetwork, f.Kind)
	assert.Equal(t, StateErrored, consumer.State())
}
