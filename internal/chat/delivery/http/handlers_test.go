package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-agent-chat/config"
	"multi-agent-chat/internal/chat"
	chatUC "multi-agent-chat/internal/chat/usecase"
	"multi-agent-chat/internal/middleware"
	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/internal/streaming"
	"multi-agent-chat/pkg/log"
	"multi-agent-chat/pkg/stream"
)

type echoPipeline struct{}

func (echoPipeline) Handle(ctx context.Context, req pipeline.Request, emit pipeline.Emitter) error {
	if err := emit.Emit(stream.Status{Message: "echo"}); err != nil {
		return err
	}
	return emit.Emit(stream.Chunk{Value: req.Message})
}

func (echoPipeline) Families() []string { return []string{"news"} }

// rejectingUseCase fails every Open with err.
type rejectingUseCase struct{ err error }

func (u rejectingUseCase) Open(context.Context, chat.StreamInput) (chat.Stream, error) {
	return nil, u.err
}

func (u rejectingUseCase) Agents() []string { return nil }

func newServer(t *testing.T, uc chat.UseCase) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), config.RateLimitConfig{})
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), mw)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func echoUseCase() chat.UseCase {
	runner := streaming.NewRunner(streaming.Config{
		HeartbeatInterval: time.Second,
		IdleTimeout:       time.Second,
		OverallTimeout:    2 * time.Second,
	}, log.NewNop())
	return chatUC.New(log.NewNop(), echoPipeline{}, runner)
}

func readAll(t *testing.T, body io.Reader) []stream.Event {
	t.Helper()
	r := stream.NewReader(body)
	var events []stream.Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, e)
	}
}

func TestStream_SSE(t *testing.T) {
	srv := newServer(t, echoUseCase())

	resp, err := http.Post(srv.URL+"/api/v1/chat/stream", "application/json",
		strings.NewReader(`{"message":"hello","agent":"news"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache, no-transform", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no", resp.Header.Get("X-Accel-Buffering"))
	assert.NotEmpty(t, resp.Header.Get(HeaderConversationID))

	assert.Equal(t, []stream.Event{
		stream.Status{Message: "echo"},
		stream.Chunk{Value: "hello"},
		stream.Done{},
	}, readAll(t, resp.Body))
}

func TestStream_RejectedBeforeStreaming(t *testing.T) {
	tcs := []struct {
		name     string
		uc       chat.UseCase
		body     string
		wantCode int
	}{
		{name: "missing message", uc: echoUseCase(), body: `{"agent":"news"}`, wantCode: http.StatusBadRequest},
		{name: "bad json", uc: echoUseCase(), body: `{`, wantCode: http.StatusBadRequest},
		{name: "unknown agent", uc: echoUseCase(), body: `{"message":"hi","agent":"weather"}`, wantCode: http.StatusBadRequest},
		{name: "busy", uc: rejectingUseCase{err: chat.ErrConversationBusy}, body: `{"message":"hi","agent":"news"}`, wantCode: http.StatusConflict},
		{name: "internal", uc: rejectingUseCase{err: errors.New("db down")}, body: `{"message":"hi","agent":"news"}`, wantCode: http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.uc)
			resp, err := http.Post(srv.URL+"/api/v1/chat/stream", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
		})
	}
}

func TestWebSocket(t *testing.T) {
	srv := newServer(t, echoUseCase())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws?agent=news&conversation_id=c1"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsMessage{Message: "over ws"}))

	var events []stream.Event
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		e, err := stream.Decode(data)
		require.NoError(t, err)
		events = append(events, e)
	}

	assert.Equal(t, []stream.Event{
		stream.Status{Message: "echo"},
		stream.Chunk{Value: "over ws"},
		stream.Done{},
	}, events)
}

func TestWebSocket_Busy(t *testing.T) {
	srv := newServer(t, rejectingUseCase{err: chat.ErrConversationBusy})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws?agent=news"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsMessage{Message: "hi"}))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseTryAgainLater), "unexpected error: %v", err)
}

func TestAgents(t *testing.T) {
	srv := newServer(t, echoUseCase())

	resp, err := http.Get(srv.URL + "/api/v1/chat/agents")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"agents":["news"]`)
}
