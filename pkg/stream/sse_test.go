package stream

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetHeaders(t *testing.T) {
	h := http.Header{}
	SetHeaders(h)

	assert.Equal(t, "text/event-stream; charset=utf-8", h.Get("Content-Type"))
	assert.Equal(t, "no-cache, no-transform", h.Get("Cache-Control"))
	assert.Equal(t, "keep-alive", h.Get("Connection"))
	assert.Equal(t, "no", h.Get("X-Accel-Buffering"))
}

func TestSSEWriter_FramesAndFlushes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewSSEWriter(rec)

	require.NoError(t, w.WriteEvent(Status{Message: "Working"}))
	assert.True(t, rec.Flushed, "expected flush after first event")

	require.NoError(t, w.WriteEvent(Chunk{Value: "hi"}))
	require.NoError(t, w.WriteEvent(Done{}))

	want := "data: {\"type\":\"status\",\"message\":\"Working\"}\n\n" +
		"data: {\"type\":\"chunk\",\"value\":\"hi\"}\n\n" +
		"data: {\"type\":\"done\"}\n\n"
	assert.Equal(t, want, rec.Body.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestSSEWriter_WriteError(t *testing.T) {
	err := NewSSEWriter(failingWriter{}).WriteEvent(Done{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestReader_ParsesWriterOutput(t *testing.T) {
	var sb strings.Builder
	w := NewSSEWriter(&sb)
	events := []Event{Status{Message: "s"}, Chunk{Value: "a"}, Chunk{Value: "b"}, Done{}}
	for _, e := range events {
		require.NoError(t, w.WriteEvent(e))
	}

	r := NewReader(strings.NewReader(sb.String()))
	for _, want := range events {
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_SkipsCommentsAndRecoversFromBadFrames(t *testing.T) {
	input := ": keep-alive comment\n\n" +
		"event: message\ndata: {\"type\":\"mystery\"}\n\n" +
		"data: {broken\n\n" +
		"data: {\"type\":\"chunk\",\n" +
		"data: \"value\":\"multi-line\"}\n\n"
	r := NewReader(strings.NewReader(input))

	_, err := r.Next()
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrMalformedEvent)

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Chunk{Value: "multi-line"}, got)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_TruncatedFrame(t *testing.T) {
	r := NewReader(strings.NewReader("data: {\"type\":\"done\"}"))
	_, err := r.Next()
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
