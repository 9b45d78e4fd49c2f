package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	ssePrefix      = "data: "
	sseDelimiter   = "\n\n"
	maxSSEFrameLen = 4 << 20
)

// Writer emits encoded events to a transport.
type Writer interface {
	WriteEvent(e Event) error
}

// SetHeaders sets the response headers an SSE stream needs to pass through
// reverse proxies unbuffered.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream; charset=utf-8")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

// SSEWriter frames events as "data: <json>\n\n" and flushes after each one.
type SSEWriter struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

// NewSSEWriter wraps w. If w implements http.Flusher every event is flushed.
func NewSSEWriter(w io.Writer) *SSEWriter {
	sw := &SSEWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// WriteEvent writes one frame.
func (s *SSEWriter) WriteEvent(e Event) error {
	data, err := Marshal(e)
	if err != nil {
		return err
	}

	frame := make([]byte, 0, len(ssePrefix)+len(data)+len(sseDelimiter))
	frame = append(frame, ssePrefix...)
	frame = append(frame, data...)
	frame = append(frame, sseDelimiter...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(frame); err != nil {
		return fmt.Errorf("stream: write %s: %w", e.Type(), err)
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// Reader parses SSE frames from a byte stream.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSEFrameLen)
	return &Reader{scanner: scanner}
}

// Next returns the next event. Decode failures are returned wrapped in
// ErrMalformedEvent or ErrUnknownEventType and the Reader stays usable; any
// other error comes from the underlying stream. io.EOF marks a clean end.
func (r *Reader) Next() (Event, error) {
	var data bytes.Buffer
	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if data.Len() == 0 {
				continue
			}
			return Decode(data.Bytes())
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		if strings.HasPrefix(line, "data:") {
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
		// event:, id: and retry: fields are not used by this protocol.
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if data.Len() > 0 {
		return nil, fmt.Errorf("%w: truncated frame", ErrMalformedEvent)
	}
	return nil, io.EOF
}
