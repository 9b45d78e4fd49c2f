package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

// WSWriter sends one event per text frame.
type WSWriter struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewWSWriter wraps an upgraded connection.
func NewWSWriter(conn *websocket.Conn) *WSWriter {
	return &WSWriter{conn: conn}
}

// WriteEvent writes one frame.
func (w *WSWriter) WriteEvent(e Event) error {
	data, err := Marshal(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWriterClosed
	}

	w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("stream: write %s: %w", e.Type(), err)
	}
	return nil
}

// Close sends a normal close frame and closes the connection.
func (w *WSWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream complete"),
		time.Now().Add(wsWriteWait))
	return w.conn.Close()
}
