package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"multi-agent-chat/internal/chat"
	"multi-agent-chat/pkg/response"
	"multi-agent-chat/pkg/stream"
)

const (
	wsFirstMessageWait = 30 * time.Second
	wsMaxMessageBytes  = 64 << 10
	wsCloseWait        = 5 * time.Second
)

// Stream godoc
// @Summary     Stream a chat answer
// @Description Runs the message through the agent family and streams typed events as server-sent events.
// @Description Each frame is `data: <json>` where json has a `type` of status, chunk, table, chart,
// @Description interactive_chart, heartbeat, error or done. The stream always ends with done.
// @Tags        Chat
// @Accept      json
// @Produce     text/event-stream
// @Param       body body streamReq true "Chat request"
// @Success     200 {string} string "event stream"
// @Header      200 {string} X-Conversation-ID "Conversation the stream belongs to"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conversation busy"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/chat/stream [POST]
func (h *handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processStreamReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	st, err := h.uc.Open(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.chat.delivery.http.Stream: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	stream.SetHeaders(c.Writer.Header())
	c.Header(HeaderConversationID, st.ConversationID())
	c.Status(http.StatusOK)
	c.Writer.Flush()

	out := st.Run(ctx, stream.NewSSEWriter(c.Writer))
	h.l.Debugf(ctx, "internal.chat.delivery.http.Stream: session %s ended: %s", st.SessionID(), out.Result)
}

// WebSocket godoc
// @Summary     Stream a chat answer over WebSocket
// @Description After the upgrade the client sends one text frame `{"message": "..."}`. The server answers with
// @Description one event per text frame, using the same JSON as the SSE endpoint, and closes after done.
// @Tags        Chat
// @Param       agent           query string true  "Agent family"
// @Param       conversation_id query string false "Conversation ID"
// @Success     101 {string} string "Switching Protocols"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/chat/ws [GET]
func (h *handler) WebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	q, err := h.processWSQuery(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already replied
		h.l.Warnf(ctx, "internal.chat.delivery.http.WebSocket: upgrade: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(wsFirstMessageWait))

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		h.closeWS(conn, websocket.CloseUnsupportedData, `expected {"message": "..."}`)
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	st, err := h.uc.Open(ctx, chat.StreamInput{
		ConversationID: q.ConversationID,
		Message:        msg.Message,
		Agent:          q.Agent,
	})
	if err != nil {
		h.l.Warnf(ctx, "internal.chat.delivery.http.WebSocket: %v", err)
		httpErr := h.mapError(err)
		h.closeWS(conn, closeCode(httpErr.StatusCode), httpErr.Message)
		return
	}

	// a read error (including the client's close frame) means the client left
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	w := stream.NewWSWriter(conn)
	out := st.Run(ctx, w)
	_ = w.Close()
	h.l.Debugf(ctx, "internal.chat.delivery.http.WebSocket: session %s ended: %s", st.SessionID(), out.Result)
}

// Agents godoc
// @Summary     List agent families
// @Tags        Chat
// @Produce     json
// @Success     200 {object} agentsResp
// @Router      /api/v1/chat/agents [GET]
func (h *handler) Agents(c *gin.Context) {
	response.OK(c, agentsResp{Agents: h.uc.Agents()})
}

func (h *handler) closeWS(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(wsCloseWait))
}
