package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"multi-agent-chat/internal/chat"
	"multi-agent-chat/internal/conversation"
	pkgErrors "multi-agent-chat/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) *pkgErrors.HTTPError {
	switch {
	case errors.Is(err, chat.ErrUnknownAgent):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "unknown agent")
	case errors.Is(err, chat.ErrEmptyMessage):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "message is required")
	case errors.Is(err, chat.ErrMessageTooLong):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "message is too long")
	case errors.Is(err, conversation.ErrInvalidConversationID):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	case errors.Is(err, chat.ErrConversationBusy):
		return pkgErrors.NewHTTPError(http.StatusConflict, "conversation busy")
	default:
		return pkgErrors.ErrInternalServerError
	}
}

// closeCode picks the WebSocket close code for a rejected stream.
func closeCode(status int) int {
	switch status {
	case http.StatusConflict:
		return websocket.CloseTryAgainLater
	case http.StatusInternalServerError:
		return websocket.CloseInternalServerErr
	default:
		return websocket.ClosePolicyViolation
	}
}
