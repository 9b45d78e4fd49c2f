package http

import (
	"errors"
	"net/http"

	"multi-agent-chat/internal/conversation"
	pkgErrors "multi-agent-chat/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, conversation.ErrConversationNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "conversation not found")
	case errors.Is(err, conversation.ErrInvalidConversationID):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
