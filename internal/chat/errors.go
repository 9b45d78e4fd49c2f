package chat

import "errors"

var (
	ErrConversationBusy = errors.New("chat: conversation already has an open stream")
	ErrUnknownAgent     = errors.New("chat: unknown agent")
	ErrEmptyMessage     = errors.New("chat: empty message")
	ErrMessageTooLong   = errors.New("chat: message too long")
)
