package stream

import "errors"

var (
	// ErrUnknownEventType is returned by Decode for a well-formed event whose
	// type is not part of the protocol.
	ErrUnknownEventType = errors.New("stream: unknown event type")

	// ErrMalformedEvent is returned by Decode for payloads that are not a JSON
	// object with a string "type" field, or whose fields do not fit the type.
	ErrMalformedEvent = errors.New("stream: malformed event")

	// ErrWriterClosed is returned when writing to a closed writer.
	ErrWriterClosed = errors.New("stream: writer closed")
)
