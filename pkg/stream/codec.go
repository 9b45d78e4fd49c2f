package stream

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes e as a single JSON object.
func Marshal(e Event) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil event", ErrMalformedEvent)
	}
	return json.Marshal(e)
}

// Decode parses one JSON event. Dispatch is exhaustive on "type"; there is no
// fallback branch.
func Decode(data []byte) (Event, error) {
	var head struct {
		Type *Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if head.Type == nil {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}

	switch *head.Type {
	case TypeStatus:
		return decodeAs[Status](data)
	case TypeChunk:
		return decodeAs[Chunk](data)
	case TypeTable:
		return decodeAs[Table](data)
	case TypeChart:
		return decodeAs[Chart](data)
	case TypeInteractiveChart:
		ev, err := decodeAs[Chart](data)
		if err != nil {
			return nil, err
		}
		c := ev.(Chart)
		c.Interactive = true
		return c, nil
	case TypeHeartbeat:
		return decodeAs[Heartbeat](data)
	case TypeError:
		return decodeAs[Error](data)
	case TypeDone:
		return Done{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, string(*head.Type))
	}
}

func decodeAs[T Event](data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return ev, nil
}
