package log

import "time"

// Event represents one captured transport event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ClientID identifies the logical connection the event belongs to.
	ClientID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to this client.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port), when known.
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (exactly one is set).
	Frame       *FrameEvent       `cbor:"6,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"7,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"8,keyasint,omitempty"`
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates inbound data from the server.
	DirectionIn Direction = 0
	// DirectionOut indicates outbound data to the server.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates one framed line on the wire.
	CategoryFrame Category = 0
	// CategoryState indicates a connection state change.
	CategoryState Category = 1
	// CategoryError indicates a transport error.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures one framed line.
type FrameEvent struct {
	// Size is the full frame size in bytes, terminator included.
	Size int `cbor:"1,keyasint"`

	// Data is the frame payload, possibly truncated for the log.
	Data []byte `cbor:"2,keyasint"`

	// Truncated indicates Data was cut short of Size.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures a connection state transition.
type StateChangeEvent struct {
	// Connected is the new state: true after a successful connect, false
	// when the stream ends.
	Connected bool `cbor:"1,keyasint"`

	// Reason describes what triggered the transition.
	Reason string `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData captures a transport-level failure.
type ErrorEventData struct {
	// Message is the error description.
	Message string `cbor:"1,keyasint"`

	// Context carries optional extra detail.
	Context string `cbor:"2,keyasint,omitempty"`
}
