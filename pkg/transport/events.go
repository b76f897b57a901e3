package transport

// EventHandler receives the event stream for every connection a Manager
// owns. Each callback carries the client identifier the connection was
// opened under. Callbacks are invoked from connection goroutines; they must
// be safe for concurrent use and should return quickly - a blocking handler
// stalls the connection that emitted the event.
type EventHandler interface {
	// OnMessage delivers one framed line, terminator included, or the
	// final unterminated remainder when the stream ends mid-line. Lines
	// from one connection arrive in wire order.
	OnMessage(clientID string, data []byte)

	// OnError reports a transport-level failure on an established
	// connection. Errors during Connect itself are returned synchronously
	// and never reach this callback.
	OnError(clientID string, err error)

	// OnStateChange reports connection state: true exactly once after a
	// successful connect, false exactly once when the read side of the
	// stream ends.
	OnStateChange(clientID string, connected bool)
}

// NoopHandler discards all events. Used when the caller passes a nil
// handler to NewManager.
type NoopHandler struct{}

// OnMessage discards the line.
func (NoopHandler) OnMessage(string, []byte) {}

// OnError discards the error.
func (NoopHandler) OnError(string, error) {}

// OnStateChange discards the state change.
func (NoopHandler) OnStateChange(string, bool) {}

// Compile-time interface satisfaction check.
var _ EventHandler = NoopHandler{}
