package transport

import "context"

// Transport is the command surface the host shell drives. Implemented by
// Manager.
type Transport interface {
	// Connect opens a connection to address under clientID.
	Connect(ctx context.Context, clientID, address string) error

	// Disconnect shuts down the connection registered under clientID.
	Disconnect(clientID string) error

	// Send enqueues one outbound line for clientID.
	Send(clientID string, data []byte) error

	// Listen is reserved; event delivery is push-based.
	Listen() error
}

// Compile-time interface satisfaction check.
var _ Transport = (*Manager)(nil)
