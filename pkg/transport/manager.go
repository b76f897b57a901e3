package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/zocram4cc/ObsidianIRC/pkg/log"
)

// Manager errors.
var (
	// ErrUnknownConnection indicates an operation referenced a client
	// identifier with no live registry entry.
	ErrUnknownConnection = errors.New("unknown connection")

	// ErrQueueClosed indicates the connection's write loop has already
	// exited, so the outbound queue has no consumer.
	ErrQueueClosed = errors.New("connection queue closed")
)

// MaxLogFrameDataSize is the maximum frame data size to include in protocol
// log events (4 KB). Larger frames are truncated in the event, never on the
// wire.
const MaxLogFrameDataSize = 4096

// Config configures a Manager.
type Config struct {
	// TLS holds overrides for ircs:// connections.
	TLS TLSConfig

	// QueueSize is the outbound queue capacity per connection (default: 100).
	QueueSize int

	// ReadBufferSize is the socket read buffer size (default: 4096).
	ReadBufferSize int

	// Logger receives operational logs. Nil uses slog.Default().
	Logger *slog.Logger

	// ProtocolLogger captures wire-level frame, state, and error events
	// (optional).
	ProtocolLogger log.Logger
}

// DefaultConfig returns the default Manager configuration.
func DefaultConfig() Config {
	return Config{
		QueueSize:      DefaultQueueSize,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

// Manager multiplexes IRC connections for the host shell. It owns the
// registry mapping client identifiers to live connection handles and exposes
// the command surface: Connect, Disconnect, Send, Listen.
//
// The registry is guarded by a mutex; critical sections never perform
// network I/O. Client identifiers are opaque and caller-assigned; a Connect
// under an identifier that is already registered overwrites the previous
// handle, silently orphaning its goroutines until they fail on their own.
type Manager struct {
	cfg     Config
	handler EventHandler
	logger  *slog.Logger

	mu    sync.Mutex
	conns map[string]*connHandle
}

// NewManager creates a Manager delivering events to handler. A nil handler
// discards all events.
func NewManager(cfg Config, handler EventHandler) *Manager {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}
	if handler == nil {
		handler = NoopHandler{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		conns:   make(map[string]*connHandle),
	}
}

// Connect opens a connection to address and registers it under clientID.
// The address grammar is ("ircs://" | "irc://" | "") host [":" port]; see
// ParseAddress. ctx bounds dialing and the TLS handshake only - an
// established connection is not tied to it.
//
// On success the connection's read and write loops are running, the handle
// is registered, and OnStateChange(clientID, true) has been emitted. On any
// failure no goroutine is spawned and no registry entry is created.
func (m *Manager) Connect(ctx context.Context, clientID, address string) error {
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr.Addr())
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr.Addr(), err)
	}

	if addr.TLS {
		conn, err = negotiateTLS(ctx, conn, addr.Host, m.cfg.TLS)
		if err != nil {
			return err
		}
	}

	h := newConnHandle(m.cfg.QueueSize)

	go m.readLoop(clientID, conn, h)
	go m.writeLoop(clientID, conn, h)

	m.mu.Lock()
	m.conns[clientID] = h
	m.mu.Unlock()

	m.logger.Info("connected",
		"client_id", clientID,
		"addr", addr.Addr(),
		"tls", addr.TLS)
	m.logState(clientID, true, "connect")
	m.handler.OnStateChange(clientID, true)

	return nil
}

// Disconnect removes the registry entry for clientID and fires its shutdown
// signal. The signal is consumed once, so racing a natural close is benign.
// Returns ErrUnknownConnection when no entry exists - including when the
// connection already closed on its own.
func (m *Manager) Disconnect(clientID string) error {
	m.mu.Lock()
	h, ok := m.conns[clientID]
	if ok {
		delete(m.conns, clientID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConnection, clientID)
	}

	m.logger.Info("disconnecting", "client_id", clientID)
	h.shutdown()
	return nil
}

// Send enqueues data on the connection's outbound queue. The write loop
// appends the line terminator when absent. The queue lookup holds the
// registry lock; the enqueue itself does not, and blocks while the bounded
// queue is full.
//
// Returns ErrUnknownConnection when clientID has no registry entry and
// ErrQueueClosed when the write loop has already exited.
func (m *Manager) Send(clientID string, data []byte) error {
	m.mu.Lock()
	h, ok := m.conns[clientID]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConnection, clientID)
	}

	// A dead write loop leaves buffered queue slots; with both channels
	// ready the select below could pick either, so rule out the closed
	// queue first.
	select {
	case <-h.done:
		return fmt.Errorf("%w: %s", ErrQueueClosed, clientID)
	default:
	}

	select {
	case h.sendCh <- data:
		return nil
	case <-h.done:
		return fmt.Errorf("%w: %s", ErrQueueClosed, clientID)
	}
}

// Listen is reserved for symmetry with the host shell's command surface.
// Delivery is push-based through the EventHandler, so there is nothing to
// start.
func (m *Manager) Listen() error {
	return nil
}

// Len returns the number of registered connections.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// Close fires the shutdown signal for every registered connection and
// clears the registry. Each connection finishes tearing down when its read
// side observes the remote close; Close does not wait for that.
func (m *Manager) Close() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]*connHandle)
	m.mu.Unlock()

	for clientID, h := range conns {
		m.logger.Info("disconnecting", "client_id", clientID)
		h.shutdown()
	}
}

// release removes the registry entry for clientID if it still maps to h.
// A later Connect under the same identifier overwrites the entry; the
// orphaned loops must not remove their successor's registration.
func (m *Manager) release(clientID string, h *connHandle) {
	m.mu.Lock()
	if cur, ok := m.conns[clientID]; ok && cur == h {
		delete(m.conns, clientID)
	}
	m.mu.Unlock()
}

// logFrame records a wire-level frame in the protocol log.
func (m *Manager) logFrame(clientID string, dir log.Direction, data []byte) {
	if m.cfg.ProtocolLogger == nil {
		return
	}

	frameData := data
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		frameData = data[:MaxLogFrameDataSize]
		truncated = true
	}

	m.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  clientID,
		Direction: dir,
		Category:  log.CategoryFrame,
		Frame: &log.FrameEvent{
			Size:      len(data),
			Data:      frameData,
			Truncated: truncated,
		},
	})
}

// logState records a connection state change in the protocol log.
func (m *Manager) logState(clientID string, connected bool, reason string) {
	if m.cfg.ProtocolLogger == nil {
		return
	}

	m.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  clientID,
		Direction: log.DirectionIn,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Connected: connected,
			Reason:    reason,
		},
	})
}

// logError records a transport error in the protocol log.
func (m *Manager) logError(clientID string, err error) {
	if m.cfg.ProtocolLogger == nil {
		return
	}

	m.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  clientID,
		Direction: log.DirectionIn,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: err.Error(),
		},
	})
}
