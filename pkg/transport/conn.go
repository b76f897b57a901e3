package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/zocram4cc/ObsidianIRC/pkg/log"
)

// connHandle is a live connection's controllable surface. The Manager's
// registry owns the handle; the read and write loops hold only the channel
// ends they consume.
type connHandle struct {
	// sendCh is the bounded outbound queue drained by the write loop.
	sendCh chan []byte

	// shutdownCh is closed to tell the write loop to shut the stream down.
	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	// done is closed when the write loop exits, so Send callers observe
	// ErrQueueClosed instead of blocking forever.
	done chan struct{}
}

func newConnHandle(queueSize int) *connHandle {
	return &connHandle{
		sendCh:     make(chan []byte, queueSize),
		shutdownCh: make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// shutdown fires the shutdown signal. The signal is consumed once; every
// call after the first is a no-op, so an explicit Disconnect racing a
// natural stream close is harmless.
func (h *connHandle) shutdown() {
	h.shutdownOnce.Do(func() { close(h.shutdownCh) })
}

// closeWriter is satisfied by *net.TCPConn and *tls.Conn and allows an
// orderly half-close of the write direction.
type closeWriter interface {
	CloseWrite() error
}

// readLoop owns the read half of the stream. It drives the line decoder,
// emits message and state events, and on any terminal outcome fires the
// shutdown signal so the write loop tears the connection down. It never
// touches the registry itself; the write loop is the sole removal path
// besides an explicit Disconnect.
//
// The read loop also owns the socket close: it is the last goroutine to
// terminate on every path, graceful or not.
func (m *Manager) readLoop(clientID string, conn net.Conn, h *connHandle) {
	defer conn.Close()
	defer h.shutdown()

	dec := NewLineDecoder()
	buf := make([]byte, m.cfg.ReadBufferSize)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			for _, line := range dec.Feed(buf[:n]) {
				m.logFrame(clientID, log.DirectionIn, line)
				m.handler.OnMessage(clientID, line)
			}
		}
		if err == nil {
			continue
		}

		if err == io.EOF {
			// Graceful close: a trailing partial line is flushed as one
			// final frame rather than dropped.
			if rem := dec.Flush(); len(rem) > 0 {
				m.logFrame(clientID, log.DirectionIn, rem)
				m.handler.OnMessage(clientID, rem)
			}
			m.logger.Debug("connection closed by peer", "client_id", clientID)
			m.logState(clientID, false, "peer closed")
		} else {
			m.logger.Debug("read failed", "client_id", clientID, "error", err)
			m.logError(clientID, err)
			m.handler.OnError(clientID, fmt.Errorf("read error: %w", err))
			m.logState(clientID, false, "read error")
		}

		m.handler.OnStateChange(clientID, false)
		return
	}
}

// writeLoop owns the write half of the stream. It drains the outbound
// queue, terminates each payload, and races the queue against the shutdown
// signal; whichever becomes ready first wins. A write or flush error is
// terminal for the write side only - the read loop keeps delivering inbound
// data until its own stream outcome.
//
// On exit, by any path, the loop releases the registry entry and closes
// done.
func (m *Manager) writeLoop(clientID string, conn net.Conn, h *connHandle) {
	defer close(h.done)
	defer m.release(clientID, h)

	w := bufio.NewWriter(conn)

	for {
		select {
		case data := <-h.sendCh:
			data = appendTerminator(data)
			if _, err := w.Write(data); err != nil {
				m.logger.Error("write failed", "client_id", clientID, "error", err)
				m.logError(clientID, err)
				return
			}
			if err := w.Flush(); err != nil {
				m.logger.Error("flush failed", "client_id", clientID, "error", err)
				m.logError(clientID, err)
				return
			}
			m.logFrame(clientID, log.DirectionOut, data)

		case <-h.shutdownCh:
			// Orderly shutdown: half-close the write direction so the
			// server sees EOF and closes, which ends the read loop.
			if cw, ok := conn.(closeWriter); ok {
				_ = cw.CloseWrite()
			} else {
				_ = conn.Close()
			}
			return
		}
	}
}
