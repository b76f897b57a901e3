// Package transport implements the ObsidianIRC connection core.
//
// The transport layer handles:
//   - Address parsing (irc:// and ircs:// URIs with default ports)
//   - TCP connections with optional TLS
//   - CRLF line framing over the byte stream
//   - Per-connection read/write goroutines and multi-connection bookkeeping
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│        IRC lines               │
//	├────────────────────────────────┤
//	│     CRLF Framing (2B)          │
//	├────────────────────────────────┤
//	│     TLS (ircs:// only)         │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// The core does not interpret IRC semantics. It delivers discrete framed
// lines to the host shell through an EventHandler and accepts outbound lines
// through Manager.Send. Each connection owns exactly two goroutines: a read
// loop that re-assembles and emits lines, and a write loop that drains a
// bounded outbound queue.
//
// Reconnection, backoff, and timeouts are the caller's responsibility. A
// context passed to Connect bounds dialing and the TLS handshake; an
// established connection lives until the stream ends, a read or write fails,
// or Disconnect is called.
package transport
