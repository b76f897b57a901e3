// Package log provides structured wire-level event capture for the
// ObsidianIRC transport core.
//
// It defines the Logger interface and Event types for recording transport
// events: raw frames, connection state changes, and transport errors. It is
// separate from operational logging (slog) - protocol capture produces a
// complete machine-readable trace of what crossed the wire, for debugging
// and analysis.
//
// # Basic Usage
//
// Configure the transport.Manager with a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to a binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("session.ilog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a concatenation of CBOR-encoded events with integer keys.
// Reader iterates a recorded file, optionally filtered by client, direction,
// category, or time range.
package log
