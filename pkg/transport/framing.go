package transport

import "bytes"

// Framing constants.
const (
	// Terminator is the two-byte IRC line terminator. Inbound frames are
	// delimited by it; outbound payloads get it appended when absent.
	Terminator = "\r\n"

	// DefaultReadBufferSize is the per-connection socket read buffer size.
	DefaultReadBufferSize = 4096

	// DefaultQueueSize is the outbound queue capacity per connection.
	DefaultQueueSize = 100
)

var terminator = []byte(Terminator)

// LineDecoder re-assembles an arbitrary byte stream into discrete
// CRLF-terminated lines. Bytes without a terminator accumulate until a later
// Feed completes the line, so partial reads and multi-line reads both work.
//
// A LineDecoder is owned by a single connection's read loop and is not safe
// for concurrent use.
type LineDecoder struct {
	buf []byte
}

// NewLineDecoder creates an empty decoder.
func NewLineDecoder() *LineDecoder {
	return &LineDecoder{}
}

// Feed appends p to the buffer and returns every complete line now
// available, terminator included, in arrival order. A feed containing no
// terminator returns nil.
func (d *LineDecoder) Feed(p []byte) [][]byte {
	d.buf = append(d.buf, p...)

	var lines [][]byte
	for {
		i := bytes.Index(d.buf, terminator)
		if i < 0 {
			break
		}
		end := i + len(terminator)

		line := make([]byte, end)
		copy(line, d.buf[:end])
		lines = append(lines, line)

		d.buf = d.buf[end:]
	}

	if len(d.buf) == 0 {
		d.buf = nil
	}
	return lines
}

// Flush returns any unterminated remainder and resets the decoder. Called
// once at stream end so a partial final line is delivered instead of lost.
func (d *LineDecoder) Flush() []byte {
	if len(d.buf) == 0 {
		return nil
	}
	rem := d.buf
	d.buf = nil
	return rem
}

// Buffered returns the number of bytes awaiting a terminator.
func (d *LineDecoder) Buffered() int {
	return len(d.buf)
}

// appendTerminator returns data ending with the line terminator, appending
// it when absent. The input is never modified; a terminated payload is
// returned as-is and is never double-terminated.
func appendTerminator(data []byte) []byte {
	if bytes.HasSuffix(data, terminator) {
		return data
	}
	out := make([]byte, 0, len(data)+len(terminator))
	out = append(out, data...)
	return append(out, terminator...)
}
