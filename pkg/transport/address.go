package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Default IRC ports.
const (
	// DefaultPort is the default port for plaintext connections.
	DefaultPort = 6667

	// DefaultTLSPort is the default port for encrypted connections.
	DefaultTLSPort = 6697
)

// URI schemes recognized by ParseAddress.
const (
	schemePlain = "irc://"
	schemeTLS   = "ircs://"
)

// ErrInvalidAddress indicates an address whose host part is empty.
var ErrInvalidAddress = errors.New("invalid address")

// Address is a parsed server address.
type Address struct {
	// TLS indicates the connection must be encrypted.
	TLS bool

	// Host is the server hostname or IP literal.
	Host string

	// Port is the TCP port.
	Port uint16
}

// Addr returns the address in "host:port" form, suitable for dialing.
func (a Address) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}

// String returns the address with its scheme, e.g. "ircs://irc.example.org:6697".
func (a Address) String() string {
	scheme := schemePlain
	if a.TLS {
		scheme = schemeTLS
	}
	return scheme + a.Addr()
}

// ParseAddress parses a connection string of the form
//
//	("ircs://" | "irc://" | "") host [":" port]
//
// An ircs:// prefix requires TLS and defaults to port 6697; irc:// or no
// prefix is plaintext and defaults to port 6667. No DNS resolution is
// performed. The only failure is an empty host.
func ParseAddress(s string) (Address, error) {
	addr := Address{Port: DefaultPort}

	rest := s
	switch {
	case strings.HasPrefix(s, schemeTLS):
		addr.TLS = true
		addr.Port = DefaultTLSPort
		rest = s[len(schemeTLS):]
	case strings.HasPrefix(s, schemePlain):
		rest = s[len(schemePlain):]
	}

	host, port := splitHostPort(rest, addr.Port)
	if host == "" {
		return Address{}, fmt.Errorf("%w: empty host in %q", ErrInvalidAddress, s)
	}
	addr.Host = host
	addr.Port = port

	return addr, nil
}

// splitHostPort splits on the last colon. A trailing segment that does not
// parse as a 16-bit port is kept as part of the hostname, so a malformed
// port degrades to the default rather than failing.
func splitHostPort(s string, defaultPort uint16) (string, uint16) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, defaultPort
	}

	port, err := strconv.ParseUint(s[i+1:], 10, 16)
	if err != nil {
		return s, defaultPort
	}

	return s[:i], uint16(port)
}
