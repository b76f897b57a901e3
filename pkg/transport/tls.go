package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// TLS errors. Both terminate a connect attempt before any goroutine is
// spawned or registry entry created.
var (
	// ErrTLSConfig indicates the TLS client configuration could not be built.
	ErrTLSConfig = errors.New("TLS configuration failed")

	// ErrTLSHandshake indicates the handshake with the server failed.
	ErrTLSHandshake = errors.New("TLS handshake failed")
)

// TLSConfig holds optional overrides for encrypted connections. The zero
// value validates server certificates against the platform trust store
// using the dialed hostname.
type TLSConfig struct {
	// RootCAs overrides the trust store used to validate the server
	// certificate. Nil uses the platform roots (on Android, the bundled
	// fallback roots; see roots_android.go).
	RootCAs *x509.CertPool

	// ServerName overrides the hostname used for certificate validation.
	// Empty uses the host from the parsed address.
	ServerName string

	// InsecureSkipVerify disables certificate verification.
	// Only for testing - never use in production!
	InsecureSkipVerify bool
}

// NewClientTLSConfig builds the crypto/tls client configuration for a
// connection to host.
func NewClientTLSConfig(cfg TLSConfig, host string) (*tls.Config, error) {
	serverName := cfg.ServerName
	if serverName == "" {
		serverName = host
	}
	if serverName == "" && !cfg.InsecureSkipVerify {
		return nil, fmt.Errorf("%w: no server name for certificate validation", ErrTLSConfig)
	}

	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         serverName,
		RootCAs:            cfg.RootCAs,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}, nil
}

// negotiateTLS wraps a connected raw stream in a client TLS session
// validated against host. The returned stream exposes the same net.Conn
// contract as the raw one, so downstream code is TLS-agnostic. On failure
// the raw conn is closed and no partial state is left behind.
func negotiateTLS(ctx context.Context, conn net.Conn, host string, cfg TLSConfig) (net.Conn, error) {
	tlsConf, err := NewClientTLSConfig(cfg, host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	tlsConn := tls.Client(conn, tlsConf)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrTLSHandshake, err)
	}

	return tlsConn, nil
}
