package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"log/slog"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateTestCertificate creates a self-signed server certificate valid
// for 127.0.0.1.
func generateTestCertificate(t *testing.T) (tls.Certificate, *x509.Certificate) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: "test.local",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &privateKey.PublicKey, privateKey)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		t.Fatalf("failed to parse certificate: %v", err)
	}

	return tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  privateKey,
		Leaf:        cert,
	}, cert
}

// startTLSEchoServer starts a TLS server with the given certificate that
// echoes every byte back.
func startTLSEchoServer(t *testing.T, cert tls.Certificate) string {
	t.Helper()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				_, _ = io.Copy(c, c)
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func TestNewClientTLSConfig(t *testing.T) {
	conf, err := NewClientTLSConfig(TLSConfig{}, "irc.example.org")
	require.NoError(t, err)
	assert.Equal(t, "irc.example.org", conf.ServerName)
	assert.Equal(t, uint16(tls.VersionTLS12), conf.MinVersion)
	assert.False(t, conf.InsecureSkipVerify)

	// ServerName override wins over the dialed host.
	conf, err = NewClientTLSConfig(TLSConfig{ServerName: "other.example.org"}, "irc.example.org")
	require.NoError(t, err)
	assert.Equal(t, "other.example.org", conf.ServerName)
}

func TestNewClientTLSConfigNoServerName(t *testing.T) {
	_, err := NewClientTLSConfig(TLSConfig{}, "")
	require.ErrorIs(t, err, ErrTLSConfig)

	// Verification disabled: no server name needed.
	_, err = NewClientTLSConfig(TLSConfig{InsecureSkipVerify: true}, "")
	require.NoError(t, err)
}

func TestConnectTLSTrustedRoots(t *testing.T) {
	tlsCert, x509Cert := generateTestCertificate(t)
	addr := startTLSEchoServer(t, tlsCert)

	roots := x509.NewCertPool()
	roots.AddCert(x509Cert)

	rec := newRecorder()
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.DiscardHandler)
	cfg.TLS.RootCAs = roots
	m := NewManager(cfg, rec)
	t.Cleanup(m.Close)

	err := m.Connect(context.Background(), "secure", "ircs://"+addr)
	require.NoError(t, err)
	rec.waitState(t, "secure", true)

	// Downstream code is TLS-agnostic: framing works as over plain TCP.
	require.NoError(t, m.Send("secure", []byte("PING")))
	assert.Equal(t, []byte("PING\r\n"), rec.waitMessage(t, "secure"))

	require.NoError(t, m.Disconnect("secure"))
	rec.waitState(t, "secure", false)
}

func TestConnectTLSUntrustedCertificate(t *testing.T) {
	tlsCert, _ := generateTestCertificate(t)
	addr := startTLSEchoServer(t, tlsCert)

	rec := newRecorder()
	m := newTestManager(t, rec)

	// The self-signed certificate is not in the platform trust store: the
	// handshake fails and no state is left behind.
	err := m.Connect(context.Background(), "untrusted", "ircs://"+addr)
	require.ErrorIs(t, err, ErrTLSHandshake)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, rec.states)
	assert.Empty(t, rec.messages)
}

func TestNegotiateTLSClosesConnOnFailure(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		// Absorb the client hello, then slam the door.
		buf := make([]byte, 1024)
		_, _ = server.Read(buf)
		server.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := negotiateTLS(ctx, client, "test.local", TLSConfig{})
	require.ErrorIs(t, err, ErrTLSHandshake)

	// The raw conn was closed by the negotiator.
	_, err = client.Write([]byte("x"))
	require.Error(t, err)
}
