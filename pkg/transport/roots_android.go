//go:build android

package transport

// Android exposes no system certificate store to Go's verifier, so the
// bundled roots take its place for ircs:// certificate validation.
import _ "golang.org/x/crypto/x509roots/fallback"
