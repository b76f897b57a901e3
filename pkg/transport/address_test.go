package transport

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{
			name:  "ircs with explicit port",
			input: "ircs://irc.example.org:6697",
			want:  Address{TLS: true, Host: "irc.example.org", Port: 6697},
		},
		{
			name:  "ircs default port",
			input: "ircs://irc.example.org",
			want:  Address{TLS: true, Host: "irc.example.org", Port: 6697},
		},
		{
			name:  "irc with explicit port",
			input: "irc://irc.example.org:6660",
			want:  Address{TLS: false, Host: "irc.example.org", Port: 6660},
		},
		{
			name:  "irc default port",
			input: "irc://irc.example.org",
			want:  Address{TLS: false, Host: "irc.example.org", Port: 6667},
		},
		{
			name:  "no scheme with port",
			input: "irc.example.org:1234",
			want:  Address{TLS: false, Host: "irc.example.org", Port: 1234},
		},
		{
			name:  "no scheme no port",
			input: "irc.example.org",
			want:  Address{TLS: false, Host: "irc.example.org", Port: 6667},
		},
		{
			name:  "non-numeric port degrades to hostname",
			input: "host:notaport",
			want:  Address{TLS: false, Host: "host:notaport", Port: 6667},
		},
		{
			name:  "port out of 16-bit range degrades to hostname",
			input: "host:70000",
			want:  Address{TLS: false, Host: "host:70000", Port: 6667},
		},
		{
			name:  "trailing colon degrades to hostname",
			input: "irc://host:",
			want:  Address{TLS: false, Host: "host:", Port: 6667},
		},
		{
			name:  "ircs non-numeric port keeps TLS default",
			input: "ircs://host:nope",
			want:  Address{TLS: true, Host: "host:nope", Port: 6697},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "scheme only",
			input:   "ircs://",
			wantErr: true,
		},
		{
			name:    "port only",
			input:   ":6667",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Fatalf("ParseAddress(%q) error = %v, want ErrInvalidAddress", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAddressAddr(t *testing.T) {
	a := Address{Host: "irc.example.org", Port: 6697}
	if got := a.Addr(); got != "irc.example.org:6697" {
		t.Errorf("Addr() = %q, want %q", got, "irc.example.org:6697")
	}

	// IPv6 literals are bracketed for dialing.
	a = Address{Host: "::1", Port: 6667}
	if got := a.Addr(); got != "[::1]:6667" {
		t.Errorf("Addr() = %q, want %q", got, "[::1]:6667")
	}
}
