package xerrors

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"with op", New(ProtocolError, "parse_head", "missing CRLFCRLF"), "protocol: parse_head: missing CRLFCRLF"},
		{"without op", &Error{Kind: IoError, Message: "closed"}, "io: closed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWrapChain(t *testing.T) {
	root := errors.New("connection reset by peer")
	wrapped := Wrap(IoError, "read_body", "short read", root)

	chain := Chain(wrapped)
	if len(chain) != 2 {
		t.Fatalf("Chain() returned %d lines, want 2: %v", len(chain), chain)
	}
	if chain[0] != wrapped.Error() {
		t.Fatalf("chain[0] = %q, want %q", chain[0], wrapped.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(FilterError, "inspect", "bad json")
	if !Is(err, FilterError) {
		t.Fatal("Is(err, FilterError) = false, want true")
	}
	if Is(err, ConfigError) {
		t.Fatal("Is(err, ConfigError) = true, want false")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(ConfigError, "load", "missing field", nil)
	if err.Cause != nil {
		t.Fatal("Wrap with nil cause should leave Cause nil")
	}
}
