package httpwire

import (
	"bufio"
	"strings"
	"testing"
)

func TestParseHeadRequest(t *testing.T) {
	raw := "GET /containers/json HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"
	msg, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if !msg.IsRequest() {
		t.Fatal("expected a request")
	}
	method, _ := msg.Method()
	path, _ := msg.Path()
	if method != "GET" || path != "/containers/json" {
		t.Errorf("got method=%q path=%q, want GET /containers/json", method, path)
	}
	if msg.MinorVersion() != 1 {
		t.Errorf("MinorVersion() = %d, want 1", msg.MinorVersion())
	}
	host, ok := msg.Header().Get("Host")
	if !ok || host != "localhost" {
		t.Errorf("Host header = %q, %v, want localhost, true", host, ok)
	}
}

func TestParseHeadResponse(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\n"
	msg, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if !msg.IsResponse() {
		t.Fatal("expected a response")
	}
	code, _ := msg.StatusCode()
	reason, _ := msg.Reason()
	if code != 200 || reason != "OK" {
		t.Errorf("got code=%d reason=%q, want 200 OK", code, reason)
	}
}

func TestParseHeadAmbiguityRule(t *testing.T) {
	// A path that happens to start with the literal bytes "HTTP/" is not
	// possible in a request line (it would be the method token), so the
	// ambiguity rule only needs to distinguish on the first line itself.
	raw := "HTTP/1.0 404 Not Found\r\n\r\n"
	msg, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if !msg.IsResponse() {
		t.Error("a first line starting with HTTP/ must parse as a response")
	}
}

func TestParseHeadWrongAccessorFails(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n\r\n"
	msg, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if _, err := msg.StatusCode(); err == nil {
		t.Error("StatusCode() on a request should fail")
	}
	if _, err := msg.Method(); err != nil {
		t.Errorf("Method() on a request should succeed: %v", err)
	}
}

func TestParseHeadEOFBeforeTerminator(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: x\r\n"
	_, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err == nil {
		t.Fatal("expected an error for a head with no terminator")
	}
}

func TestParseHeadMalformedRequestLine(t *testing.T) {
	raw := "GET\r\n\r\n"
	_, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err == nil {
		t.Fatal("expected an error for a one-token request line")
	}
}

func TestParseHeadMalformedHeaderLine(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nNotAHeader\r\n\r\n"
	_, err := ParseHead(bufio.NewReader(strings.NewReader(raw)))
	if err == nil {
		t.Fatal("expected an error for a header line with no colon")
	}
}

func TestParseHeadLeavesBodyUnread(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"
	br := bufio.NewReader(strings.NewReader(raw))
	if _, err := ParseHead(br); err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	rest := make([]byte, 5)
	if _, err := br.Read(rest); err != nil {
		t.Fatalf("reading body after ParseHead failed: %v", err)
	}
	if string(rest) != "hello" {
		t.Errorf("body after head = %q, want %q", rest, "hello")
	}
}

func TestIsUpgradeRequestAndSwitchingProtocols(t *testing.T) {
	reqRaw := "GET /containers/1/attach HTTP/1.1\r\nConnection: Upgrade\r\nUpgrade: tcp\r\n\r\n"
	req, err := ParseHead(bufio.NewReader(strings.NewReader(reqRaw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if !req.IsUpgradeRequest() {
		t.Error("expected IsUpgradeRequest() to be true")
	}

	respRaw := "HTTP/1.1 101 UPGRADED\r\n\r\n"
	resp, err := ParseHead(bufio.NewReader(strings.NewReader(respRaw)))
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if !resp.IsSwitchingProtocols() {
		t.Error("expected IsSwitchingProtocols() to be true")
	}
}
