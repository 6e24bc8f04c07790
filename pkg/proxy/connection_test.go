package proxy

import (
	"io"
	"net"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/sockguard/internal/logging"
	"github.com/yourusername/sockguard/pkg/filter"
	"github.com/yourusername/sockguard/pkg/policy"
	"github.com/yourusername/sockguard/pkg/upstream"
)

func newTestHandler(t *testing.T, upstreamAddr string, entries []policy.Entry) *Handler {
	t.Helper()
	return &Handler{
		Policies: policy.NewTable(entries),
		Filters:  filter.NewRegistry(nil),
		Upstream: upstream.Address{Network: "tcp", Target: upstreamAddr},
		Log:      logging.New(logging.Options{Level: logging.LevelError}),
	}
}

func startFakeUpstream(t *testing.T, response string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start fake upstream: %v", err)
	}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		conn.Read(buf)
		conn.Write([]byte(response))
	}()
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

func TestHandleConnectionAllowsMatchingPath(t *testing.T) {
	upstreamAddr := startFakeUpstream(t, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nOK")
	h := newTestHandler(t, upstreamAddr, []policy.Entry{
		{Pattern: regexp.MustCompile(`^/_ping$`)},
	})

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		h.HandleConnection(server)
		close(done)
	}()

	client.Write([]byte("GET /_ping HTTP/1.1\r\n\r\n"))

	buf := make([]byte, 4096)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := client.Read(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("reading response failed: %v", err)
	}
	if !strings.Contains(string(buf[:n]), "200 OK") {
		t.Errorf("response = %q, want it to contain 200 OK", buf[:n])
	}

	client.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("HandleConnection did not return")
	}
}

func TestHandleConnectionRejectsMalformedUpstreamReply(t *testing.T) {
	// The fake upstream sends back something that does not start with
	// "HTTP/", so ParseHead's ambiguity rule parses it as a request
	// rather than a response. mustBeResponse must catch that and fail
	// the leg instead of forwarding a request-line to the client.
	upstreamAddr := startFakeUpstream(t, "GET / HTTP/1.1\r\n\r\n")
	h := newTestHandler(t, upstreamAddr, []policy.Entry{
		{Pattern: regexp.MustCompile(`^/_ping$`)},
	})

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		h.HandleConnection(server)
		close(done)
	}()

	client.Write([]byte("GET /_ping HTTP/1.1\r\n\r\n"))

	buf := make([]byte, 4096)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := client.Read(buf)
	if err == nil && n > 0 {
		t.Errorf("expected no forwarded bytes for a malformed upstream reply, got %q", buf[:n])
	}

	client.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("HandleConnection did not return for a malformed upstream reply")
	}
}

func TestHandleConnectionDeniesUnmatchedPath(t *testing.T) {
	upstreamAddr := startFakeUpstream(t, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	h := newTestHandler(t, upstreamAddr, []policy.Entry{
		{Pattern: regexp.MustCompile(`^/_ping$`)},
	})

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		h.HandleConnection(server)
		close(done)
	}()

	client.Write([]byte("POST /containers/create HTTP/1.1\r\nContent-Length: 0\r\n\r\n"))
	client.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("HandleConnection did not return for a denied request")
	}
}
