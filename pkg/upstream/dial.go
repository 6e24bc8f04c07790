// Package upstream parses and dials the configured engine address (§6
// "Upstream address"): a unix:// or tcp:// URI naming the container
// engine's control socket.
package upstream

import (
	"context"
	"net"
	"net/url"

	"github.com/yourusername/sockguard/internal/xerrors"
)

const (
	defaultUnixSocketPath = "/var/run/docker.sock"
	defaultTCPHost        = "127.0.0.1"
	defaultTCPPort        = "2375"
)

// Address is a resolved, dialable upstream target.
type Address struct {
	Network string // "unix" or "tcp"
	Target  string // socket path, or host:port
}

// Parse parses raw into an Address per §6: unix://PATH with "/" meaning
// the default container socket path; tcp://HOST:PORT with a missing host
// defaulting to loopback and a missing port defaulting to the engine's
// conventional TCP port.
func Parse(raw string) (Address, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Address{}, xerrors.Wrap(xerrors.ConfigError, "upstream.Parse", "invalid upstream URI: "+raw, err)
	}

	switch u.Scheme {
	case "unix":
		path := u.Path
		if u.Host != "" {
			// url.Parse treats "unix://foo/bar" as host="foo", path="/bar".
			path = "/" + u.Host + path
		}
		if path == "" || path == "/" {
			path = defaultUnixSocketPath
		}
		return Address{Network: "unix", Target: path}, nil

	case "tcp":
		host := u.Hostname()
		if host == "" {
			host = defaultTCPHost
		}
		port := u.Port()
		if port == "" {
			port = defaultTCPPort
		}
		return Address{Network: "tcp", Target: net.JoinHostPort(host, port)}, nil

	default:
		return Address{}, xerrors.New(xerrors.ConfigError, "upstream.Parse", "unsupported upstream scheme: "+u.Scheme)
	}
}

// Dial connects to addr. Failure surfaces as IoError; the connection
// handler (§4.8) turns that into an immediate close of the client
// connection.
func Dial(ctx context.Context, addr Address) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, addr.Network, addr.Target)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IoError, "upstream.Dial", "connect to "+addr.Target+" failed", err)
	}
	return conn, nil
}

// String renders addr back as a URI-like string, useful for logging.
func (a Address) String() string {
	return a.Network + "://" + a.Target
}
