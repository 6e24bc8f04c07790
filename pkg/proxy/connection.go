package proxy

import (
	"bufio"
	"context"
	"net"

	"github.com/google/uuid"

	"github.com/yourusername/sockguard/internal/logging"
	"github.com/yourusername/sockguard/internal/xerrors"
	"github.com/yourusername/sockguard/pkg/filter"
	"github.com/yourusername/sockguard/pkg/httpwire"
	"github.com/yourusername/sockguard/pkg/policy"
	"github.com/yourusername/sockguard/pkg/upstream"
)

// Handler holds everything a connection needs that does not vary per
// connection: the policy table, the filter registry, the upstream dial
// target, and the logger.
type Handler struct {
	Policies *policy.Table
	Filters  *filter.Registry
	Upstream upstream.Address
	Log      logging.Logger
}

// HandleConnection runs §4.8's connection procedure for a single accepted
// client connection: open the upstream once, forward the request leg
// through the policy matcher, forward the response leg through the
// filter the matched policy resolved (or pass it through unchanged), and
// hand off to the upgrade tunnel if the exchange switched protocols.
// Exactly one request/response exchange is handled per connection; there
// is no keep-alive or pipelining (§5, §9).
func (h *Handler) HandleConnection(client net.Conn) {
	defer client.Close()

	connID := uuid.NewString()[:8]

	upConn, err := upstream.Dial(context.Background(), h.Upstream)
	if err != nil {
		h.Log.ErrorChain(connID, err)
		return
	}
	defer upConn.Close()

	clientReader := bufio.NewReader(client)
	upReader := bufio.NewReader(upConn)

	var resolvedFilter filter.ResponseFilter

	reqHead, denied, err := Forward(clientReader, upConn, func(head *httpwire.Message) (bool, error) {
		method, _ := head.Method()
		path, _ := head.Path()

		outcome, filterName := h.Policies.Match(path)
		switch outcome {
		case policy.Deny:
			h.Log.Deny(connID, method, path)
			return true, nil
		case policy.AllowFiltered:
			if f, ok := h.Filters.Lookup(filterName); ok {
				resolvedFilter = f
			}
			h.Log.Allow(connID, method, path)
			return false, nil
		default:
			h.Log.Allow(connID, method, path)
			return false, nil
		}
	}, AlwaysForward)
	if err != nil {
		h.Log.ErrorChain(connID, err)
		return
	}
	if denied {
		return
	}

	bodyFilter := AlwaysForward
	if resolvedFilter != nil {
		rf := resolvedFilter
		bodyFilter = func(head *httpwire.Message, body []byte) (filter.Decision, error) {
			return rf.Apply(reqHead, head, body)
		}
	}

	respHead, _, err := Forward(upReader, client, mustBeResponse, bodyFilter)
	if err != nil {
		h.Log.ErrorChain(connID, err)
		return
	}

	if reqHead.IsUpgradeRequest() && respHead.IsSwitchingProtocols() {
		Tunnel(client, upConn)
	}
}

// mustBeResponse is the response leg's head filter (§4.8 step 4): a
// confused or malformed upstream that replies with something that does
// not parse as a status line (ParseHead's ambiguity rule falls back to
// treating it as a request) must not be forwarded to the client as if it
// were one — it fails the leg with a ProtocolError instead.
func mustBeResponse(head *httpwire.Message) (bool, error) {
	if !head.IsResponse() {
		return false, xerrors.New(xerrors.ProtocolError, "proxy.mustBeResponse", "upstream reply did not parse as an HTTP response")
	}
	return false, nil
}
