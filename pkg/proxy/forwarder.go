// Package proxy implements the per-connection orchestration that glues
// the header parser, body reader/writer, policy matcher, and filter
// invocation into the two legs of one request/response exchange (§4.6),
// plus the upgrade tunnel (§4.7) and the connection handler (§4.8).
package proxy

import (
	"bufio"
	"io"

	"github.com/yourusername/sockguard/pkg/bufpool"
	"github.com/yourusername/sockguard/pkg/filter"
	"github.com/yourusername/sockguard/pkg/httpwire"
)

// identityBodyPool backs the identity-framed body buffers read in
// forwardIdentity (§4.9): one pool shared across every connection's
// identity legs, since bytebufferpool.Pool is already safe for
// concurrent use.
var identityBodyPool = bufpool.New()

// HeadFilter inspects a freshly parsed head and decides whether the leg
// continues. Returning deny=true aborts the leg per §4.4's Deny
// semantics (request leg); returning an error fails the leg, which is how
// the response leg's malformed-response guard rejects a head.
type HeadFilter func(head *httpwire.Message) (deny bool, err error)

// BodyFilter is invoked once per leg with the fully reassembled body.
// The identity-always-true body filter used by the request leg and the
// "no filter resolved" response leg is AlwaysForward.
type BodyFilter func(head *httpwire.Message, body []byte) (filter.Decision, error)

// AlwaysForward is the identity body filter: forward the body unchanged,
// per §4.8 step 2's "body filter = identity-always-true".
func AlwaysForward(head *httpwire.Message, body []byte) (filter.Decision, error) {
	return filter.Decision{Kind: filter.Forward, Body: body}, nil
}

// Forward runs one leg of the exchange (§4.6): parse the head from src,
// consult headFilter, then read/filter/write the body in the framing
// mode the parsed head selected. It returns the parsed head and whether
// the leg was denied (in which case nothing further is written).
func Forward(src *bufio.Reader, dst io.Writer, headFilter HeadFilter, bodyFilter BodyFilter) (*httpwire.Message, bool, error) {
	head, err := httpwire.ParseHead(src)
	if err != nil {
		return nil, false, err
	}

	deny, err := headFilter(head)
	if err != nil {
		return head, false, err
	}
	if deny {
		return head, true, nil
	}

	framing, _, err := httpwire.SelectFraming(head.Header())
	if err != nil {
		return head, false, err
	}

	headLine := httpwire.HeadLineFor(head)

	if framing == httpwire.FramingChunked {
		return head, false, forwardChunked(src, dst, head, headLine, bodyFilter)
	}
	return head, false, forwardIdentity(src, dst, head, headLine, bodyFilter)
}

// forwardChunked implements §4.6 step 3: the head goes out before the
// body is even read, so a downstream client with its own read timeout
// sees the head promptly for long-lived streaming endpoints.
func forwardChunked(src *bufio.Reader, dst io.Writer, head *httpwire.Message, headLine func(io.Writer) error, bodyFilter BodyFilter) error {
	if err := httpwire.WriteChunkedHead(dst, head.Header(), headLine); err != nil {
		return err
	}

	body, _, err := httpwire.ReadBody(src, head.Header())
	if err != nil {
		return err
	}

	decision, err := bodyFilter(head, body)
	if err != nil {
		return err
	}

	switch decision.Kind {
	case filter.Suppress:
		// The head is already out and cannot be recalled; still emit
		// the terminator so the client never sees a truncated stream
		// (§9's "Chunked-suppressed body" fix).
		return httpwire.WriteChunkedBody(dst, nil)
	default:
		return httpwire.WriteChunkedBody(dst, decision.Body)
	}
}

// forwardIdentity implements §4.6 step 4: the body must be read (and
// filtered) in full before the head can be written, since rewriting
// Content-Length after a mutation requires the final size.
func forwardIdentity(src *bufio.Reader, dst io.Writer, head *httpwire.Message, headLine func(io.Writer) error, bodyFilter BodyFilter) error {
	bb := identityBodyPool.Get()
	defer identityBodyPool.Put(bb)

	body, _, err := httpwire.ReadBodyWithBuffer(src, head.Header(), bb.B)
	if err != nil {
		return err
	}
	if cap(body) > cap(bb.B) {
		bb.B = body
	}

	decision, err := bodyFilter(head, body)
	if err != nil {
		return err
	}

	var out []byte
	if decision.Kind != filter.Suppress {
		out = decision.Body
	}

	return httpwire.WriteIdentityBody(dst, head.Header(), out, headLine)
}
