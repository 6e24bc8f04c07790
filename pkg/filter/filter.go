// Package filter implements the pluggable response-content filter
// capability: the policy table resolves a path to a filter name, and the
// forwarder invokes the matching filter on the reassembled response body
// before it is written back to the client.
package filter

import (
	"github.com/yourusername/sockguard/internal/xerrors"
	"github.com/yourusername/sockguard/pkg/httpwire"
)

// DecisionKind tags the outcome of a ResponseFilter's Apply call.
type DecisionKind int

const (
	// Forward means the (possibly rewritten) buffer should be written
	// downstream as-is.
	Forward DecisionKind = iota
	// Suppress means the client should see no body bytes beyond what
	// chunked framing already emitted.
	Suppress
)

// Decision is the result of one filter invocation.
type Decision struct {
	Kind DecisionKind
	Body []byte
}

// ResponseFilter is the capability a policy entry's filter name resolves
// to: inspect (and possibly rewrite) a response body given both heads of
// the exchange.
type ResponseFilter interface {
	Apply(requestHead, responseHead *httpwire.Message, body []byte) (Decision, error)
}

// Registry resolves a configured filter name to a ResponseFilter
// instance. It is built once at startup and never mutated afterward.
type Registry struct {
	filters map[string]ResponseFilter
}

// NewRegistry builds the built-in registry (`list`, `inspect`, `info`)
// bound to the given environment variable allow-list.
func NewRegistry(allowedEnv map[string]bool) *Registry {
	return &Registry{
		filters: map[string]ResponseFilter{
			"list":    ListFilter{},
			"inspect": InspectFilter{AllowedEnv: allowedEnv},
			"info":    InfoFilter{AllowedEnv: allowedEnv},
		},
	}
}

// Lookup returns the filter registered under name, or false if name is
// unknown. A config-time caller treats an unknown name as a ConfigError;
// the registry itself only reports presence.
func (r *Registry) Lookup(name string) (ResponseFilter, bool) {
	f, ok := r.filters[name]
	return f, ok
}

func filterErr(op, msg string) error {
	return xerrors.New(xerrors.FilterError, op, msg)
}

func filterErrf(op, msg string, cause error) error {
	return xerrors.Wrap(xerrors.FilterError, op, msg, cause)
}
