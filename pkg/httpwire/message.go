package httpwire

// Role distinguishes the two variants of a parsed Message.
type Role int

const (
	// RoleRequest marks a parsed request-line + headers.
	RoleRequest Role = iota
	// RoleResponse marks a parsed status-line + headers.
	RoleResponse
)

// Message is the tagged sum type the header parser produces: either a
// request or a response, never both. Accessors for the "wrong" variant
// return ProtocolError rather than panicking or silently zero-valuing,
// per the Design Notes' guidance on the tagged-message pattern.
type Message struct {
	role Role

	// Request fields (valid when role == RoleRequest)
	method string
	path   string

	// Response fields (valid when role == RoleResponse)
	statusCode int
	reason     string

	// Shared fields
	minorVersion int
	header       *Header
}

// Role reports which variant this Message holds.
func (m *Message) Role() Role { return m.role }

// IsRequest reports whether this Message is a request.
func (m *Message) IsRequest() bool { return m.role == RoleRequest }

// IsResponse reports whether this Message is a response.
func (m *Message) IsResponse() bool { return m.role == RoleResponse }

// Method returns the request method, or a ProtocolError if m is a
// response.
func (m *Message) Method() (string, error) {
	if m.role != RoleRequest {
		return "", protocolErr("message.Method", "not a request")
	}
	return m.method, nil
}

// Path returns the request path, or a ProtocolError if m is a response.
func (m *Message) Path() (string, error) {
	if m.role != RoleRequest {
		return "", protocolErr("message.Path", "not a request")
	}
	return m.path, nil
}

// StatusCode returns the response status code, or a ProtocolError if m
// is a request.
func (m *Message) StatusCode() (int, error) {
	if m.role != RoleResponse {
		return 0, protocolErr("message.StatusCode", "not a response")
	}
	return m.statusCode, nil
}

// Reason returns the response reason phrase, or a ProtocolError if m is
// a request.
func (m *Message) Reason() (string, error) {
	if m.role != RoleResponse {
		return "", protocolErr("message.Reason", "not a response")
	}
	return m.reason, nil
}

// MinorVersion returns the HTTP/1.x minor version (0 or 1) common to
// both variants.
func (m *Message) MinorVersion() int { return m.minorVersion }

// Header returns the parsed, ordered header list.
func (m *Message) Header() *Header { return m.header }

// IsUpgradeRequest reports whether this request carries a
// "Connection: Upgrade" header, the precondition half of §4.7's upgrade
// tunnel.
func (m *Message) IsUpgradeRequest() bool {
	if m.role != RoleRequest {
		return false
	}
	return headerTokenContains(m.header, headerConnection, "upgrade")
}

// IsSwitchingProtocols reports whether this response is a 101, the
// other half of the upgrade precondition.
func (m *Message) IsSwitchingProtocols() bool {
	return m.role == RoleResponse && m.statusCode == 101
}

func headerTokenContains(h *Header, name, token string) bool {
	for _, v := range h.Values(name) {
		for _, part := range splitComma(v) {
			if equalFoldTrim(part, token) {
				return true
			}
		}
	}
	return false
}
