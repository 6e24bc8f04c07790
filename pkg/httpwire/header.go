package httpwire

import "strings"

// Field is one (name, value) header pair. Values are kept as strings;
// the parsed message's lifetime is one leg of one exchange so there is
// no benefit to the byte-slice-into-shared-buffer aliasing the teacher
// package uses for its zero-allocation budget.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered sequence of header fields, per the Data Model's
// "headers are an ordered sequence of (name, value-bytes)". Lookups are
// case-insensitive; insertion order is preserved so that a forwarded
// head differs from the original only by the Content-Length/
// Transfer-Encoding reordering the body writer performs.
type Header struct {
	fields []Field
}

// NewHeader returns an empty Header with room for n fields.
func NewHeader(n int) *Header {
	return &Header{fields: make([]Field, 0, n)}
}

// Add appends a field, allowing duplicate names (as HTTP permits). It
// rejects a name or value containing a bare CR or LF: the parser never
// produces one (the line scanner strips them), so this only guards
// against a filter or caller constructing a header field from untrusted
// data and smuggling a second header or request past the write side.
func (h *Header) Add(name, value string) error {
	if containsCRLF(name) || containsCRLF(value) {
		return protocolErr("header.Add", "CR or LF in header field")
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
	return nil
}

func containsCRLF(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// Get returns the first value for name, case-insensitive, or "" with ok
// false if absent.
func (h *Header) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under name, case-insensitive, in
// insertion order.
func (h *Header) Values(name string) []string {
	var out []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Has reports whether a field with the given name is present.
func (h *Header) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Del removes every field with the given name.
func (h *Header) Del(name string) {
	kept := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name, name) {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

// VisitAll calls visitor for every field in insertion order.
func (h *Header) VisitAll(visitor func(name, value string)) {
	for _, f := range h.fields {
		visitor(f.Name, f.Value)
	}
}

// Len returns the number of fields, counting duplicates.
func (h *Header) Len() int {
	return len(h.fields)
}

// Clone returns an independent copy of h.
func (h *Header) Clone() *Header {
	c := &Header{fields: make([]Field, len(h.fields))}
	copy(c.fields, h.fields)
	return c
}

// WithoutFraming returns a clone of h with Content-Length and
// Transfer-Encoding removed, the first step of the body writer's "emit
// all original headers except any existing Content-Length/
// Transfer-Encoding" rule (§4.3).
func (h *Header) WithoutFraming() *Header {
	c := h.Clone()
	c.Del(headerContentLength)
	c.Del(headerTransferEncoding)
	return c
}
