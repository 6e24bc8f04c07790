// Package policy implements the allow-list table that decides, for each
// request path, whether the exchange is denied, allowed as a plain
// pass-through, or allowed with a response filter attached.
package policy

import "regexp"

// Outcome tags the result of matching a path against the table.
type Outcome int

const (
	// Deny closes the client connection without forwarding anything
	// upstream.
	Deny Outcome = iota
	// Allow forwards the response unfiltered.
	Allow
	// AllowFiltered forwards the response through the named filter.
	AllowFiltered
)

// Entry is one (pattern, filter?) row of the table. Filter is empty for a
// plain pass-through entry.
type Entry struct {
	Pattern *regexp.Regexp
	Filter  string
}

// Table is an ordered, immutable-after-construction sequence of entries.
// Once the accept loop starts it is shared read-only across every
// connection's goroutine; no synchronization is needed for that sharing.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from entries, preserving order: first match
// wins, matching §4.4's "iterates the policy table in insertion order".
func NewTable(entries []Entry) *Table {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp}
}

// Match resolves path to an Outcome and, when AllowFiltered, the filter
// name to invoke. The regex is matched against the whole path string as
// given; the matcher adds no anchors of its own — whether a pattern is
// effectively anchored is entirely up to the pattern's own authors.
func (t *Table) Match(path string) (Outcome, string) {
	for _, e := range t.entries {
		if e.Pattern.MatchString(path) {
			if e.Filter == "" {
				return Allow, ""
			}
			return AllowFiltered, e.Filter
		}
	}
	return Deny, ""
}

// Len reports the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }
