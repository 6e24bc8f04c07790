package policy

import (
	"regexp"
	"testing"
)

func buildReferenceTable(t *testing.T) *Table {
	t.Helper()
	specs := []struct {
		pattern string
		filter  string
	}{
		{`^/_ping$`, ""},
		{`^(/v[0-9\.]+)?/version$`, ""},
		{`^(/v[0-9\.]+)?/info$`, "info"},
		{`^(/v[0-9\.]+)?/containers/json(\?.*)?$`, "list"},
		{`^(/v[0-9\.]+)?/containers//?[A-Za-z0-9][A-Za-z0-9_.-]+/json(\?.*)?$`, "inspect"},
	}
	entries := make([]Entry, len(specs))
	for i, s := range specs {
		entries[i] = Entry{Pattern: regexp.MustCompile(s.pattern), Filter: s.filter}
	}
	return NewTable(entries)
}

func TestMatchAllowNoFilter(t *testing.T) {
	tbl := buildReferenceTable(t)
	outcome, filter := tbl.Match("/_ping")
	if outcome != Allow || filter != "" {
		t.Errorf("got outcome=%v filter=%q, want Allow with no filter", outcome, filter)
	}
}

func TestMatchAllowWithFilter(t *testing.T) {
	tbl := buildReferenceTable(t)
	outcome, filter := tbl.Match("/v1.41/containers/abc123/json")
	if outcome != AllowFiltered || filter != "inspect" {
		t.Errorf("got outcome=%v filter=%q, want AllowFiltered inspect", outcome, filter)
	}
}

func TestMatchDeny(t *testing.T) {
	tbl := buildReferenceTable(t)
	outcome, _ := tbl.Match("/containers/create")
	if outcome != Deny {
		t.Errorf("got outcome=%v, want Deny", outcome)
	}
}

func TestMatchFirstWins(t *testing.T) {
	entries := []Entry{
		{Pattern: regexp.MustCompile(`^/foo$`), Filter: "a"},
		{Pattern: regexp.MustCompile(`^/foo$`), Filter: "b"},
	}
	tbl := NewTable(entries)
	_, filter := tbl.Match("/foo")
	if filter != "a" {
		t.Errorf("filter = %q, want first match %q", filter, "a")
	}
}

func TestMatchQueryStringVariant(t *testing.T) {
	tbl := buildReferenceTable(t)
	outcome, filter := tbl.Match("/containers/json?all=1")
	if outcome != AllowFiltered || filter != "list" {
		t.Errorf("got outcome=%v filter=%q, want AllowFiltered list", outcome, filter)
	}
}
