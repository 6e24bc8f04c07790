package filter

import (
	json "github.com/goccy/go-json"

	"github.com/yourusername/sockguard/pkg/httpwire"
)

// ListFilter implements the `list` reference filter (§6.2): reshape each
// container summary down to exactly {Id, Created, Status}, preserving
// array order.
type ListFilter struct{}

type listItem struct {
	Id      string          `json:"Id"`
	Created json.RawMessage `json:"Created"`
	Status  string          `json:"Status"`
}

// Apply implements ResponseFilter.
func (f ListFilter) Apply(requestHead, responseHead *httpwire.Message, body []byte) (Decision, error) {
	code, err := responseHead.StatusCode()
	if err != nil {
		return Decision{}, filterErrf("list.Apply", "response head has no status", err)
	}
	if code != 200 {
		return Decision{Kind: Forward, Body: body}, nil
	}
	if len(body) == 0 {
		return Decision{Kind: Forward, Body: body}, nil
	}

	var items []listItem
	if err := json.Unmarshal(body, &items); err != nil {
		return Decision{}, filterErrf("list.Apply", "malformed container-list JSON", err)
	}

	rewritten, err := json.Marshal(items)
	if err != nil {
		return Decision{}, filterErrf("list.Apply", "marshal redacted body failed", err)
	}
	return Decision{Kind: Forward, Body: rewritten}, nil
}
