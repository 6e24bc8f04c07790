package filter

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/yourusername/sockguard/pkg/httpwire"
)

// InspectFilter implements the `inspect` reference filter (§6.2): redact
// Config.Env down to the allow-listed entries, reshaping the body to
// exactly {Id, Name, State, NetworkSettings, Config}.
type InspectFilter struct {
	AllowedEnv map[string]bool
}

type inspectInput struct {
	Id              string          `json:"Id"`
	Name            string          `json:"Name"`
	State           json.RawMessage `json:"State"`
	NetworkSettings json.RawMessage `json:"NetworkSettings"`
	Config          struct {
		Env []string `json:"Env"`
	} `json:"Config"`
}

type inspectOutput struct {
	Id              string                 `json:"Id"`
	Name            string                 `json:"Name"`
	State           json.RawMessage        `json:"State"`
	NetworkSettings json.RawMessage        `json:"NetworkSettings"`
	Config          map[string]interface{} `json:"Config"`
}

// Apply implements ResponseFilter. Per §4.5's filter contract, non-200
// responses short-circuit with Forward and are never parsed as JSON.
func (f InspectFilter) Apply(requestHead, responseHead *httpwire.Message, body []byte) (Decision, error) {
	code, err := responseHead.StatusCode()
	if err != nil {
		return Decision{}, filterErrf("inspect.Apply", "response head has no status", err)
	}
	if code != 200 {
		return Decision{Kind: Forward, Body: body}, nil
	}
	if len(body) == 0 {
		return Decision{Kind: Forward, Body: body}, nil
	}

	var in inspectInput
	if err := json.Unmarshal(body, &in); err != nil {
		return Decision{}, filterErrf("inspect.Apply", "malformed container-inspect JSON", err)
	}

	out := inspectOutput{
		Id:              in.Id,
		Name:            in.Name,
		State:           in.State,
		NetworkSettings: in.NetworkSettings,
		Config:          map[string]interface{}{},
	}
	kept := filterEnv(in.Config.Env, f.AllowedEnv)
	if len(kept) > 0 {
		out.Config["Env"] = kept
	}

	rewritten, err := json.Marshal(out)
	if err != nil {
		return Decision{}, filterErrf("inspect.Apply", "marshal redacted body failed", err)
	}
	return Decision{Kind: Forward, Body: rewritten}, nil
}

// filterEnv returns the subset of env whose NAME (left of the first '=')
// is present in allowed, preserving original order.
func filterEnv(env []string, allowed map[string]bool) []string {
	var kept []string
	for _, entry := range env {
		name := entry
		if idx := strings.IndexByte(entry, '='); idx >= 0 {
			name = entry[:idx]
		}
		if allowed[name] {
			kept = append(kept, entry)
		}
	}
	return kept
}
