package filter

import (
	json "github.com/goccy/go-json"

	"github.com/yourusername/sockguard/pkg/httpwire"
)

// InfoFilter implements the `info` reference filter (§6.2): mirror
// inspect's Env redaction for every entry of a top-level Containers
// array, leaving every other field — including a body with no
// Containers array at all — untouched.
type InfoFilter struct {
	AllowedEnv map[string]bool
}

// Apply implements ResponseFilter.
func (f InfoFilter) Apply(requestHead, responseHead *httpwire.Message, body []byte) (Decision, error) {
	code, err := responseHead.StatusCode()
	if err != nil {
		return Decision{}, filterErrf("info.Apply", "response head has no status", err)
	}
	if code != 200 {
		return Decision{Kind: Forward, Body: body}, nil
	}
	if len(body) == 0 {
		return Decision{Kind: Forward, Body: body}, nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return Decision{}, filterErrf("info.Apply", "malformed engine-info JSON", err)
	}

	containersRaw, ok := doc["Containers"]
	if !ok {
		// No Containers array: degenerate to pass-through (§6.2).
		return Decision{Kind: Forward, Body: body}, nil
	}
	containers, ok := containersRaw.([]interface{})
	if !ok {
		return Decision{}, filterErr("info.Apply", "Containers is not an array")
	}

	for _, c := range containers {
		container, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		f.redactContainerEnv(container)
	}
	doc["Containers"] = containers

	rewritten, err := json.Marshal(doc)
	if err != nil {
		return Decision{}, filterErrf("info.Apply", "marshal redacted body failed", err)
	}
	return Decision{Kind: Forward, Body: rewritten}, nil
}

func (f InfoFilter) redactContainerEnv(container map[string]interface{}) {
	configRaw, ok := container["Config"]
	if !ok {
		return
	}
	config, ok := configRaw.(map[string]interface{})
	if !ok {
		return
	}
	envRaw, ok := config["Env"]
	if !ok {
		return
	}
	envList, ok := envRaw.([]interface{})
	if !ok {
		return
	}

	env := make([]string, 0, len(envList))
	for _, v := range envList {
		if s, ok := v.(string); ok {
			env = append(env, s)
		}
	}
	kept := filterEnv(env, f.AllowedEnv)
	if len(kept) == 0 {
		delete(config, "Env")
	} else {
		out := make([]interface{}, len(kept))
		for i, s := range kept {
			out[i] = s
		}
		config["Env"] = out
	}
	container["Config"] = config
}
