// Package config owns the YAML schema, decoding, and validation layer
// that §6 calls "produced by an external configuration layer": it turns
// a config file into the policy table, environment allow-list, and
// listener/upstream settings the core consumes.
package config

import (
	"regexp"
	"strings"

	"github.com/elastic/go-ucfg"
	ucfgyaml "github.com/elastic/go-ucfg/yaml"
	"github.com/hashicorp/go-multierror"

	"github.com/yourusername/sockguard/internal/xerrors"
	"github.com/yourusername/sockguard/pkg/filter"
	"github.com/yourusername/sockguard/pkg/policy"
	"github.com/yourusername/sockguard/pkg/upstream"
)

// PolicyEntry is one row of the policies list in §3.1's schema.
type PolicyEntry struct {
	Pattern string `config:"pattern"`
	Filter  string `config:"filter"`
}

// Raw is the direct unpack target for §3.1's YAML schema.
type Raw struct {
	Listen     string        `config:"listen"`
	Upstream   string        `config:"upstream"`
	LogLevel   string        `config:"logLevel"`
	LogFile    string        `config:"logFile"`
	AllowedEnv []string      `config:"allowedEnv"`
	Policies   []PolicyEntry `config:"policies"`
}

// Config is the validated, ready-to-run result of loading a config file:
// a compiled policy table, a resolved filter registry, and the
// process-level settings around them.
type Config struct {
	Listen     string
	Upstream   string
	LogLevel   string
	LogFile    string
	AllowedEnv map[string]bool
	Policies   *policy.Table
	Filters    *filter.Registry
}

// Load reads, decodes, and validates the YAML file at path. Every
// validation failure found (bad regex, unknown filter name, bad upstream
// URI) is collected into a single multierror before being returned as
// one ConfigError, so a CI run of `sockguard validate` reports every
// problem in one pass instead of one-at-a-time.
func Load(path string) (*Config, error) {
	raw, err := ucfgyaml.NewConfigWithFile(path, ucfg.PathSep("."))
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ConfigError, "config.Load", "read "+path, err)
	}

	var r Raw
	if err := raw.Unpack(&r); err != nil {
		return nil, xerrors.Wrap(xerrors.ConfigError, "config.Load", "decode "+path, err)
	}

	return build(r)
}

// LoadContent decodes YAML already in memory, for tests and for
// `validate` runs against piped input.
func LoadContent(b []byte) (*Config, error) {
	raw, err := ucfgyaml.NewConfig(b, ucfg.PathSep("."))
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ConfigError, "config.LoadContent", "decode content", err)
	}

	var r Raw
	if err := raw.Unpack(&r); err != nil {
		return nil, xerrors.Wrap(xerrors.ConfigError, "config.LoadContent", "unpack content", err)
	}

	return build(r)
}

func build(r Raw) (*Config, error) {
	var errs *multierror.Error

	if r.Listen == "" {
		errs = multierror.Append(errs, xerrors.New(xerrors.ConfigError, "config.build", "listen is required"))
	}
	if r.Upstream == "" {
		errs = multierror.Append(errs, xerrors.New(xerrors.ConfigError, "config.build", "upstream is required"))
	} else if _, err := upstream.Parse(r.Upstream); err != nil {
		errs = multierror.Append(errs, err)
	}

	allowed := make(map[string]bool, len(r.AllowedEnv))
	for _, name := range r.AllowedEnv {
		allowed[name] = true
	}
	registry := filter.NewRegistry(allowed)

	entries := make([]policy.Entry, 0, len(r.Policies))
	for _, p := range r.Policies {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			errs = multierror.Append(errs, xerrors.Wrap(xerrors.ConfigError, "config.build", "invalid pattern "+p.Pattern, err))
			continue
		}
		if p.Filter != "" {
			if _, ok := registry.Lookup(p.Filter); !ok {
				errs = multierror.Append(errs, xerrors.New(xerrors.ConfigError, "config.build", "unknown filter "+p.Filter))
				continue
			}
		}
		entries = append(entries, policy.Entry{Pattern: re, Filter: p.Filter})
	}

	if errs.ErrorOrNil() != nil {
		msgs := make([]string, len(errs.Errors))
		for i, e := range errs.Errors {
			msgs[i] = e.Error()
		}
		return nil, xerrors.Wrap(xerrors.ConfigError, "config.build", "invalid configuration: "+strings.Join(msgs, "; "), errs)
	}

	logLevel := r.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		Listen:     r.Listen,
		Upstream:   r.Upstream,
		LogLevel:   logLevel,
		LogFile:    r.LogFile,
		AllowedEnv: allowed,
		Policies:   policy.NewTable(entries),
		Filters:    registry,
	}, nil
}
