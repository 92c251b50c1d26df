package regioncache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format identifies a serialized configuration format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// LoadConfig reads a configuration file, detecting the format from the
// extension (.yaml/.yml or .json). The result still goes through validation
// when the facade is initialized.
func LoadConfig(path string) (*Config, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, &ConfigError{
			Reason: ReasonMalformed,
			Field:  path,
			Detail: "unsupported config file extension",
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regioncache: read config: %w", err)
	}
	return ParseConfig(data, format)
}

// ParseConfig parses a serialized configuration:
//
//	global_backend: memory
//	global_endpoints: ["local"]
//	global_arguments: { binary: true }
//	regions:
//	  - ["hour", "1h"]                            # positional form
//	  - ["day", 86400, "redis", ["127.0.0.1:6379"]]
//	  - { name: week, timeout: 168h }             # mapping form
//
// A positional region is [name, timeout, backend?, endpoints?, arguments?];
// fewer than two elements is a ConfigError. Timeouts accept Go duration
// strings or numeric seconds.
func ParseConfig(data []byte, format Format) (*Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = kyaml.Parser()
	case FormatJSON:
		parser = kjson.Parser()
	default:
		return nil, &ConfigError{
			Reason: ReasonMalformed,
			Detail: fmt.Sprintf("unsupported format %q", format),
		}
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, &ConfigError{Reason: ReasonMalformed, Detail: err.Error()}
	}

	cfg := &Config{
		GlobalBackend:   k.String("global_backend"),
		GlobalEndpoints: k.Strings("global_endpoints"),
	}
	if v := k.Get("global_arguments"); v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &ConfigError{
				Reason: ReasonArgumentsNotMap,
				Field:  "global_arguments",
				Detail: fmt.Sprintf("expected a mapping, got %T", v),
			}
		}
		cfg.GlobalArguments = m
	}

	raw := k.Get("regions")
	if raw == nil {
		// validation reports the empty-regions case uniformly
		return cfg, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ConfigError{
			Reason: ReasonMalformed,
			Field:  "regions",
			Detail: fmt.Sprintf("expected a sequence, got %T", raw),
		}
	}
	for i, item := range list {
		rc, err := parseRegion(i, item)
		if err != nil {
			return nil, err
		}
		cfg.Regions = append(cfg.Regions, rc)
	}
	return cfg, nil
}

func parseRegion(i int, item any) (RegionConfig, error) {
	field := fmt.Sprintf("regions[%d]", i)
	var rc RegionConfig

	switch v := item.(type) {
	case []any:
		if len(v) < 2 {
			return rc, &ConfigError{
				Reason: ReasonRegionIncomplete,
				Field:  field,
				Detail: "a positional region needs at least name and timeout",
			}
		}
		if len(v) > 5 {
			return rc, &ConfigError{
				Reason: ReasonMalformed,
				Field:  field,
				Detail: fmt.Sprintf("a positional region has at most 5 elements, got %d", len(v)),
			}
		}
		name, ok := v[0].(string)
		if !ok {
			return rc, &ConfigError{
				Reason: ReasonMalformed,
				Field:  field,
				Detail: fmt.Sprintf("region name must be a string, got %T", v[0]),
			}
		}
		rc.Name = name
		timeout, err := parseTimeout(field, v[1])
		if err != nil {
			return rc, err
		}
		rc.Timeout = timeout
		if len(v) > 2 {
			backend, ok := v[2].(string)
			if !ok {
				return rc, &ConfigError{
					Reason: ReasonMalformed,
					Field:  field,
					Detail: fmt.Sprintf("region backend must be a string, got %T", v[2]),
				}
			}
			rc.Backend = backend
		}
		if len(v) > 3 {
			endpoints, err := parseEndpoints(field, v[3])
			if err != nil {
				return rc, err
			}
			rc.Endpoints = endpoints
		}
		if len(v) > 4 {
			m, ok := v[4].(map[string]any)
			if !ok {
				return rc, &ConfigError{
					Reason: ReasonArgumentsNotMap,
					Field:  field,
					Detail: fmt.Sprintf("region arguments must be a mapping, got %T", v[4]),
				}
			}
			rc.Arguments = m
		}
		return rc, nil

	case map[string]any:
		if name, ok := v["name"].(string); ok {
			rc.Name = name
		}
		if tv, ok := v["timeout"]; ok {
			timeout, err := parseTimeout(field, tv)
			if err != nil {
				return rc, err
			}
			rc.Timeout = timeout
		}
		if bv, ok := v["backend"]; ok {
			backend, ok := bv.(string)
			if !ok {
				return rc, &ConfigError{
					Reason: ReasonMalformed,
					Field:  field,
					Detail: fmt.Sprintf("region backend must be a string, got %T", bv),
				}
			}
			rc.Backend = backend
		}
		if ev, ok := v["endpoints"]; ok {
			endpoints, err := parseEndpoints(field, ev)
			if err != nil {
				return rc, err
			}
			rc.Endpoints = endpoints
		}
		if av, ok := v["arguments"]; ok {
			m, ok := av.(map[string]any)
			if !ok {
				return rc, &ConfigError{
					Reason: ReasonArgumentsNotMap,
					Field:  field,
					Detail: fmt.Sprintf("region arguments must be a mapping, got %T", av),
				}
			}
			rc.Arguments = m
		}
		return rc, nil

	default:
		return rc, &ConfigError{
			Reason: ReasonMalformed,
			Field:  field,
			Detail: fmt.Sprintf("expected a sequence or mapping, got %T", item),
		}
	}
}

// parseTimeout accepts Go duration strings ("1h30m") or numeric seconds.
func parseTimeout(field string, v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return 0, &ConfigError{
				Reason: ReasonMalformed,
				Field:  field,
				Detail: fmt.Sprintf("bad timeout %q: %v", t, err),
			}
		}
		return d, nil
	case int:
		return time.Duration(t) * time.Second, nil
	case int64:
		return time.Duration(t) * time.Second, nil
	case uint64:
		return time.Duration(t) * time.Second, nil
	case float64:
		return time.Duration(t * float64(time.Second)), nil
	default:
		return 0, &ConfigError{
			Reason: ReasonMalformed,
			Field:  field,
			Detail: fmt.Sprintf("timeout must be a duration string or seconds, got %T", v),
		}
	}
}

func parseEndpoints(field string, v any) ([]string, error) {
	switch e := v.(type) {
	case string:
		return []string{e}, nil
	case []any:
		out := make([]string, 0, len(e))
		for _, item := range e {
			s, ok := item.(string)
			if !ok {
				return nil, &ConfigError{
					Reason: ReasonMalformed,
					Field:  field,
					Detail: fmt.Sprintf("endpoints must be strings, got %T", item),
				}
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return e, nil
	default:
		return nil, &ConfigError{
			Reason: ReasonMalformed,
			Field:  field,
			Detail: fmt.Sprintf("endpoints must be a string or sequence of strings, got %T", v),
		}
	}
}
