package regioncache

import (
	"fmt"
	"time"

	"github.com/unkn0wn-root/regioncache/engine"
)

// RegionSpec is a validated, normalized region definition as handed to the
// engine. Produced only by Config validation.
type RegionSpec = engine.Spec

// Config declares the cache regions and the global defaults their optional
// fields fall back to.
type Config struct {
	// GlobalBackend is the backend identifier used by regions that do not
	// set their own.
	GlobalBackend string

	// GlobalEndpoints are the backend endpoints used by regions that do not
	// set their own.
	GlobalEndpoints []string

	// GlobalArguments are backend arguments used by regions that do not set
	// their own. A region-level Arguments map fully replaces this one.
	GlobalArguments map[string]any

	// Regions is the non-empty set of region definitions, in declaration
	// order.
	Regions []RegionConfig
}

// RegionConfig defines one region. Name and Timeout are required; Backend,
// Endpoints and Arguments fall back to the Config globals when unset.
type RegionConfig struct {
	Name      string
	Timeout   time.Duration
	Backend   string
	Endpoints []string
	Arguments map[string]any
}

// validate normalizes the configuration into one RegionSpec per declared
// region, in declaration order. Resolution order per field: explicit
// per-region value, else global default, else ConfigError.
func (c *Config) validate() ([]RegionSpec, error) {
	if len(c.Regions) == 0 {
		return nil, &ConfigError{
			Reason: ReasonNoRegions,
			Field:  "regions",
			Detail: "at least one region is required",
		}
	}

	specs := make([]RegionSpec, 0, len(c.Regions))
	seen := make(map[string]struct{}, len(c.Regions))

	for i, rc := range c.Regions {
		field := fmt.Sprintf("regions[%d]", i)
		if rc.Name == "" {
			return nil, &ConfigError{
				Reason: ReasonRegionIncomplete,
				Field:  field,
				Detail: "region name is required",
			}
		}
		field = rc.Name
		if rc.Timeout <= 0 {
			return nil, &ConfigError{
				Reason: ReasonRegionIncomplete,
				Field:  field,
				Detail: "region timeout is required",
			}
		}
		if _, dup := seen[rc.Name]; dup {
			return nil, &ConfigError{
				Reason: ReasonDuplicateRegion,
				Field:  field,
				Detail: "region name declared more than once",
			}
		}
		seen[rc.Name] = struct{}{}

		backend := coalesce(rc.Backend, c.GlobalBackend)
		if backend == "" {
			return nil, &ConfigError{
				Reason: ReasonBackendUnresolved,
				Field:  field,
				Detail: "no region backend and no global_backend set",
			}
		}

		endpoints := rc.Endpoints
		if len(endpoints) == 0 {
			endpoints = c.GlobalEndpoints
		}
		if len(endpoints) == 0 {
			return nil, &ConfigError{
				Reason: ReasonEndpointsUnresolved,
				Field:  field,
				Detail: "no region endpoints and no global_endpoints set",
			}
		}
		endpoints = append([]string(nil), endpoints...)

		// Region arguments fully replace globals; only explicit entries
		// override the synthesized "endpoints" key.
		args := rc.Arguments
		if args == nil {
			args = c.GlobalArguments
		}
		effective := make(map[string]any, len(args)+1)
		effective["endpoints"] = endpoints
		for k, v := range args {
			effective[k] = v
		}

		specs = append(specs, RegionSpec{
			Name:      rc.Name,
			Timeout:   rc.Timeout,
			Backend:   backend,
			Endpoints: endpoints,
			Arguments: effective,
		})
	}
	return specs, nil
}
