package regioncache

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by every lifecycle or lookup call made before
	// initialization completed.
	ErrNotReady = errors.New("regioncache: not initialized")

	// ErrInitialized is returned by Init on an already-initialized facade.
	// The Uninitialized -> Ready transition happens exactly once.
	ErrInitialized = errors.New("regioncache: already initialized")

	// ErrNotBound is returned by lifecycle calls on a function that was never
	// bound through Region.
	ErrNotBound = errors.New("regioncache: function is not bound to a region")
)

// UnknownRegionError reports a lifecycle call that names a region absent from
// the registry.
type UnknownRegionError struct {
	Name string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("regioncache: region %q is not configured", e.Name)
}

// UnboundRegionError reports a bound function whose recorded region is absent
// from the registry: the region was declared at bind time but never
// configured. Distinct from ErrNotBound (function never bound at all).
type UnboundRegionError struct {
	Name string
}

func (e *UnboundRegionError) Error() string {
	return fmt.Sprintf("regioncache: bound region %q is not configured", e.Name)
}

// ConfigReason is a machine-readable classification of a ConfigError.
type ConfigReason string

const (
	ReasonNoRegions           ConfigReason = "no_regions"
	ReasonRegionIncomplete    ConfigReason = "region_incomplete"
	ReasonBackendUnresolved   ConfigReason = "backend_unresolved"
	ReasonEndpointsUnresolved ConfigReason = "endpoints_unresolved"
	ReasonArgumentsNotMap     ConfigReason = "arguments_not_map"
	ReasonDuplicateRegion     ConfigReason = "duplicate_region"
	ReasonMalformed           ConfigReason = "malformed"
)

// ConfigError reports a malformed or incomplete configuration. It is fatal:
// the facade stays Uninitialized and no region is registered.
type ConfigError struct {
	Reason ConfigReason
	Field  string // offending config key or region, e.g. "regions[2]" or "hour"
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("regioncache: invalid config (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("regioncache: invalid config (%s) at %s: %s", e.Reason, e.Field, e.Detail)
}
