package configuration

import (
	"fmt"
	"time"
)

// Resolve implements spec.md §4.2's three-tier field lookup: an origin-
// local value wins if present; otherwise the process-wide settings value
// is used; otherwise the "defaults" block's value; otherwise a hardcoded
// fallback (1 for both concurrency caps, no debounce).
func Resolve(spec OriginSpec, settings *Settings, defaults OriginSpec) (ResolvedOrigin, error) {
	r := ResolvedOrigin{
		Source:  spec.Source,
		Target:  spec.Target,
		Action:  firstNonEmptyStrings(spec.Action, defaults.Action),
		Startup: firstNonEmptyStrings(spec.Startup, defaults.Startup),
		Move:    spec.Move || defaults.Move,
		Exclude: firstNonEmptyStrings(spec.Exclude, defaults.Exclude),
	}

	maxProcesses := firstIntPtr(spec.MaxProcesses, settings.MaxProcesses, defaults.MaxProcesses)
	if maxProcesses != nil {
		r.MaxProcesses = *maxProcesses
	} else {
		r.MaxProcesses = defaultMaxProcesses
	}

	maxActions := firstIntPtr(spec.MaxActions, settings.MaxActions, defaults.MaxActions)
	if maxActions != nil {
		r.MaxActions = *maxActions
	} else {
		r.MaxActions = defaultMaxActions
	}

	delayStr := firstStringPtr(spec.Delay, settings.Delay, defaults.Delay)
	if delayStr != nil {
		d, err := time.ParseDuration(*delayStr)
		if err != nil {
			return ResolvedOrigin{}, fmt.Errorf("invalid delay %q: %w", *delayStr, err)
		}
		r.Delay = d
		r.HasDelay = true
	}

	if r.Source == "" {
		return ResolvedOrigin{}, fmt.Errorf("origin is missing a source")
	}
	if len(r.Action) == 0 {
		return ResolvedOrigin{}, fmt.Errorf("origin %s is missing an action", r.Source)
	}

	return r, nil
}

func firstNonEmptyStrings(candidates ...[]string) []string {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

func firstIntPtr(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func firstStringPtr(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
