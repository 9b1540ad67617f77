package core

// OriginRegistry is the set of all configured Origins (spec.md §3, §4.2).
// It is append-only during configuration and immutable in membership
// thereafter; iteration order is preserved and observable, since the
// Scheduler visits Origins in registry order for fairness (spec.md §4.5,
// §5).
type OriginRegistry struct {
	origins []*Origin
}

// NewOriginRegistry creates an empty registry.
func NewOriginRegistry() *OriginRegistry {
	return &OriginRegistry{}
}

// Add appends a freshly-constructed Origin to the registry. Construction
// (source resolution, three-tier config merging) happens in the caller
// (pkg/configuration); Add only performs the append (spec.md §4.2).
func (r *OriginRegistry) Add(o *Origin) {
	r.origins = append(r.origins, o)
}

// Len returns the number of registered Origins.
func (r *OriginRegistry) Len() int {
	return len(r.origins)
}

// At returns the Origin at the given registry position.
func (r *OriginRegistry) At(i int) *Origin {
	return r.origins[i]
}

// ForEach iterates the registry in order, stopping early if fn returns
// false.
func (r *OriginRegistry) ForEach(fn func(*Origin) bool) {
	for _, o := range r.origins {
		if !fn(o) {
			return
		}
	}
}
