package core

import "github.com/dirmirror/dirmirror/pkg/clock"

// Delay is one pending event awaiting its deadline. Everything but kind is
// immutable after construction; kind may be mutated to None on cancellation
// or to a collapsed kind per the collapse algebra (spec.md §3).
type Delay struct {
	kind     EventKind
	path     RelPath
	path2    RelPath
	hasPath2 bool
	deadline clock.Instant

	// next chains stacked delays sharing the same path, oldest first. It
	// resolves spec.md §9's "stack pointer" open question: a genuine
	// per-path chain rather than leaving stacked delays discoverable only
	// by a linear sequence scan. next is nil when no delay is stacked
	// behind this one on the same path.
	next *Delay
}

// Kind returns the delay's current event kind. It may be None if the delay
// has been logically cancelled.
func (d *Delay) Kind() EventKind {
	return d.kind
}

// Path returns the delay's primary relative path.
func (d *Delay) Path() RelPath {
	return d.path
}

// Path2 returns the delay's secondary path (the destination half of a Move)
// and whether one is present.
func (d *Delay) Path2() (RelPath, bool) {
	return d.path2, d.hasPath2
}

// Deadline returns the instant at which this delay becomes eligible to
// fire.
func (d *Delay) Deadline() clock.Instant {
	return d.deadline
}

// Next returns the next delay stacked behind this one on the same path, or
// nil if nothing is stacked behind it.
func (d *Delay) Next() *Delay {
	return d.next
}
