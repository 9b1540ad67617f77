package core

import (
	"testing"
	"time"

	"github.com/dirmirror/dirmirror/pkg/clock"
)

func newTestOrigin(t *testing.T, config OriginConfig) *Origin {
	t.Helper()
	if config.Collapse == nil {
		config.Collapse = DefaultCollapseTable()
	}
	if config.MaxActions == 0 {
		config.MaxActions = 1
	}
	return NewOrigin("test", "/src", config, nil)
}

// A Move event decomposes into a Delete for the old path plus a Create for
// the new one when the origin has no move handler configured.
func TestOriginEnqueueDecomposesMoveWithoutHandler(t *testing.T) {
	o := newTestOrigin(t, OriginConfig{HasMove: false})
	now := clock.Now()

	o.Enqueue(Move, now, true, "old", "new", true)

	if o.Delays().Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (Delete(old) + Create(new))", o.Delays().Len())
	}

	first := o.Delays().PopHead()
	if first == nil || first.Kind() != Delete || first.Path() != "old" {
		t.Fatalf("first = %+v, want Delete old", first)
	}
	second := o.Delays().PopHead()
	if second == nil || second.Kind() != Create || second.Path() != "new" {
		t.Fatalf("second = %+v, want Create new", second)
	}
}

// With a move handler configured, Move events are kept intact rather than
// decomposed.
func TestOriginEnqueueKeepsMoveIntactWithHandler(t *testing.T) {
	o := newTestOrigin(t, OriginConfig{HasMove: true})
	now := clock.Now()

	o.Enqueue(Move, now, true, "old", "new", true)

	if o.Delays().Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (Move kept atomic)", o.Delays().Len())
	}
	d := o.Delays().PopHead()
	if d.Kind() != Move || d.Path() != "old" {
		t.Fatalf("d = %+v, want Move old", d)
	}
	dest, ok := d.Path2()
	if !ok || dest != "new" {
		t.Fatalf("Path2() = (%v, %v), want (new, true)", dest, ok)
	}
}

// Enqueue panics on the internal None sentinel: it must never be produced
// by a caller, only assigned internally by the collapse algebra.
func TestOriginEnqueuePanicsOnNoneKind(t *testing.T) {
	o := newTestOrigin(t, OriginConfig{})
	defer func() {
		if recover() == nil {
			t.Fatal("Enqueue did not panic for the None kind")
		}
	}()
	o.Enqueue(None, clock.Now(), true, "a", "", false)
}

// With HasDelay set, a fresh delay's deadline is now+Delay, not now.
func TestOriginEnqueueAppliesConfiguredDelay(t *testing.T) {
	o := newTestOrigin(t, OriginConfig{HasDelay: true, Delay: 5 * time.Second})
	now := clock.Now()

	o.Enqueue(Create, now, true, "a", "", false)

	d := o.Delays().Head()
	if d == nil {
		t.Fatal("Head() = nil")
	}
	if !now.Before(d.Deadline()) {
		t.Fatalf("deadline %v is not after enqueue time %v", d.Deadline(), now)
	}
}

// With HasDelay false, a fresh delay's deadline is exactly now: it fires as
// soon as the scheduler next ticks.
func TestOriginEnqueueWithoutDelayFiresImmediately(t *testing.T) {
	o := newTestOrigin(t, OriginConfig{HasDelay: false})
	now := clock.Now()

	o.Enqueue(Create, now, true, "a", "", false)

	d := o.Delays().Head()
	if d == nil {
		t.Fatal("Head() = nil")
	}
	if d.Deadline() != now {
		t.Fatalf("deadline = %v, want exactly %v", d.Deadline(), now)
	}
}
