package core

import (
	"testing"

	"github.com/dirmirror/dirmirror/pkg/clock"
)

func TestDelayQueueInsertFreshPath(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	disp := q.Insert(Create, now, "a", "", false)
	if disp != DispositionInserted {
		t.Fatalf("got %v, want DispositionInserted", disp)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	head := q.Head()
	if head == nil || head.Kind() != Create || head.Path() != "a" {
		t.Fatalf("Head() = %+v, want Create a", head)
	}
}

// scenario 1: Create then Delete on the same path cancels both.
func TestDelayQueueCreateThenDeleteCancels(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Create, now, "a", "", false)
	disp := q.Insert(Delete, now, "a", "", false)
	if disp != DispositionCancelled {
		t.Fatalf("got %v, want DispositionCancelled", disp)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (the cancelled entry still occupies the sequence)", q.Len())
	}
	if head := q.Head(); head != nil {
		t.Fatalf("Head() = %+v, want nil after cancellation", head)
	}
}

// scenario 2: Create then Modify collapses to a single Create.
func TestDelayQueueCreateThenModifyCollapsesToCreate(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Create, now, "a", "", false)
	disp := q.Insert(Modify, now.Add(1), "a", "", false)
	if disp != DispositionCollapsed {
		t.Fatalf("got %v, want DispositionCollapsed", disp)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	head := q.Head()
	if head == nil || head.Kind() != Create {
		t.Fatalf("Head().Kind() = %v, want Create", head.Kind())
	}
}

// scenario 3: Delete then Create collapses to a single Modify.
func TestDelayQueueDeleteThenCreateCollapsesToModify(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Delete, now, "a", "", false)
	disp := q.Insert(Create, now.Add(1), "a", "", false)
	if disp != DispositionCollapsed {
		t.Fatalf("got %v, want DispositionCollapsed", disp)
	}
	head := q.Head()
	if head == nil || head.Kind() != Modify {
		t.Fatalf("Head().Kind() = %v, want Modify", head.Kind())
	}
}

// Three rapid Modify events on the same path collapse into one delay that
// keeps the first event's deadline, matching the "debounce" scenario of
// spec.md §8 (max_processes=1, delay=5s produces a single scheduled action).
func TestDelayQueueRapidModifiesCollapseToOne(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Modify, now, "a", "", false)
	q.Insert(Modify, now.Add(1), "a", "", false)
	disp := q.Insert(Modify, now.Add(2), "a", "", false)
	if disp != DispositionCollapsed {
		t.Fatalf("got %v, want DispositionCollapsed", disp)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (three modifies collapsed into one delay)", q.Len())
	}
}

// Move kinds never collapse: they always stack behind any existing delay on
// the same path so both halves of the rename remain individually visible.
func TestDelayQueueMoveKindsStackInsteadOfCollapsing(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Modify, now, "a", "", false)
	disp := q.Insert(Move, now.Add(1), "a", "b", true)
	if disp != DispositionStacked {
		t.Fatalf("got %v, want DispositionStacked", disp)
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (stacked entries are both still pending)", q.Len())
	}

	first := q.PopHead()
	if first == nil || first.Kind() != Modify {
		t.Fatalf("first popped = %+v, want Modify", first)
	}
	if first.Next() == nil || first.Next().Kind() != Move {
		t.Fatalf("first.Next() did not chain to the stacked Move")
	}

	second := q.PopHead()
	if second == nil || second.Kind() != Move {
		t.Fatalf("second popped = %+v, want Move", second)
	}
	dest, ok := second.Path2()
	if !ok || dest != "b" {
		t.Fatalf("second.Path2() = (%v, %v), want (b, true)", dest, ok)
	}
}

// PopHead skips logically cancelled (None) entries left at the sequence
// front.
func TestDelayQueuePopHeadSkipsCancelledEntries(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Create, now, "a", "", false)
	q.Insert(Delete, now.Add(1), "a", "", false) // cancels "a"
	q.Insert(Create, now.Add(2), "b", "", false)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (one cancelled entry still occupies the sequence)", q.Len())
	}

	d := q.PopHead()
	if d == nil || d.Path() != "b" {
		t.Fatalf("PopHead() = %+v, want path b (cancelled \"a\" entry skipped)", d)
	}
	if next := q.PopHead(); next != nil {
		t.Fatalf("PopHead() = %+v, want nil", next)
	}
}

// Pop order across distinct paths is never reordered: insertion order is
// preserved modulo in-place collapses on a single path.
func TestDelayQueuePopOrderIsNonDecreasingByInsertion(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Create, now, "a", "", false)
	q.Insert(Create, now.Add(1), "b", "", false)
	q.Insert(Create, now.Add(2), "c", "", false)

	var order []RelPath
	for d := q.PopHead(); d != nil; d = q.PopHead() {
		order = append(order, d.Path())
	}
	want := []RelPath{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// A cancelled path's index entry is fully removed, not merely marked: a
// later event on the same path starts a brand new chain rather than
// resurrecting or re-collapsing against the cancelled one.
func TestDelayQueueCancellationClearsTheIndex(t *testing.T) {
	q := NewDelayQueue(DefaultCollapseTable())
	now := clock.Now()

	q.Insert(Create, now, "a", "", false)
	disp := q.Insert(Delete, now.Add(1), "a", "", false)
	if disp != DispositionCancelled {
		t.Fatalf("got %v, want DispositionCancelled", disp)
	}

	disp = q.Insert(Create, now.Add(2), "a", "", false)
	if disp != DispositionInserted {
		t.Fatalf("got %v, want DispositionInserted (cancellation cleared the index)", disp)
	}

	// The cancelled (None) entry is skipped; the fresh Create is what pops.
	d := q.PopHead()
	if d == nil || d.Kind() != Create {
		t.Fatalf("PopHead() = %+v, want Create", d)
	}
	if next := q.PopHead(); next != nil {
		t.Fatalf("PopHead() = %+v, want nil", next)
	}
}
