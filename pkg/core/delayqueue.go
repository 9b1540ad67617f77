package core

import "github.com/dirmirror/dirmirror/pkg/clock"

// InsertDisposition reports what Insert actually did, so callers (Origin,
// for logging) can tell a fresh enqueue from a collapse, cancellation, or
// stack without re-deriving it.
type InsertDisposition uint8

const (
	// DispositionInserted indicates no prior delay existed on the path; a
	// fresh Delay was appended.
	DispositionInserted InsertDisposition = iota
	// DispositionCollapsed indicates an existing delay's kind was mutated
	// in place; the new event was not enqueued.
	DispositionCollapsed
	// DispositionCancelled indicates mutual cancellation: the existing
	// delay's kind became None and the new event was not enqueued.
	DispositionCancelled
	// DispositionStacked indicates the new delay was appended to the
	// sequence tail and chained behind the existing one without collapsing.
	DispositionStacked
)

// DelayQueue is a per-origin, time-ordered sequence of Delays plus a
// path->Delay index used for coalescing, per spec.md §3/§4.1.
type DelayQueue struct {
	collapse *CollapseTable
	sequence []*Delay
	front    int
	index    map[RelPath]*Delay
}

// NewDelayQueue creates an empty DelayQueue using the given collapse table.
func NewDelayQueue(collapse *CollapseTable) *DelayQueue {
	return &DelayQueue{
		collapse: collapse,
		index:    make(map[RelPath]*Delay),
	}
}

// Len reports the number of not-yet-popped sequence entries, including any
// logically cancelled (None) ones still awaiting a Head/PopHead scan past
// them.
func (q *DelayQueue) Len() int {
	return len(q.sequence) - q.front
}

// chainTail walks a path's stack chain to its last link.
func chainTail(d *Delay) *Delay {
	for d.next != nil {
		d = d.next
	}
	return d
}

// Insert applies one (kind, path, path2, deadline) event to the queue
// according to the collapse algebra of spec.md §4.1 steps 3-5. It is the
// DelayQueue-local half of Origin.Enqueue: move decomposition (step 1) and
// deadline computation (step 2) happen in the Origin, since they depend on
// Origin-level configuration (the move handler and debounce delay).
func (q *DelayQueue) Insert(kind EventKind, deadline clock.Instant, path RelPath, path2 RelPath, hasPath2 bool) InsertDisposition {
	old, hasOld := q.index[path]

	if !hasOld {
		q.push(kind, deadline, path, path2, hasPath2)
		return DispositionInserted
	}

	if isMoveKind(kind) || isMoveKind(old.kind) {
		newDelay := q.append(kind, deadline, path, path2, hasPath2)
		chainTail(old).next = newDelay
		return DispositionStacked
	}

	outcome := q.collapse.Lookup(old.kind, kind)
	switch outcome.Kind {
	case OutcomeCancel:
		old.kind = None
		delete(q.index, path)
		return DispositionCancelled
	case OutcomeStack:
		newDelay := q.append(kind, deadline, path, path2, hasPath2)
		chainTail(old).next = newDelay
		return DispositionStacked
	case OutcomeReplace:
		old.kind = outcome.Replace
		return DispositionCollapsed
	default:
		panic("core: unknown collapse outcome kind")
	}
}

// push appends a fresh delay and indexes it (the "no prior delay" case).
func (q *DelayQueue) push(kind EventKind, deadline clock.Instant, path RelPath, path2 RelPath, hasPath2 bool) {
	d := q.append(kind, deadline, path, path2, hasPath2)
	q.index[path] = d
}

// append appends a fresh delay to the sequence tail without touching the
// index.
func (q *DelayQueue) append(kind EventKind, deadline clock.Instant, path RelPath, path2 RelPath, hasPath2 bool) *Delay {
	d := &Delay{
		kind:     kind,
		path:     path,
		path2:    path2,
		hasPath2: hasPath2,
		deadline: deadline,
	}
	q.sequence = append(q.sequence, d)
	return d
}

// Head returns the first delay whose kind is not None, skipping (and
// discarding) any logically cancelled entries at the front of the
// sequence. It returns nil if the queue is empty.
func (q *DelayQueue) Head() *Delay {
	for q.front < len(q.sequence) && q.sequence[q.front].kind == None {
		q.front++
	}
	if q.front >= len(q.sequence) {
		return nil
	}
	return q.sequence[q.front]
}

// PopHead removes and returns the head delay, advancing the index to the
// next stacked delay on the same path (if any) so that coalescing
// continues to work against the correct representative. It returns nil if
// the queue is empty.
func (q *DelayQueue) PopHead() *Delay {
	d := q.Head()
	if d == nil {
		return nil
	}
	q.front++

	if indexed, ok := q.index[d.path]; ok && indexed == d {
		if d.next != nil {
			q.index[d.path] = d.next
		} else {
			delete(q.index, d.path)
		}
	}

	// Reclaim popped entries once they make up the bulk of the backing
	// slice, rather than on every pop, to avoid O(n) work per event.
	if q.front > 64 && q.front*2 > len(q.sequence) {
		q.compact()
	}

	return d
}

// compact drops already-popped entries from the front of the backing
// slice, bounding memory growth for long-running origins. It's safe to
// call at any time; it never changes observable queue semantics.
func (q *DelayQueue) compact() {
	if q.front == 0 {
		return
	}
	remaining := len(q.sequence) - q.front
	copy(q.sequence[:remaining], q.sequence[q.front:])
	q.sequence = q.sequence[:remaining]
	q.front = 0
}
