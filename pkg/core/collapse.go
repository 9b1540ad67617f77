package core

// OutcomeKind classifies what an enqueue against an existing Delay on the
// same path should do, replacing the source prototype's overloaded
// sentinel integers (-1 for cancel, 0 for stack, else a replacement kind)
// with an explicit sum type, per spec.md §9's call for compile-time safety
// in place of the dynamic table's runtime guards.
type OutcomeKind uint8

const (
	// OutcomeReplace collapses the older delay's kind to the carried
	// EventKind, preserving the older delay's deadline and queue position.
	OutcomeReplace OutcomeKind = iota
	// OutcomeCancel mutually cancels both the older and newer event: the
	// older delay's kind becomes None and the newer event is not enqueued.
	OutcomeCancel
	// OutcomeStack retains both events: the newer delay is appended to the
	// sequence tail and chained behind the older one via Delay.next.
	OutcomeStack
)

// Outcome is the result of consulting the CollapseTable for a given
// (older, newer) EventKind pair.
type Outcome struct {
	Kind    OutcomeKind
	Replace EventKind // meaningful only when Kind == OutcomeReplace
}

// Replace constructs a replacement Outcome.
func Replace(kind EventKind) Outcome {
	return Outcome{Kind: OutcomeReplace, Replace: kind}
}

// Cancel is the mutual-cancellation Outcome.
var Cancel = Outcome{Kind: OutcomeCancel}

// Stack is the stacking Outcome.
var Stack = Outcome{Kind: OutcomeStack}

// CollapseTable is a total mapping (older, newer EventKind) -> Outcome for
// the four non-move kinds (Attrib, Modify, Create, Delete). Any pair
// touching Move/MoveFrom/MoveTo is forced to Stack regardless of what the
// table holds for it, enforced in lookup rather than by requiring every
// implementor to remember to fill those cells in.
type CollapseTable struct {
	entries map[EventKind]map[EventKind]Outcome
}

// NewCollapseTable builds an empty CollapseTable. Use DefaultCollapseTable
// for the standard table, or Set to build a custom one.
func NewCollapseTable() *CollapseTable {
	return &CollapseTable{entries: make(map[EventKind]map[EventKind]Outcome)}
}

// Set records the outcome for a given (older, newer) pair. It panics if
// either kind is a move kind or None, since those cells are either forced
// (move kinds) or meaningless (None never arrives as a fresh event).
func (t *CollapseTable) Set(older, newer EventKind, outcome Outcome) *CollapseTable {
	if isMoveKind(older) || isMoveKind(newer) {
		panic("core: collapse table entries for move kinds are fixed to Stack")
	}
	if older == None || newer == None {
		panic("core: collapse table entries for None are meaningless")
	}
	row, ok := t.entries[older]
	if !ok {
		row = make(map[EventKind]Outcome)
		t.entries[older] = row
	}
	row[newer] = outcome
	return t
}

// Lookup returns the Outcome for an existing delay of kind older receiving
// a new event of kind newer. Move-kind pairs always yield Stack. Any pair
// the table has no entry for is a programmer error: the table is meant to
// be total over the four non-move kinds.
func (t *CollapseTable) Lookup(older, newer EventKind) Outcome {
	if isMoveKind(older) || isMoveKind(newer) {
		return Stack
	}
	if row, ok := t.entries[older]; ok {
		if outcome, ok := row[newer]; ok {
			return outcome
		}
	}
	panic("core: collapse table has no entry for (" + older.String() + ", " + newer.String() + ")")
}

// DefaultCollapseTable returns the standard collapse table used by
// directory-mirroring tools in this style: a Create or Modify absorbs a
// later Attrib/Modify into itself, a Delete cancels anything pending and is
// itself superseded by a later Create (reported as Modify, since the
// overall effect on the target is "the file changed"), a later Delete
// folds into a pending Delete, and an Attrib or Modify following a Delete
// simply stacks (the path might have been deleted and recreated by an
// unrelated process in between). This is
// exactly the table spec.md §8's scenarios 1-3 exercise.
func DefaultCollapseTable() *CollapseTable {
	t := NewCollapseTable()

	t.Set(Attrib, Attrib, Replace(Attrib))
	t.Set(Attrib, Modify, Replace(Modify))
	t.Set(Attrib, Create, Stack)
	t.Set(Attrib, Delete, Replace(Delete))

	t.Set(Modify, Attrib, Replace(Modify))
	t.Set(Modify, Modify, Replace(Modify))
	t.Set(Modify, Create, Stack)
	t.Set(Modify, Delete, Replace(Delete))

	t.Set(Create, Attrib, Replace(Create))
	t.Set(Create, Modify, Replace(Create))
	t.Set(Create, Create, Stack)
	t.Set(Create, Delete, Cancel)

	t.Set(Delete, Attrib, Stack)
	t.Set(Delete, Modify, Stack)
	t.Set(Delete, Create, Replace(Modify))
	t.Set(Delete, Delete, Replace(Delete))

	return t
}
