package core

import "testing"

func TestDefaultCollapseTableScenarios(t *testing.T) {
	table := DefaultCollapseTable()

	// spec.md §8 scenario 1: Create then Delete cancels.
	if outcome := table.Lookup(Create, Delete); outcome.Kind != OutcomeCancel {
		t.Fatalf("Create->Delete: got %v, want cancel", outcome.Kind)
	}

	// spec.md §8 scenario 2: Create then Modify collapses to Create.
	if outcome := table.Lookup(Create, Modify); outcome.Kind != OutcomeReplace || outcome.Replace != Create {
		t.Fatalf("Create->Modify: got %v/%v, want replace(Create)", outcome.Kind, outcome.Replace)
	}

	// spec.md §8 scenario 3: Delete then Create collapses to Modify.
	if outcome := table.Lookup(Delete, Create); outcome.Kind != OutcomeReplace || outcome.Replace != Modify {
		t.Fatalf("Delete->Create: got %v/%v, want replace(Modify)", outcome.Kind, outcome.Replace)
	}
}

func TestCollapseTableMoveKindsAlwaysStack(t *testing.T) {
	table := DefaultCollapseTable()

	cases := []struct {
		older, newer EventKind
	}{
		{Move, Modify},
		{Modify, Move},
		{MoveFrom, MoveTo},
		{Create, MoveTo},
	}
	for _, c := range cases {
		if outcome := table.Lookup(c.older, c.newer); outcome.Kind != OutcomeStack {
			t.Errorf("Lookup(%s, %s) = %v, want stack", c.older, c.newer, outcome.Kind)
		}
	}
}

func TestCollapseTableSetRejectsMoveKinds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Set did not panic for a move kind")
		}
	}()
	NewCollapseTable().Set(Move, Modify, Stack)
}

func TestCollapseTableLookupPanicsOnMissingEntry(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Lookup did not panic for a missing entry")
		}
	}()
	NewCollapseTable().Lookup(Create, Delete)
}

func TestCollapseTableIsTotalOverNonMoveKinds(t *testing.T) {
	table := DefaultCollapseTable()
	kinds := []EventKind{Attrib, Modify, Create, Delete}
	for _, older := range kinds {
		for _, newer := range kinds {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Errorf("Lookup(%s, %s) panicked: %v", older, newer, r)
					}
				}()
				table.Lookup(older, newer)
			}()
		}
	}
}
