package core

// ProcessTable tracks an Origin's in-flight child processes, mapping pid to
// the Delay whose action spawned it (spec.md §3). It is the "CountArray"
// pattern of spec.md §9 re-expressed as a plain map since Go's type system
// already forbids non-int keys; its size is the map's length, so no
// separate counter is kept.
type ProcessTable struct {
	byPID map[int]*Delay
}

// NewProcessTable creates an empty ProcessTable.
func NewProcessTable() *ProcessTable {
	return &ProcessTable{byPID: make(map[int]*Delay)}
}

// Size returns the number of in-flight processes.
func (t *ProcessTable) Size() int {
	return len(t.byPID)
}

// Insert records a newly spawned child.
func (t *ProcessTable) Insert(pid int, d *Delay) {
	t.byPID[pid] = d
}

// Remove removes and returns the Delay associated with pid, if any.
func (t *ProcessTable) Remove(pid int) (*Delay, bool) {
	d, ok := t.byPID[pid]
	if ok {
		delete(t.byPID, pid)
	}
	return d, ok
}
