package core

import (
	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/watch"
)

// Dispatcher translates a raw filesystem event into one Origin.Enqueue
// call per subscribed (Origin, rel_path) pair, and auto-watches newly
// created subdirectories (spec.md §2, §4.4).
type Dispatcher struct {
	table  *WatchTable
	logger *logging.Logger
}

// NewDispatcher creates a Dispatcher bound to the given WatchTable.
func NewDispatcher(table *WatchTable, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{table: table, logger: logger}
}

// OnEvent implements spec.md §4.4's on_event(kind, wd, is_dir, time, name,
// name2) operation. rawKind is the wire name as received from the host
// (spec.md §6); an unrecognized name is a configuration-boundary error, not
// a programmer error, so it is logged and dropped rather than panicking.
func (d *Dispatcher) OnEvent(rawKind string, wd watch.Descriptor, isDir bool, now clock.Instant, name string, name2 string, hasName2 bool) {
	kind, ok := ParseEventKind(rawKind)
	if !ok {
		d.logger.Errorf("dropping event with unrecognized kind %q", rawKind)
		return
	}

	subs, ok := d.table.Lookup(wd)
	if !ok {
		d.logger.Normalf("dropping event for stale watch descriptor %d", wd)
		return
	}

	// Copy the subscription slice before iterating: recursive watches
	// triggered below append to d.table.subs and may grow the backing
	// array out from under a live range over the original slice.
	subsCopy := make([]subscription, len(subs))
	copy(subsCopy, subs)

	for _, sub := range subsCopy {
		if excluded(sub.origin, sub.relPath.Join(name)) {
			continue
		}

		path := sub.relPath.Join(name)
		var path2 RelPath
		if hasName2 {
			path2 = sub.relPath.Join(name2)
		}

		sub.origin.Enqueue(kind, now, true, path, path2, hasName2)

		if isDir && kind == Create {
			d.table.WatchDirectory(sub.origin, path, now, true)
		}
	}
}
