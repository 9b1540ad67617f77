package core

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/watch"
)

// subscription is one (Origin, rel_path) pair subscribed to a watch
// descriptor (spec.md §3: "Multiple Origins may subscribe to the same
// descriptor... and a single Origin may appear at many descriptors").
type subscription struct {
	origin  *Origin
	relPath RelPath
}

// WatchTable maps a watch descriptor to the list of (Origin, rel_path)
// pairs subscribed to it (spec.md §2, §3).
type WatchTable struct {
	watcher watch.Watcher
	logger  *logging.Logger

	subs map[watch.Descriptor][]subscription
}

// NewWatchTable creates an empty WatchTable bound to the given Watcher.
func NewWatchTable(watcher watch.Watcher, logger *logging.Logger) *WatchTable {
	return &WatchTable{
		watcher: watcher,
		logger:  logger,
		subs:    make(map[watch.Descriptor][]subscription),
	}
}

// Lookup returns the subscriptions registered for a watch descriptor.
func (t *WatchTable) Lookup(wd watch.Descriptor) ([]subscription, bool) {
	subs, ok := t.subs[wd]
	return subs, ok
}

// excluded reports whether relPath matches any of an Origin's exclude
// globs (spec.md §4.3.E: doublestar-matched ignore patterns).
func excluded(o *Origin, relPath RelPath) bool {
	for _, pattern := range o.Config.Exclude {
		if ok, err := doublestar.Match(pattern, string(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}

// WatchDirectory implements spec.md §4.3's watch_directory(origin,
// rel_path) operation:
//
//  1. Ask the Watcher to register the absolute path; on failure, log and
//     skip the subtree (non-fatal).
//  2. Record the (origin, rel_path) subscription against the returned
//     descriptor.
//  3. If the Origin has no startup handler (warmstart mode), enqueue a
//     Create event for rel_path.
//  4. Enumerate current subdirectories and recurse.
//
// now/hasNow are threaded through to the warmstart Enqueue call exactly as
// Origin.Enqueue expects them.
func (t *WatchTable) WatchDirectory(o *Origin, relPath RelPath, now clock.Instant, hasNow bool) {
	if excluded(o, relPath) {
		return
	}

	absPath := string(o.Source.Join(relPath))
	wd, err := t.watcher.AddWatch(absPath)
	if err != nil {
		o.Logger().Errorf("unable to watch %s: %v", absPath, err)
		return
	}

	t.subs[wd] = append(t.subs[wd], subscription{origin: o, relPath: relPath})

	if o.Config.Startup == nil {
		o.Enqueue(Create, now, hasNow, relPath, "", false)
	}

	subdirs, err := t.watcher.SubDirs(absPath)
	if err != nil {
		o.Logger().Errorf("unable to enumerate subdirectories of %s: %v", absPath, err)
		return
	}
	for _, name := range subdirs {
		t.WatchDirectory(o, relPath.Join(name), now, hasNow)
	}
}
