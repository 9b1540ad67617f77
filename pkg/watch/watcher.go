// Package watch defines the abstract kernel watch mechanism that pkg/core
// consumes (spec.md §6's add_watch/sub_dirs host primitives), along with
// concrete platform backends. The core only depends on the Watcher
// interface in this file; it never depends on a specific backend.
package watch

import "time"

// Descriptor is an opaque integer identifying a kernel watch on one
// directory (spec.md glossary: "Watch descriptor").
type Descriptor int32

// RawEvent is one filesystem event as reported by a Watcher, before the
// Dispatcher resolves it against the WatchTable. Kind is carried as the
// wire name (spec.md §6: "Attrib", "Modify", ...) rather than a typed
// EventKind so that this package has no dependency on pkg/core; parsing
// and validation happen in the Dispatcher.
type RawEvent struct {
	Descriptor Descriptor
	Kind       string
	IsDir      bool
	Time       time.Time
	Name       string
	Name2      string
	HasName2   bool
}

// Watcher is the abstract kernel-side watch mechanism (spec.md §1: "the
// core consumes an abstract Watcher that produces events and supports
// adding directories"). Implementations are not required to be safe for
// concurrent use beyond what's documented per method; dirmirror only ever
// calls AddWatch from the single host-loop goroutine, while Events/Errors
// are read continuously from that same loop.
type Watcher interface {
	// AddWatch registers a kernel watch on the given absolute directory
	// path and returns its descriptor. Watching the same path twice
	// returns the same descriptor.
	AddWatch(absPath string) (Descriptor, error)
	// SubDirs lists the immediate subdirectories of the given absolute
	// path, used by watch_directory's recursive enumeration (spec.md
	// §4.3 step 4).
	SubDirs(absPath string) ([]string, error)
	// Events returns the channel on which raw filesystem events are
	// delivered.
	Events() <-chan RawEvent
	// Errors returns the channel on which watch errors (including queue
	// overflow) are delivered.
	Errors() <-chan error
	// Close releases all watches and any resources held by the Watcher.
	Close() error
}

// ErrOverflow is delivered on a Watcher's Errors channel when the
// underlying kernel event queue overflowed and events may have been lost
// (spec.md §6: "Inotify event-queue overflow").
var ErrOverflow = overflowError{}

type overflowError struct{}

func (overflowError) Error() string { return "watch event queue overflow" }
