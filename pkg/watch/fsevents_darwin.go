//go:build darwin && cgo

package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mutagen-io/fsevents"
)

// fseventsCoalescingLatency is the coalescing latency requested from
// FSEvents itself, independent of (and beneath) pkg/core's own debounce.
const fseventsCoalescingLatency = 10 * time.Millisecond

// fsEventsWatcher implements Watcher using the macOS FSEvents API,
// grounded on the teacher's
// pkg/filesystem/watching/watch_native_recursive_fsevents.go.
type fsEventsWatcher struct {
	streams map[string]*fsevents.EventStream
	events  chan RawEvent
	errors  chan error
}

// NewWatcher creates a new FSEvents-backed Watcher.
func NewWatcher() (Watcher, error) {
	return &fsEventsWatcher{
		streams: make(map[string]*fsevents.EventStream),
		events:  make(chan RawEvent, 4096),
		errors:  make(chan error, 1),
	}, nil
}

// AddWatch starts (or reuses) an FSEvents stream rooted at absPath. Unlike
// inotify, FSEvents watches are inherently recursive, so dirmirror only
// needs one stream per Origin source root; AddWatch still returns a
// distinct Descriptor per call so WatchTable bookkeeping is uniform across
// backends, but repeated calls for paths under an already-watched root are
// cheap no-ops.
func (w *fsEventsWatcher) AddWatch(absPath string) (Descriptor, error) {
	for root, stream := range w.streams {
		if within(root, absPath) {
			return Descriptor(hashPath(root)), w.rewatch(stream)
		}
	}

	rawEvents := make(chan []fsevents.Event, 4096)
	stream := &fsevents.EventStream{
		Events:  rawEvents,
		Paths:   []string{absPath},
		Latency: fseventsCoalescingLatency,
		Flags:   fsevents.WatchRoot | fsevents.FileEvents,
	}
	stream.Start()
	w.streams[absPath] = stream

	go w.forward(rawEvents)

	return Descriptor(hashPath(absPath)), nil
}

// rewatch is a no-op placeholder for a stream that's already covering the
// requested path; present for symmetry with AddWatch's error return.
func (w *fsEventsWatcher) rewatch(*fsevents.EventStream) error {
	return nil
}

func (w *fsEventsWatcher) forward(rawEvents <-chan []fsevents.Event) {
	for batch := range rawEvents {
		for _, e := range batch {
			w.emit(e)
		}
	}
}

func (w *fsEventsWatcher) emit(e fsevents.Event) {
	isDir := e.Flags&fsevents.ItemIsDir != 0
	dir, name := filepath.Split(e.Path)
	_ = dir

	kind := "Modify"
	switch {
	case e.Flags&fsevents.ItemCreated != 0:
		kind = "Create"
	case e.Flags&fsevents.ItemRemoved != 0:
		kind = "Delete"
	case e.Flags&fsevents.ItemRenamed != 0:
		kind = "Move"
	case e.Flags&fsevents.ItemInodeMetaMod != 0:
		kind = "Attrib"
	case e.Flags&(fsevents.ItemModified|fsevents.ItemFinderInfoMod) != 0:
		kind = "Modify"
	}

	select {
	case w.events <- RawEvent{Kind: kind, IsDir: isDir, Time: time.Now(), Name: name}:
	default:
		select {
		case w.errors <- ErrOverflow:
		default:
		}
	}
}

// SubDirs lists the immediate subdirectories of absPath.
func (w *fsEventsWatcher) SubDirs(absPath string) ([]string, error) {
	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// Events returns the raw event channel.
func (w *fsEventsWatcher) Events() <-chan RawEvent {
	return w.events
}

// Errors returns the error channel.
func (w *fsEventsWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops all FSEvents streams.
func (w *fsEventsWatcher) Close() error {
	for _, stream := range w.streams {
		stream.Stop()
	}
	return nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && filepath.IsLocal(rel)
}

func hashPath(path string) int32 {
	var h int32 = 2166136261
	for i := 0; i < len(path); i++ {
		h ^= int32(path[i])
		h *= 16777619
	}
	return h
}
