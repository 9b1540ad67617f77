//go:build !linux && !(darwin && cgo)

package watch

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// pollInterval is how often the fallback watcher rescans watched
// directories when no native kernel watch mechanism is available.
const pollInterval = time.Second

// pollWatcher implements Watcher by periodically restating watched
// directories, for platforms with no native recursive or non-recursive
// watch mechanism wired up. It trades latency (spec.md's "near-real-time"
// goal is not met here) for portability.
type pollWatcher struct {
	mu      sync.Mutex
	mtimes  map[string]map[string]time.Time
	nextWD  Descriptor
	byPath  map[string]Descriptor
	byWD    map[Descriptor]string
	events  chan RawEvent
	errors  chan error
	closed  chan struct{}
	closeMu sync.Once
}

// NewWatcher creates a new polling Watcher.
func NewWatcher() (Watcher, error) {
	w := &pollWatcher{
		mtimes: make(map[string]map[string]time.Time),
		byPath: make(map[string]Descriptor),
		byWD:   make(map[Descriptor]string),
		events: make(chan RawEvent, 4096),
		errors: make(chan error, 1),
		closed: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// AddWatch registers absPath for polling.
func (w *pollWatcher) AddWatch(absPath string) (Descriptor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if wd, ok := w.byPath[absPath]; ok {
		return wd, nil
	}

	w.nextWD++
	wd := w.nextWD
	w.byPath[absPath] = wd
	w.byWD[wd] = absPath
	w.mtimes[absPath] = w.snapshot(absPath)

	return wd, nil
}

// SubDirs lists the immediate subdirectories of absPath.
func (w *pollWatcher) SubDirs(absPath string) ([]string, error) {
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

func (w *pollWatcher) Events() <-chan RawEvent { return w.events }
func (w *pollWatcher) Errors() <-chan error    { return w.errors }

// Close stops the polling loop.
func (w *pollWatcher) Close() error {
	w.closeMu.Do(func() { close(w.closed) })
	return nil
}

func (w *pollWatcher) snapshot(absPath string) map[string]time.Time {
	entries, err := os.ReadDir(absPath)
	if err != nil {
		return map[string]time.Time{}
	}
	snap := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if info, err := entry.Info(); err == nil {
			snap[entry.Name()] = info.ModTime()
		}
	}
	return snap
}

func (w *pollWatcher) run() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.closed:
			return
		case <-ticker.C:
			w.scanAll()
		}
	}
}

func (w *pollWatcher) scanAll() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.byPath))
	for path := range w.byPath {
		paths = append(paths, path)
	}
	w.mu.Unlock()

	for _, path := range paths {
		w.scanOne(path)
	}
}

func (w *pollWatcher) scanOne(absPath string) {
	w.mu.Lock()
	wd, ok := w.byPath[absPath]
	previous := w.mtimes[absPath]
	w.mu.Unlock()
	if !ok {
		return
	}

	current := w.snapshot(absPath)

	for name, mtime := range current {
		prevMtime, existed := previous[name]
		if !existed {
			isDir := false
			if info, err := os.Stat(absPath + string(os.PathSeparator) + name); err == nil {
				isDir = info.IsDir()
			}
			w.emit(RawEvent{Descriptor: wd, Kind: "Create", IsDir: isDir, Time: time.Now(), Name: name})
		} else if !mtime.Equal(prevMtime) {
			w.emit(RawEvent{Descriptor: wd, Kind: "Modify", Time: time.Now(), Name: name})
		}
	}
	for name := range previous {
		if _, stillExists := current[name]; !stillExists {
			w.emit(RawEvent{Descriptor: wd, Kind: "Delete", Time: time.Now(), Name: name})
		}
	}

	w.mu.Lock()
	w.mtimes[absPath] = current
	w.mu.Unlock()
}

func (w *pollWatcher) emit(e RawEvent) {
	select {
	case w.events <- e:
	default:
	}
}
