//go:build linux

package watch

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"golang.org/x/sys/unix"
)

// inotifyEventHeaderSize is the size, in bytes, of the fixed portion of a
// Linux inotify_event structure (wd, mask, cookie, len), matching the C
// struct layout read off the inotify file descriptor.
const inotifyEventHeaderSize = 16

// inotifyMask is the set of event types dirmirror watches for on every
// directory, grounded on the teacher's
// pkg/filesystem/watching/watch_native_non_recursive_inotify.go.
const inotifyMask = unix.IN_MODIFY | unix.IN_ATTRIB |
	unix.IN_CLOSE_WRITE |
	unix.IN_MOVED_FROM | unix.IN_MOVED_TO |
	unix.IN_CREATE | unix.IN_DELETE |
	unix.IN_DELETE_SELF | unix.IN_MOVE_SELF

// defaultMaximumWatches bounds how many live kernel watches this process
// keeps before evicting the least-recently-touched one, grounded on the
// teacher's watch_non_recursive_linux.go use of github.com/golang/groupcache/lru
// to avoid exhausting the system's inotify instance limit on enormous
// trees.
const defaultMaximumWatches = 8192

// inotifyWatcher implements Watcher using the Linux inotify API directly
// (no cgo, no third-party notify abstraction layer).
type inotifyWatcher struct {
	fd int

	mu        sync.Mutex
	pathByWD  map[Descriptor]string
	wdByPath  map[string]Descriptor
	evictor   *lru.Cache
	cookieMu  sync.Mutex
	cookieLog map[uint32]string // in-flight MOVED_FROM name, keyed by rename cookie

	events chan RawEvent
	errors chan error
	closed chan struct{}
}

// NewWatcher creates a new inotify-backed Watcher.
func NewWatcher() (Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize inotify: %w", err)
	}

	w := &inotifyWatcher{
		fd:        fd,
		pathByWD:  make(map[Descriptor]string),
		wdByPath:  make(map[string]Descriptor),
		cookieLog: make(map[uint32]string),
		events:    make(chan RawEvent, 4096),
		errors:    make(chan error, 1),
		closed:    make(chan struct{}),
	}

	w.evictor = lru.New(defaultMaximumWatches)
	w.evictor.OnEvicted = func(key lru.Key, _ interface{}) {
		path, ok := key.(string)
		if !ok {
			panic("watch: invalid key type in watch path cache")
		}
		w.removeWatchLocked(path)
	}

	go w.run()

	return w, nil
}

// AddWatch registers a kernel watch on absPath.
func (w *inotifyWatcher) AddWatch(absPath string) (Descriptor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if wd, ok := w.wdByPath[absPath]; ok {
		w.evictor.Add(absPath, nil)
		return wd, nil
	}

	raw, err := unix.InotifyAddWatch(w.fd, absPath, inotifyMask)
	if err != nil {
		return 0, fmt.Errorf("unable to add inotify watch: %w", err)
	}
	wd := Descriptor(raw)

	w.wdByPath[absPath] = wd
	w.pathByWD[wd] = absPath
	w.evictor.Add(absPath, nil)

	return wd, nil
}

// removeWatchLocked removes the kernel watch for path. The caller must
// hold w.mu.
func (w *inotifyWatcher) removeWatchLocked(path string) {
	wd, ok := w.wdByPath[path]
	if !ok {
		return
	}
	delete(w.wdByPath, path)
	delete(w.pathByWD, wd)
	_, _ = unix.InotifyRmWatch(w.fd, uint32(wd))
}

// SubDirs lists the immediate subdirectories of absPath.
func (w *inotifyWatcher) SubDirs(absPath string) ([]string, error) {
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
func (w *inotifyWatcher) Events() <-chan RawEvent {
	return w.events
}

// Errors returns the error channel.
func (w *inotifyWatcher) Errors() <-chan error {
	return w.errors
}

// Close shuts down the watcher and releases the inotify file descriptor.
func (w *inotifyWatcher) Close() error {
	close(w.closed)
	return unix.Close(w.fd)
}

// run reads and decodes raw inotify events until the file descriptor is
// closed.
func (w *inotifyWatcher) run() {
	buffer := make([]byte, 64*1024)
	for {
		n, err := unix.Read(w.fd, buffer)
		if err != nil {
			select {
			case <-w.closed:
				return
			default:
			}
			select {
			case w.errors <- fmt.Errorf("inotify read error: %w", err):
			default:
			}
			return
		}
		w.decode(buffer[:n])
	}
}

// decode parses one or more inotify_event records out of buffer and
// translates them into RawEvents.
func (w *inotifyWatcher) decode(buffer []byte) {
	offset := 0
	for offset+inotifyEventHeaderSize <= len(buffer) {
		wd := Descriptor(int32(binary.LittleEndian.Uint32(buffer[offset:])))
		mask := binary.LittleEndian.Uint32(buffer[offset+4:])
		cookie := binary.LittleEndian.Uint32(buffer[offset+8:])
		nameLen := binary.LittleEndian.Uint32(buffer[offset+12:])

		nameStart := offset + inotifyEventHeaderSize
		nameEnd := nameStart + int(nameLen)
		if nameEnd > len(buffer) {
			break
		}
		name := cString(buffer[nameStart:nameEnd])
		offset = nameEnd

		if mask&unix.IN_Q_OVERFLOW != 0 {
			select {
			case w.errors <- ErrOverflow:
			default:
			}
			continue
		}

		isDir := mask&unix.IN_ISDIR != 0
		now := time.Now()

		switch {
		case mask&unix.IN_CREATE != 0:
			w.emit(RawEvent{Descriptor: wd, Kind: "Create", IsDir: isDir, Time: now, Name: name})
		case mask&(unix.IN_DELETE|unix.IN_DELETE_SELF) != 0:
			w.emit(RawEvent{Descriptor: wd, Kind: "Delete", IsDir: isDir, Time: now, Name: name})
		case mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) != 0:
			w.emit(RawEvent{Descriptor: wd, Kind: "Modify", IsDir: isDir, Time: now, Name: name})
		case mask&unix.IN_ATTRIB != 0:
			w.emit(RawEvent{Descriptor: wd, Kind: "Attrib", IsDir: isDir, Time: now, Name: name})
		case mask&unix.IN_MOVED_FROM != 0:
			w.handleMovedFrom(wd, cookie, name, isDir, now)
		case mask&unix.IN_MOVED_TO != 0:
			w.handleMovedTo(wd, cookie, name, isDir, now)
		case mask&unix.IN_MOVE_SELF != 0:
			w.emit(RawEvent{Descriptor: wd, Kind: "Delete", IsDir: isDir, Time: now, Name: name})
		}
	}
}

// handleMovedFrom stashes the source name under its rename cookie, to be
// paired with a subsequent IN_MOVED_TO into a single Move event (spec.md
// §3: Move "may be decomposed... when the Origin configuration lacks a
// move handler", implying a combined Move is the normal wire shape).
func (w *inotifyWatcher) handleMovedFrom(wd Descriptor, cookie uint32, name string, isDir bool, now time.Time) {
	w.cookieMu.Lock()
	w.cookieLog[cookie] = name
	w.cookieMu.Unlock()

	// If no matching MOVED_TO arrives within the coalescing window, report
	// a bare MoveFrom so the Dispatcher can still enqueue something.
	time.AfterFunc(50*time.Millisecond, func() {
		w.cookieMu.Lock()
		pending, ok := w.cookieLog[cookie]
		if ok {
			delete(w.cookieLog, cookie)
		}
		w.cookieMu.Unlock()
		if ok && pending == name {
			w.emit(RawEvent{Descriptor: wd, Kind: "MoveFrom", IsDir: isDir, Time: now, Name: name})
		}
	})
}

// handleMovedTo pairs with a stashed MOVED_FROM (same cookie) to emit a
// single Move event, or emits a bare MoveTo if no pairing is found.
func (w *inotifyWatcher) handleMovedTo(wd Descriptor, cookie uint32, name string, isDir bool, now time.Time) {
	w.cookieMu.Lock()
	from, ok := w.cookieLog[cookie]
	if ok {
		delete(w.cookieLog, cookie)
	}
	w.cookieMu.Unlock()

	if ok {
		w.emit(RawEvent{
			Descriptor: wd, Kind: "Move", IsDir: isDir, Time: now,
			Name: from, Name2: name, HasName2: true,
		})
		return
	}

	w.emit(RawEvent{Descriptor: wd, Kind: "MoveTo", IsDir: isDir, Time: now, Name: name})
}

// emit delivers an event, dropping it rather than blocking if the consumer
// has fallen far behind (the kernel's own queue is the backpressure point;
// spec.md's overflow handling covers that case).
func (w *inotifyWatcher) emit(e RawEvent) {
	select {
	case w.events <- e:
	default:
		select {
		case w.errors <- ErrOverflow:
		default:
		}
	}
}

// cString trims the NUL padding inotify uses to align the variable-length
// name field.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
