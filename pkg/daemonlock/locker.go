// Package daemonlock provides the single-instance guarantee spec.md §4.7
// step 1 requires before a dirmirror process does anything else: if another
// instance already holds the lock file, startup must abort rather than run
// two daemons against the same configuration.
package daemonlock

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Locker wraps a lock file used to serialize dirmirror instances. It mirrors
// the teacher's posix/windows split: the file itself is opened here, cross-
// platform, while the actual advisory lock is acquired by platform-specific
// code in locker_posix.go / locker_windows.go.
type Locker struct {
	file *os.File
}

// NewLocker opens (creating if necessary) the lock file at path, in an
// unlocked state.
func NewLocker(path string, permissions os.FileMode) (*Locker, error) {
	mode := os.O_RDWR | os.O_CREATE | os.O_APPEND
	file, err := os.OpenFile(path, mode, permissions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open lock file")
	}
	return &Locker{file: file}, nil
}

// Close releases the underlying file descriptor. It does not itself release
// the lock; callers should Unlock first.
func (l *Locker) Close() error {
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("unable to close lock file: %w", err)
	}
	return nil
}
