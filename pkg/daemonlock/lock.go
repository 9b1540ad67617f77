package daemonlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dirmirror/dirmirror/pkg/logging"
)

// Lock represents the global dirmirror instance lock (spec.md §4.7 step 1:
// "only one instance may run against a given lock path at a time").
type Lock struct {
	locker *Locker
	logger *logging.Logger
}

// Acquire attempts to acquire the lock file at path, failing immediately
// (rather than blocking) if another instance already holds it.
func Acquire(path string, logger *logging.Logger) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("unable to create lock directory: %w", err)
	}
	locker, err := NewLocker(path, 0600)
	if err != nil {
		return nil, fmt.Errorf("unable to create lock file: %w", err)
	}
	if err := locker.Lock(false); err != nil {
		locker.Close()
		return nil, fmt.Errorf("another dirmirror instance is already running: %w", err)
	}
	return &Lock{locker: locker, logger: logger}, nil
}

// Release releases the lock and closes its backing file.
func (l *Lock) Release() error {
	if err := l.locker.Unlock(); err != nil {
		l.locker.Close()
		return fmt.Errorf("unable to release lock: %w", err)
	}
	if err := l.locker.Close(); err != nil {
		return err
	}
	return nil
}
