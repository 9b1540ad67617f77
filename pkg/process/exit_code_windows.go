//go:build windows

package process

import "os"

// ExitCodeForProcessState extracts the process exit code from a process'
// post-exit state.
func ExitCodeForProcessState(state *os.ProcessState) (int, error) {
	return state.ExitCode(), nil
}

// IsPOSIXShellInvalidCommand always returns false on Windows, which has no
// POSIX shell exit code convention.
func IsPOSIXShellInvalidCommand(state *os.ProcessState) bool {
	return false
}

// IsPOSIXShellCommandNotFound always returns false on Windows.
func IsPOSIXShellCommandNotFound(state *os.ProcessState) bool {
	return false
}
