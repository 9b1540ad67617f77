//go:build !windows && !plan9

package process

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

const (
	// posixShellInvalidCommandExitCode is the exit code most POSIX shells
	// return when the given command exists but isn't executable.
	posixShellInvalidCommandExitCode = 126
	// posixShellCommandNotFoundExitCode is the exit code most POSIX shells
	// return when the given command can't be found.
	posixShellCommandNotFoundExitCode = 127
)

// ExitCodeForProcessState extracts the process exit code from a process'
// post-exit state.
func ExitCodeForProcessState(state *os.ProcessState) (int, error) {
	waitStatus, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return 0, errors.New("unable to access wait status")
	}
	return waitStatus.ExitStatus(), nil
}

// IsPOSIXShellInvalidCommand returns whether or not a process state
// represents an "invalid command" error from a POSIX shell.
func IsPOSIXShellInvalidCommand(state *os.ProcessState) bool {
	code, err := ExitCodeForProcessState(state)
	return err == nil && code == posixShellInvalidCommandExitCode
}

// IsPOSIXShellCommandNotFound returns whether or not a process state
// represents a "command not found" error from a POSIX shell.
func IsPOSIXShellCommandNotFound(state *os.ProcessState) bool {
	code, err := ExitCodeForProcessState(state)
	return err == nil && code == posixShellCommandNotFoundExitCode
}
