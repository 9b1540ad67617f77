package process

import (
	"context"
	"io"
	"os/exec"
)

// Completion describes the outcome of a spawned process, delivered
// asynchronously once the process has exited.
type Completion struct {
	// PID is the process identifier that was returned by Spawn.
	PID int
	// ExitCode is the process' exit code, valid only if Err is nil or is an
	// *exec.ExitError.
	ExitCode int
	// Err is any error encountered waiting on the process.
	Err error
}

// Spawn starts prog with the given arguments and environment, streaming its
// combined output to output (which may be nil to discard it). It returns
// immediately with the child's PID; completion is delivered on the returned
// channel exactly once. This is the concrete primitive behind spec.md §6's
// exec/wait_pids host primitives: Spawn plays the role of exec, and the
// returned channel plays the role of a single-process wait_pids.
func Spawn(ctx context.Context, prog string, args []string, env []string, output io.Writer) (int, <-chan Completion, error) {
	cmd := exec.CommandContext(ctx, prog, args...)
	if env != nil {
		cmd.Env = env
	}
	if output != nil {
		cmd.Stdout = output
		cmd.Stderr = output
	}

	if err := cmd.Start(); err != nil {
		return 0, nil, err
	}

	done := make(chan Completion, 1)
	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		completion := Completion{PID: pid}
		if err == nil {
			completion.ExitCode = 0
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			if code, codeErr := ExitCodeForProcessState(exitErr.ProcessState); codeErr == nil {
				completion.ExitCode = code
			} else {
				completion.ExitCode = -1
			}
			completion.Err = exitErr
		} else {
			completion.ExitCode = -1
			completion.Err = err
		}
		done <- completion
	}()

	return pid, done, nil
}
