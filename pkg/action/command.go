// Package action provides the concrete external-action invocation that
// spec.md §1 leaves as a boundary collaborator ("the core only knows it
// invokes a user-supplied action that returns a child process handle").
// Command is the typical case named there: a file-copy tool invoked as a
// subprocess.
package action

import (
	"context"
	"strings"

	"github.com/dirmirror/dirmirror/pkg/core"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/process"
)

// Command invokes an external program per fired Delay, substituting
// placeholders in its argument list with the Inlet's source path, target
// path, and event kind.
type Command struct {
	// Program is the resolved path or name of the executable to run
	// (resolved once at configuration time via pkg/process.FindCommand).
	Program string
	// Args is the argument template; each element may contain the
	// placeholders %source%, %target%, and %kind%.
	Args []string
	// Env is the environment passed to the spawned process (nil inherits
	// the daemon's own environment, matching os/exec.Cmd's default).
	Env []string
	// Logger receives the action's combined stdout/stderr.
	Logger *logging.Logger
	// Completions is the host loop's shared process-completion channel.
	// Invoke's waiter goroutine posts to it once the child exits, so that
	// CollectProcess is always called from the single host-loop goroutine
	// rather than from this action's own waiter (spec.md §5: "the host
	// never enters two callbacks concurrently").
	Completions chan<- process.Completion
}

var _ core.Action = (*Command)(nil)

// Invoke implements core.Action.
func (c *Command) Invoke(ctx context.Context, inlet core.Inlet) (int, error) {
	replacer := strings.NewReplacer(
		"%source%", string(inlet.SourcePath()),
		"%target%", inlet.TargetPath(),
		"%kind%", inlet.Kind().String(),
	)

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = replacer.Replace(a)
	}

	pid, done, err := process.Spawn(ctx, c.Program, args, c.Env, c.Logger.Writer())
	if err != nil {
		return 0, err
	}

	// The Scheduler only needs the pid back; completion is reported
	// asynchronously through the host loop's shared completion channel, so
	// that CollectProcess always runs on the single host-loop goroutine.
	go func() {
		completion := <-done
		if c.Completions != nil {
			c.Completions <- completion
		}
	}()

	return pid, nil
}
