package core

import "context"

// Action is the user-supplied synchronization command invoked by the
// Scheduler once a Delay's deadline has passed. It is the external
// collaborator named in spec.md §1 ("the core only knows it invokes a
// user-supplied action that returns a child process handle") and §6
// (config.action(inlet) -> pid). Concrete implementations live in
// pkg/action; core only depends on this interface.
type Action interface {
	// Invoke starts the action for the given Inlet and returns the live
	// child's PID (> 0) if one was spawned, or 0 if the action completed
	// synchronously (or declined to run) without leaving a tracked child.
	Invoke(ctx context.Context, inlet Inlet) (pid int, err error)
}

// Inlet is the narrow view handed to a user-supplied Action, exposing only
// the event's source path, target path, and kind (spec.md §4.6). It must
// not be retained past the call to Invoke. The Scheduler builds a fresh
// Inlet value for each invocation.
type Inlet struct {
	// sourcePath is the absolute path of the event on the source tree.
	sourcePath AbsPath
	// targetPath is the opaque target identifier concatenated with the
	// event's relative path.
	targetPath string
	// kind is the event's kind at the moment it fired (post-collapse).
	kind EventKind
}

// NewInlet constructs an Inlet directly, for Action implementations
// (outside this package) that need to exercise Invoke against a
// hand-built event in their own tests.
func NewInlet(sourcePath AbsPath, targetPath string, kind EventKind) Inlet {
	return Inlet{sourcePath: sourcePath, targetPath: targetPath, kind: kind}
}

// SourcePath returns the event's absolute source path.
func (i Inlet) SourcePath() AbsPath {
	return i.sourcePath
}

// TargetPath returns the target identifier concatenated with the event's
// relative path. The target identifier itself is opaque (spec.md §9); this
// method performs no interpretation of it.
func (i Inlet) TargetPath() string {
	return i.targetPath
}

// Kind returns the event's kind.
func (i Inlet) Kind() EventKind {
	return i.kind
}
