package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/process"
	"github.com/dirmirror/dirmirror/pkg/watch"
)

// Runtime is the host<->runner ABI of spec.md §6, expressed as a Go
// interface rather than a free-function callback table. cmd/dirmirrord
// owns the host loop and drives a Runtime through it.
//
// Argument parsing and settings/allow-list validation (spec.md §4.7 steps
// 2-3) are surface concerns handled by pkg/configuration before a Runtime
// is constructed; Initialize here performs steps 4-7 (registry non-empty
// check, per-origin reset and recursive watch install, startup-handler
// invocation, and the configuration->running transition).
type Runtime interface {
	// Initialize performs spec.md §4.7 steps 4-7.
	Initialize(ctx context.Context) error
	// OnEvent handles one raw filesystem event from the Watcher.
	OnEvent(e watch.RawEvent)
	// OnAlarm fires the Scheduler for the given instant.
	OnAlarm(ctx context.Context, now clock.Instant)
	// CollectProcess reaps one finished child process.
	CollectProcess(pid int, exitCode int)
	// EarliestAlarm returns the next instant at which OnAlarm should be
	// invoked, or false if nothing is currently eligible to run.
	EarliestAlarm() (clock.Instant, bool)
	// StatusReport writes a human-readable status report.
	StatusReport(w io.Writer)
}

// runtime is the concrete Runtime implementation.
type runtime struct {
	registry   *OriginRegistry
	watcher    watch.Watcher
	clock      *clock.Clock
	table      *WatchTable
	dispatcher *Dispatcher
	scheduler  *Scheduler
	logger     *logging.Logger
}

// NewRuntime constructs a Runtime over an already-populated OriginRegistry
// (built by pkg/configuration) and a concrete Watcher.
func NewRuntime(registry *OriginRegistry, watcher watch.Watcher, clk *clock.Clock, logger *logging.Logger) Runtime {
	table := NewWatchTable(watcher, logger)
	return &runtime{
		registry:   registry,
		watcher:    watcher,
		clock:      clk,
		table:      table,
		dispatcher: NewDispatcher(table, logger),
		scheduler:  NewScheduler(registry, logger),
		logger:     logger,
	}
}

// ErrNothingToWatch is returned by Initialize when the registry is empty
// (spec.md §4.7 step 4).
var ErrNothingToWatch = errors.New("core: no origins configured, nothing to watch")

func (r *runtime) Initialize(ctx context.Context) error {
	if r.registry.Len() == 0 {
		return ErrNothingToWatch
	}

	now := r.clock.Now()

	var startupActions []struct {
		origin *Origin
		pid    int
	}

	r.registry.ForEach(func(o *Origin) bool {
		o.delays = NewDelayQueue(o.Config.Collapse)
		o.processes = NewProcessTable()
		r.table.WatchDirectory(o, "", now, true)
		return true
	})

	r.registry.ForEach(func(o *Origin) bool {
		if o.Config.Startup == nil {
			return true
		}
		inlet := Inlet{sourcePath: o.Source, targetPath: o.Config.TargetIdent, kind: None}
		pid, err := o.Config.Startup.Invoke(ctx, inlet)
		if err != nil {
			r.logger.Errorf("startup action failed for origin %s: %v", o.ID, err)
			return true
		}
		if pid > 0 {
			startupActions = append(startupActions, struct {
				origin *Origin
				pid    int
			}{o, pid})
		}
		return true
	})

	for _, started := range startupActions {
		r.logger.Verbosef("waiting for startup action pid %d (origin %s)", started.pid, started.origin.ID)
		exitCode, err := process.WaitForPID(started.pid)
		if err != nil {
			return fmt.Errorf("unable to wait for startup action of origin %s: %w", started.origin.ID, err)
		}
		if exitCode != 0 {
			return fmt.Errorf("startup action for origin %s exited %d", started.origin.ID, exitCode)
		}
	}

	return nil
}

func (r *runtime) OnEvent(e watch.RawEvent) {
	r.dispatcher.OnEvent(e.Kind, e.Descriptor, e.IsDir, clock.FromTime(e.Time), e.Name, e.Name2, e.HasName2)
}

func (r *runtime) OnAlarm(ctx context.Context, now clock.Instant) {
	r.scheduler.Tick(ctx, now)
}

func (r *runtime) CollectProcess(pid int, exitCode int) {
	r.scheduler.CollectProcess(pid, exitCode)
}

func (r *runtime) EarliestAlarm() (clock.Instant, bool) {
	return r.scheduler.EarliestAlarm()
}

func (r *runtime) StatusReport(w io.Writer) {
	r.registry.ForEach(func(o *Origin) bool {
		fmt.Fprintf(w, "origin %s: source=%s pending=%d processes=%d/%d\n",
			o.ID, o.Source, o.Delays().Len(), o.Processes().Size(), o.Config.MaxProcesses)
		return true
	})
}
