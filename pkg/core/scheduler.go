package core

import (
	"context"
	"fmt"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/logging"
)

// Scheduler invokes Origin actions subject to per-origin concurrency caps
// and reaps finished child processes (spec.md §4.5).
type Scheduler struct {
	registry *OriginRegistry
	logger   *logging.Logger

	// pidOrigin maps an in-flight child's pid back to the Origin that
	// spawned it, so CollectProcess can locate the right ProcessTable
	// without scanning every Origin.
	pidOrigin map[int]*Origin
}

// NewScheduler creates a Scheduler over the given registry.
func NewScheduler(registry *OriginRegistry, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		registry:  registry,
		logger:    logger,
		pidOrigin: make(map[int]*Origin),
	}
}

// Tick implements spec.md §4.5's per-tick scheduling pass: for each Origin
// in registry order, start up to config.MaxActions actions whose head
// delay has passed and for which process capacity remains, then move on to
// the next Origin.
func (s *Scheduler) Tick(ctx context.Context, now clock.Instant) {
	s.registry.ForEach(func(o *Origin) bool {
		started := 0
		for started < o.Config.MaxActions {
			if o.Processes().Size() >= o.Config.MaxProcesses {
				break
			}
			d := o.Delays().Head()
			if d == nil || now.Before(d.Deadline()) {
				break
			}

			o.Delays().PopHead()
			s.invoke(ctx, o, d)
			started++
		}
		return true
	})
}

// invoke fires one Origin's action for the given Delay.
func (s *Scheduler) invoke(ctx context.Context, o *Origin, d *Delay) {
	inlet := Inlet{
		sourcePath: o.Source.Join(d.Path()),
		targetPath: o.Config.TargetIdent + string(d.Path()),
		kind:       d.Kind(),
	}

	pid, err := o.Config.Action.Invoke(ctx, inlet)
	if err != nil {
		o.Logger().Errorf("action failed for %s: %v", d.Path(), err)
		return
	}
	if pid > 0 {
		o.Processes().Insert(pid, d)
		s.pidOrigin[pid] = o
		o.Logger().Normalf("started action pid %d for %s %s", pid, d.Kind(), d.Path())
	}
}

// EarliestAlarm implements spec.md §4.5's earliest_alarm(): the minimum
// deadline across Origins that both have a head delay and available
// process capacity, so a saturated Origin never prevents the host from
// sleeping.
func (s *Scheduler) EarliestAlarm() (clock.Instant, bool) {
	var earliest clock.Instant
	found := false

	s.registry.ForEach(func(o *Origin) bool {
		if o.Processes().Size() >= o.Config.MaxProcesses {
			return true
		}
		d := o.Delays().Head()
		if d == nil {
			return true
		}
		if !found {
			earliest = d.Deadline()
			found = true
		} else {
			earliest = clock.Earlier(earliest, d.Deadline())
		}
		return true
	})

	return earliest, found
}

// CollectProcess implements spec.md §4.5's collect_process(pid, exitcode):
// find the Origin owning pid, log the outcome, and remove the entry. The
// completed Delay is discarded; failure is reported, not retried (spec.md
// §7).
func (s *Scheduler) CollectProcess(pid int, exitCode int) {
	o, ok := s.pidOrigin[pid]
	if !ok {
		s.logger.Errorf("collect_process: unknown pid %d", pid)
		return
	}
	delete(s.pidOrigin, pid)

	d, ok := o.Processes().Remove(pid)
	if !ok {
		s.logger.Errorf("collect_process: pid %d not tracked by its origin", pid)
		return
	}

	if exitCode == 0 {
		o.Logger().Normalf("action for %s completed (pid %d)", d.Path(), pid)
	} else {
		o.Logger().Errorf("action for %s exited %d (pid %d): %s", d.Path(), exitCode, pid, fmt.Sprintf("kind=%s", d.Kind()))
	}
}
