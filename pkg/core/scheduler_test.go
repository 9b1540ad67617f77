package core

import (
	"context"
	"testing"

	"github.com/dirmirror/dirmirror/pkg/clock"
)

// countingAction records each invocation and hands back a distinct
// incrementing pid, simulating a successfully spawned child without
// touching os/exec.
type countingAction struct {
	invocations []Inlet
	nextPID     int
}

func (a *countingAction) Invoke(ctx context.Context, inlet Inlet) (int, error) {
	a.invocations = append(a.invocations, inlet)
	a.nextPID++
	return a.nextPID, nil
}

func newSchedulerFixture(t *testing.T, maxProcesses, maxActions int) (*OriginRegistry, *Origin, *countingAction, *Scheduler) {
	t.Helper()
	action := &countingAction{}
	config := OriginConfig{
		MaxProcesses: maxProcesses,
		MaxActions:   maxActions,
		Collapse:     DefaultCollapseTable(),
		Action:       action,
		TargetIdent:  "target",
	}
	origin := NewOrigin("o", "/src", config, nil)
	registry := NewOriginRegistry()
	registry.Add(origin)
	scheduler := NewScheduler(registry, nil)
	return registry, origin, action, scheduler
}

// Three rapid events with max_processes=1 produce exactly one scheduled
// action (spec.md §8's debounce scenario), since the collapse algebra
// folds them into a single delay before the scheduler ever sees them.
func TestSchedulerCollapsedEventsProduceOneAction(t *testing.T) {
	_, origin, action, scheduler := newSchedulerFixture(t, 1, 1)
	now := clock.Now()

	origin.Enqueue(Modify, now, true, "a", "", false)
	origin.Enqueue(Modify, now.Add(1), true, "a", "", false)
	origin.Enqueue(Modify, now.Add(2), true, "a", "", false)

	scheduler.Tick(context.Background(), now.Add(3))

	if len(action.invocations) != 1 {
		t.Fatalf("invocations = %d, want 1", len(action.invocations))
	}
	if origin.Processes().Size() != 1 {
		t.Fatalf("Processes().Size() = %d, want 1", origin.Processes().Size())
	}
}

// A tick never starts more actions than MaxProcesses allows for an origin.
func TestSchedulerRespectsMaxProcesses(t *testing.T) {
	_, origin, action, scheduler := newSchedulerFixture(t, 1, 4)
	now := clock.Now()

	origin.Enqueue(Create, now, true, "a", "", false)
	origin.Enqueue(Create, now, true, "b", "", false)
	origin.Enqueue(Create, now, true, "c", "", false)

	scheduler.Tick(context.Background(), now)

	if len(action.invocations) != 1 {
		t.Fatalf("invocations = %d, want 1 (MaxProcesses=1 caps the tick)", len(action.invocations))
	}
}

// A tick never starts more actions than MaxActions allows, even with spare
// process capacity, so one saturated origin can't starve the rest of the
// registry within a single tick.
func TestSchedulerRespectsMaxActions(t *testing.T) {
	_, origin, action, scheduler := newSchedulerFixture(t, 10, 2)
	now := clock.Now()

	origin.Enqueue(Create, now, true, "a", "", false)
	origin.Enqueue(Create, now, true, "b", "", false)
	origin.Enqueue(Create, now, true, "c", "", false)

	scheduler.Tick(context.Background(), now)

	if len(action.invocations) != 2 {
		t.Fatalf("invocations = %d, want 2 (MaxActions=2 caps the tick)", len(action.invocations))
	}
	if origin.Delays().Len() != 1 {
		t.Fatalf("Delays().Len() = %d, want 1 remaining for next tick", origin.Delays().Len())
	}
}

// A delay whose deadline hasn't passed yet is left for a later tick.
func TestSchedulerDoesNotStartBeforeDeadline(t *testing.T) {
	_, origin, action, scheduler := newSchedulerFixture(t, 1, 1)
	now := clock.Now()

	origin.Enqueue(Create, now.Add(1_000_000_000), true, "a", "", false)

	scheduler.Tick(context.Background(), now)

	if len(action.invocations) != 0 {
		t.Fatalf("invocations = %d, want 0 (deadline not yet reached)", len(action.invocations))
	}
}

// EarliestAlarm skips origins that are already at process capacity, so a
// saturated origin never forces the host loop to busy-wait.
func TestSchedulerEarliestAlarmSkipsSaturatedOrigins(t *testing.T) {
	registry, origin, _, scheduler := newSchedulerFixture(t, 1, 1)
	now := clock.Now()

	origin.Enqueue(Create, now, true, "a", "", false)
	scheduler.Tick(context.Background(), now) // saturates MaxProcesses=1

	origin.Enqueue(Create, now.Add(5), true, "b", "", false)

	if _, ok := scheduler.EarliestAlarm(); ok {
		t.Fatal("EarliestAlarm() reported a deadline for a fully saturated origin")
	}

	_ = registry
}

// EarliestAlarm reports the minimum deadline across all origins with spare
// capacity.
func TestSchedulerEarliestAlarmReportsMinimum(t *testing.T) {
	registry, origin, action, scheduler := newSchedulerFixture(t, 2, 1)
	other := NewOrigin("p", "/other", OriginConfig{
		MaxProcesses: 1,
		MaxActions:   1,
		Collapse:     DefaultCollapseTable(),
		Action:       action,
		TargetIdent:  "target",
	}, nil)
	registry.Add(other)
	now := clock.Now()

	origin.Enqueue(Create, now.Add(10), true, "a", "", false)
	other.Enqueue(Create, now.Add(5), true, "b", "", false)

	deadline, ok := scheduler.EarliestAlarm()
	if !ok {
		t.Fatal("EarliestAlarm() reported no deadline")
	}
	if want := now.Add(5); deadline != want {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
}

// CollectProcess removes the completed pid from the origin's ProcessTable,
// freeing capacity for the next tick.
func TestSchedulerCollectProcessFreesCapacity(t *testing.T) {
	_, origin, action, scheduler := newSchedulerFixture(t, 1, 1)
	now := clock.Now()

	origin.Enqueue(Create, now, true, "a", "", false)
	scheduler.Tick(context.Background(), now)
	if origin.Processes().Size() != 1 {
		t.Fatalf("Processes().Size() = %d, want 1 before collection", origin.Processes().Size())
	}

	scheduler.CollectProcess(action.nextPID, 0)

	if origin.Processes().Size() != 0 {
		t.Fatalf("Processes().Size() = %d, want 0 after collection", origin.Processes().Size())
	}
}

// CollectProcess for an unknown pid is reported, not panicked on: a
// double-reap or a stale completion must never crash the host loop.
func TestSchedulerCollectProcessUnknownPIDIsSafe(t *testing.T) {
	_, _, _, scheduler := newSchedulerFixture(t, 1, 1)
	scheduler.CollectProcess(99999, 0)
}
