package core

import (
	"time"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/logging"
)

// OriginConfig carries an Origin's effective, fully-resolved configuration
// (spec.md §3: max_processes, delay, collapse_table, optional startup,
// optional move handler, and a mandatory action). It is a fixed struct
// rather than a dynamic "prototype" table (spec.md §9's first design
// note): unknown fields are a compile error, not a runtime guard.
type OriginConfig struct {
	// MaxProcesses bounds concurrently running child processes for this
	// Origin (default 1).
	MaxProcesses int
	// MaxActions bounds how many actions the Scheduler will start for this
	// Origin within a single tick before moving on to the next Origin
	// (spec.md §9's max_actions open question; default 1; see SPEC_FULL.md
	// §3.E).
	MaxActions int
	// Delay is the debounce duration added to "now" when computing a fresh
	// delay's deadline. A zero Delay means events fire as soon as observed
	// (HasDelay false disables debounce entirely, treating deadline = now).
	Delay    time.Duration
	HasDelay bool
	// Collapse is this Origin's collapse table.
	Collapse *CollapseTable
	// HasMove indicates the Origin has a move handler configured, so Move
	// events are kept intact instead of being decomposed into Delete+Create
	// (spec.md §4.1 step 1, §4.4).
	HasMove bool
	// Exclude lists glob patterns (matched against the origin-relative
	// path) for subtrees and events the Dispatcher should ignore entirely.
	Exclude []string
	// Action is the mandatory per-event action.
	Action Action
	// Startup is the optional startup action invoked once at initialize
	// time, before any normal-mode events are processed (spec.md §4.7 step
	// 6). A nil Startup means the Origin starts in warmstart mode.
	Startup Action
	// TargetIdent is the opaque target identifier passed through
	// uncritically to Action invocations (spec.md §9).
	TargetIdent string
}

// Origin binds one source tree to one target identifier plus its
// DelayQueue, its live child-process set, and its effective configuration
// (spec.md §3).
type Origin struct {
	// ID is a short opaque correlation identifier, unrelated to
	// TargetIdent, used only for logging and status reports.
	ID string
	// Source is the Origin's canonical absolute source root.
	Source AbsPath
	// Config is the Origin's fully-resolved configuration.
	Config OriginConfig

	delays    *DelayQueue
	processes *ProcessTable
	logger    *logging.Logger
}

// NewOrigin constructs an Origin with fresh, empty queue and process table.
func NewOrigin(id string, source AbsPath, config OriginConfig, logger *logging.Logger) *Origin {
	return &Origin{
		ID:        id,
		Source:    source,
		Config:    config,
		delays:    NewDelayQueue(config.Collapse),
		processes: NewProcessTable(),
		logger:    logger.WithField("origin", id),
	}
}

// Delays exposes the Origin's DelayQueue for the Scheduler and status
// reporting.
func (o *Origin) Delays() *DelayQueue {
	return o.delays
}

// Processes exposes the Origin's ProcessTable for the Scheduler and status
// reporting.
func (o *Origin) Processes() *ProcessTable {
	return o.processes
}

// Logger returns the Origin's sublogger, tagged with its ID.
func (o *Origin) Logger() *logging.Logger {
	return o.logger
}

// Enqueue implements spec.md §4.1's enqueue(kind, now, path, path2)
// operation. Step 1 (move decomposition) and step 2 (deadline computation)
// live here because they depend on Origin-level configuration; steps 3-5
// (the collapse algebra proper) are delegated to DelayQueue.Insert.
func (o *Origin) Enqueue(kind EventKind, now clock.Instant, hasNow bool, path RelPath, path2 RelPath, hasPath2 bool) {
	if kind == None {
		panic("core: Enqueue called with the None sentinel kind")
	}

	if kind == Move && !o.Config.HasMove {
		o.Enqueue(Delete, now, hasNow, path, "", false)
		if hasPath2 {
			o.Enqueue(Create, now, hasNow, path2, "", false)
		}
		return
	}

	deadline := now
	if o.Config.HasDelay && hasNow {
		deadline = now.Add(o.Config.Delay)
	}

	disposition := o.delays.Insert(kind, deadline, path, path2, hasPath2)
	switch disposition {
	case DispositionInserted:
		o.logger.Debugf("enqueued %s %s", kind, path)
	case DispositionCollapsed:
		o.logger.Verbosef("collapsed %s into pending delay for %s", kind, path)
	case DispositionCancelled:
		o.logger.Verbosef("cancelled pending delay for %s via %s", path, kind)
	case DispositionStacked:
		o.logger.Normalf("stacked %s for %s behind pending delay", kind, path)
	}
}
