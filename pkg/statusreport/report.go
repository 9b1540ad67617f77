// Package statusreport renders an OriginRegistry's live state as the
// human-readable text spec.md §6's status_report(fd) writes to a status
// file or to a `status` command invocation.
package statusreport

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/mutagen-io/extstat"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/core"
)

// formatPendingCount formats a DelayQueue length for display.
func formatPendingCount(count int) string {
	if count == 1 {
		return "1 pending event"
	}
	return fmt.Sprintf("%s pending events", humanize.Comma(int64(count)))
}

// formatProcessCount formats a ProcessTable occupancy for display.
func formatProcessCount(running, max int) string {
	return fmt.Sprintf("%s/%s processes", humanize.Comma(int64(running)), humanize.Comma(int64(max)))
}

// Write renders the registry's current state to w, one paragraph per
// Origin, in registry order.
func Write(w io.Writer, registry *core.OriginRegistry, now clock.Instant) error {
	if registry.Len() == 0 {
		_, err := fmt.Fprintln(w, "No origins configured.")
		return err
	}

	for i := 0; i < registry.Len(); i++ {
		origin := registry.At(i)
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeOrigin(w, origin, now); err != nil {
			return err
		}
	}

	return nil
}

func writeOrigin(w io.Writer, origin *core.Origin, now clock.Instant) error {
	if _, err := fmt.Fprintf(w, "Origin %s:\n", origin.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\tSource: %s\n", origin.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\tTarget: %s\n", origin.Config.TargetIdent); err != nil {
		return err
	}

	if stat, err := extstat.NewFromFileName(string(origin.Source)); err == nil {
		line := fmt.Sprintf("\tSource last accessed: %s\n", humanize.Time(stat.AccessTime))
		if _, err := fmt.Fprint(w, line); err != nil {
			return err
		}
	}

	pending := origin.Delays().Len()
	if _, err := fmt.Fprintf(w, "\tQueue: %s\n", formatPendingCount(pending)); err != nil {
		return err
	}

	if head := origin.Delays().Head(); head != nil {
		var eta string
		if head.Deadline().BeforeEqual(now) {
			eta = "ready"
		} else {
			eta = humanize.RelTime(now.Time(), head.Deadline().Time(), "", "from now")
		}
		line := fmt.Sprintf("\t\tNext: %s %s (%s)\n", head.Kind(), head.Path(), eta)
		if _, err := fmt.Fprint(w, line); err != nil {
			return err
		}
	}

	running := origin.Processes().Size()
	_, err := fmt.Fprintf(w, "\tProcesses: %s\n", formatProcessCount(running, origin.Config.MaxProcesses))
	return err
}
