package core

import "fmt"

// EventKind is the closed enumeration of filesystem event kinds that the
// core understands, plus the internal None sentinel used to mark a
// logically-removed Delay.
type EventKind uint8

const (
	// None marks a Delay as logically removed; it is never produced by the
	// Dispatcher, only assigned by the collapse algebra's cancellation
	// outcome.
	None EventKind = iota
	// Attrib indicates a metadata-only change (permissions, timestamps).
	Attrib
	// Modify indicates a content change to an existing path.
	Modify
	// Create indicates a new path came into existence.
	Create
	// Delete indicates a path stopped existing.
	Delete
	// Move indicates a rename observed atomically as a single event
	// carrying both the old and new path; decomposed into Delete+Create by
	// Origin.Enqueue when the Origin has no move handler.
	Move
	// MoveFrom indicates the source half of a rename observed as two
	// separate events (the kernel couldn't correlate it with a MoveTo).
	MoveFrom
	// MoveTo indicates the destination half of a rename observed as two
	// separate events.
	MoveTo
)

// eventKindNames lists the wire names recognized from the host, in the
// exact casing spec.md §6 specifies.
var eventKindNames = [...]string{
	None:     "None",
	Attrib:   "Attrib",
	Modify:   "Modify",
	Create:   "Create",
	Delete:   "Delete",
	Move:     "Move",
	MoveFrom: "MoveFrom",
	MoveTo:   "MoveTo",
}

// String renders the event kind using its wire name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ParseEventKind converts a wire event name into an EventKind, rejecting
// anything other than the exact names listed in spec.md §6 (the sentinel
// None is also rejected: the host never sends it).
func ParseEventKind(name string) (EventKind, bool) {
	switch name {
	case "Attrib":
		return Attrib, true
	case "Modify":
		return Modify, true
	case "Create":
		return Create, true
	case "Delete":
		return Delete, true
	case "Move":
		return Move, true
	case "MoveFrom":
		return MoveFrom, true
	case "MoveTo":
		return MoveTo, true
	default:
		return None, false
	}
}

// isMoveKind reports whether a kind participates in move-pairing semantics,
// the set forced to stack under the collapse algebra (spec.md §3, §4.1).
func isMoveKind(k EventKind) bool {
	return k == Move || k == MoveFrom || k == MoveTo
}
