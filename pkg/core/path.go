package core

import (
	"path"

	"golang.org/x/text/unicode/norm"
)

// RelPath is a slash-separated path relative to an Origin's source root. It
// is a distinct type from string so that a relative path can't be passed
// where an absolute one is expected, or vice versa, matching spec.md §9's
// note that the typed target should turn the prototype's runtime field
// checks into compile-time ones.
type RelPath string

// AbsPath is an absolute, canonicalized filesystem path.
type AbsPath string

// Join appends a path component to a RelPath. The component is normalized
// to NFC first, since a watcher backed by an HFS+ volume reports names in
// NFD and a path observed twice through different event kinds must compare
// equal for the collapse algebra's path index to coalesce them correctly.
func (p RelPath) Join(name string) RelPath {
	name = norm.NFC.String(name)
	if p == "" {
		return RelPath(name)
	}
	return RelPath(path.Join(string(p), name))
}

// Join appends a RelPath to an AbsPath.
func (a AbsPath) Join(rel RelPath) AbsPath {
	if rel == "" {
		return a
	}
	return AbsPath(path.Join(string(a), string(rel)))
}

// String satisfies fmt.Stringer for log formatting.
func (p RelPath) String() string { return string(p) }

// String satisfies fmt.Stringer for log formatting.
func (a AbsPath) String() string { return string(a) }
