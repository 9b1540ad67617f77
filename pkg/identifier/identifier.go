// Package identifier generates short, stable correlation identifiers for
// Origins, used only in log lines and status reports — never as the
// user-supplied, opaque target identifier (spec.md §9).
package identifier

import (
	"github.com/eknkc/basex"
	"github.com/google/uuid"
)

// encoding is a base62 alphabet, giving compact identifiers without the
// punctuation of base64.
var encoding = mustEncoding("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

func mustEncoding(alphabet string) *basex.Encoding {
	enc, err := basex.NewEncoding(alphabet)
	if err != nil {
		panic("identifier: invalid alphabet: " + err.Error())
	}
	return enc
}

// New generates a fresh short identifier.
func New() string {
	id := uuid.New()
	return encoding.Encode(id[:])[:12]
}
