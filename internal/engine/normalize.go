// Package engine is the match-data reconciliation and standings core.
//
// Every entry point is a pure function: value snapshots in, fresh value
// snapshots out. No I/O, no clocks, no randomness — identical input always
// produces byte-identical output, so callers may invoke the engine
// concurrently on independent snapshots and retry freely.
//
// Teams and players are joined by free-text name. Normalize is the single
// source of truth for "same name"; raw strings are never compared directly.
package engine

import "strings"

// Normalize canonicalizes a free-text team or player name into a comparison
// key: lower-cased, alphanumeric characters only. Two names refer to the
// same entity iff their normalized keys are equal. Empty input yields the
// empty key.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
