package engine

// StableID derives a deterministic numeric id from a name. It is a 32-bit
// rolling hash over the normalized form, absolute value, so re-running
// reconciliation against the same input reproduces the same identity for a
// discovered player instead of minting a duplicate.
//
// Used only when an event or lineup supplies no explicit id.
func StableID(name string) int {
	var h int32
	for _, r := range Normalize(name) {
		h = h*31 + int32(r)
	}
	v := int(h)
	if v < 0 {
		v = -v
	}
	return v
}
