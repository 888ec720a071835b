package explain

// RootPath is the reserved ledger path representing the whole value as a single
// decision, used when no per-field breakdown exists.
const RootPath = "__root__"

// Explanation records one candidate value for one field: where it came from, how
// strong its claim was, and whether it won the merge.
type Explanation struct {
	// Source is the name of the configuration source that supplied the value.
	Source string `json:"source"`

	// Value is the candidate value. It is opaque to the engine.
	Value any `json:"value"`

	// Reason is a human-readable justification, carried through unchanged.
	Reason string `json:"reason,omitempty"`

	// Precedence is the source's priority. Higher always beats lower.
	Precedence int `json:"precedence"`

	// Location optionally identifies where the value originated (e.g. a file path).
	Location string `json:"location,omitempty"`

	// Won is true for exactly one Explanation per field path after a merge.
	Won bool `json:"won"`

	// Timestamp is a logical, monotonically non-decreasing counter value assigned
	// when the Explanation is recorded. Used only as a tie-break on equal
	// precedence, never as a business value.
	Timestamp uint64 `json:"timestamp"`
}

// Clone returns a copy of the explanation. The value is copied by reference
// since the engine treats it as opaque.
func (e *Explanation) Clone() *Explanation {
	clone := *e
	return &clone
}
