package explain

import "time"

// Snapshot is a JSON-serializable projection of an Explained wrapper: the
// resolved value, the full ledger, and summary metadata. It is a pure
// projection with no behavior, suitable for persistence or logging.
type Snapshot struct {
	Value        any                      `json:"value"`
	Explanations map[string][]Explanation `json:"explanations"`
	Metadata     SnapshotMetadata         `json:"metadata"`
}

// SnapshotMetadata summarizes a resolution.
type SnapshotMetadata struct {
	// SourcesCount is the number of distinct sources recorded in the ledger.
	SourcesCount int `json:"sourcesCount"`

	// ResolvedAt is the time the wrapper was frozen.
	ResolvedAt time.Time `json:"resolvedAt"`
}

// Snapshot projects the wrapper into its serializable form. Every recorded
// path is included, the root sentinel among them.
func (e *Explained[T]) Snapshot() Snapshot {
	explanations := make(map[string][]Explanation, len(e.ledger))
	for path, entries := range e.ledger {
		chain := make([]Explanation, len(entries))
		copy(chain, entries)
		explanations[path] = chain
	}

	return Snapshot{
		Value:        e.value,
		Explanations: explanations,
		Metadata: SnapshotMetadata{
			SourcesCount: e.sources,
			ResolvedAt:   e.resolvedAt,
		},
	}
}
