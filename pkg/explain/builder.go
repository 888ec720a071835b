package explain

import (
	"time"

	"github.com/samber/lo"
)

// Builder is the only mutable surface of an Explained wrapper. The merge engine
// and ledger-building adapters append explanations here, then Freeze the result
// into an immutable wrapper (single-writer-then-freeze discipline).
type Builder[T any] struct {
	value  T
	ledger map[string][]Explanation
	tick   uint64
}

// NewBuilder creates an empty builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{
		ledger: make(map[string][]Explanation),
	}
}

// Rebuild reopens a frozen wrapper into a new builder holding a deep copy of its
// ledger and value. The original wrapper is never mutated. The logical clock
// resumes after the highest recorded timestamp so new entries stay ordered.
func Rebuild[T any](e *Explained[T]) *Builder[T] {
	b := NewBuilder[T]()
	b.value = e.value

	for path, entries := range e.ledger {
		chain := make([]Explanation, len(entries))
		copy(chain, entries)
		b.ledger[path] = chain

		for _, entry := range entries {
			if entry.Timestamp > b.tick {
				b.tick = entry.Timestamp
			}
		}
	}

	return b
}

// SetValue sets the resolved value the frozen wrapper will hold.
func (b *Builder[T]) SetValue(value T) *Builder[T] {
	b.value = value
	return b
}

// Append adds one explanation to the end of a path's chain. A zero timestamp is
// stamped from the builder's logical clock at the moment of recording. An empty
// path records against the reserved root path.
func (b *Builder[T]) Append(path string, entry Explanation) *Builder[T] {
	if path == "" {
		path = RootPath
	}
	b.ledger[path] = append(b.ledger[path], b.stamp(entry))
	return b
}

// Replace swaps a path's entire chain. Zero timestamps are stamped in slice
// order, preserving the caller's insertion order as the tie-break order.
func (b *Builder[T]) Replace(path string, entries []Explanation) *Builder[T] {
	if path == "" {
		path = RootPath
	}

	chain := make([]Explanation, len(entries))
	for i, entry := range entries {
		chain[i] = b.stamp(entry)
	}
	b.ledger[path] = chain

	return b
}

// Freeze finalizes the builder into an immutable Explained wrapper. The ledger
// is copied out, so the builder can be discarded or reused without aliasing the
// frozen wrapper.
func (b *Builder[T]) Freeze() *Explained[T] {
	ledger := make(map[string][]Explanation, len(b.ledger))
	for path, entries := range b.ledger {
		chain := make([]Explanation, len(entries))
		copy(chain, entries)
		ledger[path] = chain
	}

	return &Explained[T]{
		value:      b.value,
		ledger:     ledger,
		sources:    countSources(ledger),
		resolvedAt: time.Now(),
	}
}

func (b *Builder[T]) stamp(entry Explanation) Explanation {
	if entry.Timestamp == 0 {
		b.tick++
		entry.Timestamp = b.tick
	} else if entry.Timestamp > b.tick {
		b.tick = entry.Timestamp
	}
	return entry
}

func countSources(ledger map[string][]Explanation) int {
	names := lo.FlatMap(lo.Values(ledger), func(entries []Explanation, _ int) []string {
		return lo.Map(entries, func(entry Explanation, _ int) string {
			return entry.Source
		})
	})
	return len(lo.Uniq(names))
}
