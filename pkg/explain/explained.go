// Package explain implements the decision ledger for resolved configuration
// values. An Explained wrapper owns one resolved value plus, per field path, the
// ordered chain of candidate values that competed for it, each flagged winner or
// loser. Wrappers are written once through a Builder and read-only afterwards.
package explain

import (
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
)

// Explained wraps a resolved value of type T together with its decision ledger.
// Instances are immutable; they are produced by Builder.Freeze, From, or the
// merge engine.
type Explained[T any] struct {
	value      T
	ledger     map[string][]Explanation
	sources    int
	resolvedAt time.Time
}

// Value returns the resolved value. Pure accessor, no side effects.
func (e *Explained[T]) Value() T {
	return e.value
}

// Explain returns the ordered explanation chain recorded for a field path.
// The chain is in insertion order, not precedence order; the winner is flagged
// via Explanation.Won. An empty path queries the reserved root path. Returns an
// empty slice when nothing was recorded for the path.
func (e *Explained[T]) Explain(path string) []Explanation {
	if path == "" {
		path = RootPath
	}

	entries, ok := e.ledger[path]
	if !ok {
		return []Explanation{}
	}

	// Return a copy to prevent external modification.
	result := make([]Explanation, len(entries))
	copy(result, entries)

	return result
}

// Winners returns only the winning explanations recorded for a field path.
// Given the single-winner invariant, the result holds at most one entry.
func (e *Explained[T]) Winners(path string) []Explanation {
	return lo.Filter(e.Explain(path), func(entry Explanation, _ int) bool {
		return entry.Won
	})
}

// Winner returns the winning explanation for a field path, or false when the
// path has no recorded explanations.
func (e *Explained[T]) Winner(path string) (Explanation, bool) {
	winners := e.Winners(path)
	if len(winners) == 0 {
		return Explanation{}, false
	}
	return winners[0], true
}

// ExplainAll returns every recorded path except the root sentinel, mapped to its
// explanation chain. Used for full audits.
func (e *Explained[T]) ExplainAll() map[string][]Explanation {
	result := make(map[string][]Explanation, len(e.ledger))
	for path, entries := range e.ledger {
		if path == RootPath {
			continue
		}
		chain := make([]Explanation, len(entries))
		copy(chain, entries)
		result[path] = chain
	}
	return result
}

// Paths returns all recorded ledger paths, including the root sentinel when
// present, in sorted order for consistent iteration.
func (e *Explained[T]) Paths() []string {
	paths := lo.Keys(e.ledger)
	sort.Strings(paths)
	return paths
}

// SourcesCount returns the number of distinct sources recorded in the ledger.
func (e *Explained[T]) SourcesCount() int {
	return e.sources
}

// ResolvedAt returns the time the wrapper was frozen.
func (e *Explained[T]) ResolvedAt() time.Time {
	return e.resolvedAt
}

// From wraps an already-resolved value with a single root-path explanation. The
// explanation is recorded as the winner regardless of the Won flag passed in.
func From[T any](value T, entry Explanation) *Explained[T] {
	entry.Won = true
	b := NewBuilder[T]().SetValue(value)
	b.Append(RootPath, entry)
	return b.Freeze()
}

// Decode projects a merged map value into a caller-supplied struct using the
// same weakly-typed decoding rules as the configuration loaders.
func Decode(e *Explained[map[string]any], out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(e.Value())
}
