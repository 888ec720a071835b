// Package merge implements precedence-based resolution of multiple partial
// configuration sources into one value, recording per field which source won
// and why. Field values are opaque to the engine; only key presence matters.
package merge

import (
	"sort"

	"github.com/samber/lo"

	"github.com/cloudposse/whence/pkg/explain"
)

// Merge folds the given provenance-tagged partial values into one resolved map
// plus a decision ledger.
//
// For every field key present in any input, the candidate list is built in
// input order and the winner is the candidate with the highest precedence;
// exact precedence ties go to the earliest-recorded candidate. Keys absent from
// an input simply do not compete for that field — a key explicitly set to nil
// still competes. Zero inputs yield an empty map and an empty ledger, not an
// error.
func Merge(inputs []Input) *explain.Explained[map[string]any] {
	builder := explain.NewBuilder[map[string]any]()
	merged := make(map[string]any)

	// Sort the union of keys to ensure deterministic iteration order.
	for _, key := range unionKeys(inputs) {
		candidates := collectCandidates(inputs, key)
		if len(candidates) == 0 {
			continue
		}

		winner := winnerIndex(candidates)
		candidates[winner].Won = true
		merged[key] = candidates[winner].Value

		// The ledger keeps insertion order; Won flags mark the decision.
		builder.Replace(key, candidates)
	}

	return builder.SetValue(merged).Freeze()
}

// unionKeys returns the union of field keys across all inputs, sorted.
func unionKeys(inputs []Input) []string {
	set := make(map[string]struct{})
	for _, input := range inputs {
		for key := range input.Values {
			set[key] = struct{}{}
		}
	}

	keys := lo.Keys(set)
	sort.Strings(keys)

	return keys
}

// collectCandidates builds the explanation list for one field key, in input
// registration order. Timestamps are stamped later by the ledger builder, in
// this same order, which makes "earliest timestamp" and "lowest index"
// equivalent tie-breaks.
func collectCandidates(inputs []Input, key string) []explain.Explanation {
	var candidates []explain.Explanation

	for _, input := range inputs {
		value, ok := input.Values[key]
		if !ok {
			continue
		}

		candidates = append(candidates, explain.Explanation{
			Source:     input.Source.Name,
			Value:      value,
			Reason:     input.Source.Reason,
			Precedence: input.Source.Precedence,
			Location:   input.Source.Location,
		})
	}

	return candidates
}

// winnerIndex picks the winning candidate: highest precedence, first-registered
// on ties.
func winnerIndex(candidates []explain.Explanation) int {
	winner := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Precedence > candidates[winner].Precedence {
			winner = i
		}
	}
	return winner
}
