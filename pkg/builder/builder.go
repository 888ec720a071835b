// Package builder provides a fluent convenience layer over the merge engine
// with conventional precedence bands: built-in defaults lose to file-based
// values, which lose to environment-derived values, which lose to command-line
// flags. Explicit custom sources are free to choose any precedence, including
// values that collide with or exceed the bands; exact ties resolve
// first-registered-wins.
package builder

import (
	"sort"

	"github.com/cloudposse/whence/pkg/envsource"
	"github.com/cloudposse/whence/pkg/explain"
	"github.com/cloudposse/whence/pkg/merge"
)

// Conventional precedence bands. Custom sources may use any value.
const (
	PrecedenceDefaults = 0
	PrecedenceFile     = 100
	PrecedenceEnv      = 200
	PrecedenceFlags    = 300
)

// Builder accumulates provenance-tagged sources and resolves them in one merge.
// Methods record the first error and make the rest of the chain no-ops, so the
// single error check happens at Resolve.
type Builder struct {
	inputs []merge.Input
	extras map[string][]explain.Explanation
	err    error
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{
		extras: make(map[string][]explain.Explanation),
	}
}

// WithDefaults registers built-in default values at the lowest conventional
// precedence.
func (b *Builder) WithDefaults(values map[string]any) *Builder {
	return b.WithSource(merge.Source{
		Name:       "defaults",
		Precedence: PrecedenceDefaults,
		Reason:     "built-in default",
	}, values)
}

// WithFile registers values loaded from a file. The location is informational;
// loading is the caller's concern.
func (b *Builder) WithFile(values map[string]any, location string) *Builder {
	return b.WithSource(merge.Source{
		Name:       "file",
		Precedence: PrecedenceFile,
		Reason:     "loaded from file",
		Location:   location,
	}, values)
}

// WithEnv parses the given environment (explicit, never ambient) against the
// schema and registers the typed values. Per-field parse failures fall back to
// the field default and surface in the final ledger as losing explanations;
// a required field with no value fails the whole chain.
func (b *Builder) WithEnv(env map[string]string, schema envsource.Schema) *Builder {
	if b.err != nil {
		return b
	}

	input, failures, err := envsource.Parse(env, schema, merge.Source{
		Name:       "env",
		Precedence: PrecedenceEnv,
		Reason:     "environment variable",
	})
	if err != nil {
		b.err = err
		return b
	}

	b.inputs = append(b.inputs, input)
	for path, entries := range failures {
		b.extras[path] = append(b.extras[path], entries...)
	}

	return b
}

// WithFlags registers command-line-derived values at the highest conventional
// precedence.
func (b *Builder) WithFlags(values map[string]any) *Builder {
	return b.WithSource(merge.Source{
		Name:       "flags",
		Precedence: PrecedenceFlags,
		Reason:     "command-line flag",
	}, values)
}

// WithSource registers a custom source with explicit metadata.
func (b *Builder) WithSource(source merge.Source, values map[string]any) *Builder {
	if b.err != nil {
		return b
	}
	b.inputs = append(b.inputs, merge.Input{Source: source, Values: values})
	return b
}

// Resolve merges all registered sources into an explained value. Losing
// explanations collected by adapters (e.g. env parse failures) are appended to
// the ledger after the merge, so they audit as competitors without affecting
// the outcome.
func (b *Builder) Resolve() (*explain.Explained[map[string]any], error) {
	if b.err != nil {
		return nil, b.err
	}

	merged := merge.Merge(b.inputs)
	if len(b.extras) == 0 {
		return merged, nil
	}

	rebuilt := explain.Rebuild(merged)

	paths := make([]string, 0, len(b.extras))
	for path := range b.extras {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, entry := range b.extras[path] {
			rebuilt.Append(path, entry)
		}
	}

	return rebuilt.Freeze(), nil
}
