// Package extends resolves trees of configuration documents linked by an
// "extends" reference into a single merged, explained value. Documents are
// walked depth-first with parents before children, flattened to dotted paths,
// handed to the merge engine with declaration-order precedence, and the merged
// result is restored to nested shape. The ledger keeps dotted paths, so a field
// like "compilerOptions.strict" is explainable by that exact path.
package extends

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	errUtils "github.com/cloudposse/whence/errors"
	"github.com/cloudposse/whence/pkg/explain"
	"github.com/cloudposse/whence/pkg/merge"
)

// DefaultExtendsKey is the document field naming parent references.
const DefaultExtendsKey = "extends"

// Document is one entry in a resolved extends chain: a flattened document, the
// location it was loaded from, and its assigned merge precedence. The entry
// document of the walk holds the highest precedence in the chain.
type Document struct {
	Values     map[string]any
	Location   string
	Precedence int
}

// ChainResolver resolves extends chains. The zero value is not usable; call
// NewChainResolver and override collaborators as needed.
type ChainResolver struct {
	// Loader loads and parses documents. Defaults to FileLoader.
	Loader Loader

	// Refs resolves references to concrete locations. Defaults to FileRefResolver.
	Refs RefResolver

	// ExtendsKey is the document field naming parent references. Defaults to
	// DefaultExtendsKey.
	ExtendsKey string
}

// NewChainResolver creates a resolver backed by the local filesystem.
func NewChainResolver() *ChainResolver {
	return &ChainResolver{
		Loader:     FileLoader{},
		Refs:       FileRefResolver{},
		ExtendsKey: DefaultExtendsKey,
	}
}

// ResolveChain resolves the entry reference and all of its transitive parents
// into an ordered chain, parents before children, each document flattened and
// stripped of its extends field. Precedence is assigned by chain position, so
// the entry document wins over every ancestor and, among one document's
// multiple parents, later-declared parents win over earlier ones.
//
// Cycles are short-circuited: a location already visited in this walk
// contributes once and is not descended into again. Any document that cannot be
// located or parsed aborts the whole resolution; no partial chain is returned.
func (r *ChainResolver) ResolveChain(entryRef, baseDir string) ([]Document, error) {
	// The visited set is scoped to this call; concurrent resolutions of
	// different entry documents do not share state.
	visited := make(map[string]struct{})

	chain, err := r.walk(entryRef, baseDir, visited)
	if err != nil {
		return nil, err
	}

	for i := range chain {
		chain[i].Precedence = i
	}

	return chain, nil
}

// Resolve runs the full pipeline: chain resolution, merge, and reassembly of
// the flat merged value into nested shape. The ledger keeps the dotted paths.
func (r *ChainResolver) Resolve(entryRef, baseDir string) (*explain.Explained[map[string]any], error) {
	chain, err := r.ResolveChain(entryRef, baseDir)
	if err != nil {
		return nil, err
	}

	inputs := make([]merge.Input, 0, len(chain))
	for _, doc := range chain {
		inputs = append(inputs, merge.Input{
			Source: merge.Source{
				Name:       doc.Location,
				Precedence: doc.Precedence,
				Reason:     fmt.Sprintf("position %d in extends chain of %q", doc.Precedence, entryRef),
				Location:   doc.Location,
			},
			Values: doc.Values,
		})
	}

	flat := merge.Merge(inputs)

	return explain.Rebuild(flat).SetValue(Unflatten(flat.Value())).Freeze(), nil
}

// walk resolves one reference depth-first, parents before the document itself.
func (r *ChainResolver) walk(ref, baseDir string, visited map[string]struct{}) ([]Document, error) {
	location, err := r.Refs.Resolve(ref, baseDir)
	if err != nil {
		return nil, err
	}

	if _, seen := visited[location]; seen {
		log.Debug("extends cycle detected, document already contributes", "location", location)
		return nil, nil
	}
	visited[location] = struct{}{}

	document, err := r.Loader.Load(location)
	if err != nil {
		return nil, err
	}

	parents, err := parentRefs(document[r.ExtendsKey], location)
	if err != nil {
		return nil, err
	}

	// The extends field is resolution metadata, not configuration content.
	delete(document, r.ExtendsKey)

	var chain []Document
	for _, parent := range parents {
		log.Debug("resolving extends parent", "ref", parent, "of", location)

		sub, err := r.walk(parent, filepath.Dir(location), visited)
		if err != nil {
			return nil, err
		}
		chain = append(chain, sub...)
	}

	return append(chain, Document{
		Values:   Flatten(document),
		Location: location,
	}), nil
}

// parentRefs normalizes the extends field value into a list of references, in
// declaration order.
func parentRefs(value any, location string) ([]string, error) {
	switch refs := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{refs}, nil
	case []any:
		parents := make([]string, 0, len(refs))
		for _, ref := range refs {
			s, ok := ref.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q: got element %T", errUtils.ErrExtendsType, location, ref)
			}
			parents = append(parents, s)
		}
		return parents, nil
	case []string:
		return refs, nil
	default:
		return nil, fmt.Errorf("%w: %q: got %T", errUtils.ErrExtendsType, location, value)
	}
}
