package extends

import (
	"sort"

	"github.com/cloudposse/whence/pkg/utils"
)

// Flatten converts a nested document into dotted-path keys so nested fields can
// compete independently during merge. Array values are treated as atomic
// leaves, as are empty maps (flattening them would lose the shape on the way
// back).
func Flatten(nested map[string]any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", nested)
	return flat
}

func flattenInto(flat map[string]any, prefix string, data map[string]any) {
	for key, value := range data {
		path := utils.AppendFieldPath(prefix, key)

		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			flattenInto(flat, path, child)
			continue
		}

		flat[path] = value
	}
}

// Unflatten restores a flat dotted-key map to nested shape. Paths are applied
// in sorted order, so when a merged result holds both a scalar and deeper
// children under the same prefix (two documents disagreeing on a field's
// shape), the deeper paths win deterministically.
func Unflatten(flat map[string]any) map[string]any {
	nested := make(map[string]any)

	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		parts := utils.SplitFieldPath(path)
		if len(parts) == 0 {
			continue
		}

		node := nested
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = flat[path]
	}

	return nested
}
