package extends

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errUtils "github.com/cloudposse/whence/errors"
)

// RefResolver turns a possibly-relative or package-style reference into a
// concrete, stable document location. The base is the directory of the
// referencing document.
type RefResolver interface {
	Resolve(ref, baseDir string) (string, error)
}

// PackageLookupFunc resolves a package-style reference (one that is neither
// absolute nor explicitly relative) to a concrete location. Supplied by the
// host environment.
type PackageLookupFunc func(ref, baseDir string) (string, error)

// FileRefResolver resolves references against the local filesystem. References
// without an explicit extension are resolved by walking the supported document
// extensions in priority order. Package-style references are delegated to
// LookupPackage when set; without a lookup func they fall back to plain
// relative resolution so bare file names keep working.
type FileRefResolver struct {
	LookupPackage PackageLookupFunc
}

// Resolve returns the absolute, cleaned location of the referenced document.
func (r FileRefResolver) Resolve(ref, baseDir string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", errUtils.ErrRefUnresolvable)
	}

	if isPackageRef(ref) && r.LookupPackage != nil {
		location, err := r.LookupPackage(ref, baseDir)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", errUtils.ErrRefUnresolvable, ref, err)
		}
		return location, nil
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return resolveExtension(path, ref)
}

// isPackageRef reports whether a reference is package-style: neither absolute
// nor explicitly relative (./ or ../).
func isPackageRef(ref string) bool {
	if filepath.IsAbs(ref) {
		return false
	}
	return !strings.HasPrefix(ref, "./") && !strings.HasPrefix(ref, "../")
}

// resolveExtension returns the path itself when it names an existing file,
// otherwise tries the supported document extensions in priority order.
func resolveExtension(path, ref string) (string, error) {
	if isRegularFile(path) {
		return absolute(path)
	}

	for _, ext := range DocumentExtensions() {
		candidate := path + ext
		if isRegularFile(candidate) {
			return absolute(candidate)
		}
	}

	return "", fmt.Errorf("%w: %q: no document at %q (tried extensions %v)",
		errUtils.ErrDocumentNotFound, ref, path, DocumentExtensions())
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absolute(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", errUtils.ErrRefUnresolvable, path, err)
	}
	return filepath.Clean(abs), nil
}
