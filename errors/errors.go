// Package errors defines the sentinel errors shared across the whence packages.
//
// Sentinels are plain leaf errors; call sites wrap them with context using
// cockroachdb/errors so that errors.Is() checks keep working through the chain.
package errors

import (
	"os"

	"github.com/cockroachdb/errors"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

var (
	// ErrDocumentNotFound indicates a configuration document could not be located
	// at its resolved location (including the implicit-extension candidates).
	ErrDocumentNotFound = errors.New("configuration document not found")

	// ErrDocumentParse indicates a configuration document was located but its
	// contents could not be parsed into a nested key/value structure.
	ErrDocumentParse = errors.New("failed to parse configuration document")

	// ErrRefUnresolvable indicates an extends reference could not be turned into
	// a concrete document location.
	ErrRefUnresolvable = errors.New("extends reference cannot be resolved")

	// ErrExtendsType indicates the extends field holds something other than a
	// string or a list of strings.
	ErrExtendsType = errors.New("extends field must be a string or a list of strings")

	// ErrRequiredField indicates a schema field marked required resolved to no
	// value: the raw input was missing or unparsable and no default was declared.
	ErrRequiredField = errors.New("required field has no value")

	// ErrUnknownFieldType indicates a schema declares a field type outside of
	// string, number, boolean, and json.
	ErrUnknownFieldType = errors.New("unknown field type in schema")
)
