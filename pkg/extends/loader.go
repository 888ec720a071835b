package extends

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/jsonc"

	errUtils "github.com/cloudposse/whence/errors"
)

const (
	JSONExtension  = ".json"
	JSONCExtension = ".jsonc"
	YamlExtension  = ".yaml"
	YmlExtension   = ".yml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DocumentExtensions returns all supported configuration document extensions.
// The order determines the priority when searching for files without explicit
// extensions.
func DocumentExtensions() []string {
	return []string{
		JSONExtension,
		JSONCExtension,
		YamlExtension,
		YmlExtension,
	}
}

// IsDocumentFile returns true if the file path has a supported document extension.
func IsDocumentFile(filePath string) bool {
	for _, ext := range DocumentExtensions() {
		if strings.HasSuffix(filePath, ext) {
			return true
		}
	}
	return false
}

// Loader loads and parses one configuration document at a concrete location.
// Implementations must return a plain nested key/value structure; an optional
// "extends" field naming parent locations is interpreted by the chain resolver,
// not the loader.
type Loader interface {
	Load(location string) (map[string]any, error)
}

// FileLoader loads documents from the local filesystem. JSON documents may
// carry comments and trailing commas (they are stripped before parsing); .yaml
// and .yml documents are parsed as YAML.
type FileLoader struct{}

// Load reads and parses the document at the given location.
func (FileLoader) Load(location string) (map[string]any, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errUtils.ErrDocumentNotFound, location, err)
	}

	document := make(map[string]any)

	switch filepath.Ext(location) {
	case YamlExtension, YmlExtension:
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", errUtils.ErrDocumentParse, location, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", errUtils.ErrDocumentParse, location, err)
		}
	}

	return document, nil
}
