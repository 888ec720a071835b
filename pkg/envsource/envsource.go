// Package envsource converts raw string-valued inputs (typically process
// environment variables) into typed merge-engine input per a declared schema.
//
// The environment is always an explicit argument; nothing here reads ambient
// process state. Use FromOS at the application boundary to capture os.Environ
// into the explicit form.
package envsource

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	errUtils "github.com/cloudposse/whence/errors"
	"github.com/cloudposse/whence/pkg/explain"
	"github.com/cloudposse/whence/pkg/merge"
)

// FieldType declares how a raw string value is parsed.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeJSON    FieldType = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Field declares the parsing rules for one schema field.
type Field struct {
	// Type selects the parser. An empty type means string.
	Type FieldType

	// Default is used when the raw value is missing or fails to parse. A nil
	// default means "no default".
	Default any

	// Required makes a missing-or-unparsable value with no default an error.
	Required bool
}

// Schema maps field names to their parsing rules. Field names double as the
// environment variable names.
type Schema map[string]Field

// Parse converts the given environment into merge-engine input for the given
// source.
//
// A field whose raw value fails to parse falls back to its default, and the
// failed raw value is reported in the returned failures map as a losing
// explanation whose reason carries the parse error. A missing or unparsable
// value with no default is an error when the field is required, and simply does
// not compete otherwise. Parse never touches ambient process state.
func Parse(env map[string]string, schema Schema, source merge.Source) (merge.Input, map[string][]explain.Explanation, error) {
	values := make(map[string]any)
	failures := make(map[string][]explain.Explanation)

	// Sort field names so failure timestamps are assigned deterministically.
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := schema[name]

		raw, present := env[name]
		if !present {
			if field.Default != nil {
				values[name] = field.Default
				continue
			}
			if field.Required {
				return merge.Input{}, nil, fmt.Errorf("%w: %q is not set", errUtils.ErrRequiredField, name)
			}
			continue
		}

		parsed, err := parseValue(raw, field.Type)
		if err != nil {
			if errors.Is(err, errUtils.ErrUnknownFieldType) {
				return merge.Input{}, nil, fmt.Errorf("%w: field %q", err, name)
			}

			reason := fmt.Sprintf("failed to parse %q as %s: %v", raw, fieldTypeName(field.Type), err)
			if field.Default != nil {
				reason += "; fell back to default"
			}

			// Record the failed raw value as a losing competitor; the fallback
			// (when present) competes normally through the merge engine.
			failures[name] = append(failures[name], explain.Explanation{
				Source:     source.Name,
				Value:      raw,
				Reason:     reason,
				Precedence: source.Precedence,
				Location:   source.Location,
			})

			if field.Default != nil {
				values[name] = field.Default
				continue
			}
			if field.Required {
				return merge.Input{}, nil, fmt.Errorf("%w: %q has no parsable value and no default: %w", errUtils.ErrRequiredField, name, err)
			}
			continue
		}

		values[name] = parsed
	}

	return merge.Input{Source: source, Values: values}, failures, nil
}

// FromOS captures the process environment into the explicit map form Parse
// expects. This is the only place the package touches ambient state; callers
// own the decision to use it.
func FromOS() map[string]string {
	env := make(map[string]string, len(os.Environ()))
	for _, pair := range os.Environ() {
		if key, value, ok := strings.Cut(pair, "="); ok {
			env[key] = value
		}
	}
	return env
}

func parseValue(raw string, fieldType FieldType) (any, error) {
	switch fieldType {
	case TypeString, "":
		return raw, nil
	case TypeNumber:
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return number, nil
	case TypeBoolean:
		return strconv.ParseBool(raw)
	case TypeJSON:
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUtils.ErrUnknownFieldType, fieldType)
	}
}

func fieldTypeName(fieldType FieldType) string {
	if fieldType == "" {
		return string(TypeString)
	}
	return string(fieldType)
}
