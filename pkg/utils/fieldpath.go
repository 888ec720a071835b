package utils

import "strings"

// AppendFieldPath appends a key to an existing dotted field path.
// Examples:
//
//	AppendFieldPath("compilerOptions", "strict") -> "compilerOptions.strict"
//	AppendFieldPath("", "compilerOptions") -> "compilerOptions"
func AppendFieldPath(basePath, key string) string {
	if basePath == "" {
		return key
	}
	if key == "" {
		return basePath
	}
	return basePath + "." + key
}

// SplitFieldPath splits a dotted field path into its components.
// Examples:
//
//	SplitFieldPath("compilerOptions.strict") -> ["compilerOptions", "strict"]
//	SplitFieldPath("port") -> ["port"]
//	SplitFieldPath("") -> []
func SplitFieldPath(path string) []string {
	if path == "" {
		return []string{}
	}
	return strings.Split(path, ".")
}

// ParentFieldPath returns the parent of a dotted field path, or "" for a
// top-level field.
// Examples:
//
//	ParentFieldPath("compilerOptions.strict") -> "compilerOptions"
//	ParentFieldPath("port") -> ""
func ParentFieldPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx == -1 {
		return ""
	}
	return path[:idx]
}
