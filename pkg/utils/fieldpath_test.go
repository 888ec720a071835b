package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendFieldPath(t *testing.T) {
	assert.Equal(t, "compilerOptions.strict", AppendFieldPath("compilerOptions", "strict"))
	assert.Equal(t, "compilerOptions", AppendFieldPath("", "compilerOptions"))
	assert.Equal(t, "compilerOptions", AppendFieldPath("compilerOptions", ""))
}

func TestSplitFieldPath(t *testing.T) {
	assert.Equal(t, []string{"compilerOptions", "strict"}, SplitFieldPath("compilerOptions.strict"))
	assert.Equal(t, []string{"port"}, SplitFieldPath("port"))
	assert.Empty(t, SplitFieldPath(""))
}

func TestParentFieldPath(t *testing.T) {
	assert.Equal(t, "compilerOptions", ParentFieldPath("compilerOptions.strict"))
	assert.Equal(t, "a.b", ParentFieldPath("a.b.c"))
	assert.Equal(t, "", ParentFieldPath("port"))
}
