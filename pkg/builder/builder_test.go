package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/whence/errors"
	"github.com/cloudposse/whence/pkg/envsource"
	"github.com/cloudposse/whence/pkg/merge"
)

func TestPrecedenceBands(t *testing.T) {
	resolved, err := New().
		WithDefaults(map[string]any{"port": 8080, "host": "localhost", "debug": false, "name": "app"}).
		WithFile(map[string]any{"port": 9090, "debug": true}, "config.yaml").
		WithEnv(map[string]string{"port": "3000"}, envsource.Schema{"port": {Type: envsource.TypeNumber}}).
		WithFlags(map[string]any{"port": 5000}).
		Resolve()
	require.NoError(t, err)

	value := resolved.Value()
	assert.Equal(t, 5000, value["port"])
	assert.Equal(t, "localhost", value["host"])
	assert.Equal(t, true, value["debug"])
	assert.Equal(t, "app", value["name"])

	winner, ok := resolved.Winner("port")
	require.True(t, ok)
	assert.Equal(t, "flags", winner.Source)
	assert.Equal(t, PrecedenceFlags, winner.Precedence)

	assert.Len(t, resolved.Explain("port"), 4)
}

func TestEnvParseFailureVisibleInLedger(t *testing.T) {
	resolved, err := New().
		WithDefaults(map[string]any{"port": 8080}).
		WithEnv(
			map[string]string{"port": "not-a-number"},
			envsource.Schema{"port": {Type: envsource.TypeNumber, Default: float64(3000)}},
		).
		Resolve()
	require.NoError(t, err)

	// The env default wins the value, silently at the value level.
	assert.Equal(t, float64(3000), resolved.Value()["port"])

	// The failed raw value audits as a loser through the ledger.
	entries := resolved.Explain("port")
	require.Len(t, entries, 3)

	var failed bool
	for _, entry := range entries {
		if entry.Value == "not-a-number" {
			failed = true
			assert.False(t, entry.Won)
			assert.Contains(t, entry.Reason, "failed to parse")
		}
	}
	assert.True(t, failed, "failed raw value must be recorded")
}

func TestRequiredEnvFieldFailsResolve(t *testing.T) {
	_, err := New().
		WithEnv(map[string]string{}, envsource.Schema{"TOKEN": {Required: true}}).
		WithFlags(map[string]any{"port": 5000}).
		Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrRequiredField))
}

func TestCustomSourceCollidingPrecedenceTie(t *testing.T) {
	resolved, err := New().
		WithSource(merge.Source{Name: "first", Precedence: PrecedenceFlags}, map[string]any{"k": "a"}).
		WithSource(merge.Source{Name: "second", Precedence: PrecedenceFlags}, map[string]any{"k": "b"}).
		Resolve()
	require.NoError(t, err)

	// Exact precedence ties resolve first-registered-wins.
	winner, ok := resolved.Winner("k")
	require.True(t, ok)
	assert.Equal(t, "first", winner.Source)
}

func TestCustomSourceMayExceedBands(t *testing.T) {
	resolved, err := New().
		WithFlags(map[string]any{"k": "flags"}).
		WithSource(merge.Source{Name: "override", Precedence: PrecedenceFlags + 100}, map[string]any{"k": "custom"}).
		Resolve()
	require.NoError(t, err)

	assert.Equal(t, "custom", resolved.Value()["k"])
}

func TestResolveEmptyBuilder(t *testing.T) {
	resolved, err := New().Resolve()
	require.NoError(t, err)
	assert.Empty(t, resolved.Value())
	assert.Empty(t, resolved.ExplainAll())
}
