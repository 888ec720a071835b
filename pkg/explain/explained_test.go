package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecordsRootWinner(t *testing.T) {
	wrapped := From(map[string]any{"port": 8080}, Explanation{
		Source: "defaults",
		Value:  map[string]any{"port": 8080},
		Reason: "built-in default",
	})

	assert.Equal(t, map[string]any{"port": 8080}, wrapped.Value())

	entries := wrapped.Explain("")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Won)
	assert.Equal(t, "defaults", entries[0].Source)

	// Explicit root path queries the same chain.
	assert.Equal(t, entries, wrapped.Explain(RootPath))
}

func TestExplainUnknownPathReturnsEmpty(t *testing.T) {
	wrapped := NewBuilder[map[string]any]().Freeze()

	entries := wrapped.Explain("no.such.path")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExplainReturnsCopy(t *testing.T) {
	b := NewBuilder[map[string]any]()
	b.Append("port", Explanation{Source: "env", Value: 3000, Won: true})
	wrapped := b.Freeze()

	entries := wrapped.Explain("port")
	entries[0].Source = "mutated"

	assert.Equal(t, "env", wrapped.Explain("port")[0].Source)
}

func TestWinnerFiltersToWinningEntry(t *testing.T) {
	b := NewBuilder[map[string]any]()
	b.Replace("port", []Explanation{
		{Source: "defaults", Value: 8080, Precedence: 0},
		{Source: "cli", Value: 5000, Precedence: 20, Won: true},
	})
	wrapped := b.Freeze()

	winner, ok := wrapped.Winner("port")
	require.True(t, ok)
	assert.Equal(t, "cli", winner.Source)
	assert.Equal(t, 5000, winner.Value)

	winners := wrapped.Winners("port")
	require.Len(t, winners, 1)
	assert.Equal(t, "cli", winners[0].Source)

	_, ok = wrapped.Winner("host")
	assert.False(t, ok)
}

func TestExplainAllExcludesRootSentinel(t *testing.T) {
	b := NewBuilder[map[string]any]()
	b.Append(RootPath, Explanation{Source: "defaults", Won: true})
	b.Append("port", Explanation{Source: "env", Value: 3000, Won: true})
	b.Append("host", Explanation{Source: "env", Value: "localhost", Won: true})
	wrapped := b.Freeze()

	all := wrapped.ExplainAll()
	assert.Len(t, all, 2)
	assert.Contains(t, all, "port")
	assert.Contains(t, all, "host")
	assert.NotContains(t, all, RootPath)
}

func TestPathsSortedAndIncludeRoot(t *testing.T) {
	b := NewBuilder[map[string]any]()
	b.Append("zeta", Explanation{Source: "a", Won: true})
	b.Append("alpha", Explanation{Source: "a", Won: true})
	b.Append(RootPath, Explanation{Source: "a", Won: true})
	wrapped := b.Freeze()

	assert.Equal(t, []string{RootPath, "alpha", "zeta"}, wrapped.Paths())
}

func TestSnapshotProjection(t *testing.T) {
	b := NewBuilder[map[string]any]()
	b.SetValue(map[string]any{"port": 5000})
	b.Replace("port", []Explanation{
		{Source: "defaults", Value: 8080, Precedence: 0},
		{Source: "cli", Value: 5000, Precedence: 20, Won: true},
	})
	wrapped := b.Freeze()

	snapshot := wrapped.Snapshot()
	assert.Equal(t, map[string]any{"port": 5000}, snapshot.Value)
	assert.Len(t, snapshot.Explanations["port"], 2)
	assert.Equal(t, 2, snapshot.Metadata.SourcesCount)
	assert.False(t, snapshot.Metadata.ResolvedAt.IsZero())
	assert.Equal(t, wrapped.ResolvedAt(), snapshot.Metadata.ResolvedAt)
}

func TestDecodeIntoStruct(t *testing.T) {
	type serverConfig struct {
		Port int    `json:"port"`
		Host string `json:"host"`
	}

	b := NewBuilder[map[string]any]()
	b.SetValue(map[string]any{"port": float64(5000), "host": "localhost"})
	wrapped := b.Freeze()

	var cfg serverConfig
	require.NoError(t, Decode(wrapped, &cfg))
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
}
