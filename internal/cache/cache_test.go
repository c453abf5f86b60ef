package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/validator"
)

func sample() *validator.Result {
	r := validator.NewResult()
	r.AddError("STRUCTURE_MISSING_PROPERTY", "Missing required property 'key'",
		&validator.Location{Line: 3, Column: 16, FilePath: "app.ts"}, validator.ComponentDescriptor)
	r.Metadata = &validator.Metadata{PluginName: "Acme", ElapsedMs: 4}
	return r
}

func TestKeyDigest(t *testing.T) {
	base := Key{Source: "export default defineApp({})", FileName: "app.ts"}

	tests := []struct {
		name  string
		other Key
		same  bool
	}{
		{name: "identical", other: base, same: true},
		{name: "strict", other: Key{Source: base.Source, FileName: base.FileName, Strict: true}},
		{name: "file name", other: Key{Source: base.Source, FileName: "b.ts"}},
		{name: "checker", other: Key{Source: base.Source, FileName: base.FileName, Checker: "tsc#2"}},
		{name: "report unverifiable", other: Key{Source: base.Source, FileName: base.FileName, ReportUnverifiable: true}},
		// Length prefixes keep field boundaries distinct.
		{name: "shifted boundary", other: Key{Source: base.Source + "app.ts", FileName: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, base.Digest() == tt.other.Digest())
		})
	}
}

func TestCache_GetPut(t *testing.T) {
	c := New()
	k := Key{Source: "x", FileName: "app.ts"}

	_, ok := c.Get(k)
	assert.False(t, ok)

	want := sample()
	c.Put(k, want)

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Mutating the returned copy leaves the cached entry intact.
	got.Issues[0].Location.Line = 99
	got.Metadata.PluginName = "changed"
	again, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, 3, again.Issues[0].Location.Line)
	assert.Equal(t, "Acme", again.Metadata.PluginName)

	// Mutating the stored original after Put does not leak in either.
	want.Issues[0].Message = "other"
	again, _ = c.Get(k)
	assert.Equal(t, "Missing required property 'key'", again.Issues[0].Message)

	stats := c.Stats()
	assert.Equal(t, uint64(3), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestCache_Eviction(t *testing.T) {
	c := New(WithSize(2))
	for _, src := range []string{"a", "b", "c"} {
		c.Put(Key{Source: src}, validator.NewResult())
	}
	_, ok := c.Get(Key{Source: "a"})
	assert.False(t, ok)
	_, ok = c.Get(Key{Source: "c"})
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Len)
}

func TestCache_TTL(t *testing.T) {
	c := New(WithTTL(20 * time.Millisecond))
	k := Key{Source: "a"}
	c.Put(k, validator.NewResult())
	_, ok := c.Get(k)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(k)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCache_PutNilAndPurge(t *testing.T) {
	c := New()
	c.Put(Key{Source: "a"}, nil)
	assert.Equal(t, 0, c.Stats().Len)

	c.Put(Key{Source: "a"}, validator.NewResult())
	c.Purge()
	assert.Equal(t, 0, c.Stats().Len)
}
