package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antgen.dev/internal/config"
	"antgen.dev/internal/generation"
)

func newService(t *testing.T) *MapService {
	t.Helper()
	reg, err := config.DefaultTiles().Registry()
	require.NoError(t, err)
	return NewMapService(reg, 3, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMapService_generate(t *testing.T) {
	s := newService(t)

	m, err := s.Generate(12, 3)
	require.NoError(t, err)
	assert.True(t, m.Result.Grid.IsFull())
	assert.Equal(t, uint64(12), m.Data.Seed)

	again, err := s.Generate(12, 3)
	require.NoError(t, err)
	assert.Same(t, m, again, "second call is served from cache")
}

func TestMapService_quotasIndependent(t *testing.T) {
	s := newService(t)

	a, err := s.Generate(5, 2)
	require.NoError(t, err)
	clear(s.cache)
	b, err := s.Generate(5, 2)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, a.Data.Tiles, b.Data.Tiles, "same seed must give the same map")
}

func TestMapService_cacheBounded(t *testing.T) {
	s := newService(t)
	for seed := range uint64(maxCachedMaps + 3) {
		_, err := s.Generate(seed, 1)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, len(s.cache), maxCachedMaps)
}

func TestMapService_errors(t *testing.T) {
	s := newService(t)
	_, err := s.Generate(1, 0)
	assert.ErrorIs(t, err, generation.ErrVillageCount)
}

func TestMapService_tileDefinitions(t *testing.T) {
	s := newService(t)
	defs := s.GetTileDefinitions()
	assert.True(t, defs["village"].Village)
	assert.True(t, defs["corruption"].Corruption)
	assert.Equal(t, 3, s.DefaultVillages())
}
