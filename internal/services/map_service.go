package services

import (
	"fmt"
	"log/slog"
	"sync"

	"antgen.dev/internal/generation"
	"antgen.dev/internal/models"
)

const maxCachedMaps = 64

// Map is a generated map in both domain and wire form
type Map struct {
	Result *generation.Result
	Data   *models.GridData
}

type mapKey struct {
	seed     uint64
	villages int
}

// MapService generates maps from a tile registry. Every run gets its own
// copy of the registry so quotas never leak between requests.
type MapService struct {
	base            *generation.Registry
	defaultVillages int
	logger          *slog.Logger

	mu    sync.Mutex
	cache map[mapKey]*Map // cached maps
}

// NewMapService creates a new MapService
func NewMapService(reg *generation.Registry, defaultVillages int, logger *slog.Logger) *MapService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MapService{
		base:            reg,
		defaultVillages: defaultVillages,
		logger:          logger,
		cache:           make(map[mapKey]*Map),
	}
}

// DefaultVillages returns the village count used when a request names none
func (s *MapService) DefaultVillages() int {
	return s.defaultVillages
}

// Generate returns the map for seed and villages, generating it on first use
func (s *MapService) Generate(seed uint64, villages int) (*Map, error) {
	key := mapKey{seed, villages}

	s.mu.Lock()
	m, cached := s.cache[key]
	s.mu.Unlock()
	if cached {
		return m, nil
	}

	gen := generation.NewGenerator(s.base.Clone(), generation.Options{
		Villages: villages,
		Seed:     seed,
		Logger:   s.logger.With("seed", seed, "villages", villages),
	})
	res, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating map %d/%d: %w", seed, villages, err)
	}
	m = &Map{Result: res, Data: models.NewGridData(res, s.base)}

	s.mu.Lock()
	if len(s.cache) >= maxCachedMaps {
		clear(s.cache)
	}
	s.cache[key] = m
	s.mu.Unlock()
	return m, nil
}

// GetTileDefinitions returns the configured tile definitions
func (s *MapService) GetTileDefinitions() map[string]models.TileDefinition {
	return models.TileDefinitions(s.base)
}
