package handlers

import (
	"bytes"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"

	"antgen.dev/internal/generation"
	"antgen.dev/internal/render"
	"antgen.dev/internal/services"
)

const maxCellSize = 64

// MapHandler handles map endpoints
type MapHandler struct {
	mapService *services.MapService
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(ms *services.MapService) *MapHandler {
	return &MapHandler{mapService: ms}
}

// GetTiles handles GET /api/tiles
func (h *MapHandler) GetTiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.mapService.GetTileDefinitions())
}

// GetMap handles GET /api/map?seed=&villages=
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	m, ok := h.generate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, m.Data)
}

// GetMapImage handles GET /api/map.png?seed=&villages=&cell=
func (h *MapHandler) GetMapImage(w http.ResponseWriter, r *http.Request) {
	cell, ok := parseIntParam(r, "cell", render.DefaultCellSize)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid cell size")
		return
	}
	cell = clamp(cell, 1, maxCellSize)

	m, ok := h.generate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, m.Result.Grid, cell); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Map-Seed", strconv.FormatUint(m.Result.Seed, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// generate parses the shared map parameters and runs the service.
// It writes the error response itself when it returns false.
func (h *MapHandler) generate(w http.ResponseWriter, r *http.Request) (*services.Map, bool) {
	seed := rand.Uint64()
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid seed")
			return nil, false
		}
		seed = parsed
	}

	villages, ok := parseIntParam(r, "villages", h.mapService.DefaultVillages())
	if !ok || villages < 1 || villages > generation.MaxVillages {
		respondError(w, http.StatusBadRequest, "Invalid villages")
		return nil, false
	}

	m, err := h.mapService.Generate(seed, villages)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, generation.ErrVillageCount) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return nil, false
	}
	return m, true
}
