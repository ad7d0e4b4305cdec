package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"antgen.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(mapService *services.MapService) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	mapHandler := NewMapHandler(mapService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/tiles", mapHandler.GetTiles)
		r.Get("/map", mapHandler.GetMap)
		r.Get("/map.png", mapHandler.GetMapImage)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer query parameter with a default value.
// ok is false when the parameter is present but malformed.
func parseIntParam(r *http.Request, name string, defaultVal int) (int, bool) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, true
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, false
	}
	return intVal, true
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
