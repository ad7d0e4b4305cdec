package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"antgen.dev/internal/config"
	"antgen.dev/internal/handlers"
	"antgen.dev/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	reg, err := cfg.Tiles.Registry(cfg.RegistryOptions()...)
	if err != nil {
		log.Fatalf("build tile registry: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	mapService := services.NewMapService(reg, cfg.DefaultVillages, logger)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handlers.SetupRoutes(mapService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	tiles := cfg.TilesPath
	if tiles == "" {
		tiles = "built-in"
	}
	log.Printf("antgen server listening on %s (tiles: %s, %d tile types)", cfg.ServerAddr, tiles, reg.Len())
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
