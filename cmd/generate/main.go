package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"

	"antgen.dev/internal/config"
	"antgen.dev/internal/export"
	"antgen.dev/internal/generation"
	"antgen.dev/internal/models"
	"antgen.dev/internal/render"
)

const usage = `Usage: generate [flags] <tiles.yaml|tiles.toml> <num-villages>
       generate [flags] <num-villages>   (built-in tile set)
       generate [-o image.png] [-cell n] -from-grid <grid.json.zst>

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		outPath   = fs.String("o", "image.png", "output PNG path")
		seed      = fs.Uint64("seed", 0, "RNG seed (default random)")
		gridOut   = fs.String("grid-out", "", "also write the grid as zstd-compressed JSON to this path")
		fromGrid  = fs.String("from-grid", "", "render a grid written by -grid-out instead of generating")
		maxTicks  = fs.Int("max-ticks", generation.DefaultMaxTicks, "give up after this many ticks")
		cellSize  = fs.Int("cell", render.DefaultCellSize, "pixels per grid cell")
		unlimited = fs.Bool("unlimited-corruption", false, "never spend the corruption tile's quota")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *fromGrid != "" {
		if fs.NArg() != 0 {
			fs.Usage()
			return 2
		}
		return renderExport(*fromGrid, *outPath, *cellSize, stdout, stderr)
	}

	seedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if !seedSet {
		*seed = rand.Uint64()
	}

	var tilesPath, villagesArg string
	switch fs.NArg() {
	case 1:
		villagesArg = fs.Arg(0)
	case 2:
		tilesPath, villagesArg = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return 2
	}
	villages, err := strconv.Atoi(villagesArg)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid village count %q\n", villagesArg)
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fmt.Fprintln(stdout, "Initialising")
	tiles := config.DefaultTiles()
	if tilesPath != "" {
		if tiles, err = config.LoadTiles(tilesPath); err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return 1
		}
	}
	var opts []generation.RegistryOption
	if *unlimited {
		opts = append(opts, generation.WithUnlimitedCorruption())
	}
	reg, err := tiles.Registry(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Generating map (seed %d, %d villages)...\n", *seed, villages)
	gen := generation.NewGenerator(reg.Clone(), generation.Options{
		Villages: villages,
		Seed:     *seed,
		MaxTicks: *maxTicks,
		Logger:   logger,
	})
	res, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Generating Image")
	if err := render.WriteFile(*outPath, res.Grid, *cellSize); err != nil {
		fmt.Fprintf(stderr, "ERROR writing image: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "  Created %s (%d ticks)\n", *outPath, res.Ticks)

	if *gridOut != "" {
		if err := export.WriteFile(*gridOut, models.NewGridData(res, reg)); err != nil {
			fmt.Fprintf(stderr, "ERROR writing grid: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "  Created %s\n", *gridOut)
	}

	fmt.Fprintln(stdout, "Done!")
	return 0
}

func renderExport(gridPath, outPath string, cellSize int, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "Loading %s\n", gridPath)
	h, data, err := export.ReadFile(gridPath)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	grid, err := data.Grid()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s: %v\n", gridPath, err)
		return 1
	}

	fmt.Fprintf(stdout, "Generating Image (seed %d)\n", h.Seed)
	if err := render.WriteFile(outPath, grid, cellSize); err != nil {
		fmt.Fprintf(stderr, "ERROR writing image: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "  Created %s\n", outPath)
	fmt.Fprintln(stdout, "Done!")
	return 0
}
