package generation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	ErrVillageCount = errors.New("invalid village count")
	ErrNoEmptyCell  = errors.New("no empty cell found")
	ErrStalled      = errors.New("generation stalled")
)

const (
	// DefaultMaxTicks bounds the growth loop when Options.MaxTicks is zero
	DefaultMaxTicks = 1_000_000

	// MaxVillages is every cell outside the city block
	MaxVillages = GridSize*GridSize - (2*cityRadius+1)*(2*cityRadius+1)

	maxSeedAttempts = 100_000
	cityRadius      = 1
)

// State is a phase of a generation run
type State int

const (
	StateInit State = iota
	StateCityPlaced
	StateVillagesSeeded
	StateGrowing
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCityPlaced:
		return "city_placed"
	case StateVillagesSeeded:
		return "villages_seeded"
	case StateGrowing:
		return "growing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Options configures a generation run
type Options struct {
	// Villages is the number of starting villages, each carrying one ant
	Villages int
	// Seed drives the default RNG when Source is nil
	Seed uint64
	// Source overrides the RNG, mostly for tests
	Source Source
	// MaxTicks caps the growth loop; zero means DefaultMaxTicks
	MaxTicks int
	Logger   *slog.Logger
}

// Result is the outcome of a completed run
type Result struct {
	Grid      *Grid
	Seed      uint64
	Ticks     int
	City      Point
	Placed    map[string]int // cells per tile name, city block included
	Remaining map[string]int // quota left per tile name
}

// Generator runs one map generation over a registry.
// The registry's quotas are spent by the run.
type Generator struct {
	opts  Options
	reg   *Registry
	grid  *Grid
	dice  Dice
	ants  []*Ant
	state State
	log   *slog.Logger

	city   Point
	ticks  int
	placed []int

	warnedCorruption bool
}

// NewGenerator creates a generator for the given registry
func NewGenerator(reg *Registry, opts Options) *Generator {
	src := opts.Source
	if src == nil {
		src = NewRNG(opts.Seed)
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		opts:   opts,
		reg:    reg,
		grid:   NewGrid(),
		dice:   NewDice(src),
		state:  StateInit,
		log:    logger,
		placed: make([]int, reg.Len()),
	}
}

// State returns the current phase
func (g *Generator) State() State {
	return g.state
}

// Grid returns the grid being filled
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Ants returns the walkers seeded so far
func (g *Generator) Ants() []*Ant {
	return g.ants
}

// Generate runs the whole pipeline until the grid is full
func (g *Generator) Generate() (*Result, error) {
	if err := g.run(); err != nil {
		g.state = StateFailed
		return nil, err
	}
	return g.buildResult(), nil
}

func (g *Generator) run() error {
	if g.state != StateInit {
		return fmt.Errorf("generator already used (state %s)", g.state)
	}
	if g.opts.Villages < 1 || g.opts.Villages > MaxVillages {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrVillageCount, g.opts.Villages, MaxVillages)
	}

	// 1. Drop the city block around a random interior anchor
	g.placeCity()

	// 2. Seed starting villages, one ant each
	if err := g.seedVillages(); err != nil {
		return fmt.Errorf("placing starting villages: %w", err)
	}

	// 3. Walk the ants until every cell is taken
	if err := g.grow(); err != nil {
		return fmt.Errorf("moving ants: %w", err)
	}
	return nil
}

func (g *Generator) placeCity() {
	g.log.Info("placing city")
	g.city = Point{
		X: g.dice.Between(1+cityRadius, GridSize-cityRadius),
		Y: g.dice.Between(1+cityRadius, GridSize-cityRadius),
	}

	// The city is free: no quota is spent on it.
	village := g.reg.Village()
	n := g.grid.PlaceBlock(Around(g.city, cityRadius), g.reg.Tile(village))
	g.placed[village] += n

	g.state = StateCityPlaced
	g.log.Debug("city placed", "x", g.city.X, "y", g.city.Y, "cells", n)
}

func (g *Generator) seedVillages() error {
	g.log.Info("placing starting villages", "count", g.opts.Villages)
	village := g.reg.Village()
	tile := g.reg.Tile(village)

	for range g.opts.Villages {
		p, err := g.randomEmptyCell()
		if err != nil {
			return err
		}
		g.grid.TryPlace(p.X, p.Y, tile)
		g.reg.Consume(village)
		g.placed[village]++
		g.ants = append(g.ants, NewAnt(p.X, p.Y))
	}

	g.state = StateVillagesSeeded
	return nil
}

func (g *Generator) randomEmptyCell() (Point, error) {
	for range maxSeedAttempts {
		p := Point{g.dice.D20(), g.dice.D20()}
		if _, taken := g.grid.Get(p.X, p.Y); !taken {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w after %d draws", ErrNoEmptyCell, maxSeedAttempts)
}

func (g *Generator) grow() error {
	g.log.Info("moving ants", "ants", len(g.ants))
	g.state = StateGrowing

	for !g.grid.IsFull() {
		if g.ticks >= g.opts.MaxTicks {
			return fmt.Errorf("%w: %d of %d cells after %d ticks",
				ErrStalled, g.grid.Filled(), len(g.grid.cells), g.ticks)
		}
		if err := g.tick(); err != nil {
			return err
		}
	}

	g.state = StateComplete
	g.log.Info("generation complete", "ticks", g.ticks, "seed", g.opts.Seed)
	return nil
}

// tick moves every ant once and grows terrain behind it
func (g *Generator) tick() error {
	g.ticks++
	for _, ant := range g.ants {
		prior, ok := g.grid.Get(ant.Pos.X, ant.Pos.Y)
		if !ok {
			// Ants only ever stand on occupied cells.
			return fmt.Errorf("ant at empty cell (%d, %d)", ant.Pos.X, ant.Pos.Y)
		}

		if err := ant.Advance(g.dice); err != nil {
			return err
		}

		next := Resolve(g.dice, g.reg, prior.ID)
		if g.grid.TryPlace(ant.Pos.X, ant.Pos.Y, g.reg.Tile(next)) {
			if !g.reg.Consume(next) && next == g.reg.Corruption() && !g.warnedCorruption {
				g.log.Warn("corruption quota exhausted, placing past it", "source", prior.Name)
				g.warnedCorruption = true
			}
			g.placed[next]++
		}
	}
	return nil
}

func (g *Generator) buildResult() *Result {
	res := &Result{
		Grid:      g.grid,
		Seed:      g.opts.Seed,
		Ticks:     g.ticks,
		City:      g.city,
		Placed:    make(map[string]int, g.reg.Len()),
		Remaining: make(map[string]int, g.reg.Len()),
	}
	for id, def := range g.reg.All() {
		res.Placed[def.Name] = g.placed[id]
		res.Remaining[def.Name] = g.reg.Remaining(id)
	}
	return res
}
