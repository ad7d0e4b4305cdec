package generation

import (
	"errors"
	"fmt"
	"image/color"
	"iter"
)

var (
	ErrUnknownTile     = errors.New("unknown tile")
	ErrDuplicateTile   = errors.New("duplicate tile")
	ErrMissingRoleTile = errors.New("missing role tile")
)

// TileID indexes a definition in a Registry
type TileID int

// Transition is one weighted entry of a transition table.
// Lower and Upper are inclusive d20 values.
type Transition struct {
	Tile  string
	Lower int
	Upper int
}

// TileDefinition describes a terrain type as configured
type TileDefinition struct {
	Name       string
	Color      color.RGBA
	InnerColor color.RGBA
	Quota      int

	Village    bool
	Tower      bool // tagged only
	Corruption bool

	Transitions []Transition
}

// Tile is the immutable snapshot stored in a grid cell
type Tile struct {
	ID         TileID
	Name       string
	Color      color.RGBA
	InnerColor color.RGBA
}

type edge struct {
	target       TileID
	lower, upper int
}

// RegistryOption tweaks registry behavior
type RegistryOption func(*Registry)

// WithUnlimitedCorruption stops placements from spending the corruption quota
func WithUnlimitedCorruption() RegistryOption {
	return func(r *Registry) {
		r.unlimitedCorruption = true
	}
}

// Registry owns every tile definition and its remaining quota.
// Other components refer to tiles by TileID.
type Registry struct {
	defs      []TileDefinition
	edges     [][]edge
	remaining []int
	byName    map[string]TileID

	village    TileID
	corruption TileID
	tower      TileID
	hasTower   bool

	unlimitedCorruption bool
}

// NewRegistry resolves definitions into an arena. Transition targets must name
// known tiles, and a village and a corruption tile must exist; the first
// flagged tile in declaration order wins. A tower tile is optional: nothing
// in generation places one, so a set without it is still usable.
func NewRegistry(defs []TileDefinition, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		defs:       make([]TileDefinition, len(defs)),
		edges:      make([][]edge, len(defs)),
		remaining:  make([]int, len(defs)),
		byName:     make(map[string]TileID, len(defs)),
		village:    -1,
		corruption: -1,
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, def := range defs {
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTile, def.Name)
		}
		def.Transitions = append([]Transition(nil), def.Transitions...)
		r.defs[i] = def
		r.remaining[i] = max(def.Quota, 0)
		r.byName[def.Name] = TileID(i)
	}

	for i, def := range r.defs {
		id := TileID(i)
		for _, tr := range def.Transitions {
			target, err := r.Lookup(tr.Tile)
			if err != nil {
				return nil, fmt.Errorf("tile %q transition: %w", def.Name, err)
			}
			r.edges[i] = append(r.edges[i], edge{target: target, lower: tr.Lower, upper: tr.Upper})
		}
		if def.Village && r.village < 0 {
			r.village = id
		}
		if def.Corruption && r.corruption < 0 {
			r.corruption = id
		}
		if def.Tower && !r.hasTower {
			r.tower, r.hasTower = id, true
		}
	}

	if r.village < 0 {
		return nil, fmt.Errorf("%w: no village tile", ErrMissingRoleTile)
	}
	if r.corruption < 0 {
		return nil, fmt.Errorf("%w: no corruption tile", ErrMissingRoleTile)
	}
	return r, nil
}

// Clone returns an independent registry with the configured quotas restored
func (r *Registry) Clone() *Registry {
	c := *r
	c.remaining = make([]int, len(r.defs))
	for i, def := range r.defs {
		c.remaining[i] = max(def.Quota, 0)
	}
	return &c
}

// Len returns the number of tiles
func (r *Registry) Len() int {
	return len(r.defs)
}

// Lookup resolves a tile name
func (r *Registry) Lookup(name string) (TileID, error) {
	id, ok := r.byName[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	return id, nil
}

// Definition returns a copy of the configured definition
func (r *Registry) Definition(id TileID) TileDefinition {
	def := r.defs[id]
	def.Transitions = append([]Transition(nil), def.Transitions...)
	return def
}

// All iterates tiles in declaration order
func (r *Registry) All() iter.Seq2[TileID, TileDefinition] {
	return func(yield func(TileID, TileDefinition) bool) {
		for i := range r.defs {
			if !yield(TileID(i), r.Definition(TileID(i))) {
				return
			}
		}
	}
}

// Village returns the tile used for the city and starting villages
func (r *Registry) Village() TileID { return r.village }

// Corruption returns the fallback tile
func (r *Registry) Corruption() TileID { return r.corruption }

// Tower returns the tower tile, if one is configured
func (r *Registry) Tower() (TileID, bool) {
	return r.tower, r.hasTower
}

// Remaining returns how many more cells the tile may claim
func (r *Registry) Remaining(id TileID) int {
	return r.remaining[id]
}

// Consume spends one unit of quota. It never goes below zero and reports
// whether a unit was spent.
func (r *Registry) Consume(id TileID) bool {
	if id == r.corruption && r.unlimitedCorruption {
		return true
	}
	if r.remaining[id] == 0 {
		return false
	}
	r.remaining[id]--
	return true
}

// Tile snapshots a definition for placement
func (r *Registry) Tile(id TileID) Tile {
	def := &r.defs[id]
	return Tile{
		ID:         id,
		Name:       def.Name,
		Color:      def.Color,
		InnerColor: def.InnerColor,
	}
}
