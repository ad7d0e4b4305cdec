package models

import (
	"fmt"
	"image/color"
	"strconv"

	"antgen.dev/internal/generation"
)

// GridData is a finished map in wire form
type GridData struct {
	Width           int                       `json:"width"`
	Height          int                       `json:"height"`
	Seed            uint64                    `json:"seed"`
	Ticks           int                       `json:"ticks"`
	City            Position                  `json:"city"`
	Tiles           [][]RenderedTile          `json:"tiles"` // row-major, top row first
	TileDefinitions map[string]TileDefinition `json:"tile_definitions"`
	Placed          map[string]int            `json:"placed,omitempty"`
}

// Position is a 1-indexed grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RenderedTile is one cell; an empty Name marks an unoccupied cell
type RenderedTile struct {
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	InnerColor string `json:"inner_color,omitempty"`
}

// TileDefinition describes a tile for clients
type TileDefinition struct {
	Color       string       `json:"color"`
	InnerColor  string       `json:"inner_color"`
	Quota       int          `json:"quota"`
	Village     bool         `json:"village,omitempty"`
	Tower       bool         `json:"tower,omitempty"`
	Corruption  bool         `json:"corruption,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Transition is one transition table entry
type Transition struct {
	Tile  string `json:"tile"`
	Lower int    `json:"lower"`
	Upper int    `json:"upper"`
}

// HexColor formats a color as "#rrggbb"
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB"
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// NewGridData converts a generation result
func NewGridData(res *generation.Result, reg *generation.Registry) *GridData {
	data := &GridData{
		Width:           generation.GridSize,
		Height:          generation.GridSize,
		Seed:            res.Seed,
		Ticks:           res.Ticks,
		City:            Position{res.City.X, res.City.Y},
		Tiles:           RenderTiles(res.Grid),
		TileDefinitions: TileDefinitions(reg),
		Placed:          res.Placed,
	}
	return data
}

// RenderTiles flattens a grid into rows of rendered tiles
func RenderTiles(g *generation.Grid) [][]RenderedTile {
	rows := g.Rows()
	out := make([][]RenderedTile, len(rows))
	for y, row := range rows {
		out[y] = make([]RenderedTile, len(row))
		for x, tile := range row {
			if _, ok := g.Get(x+1, y+1); !ok {
				continue
			}
			out[y][x] = RenderedTile{
				Name:       tile.Name,
				Color:      HexColor(tile.Color),
				InnerColor: HexColor(tile.InnerColor),
			}
		}
	}
	return out
}

// TileDefinitions describes every tile of a registry with its configured quota
func TileDefinitions(reg *generation.Registry) map[string]TileDefinition {
	defs := make(map[string]TileDefinition, reg.Len())
	for _, def := range reg.All() {
		td := TileDefinition{
			Color:      HexColor(def.Color),
			InnerColor: HexColor(def.InnerColor),
			Quota:      def.Quota,
			Village:    def.Village,
			Tower:      def.Tower,
			Corruption: def.Corruption,
		}
		for _, tr := range def.Transitions {
			td.Transitions = append(td.Transitions, Transition{Tile: tr.Tile, Lower: tr.Lower, Upper: tr.Upper})
		}
		defs[def.Name] = td
	}
	return defs
}

// Grid rebuilds a generation grid from the wire form. Tile IDs are assigned
// in row-major order of first appearance and only mean something within the
// returned grid.
func (d *GridData) Grid() (*generation.Grid, error) {
	if d.Width != generation.GridSize || d.Height != generation.GridSize || len(d.Tiles) != d.Height {
		return nil, fmt.Errorf("grid is %dx%d, want %dx%d", d.Width, d.Height, generation.GridSize, generation.GridSize)
	}

	g := generation.NewGrid()
	ids := make(map[string]generation.TileID)
	for y, row := range d.Tiles {
		if len(row) != d.Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y+1, len(row), d.Width)
		}
		for x, rt := range row {
			if rt.Name == "" {
				continue
			}
			outer, err := ParseHexColor(rt.Color)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", x+1, y+1, err)
			}
			inner, err := ParseHexColor(rt.InnerColor)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", x+1, y+1, err)
			}
			id, ok := ids[rt.Name]
			if !ok {
				id = generation.TileID(len(ids))
				ids[rt.Name] = id
			}
			g.TryPlace(x+1, y+1, generation.Tile{ID: id, Name: rt.Name, Color: outer, InnerColor: inner})
		}
	}
	return g, nil
}
