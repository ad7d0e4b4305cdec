package generation

// GridSize is the width and height of every generated map
const GridSize = 20

// Grid is a fixed GridSize x GridSize surface of optional tiles, addressed
// with 1-indexed coordinates. Occupied cells are never overwritten.
type Grid struct {
	cells    [GridSize * GridSize]Tile
	occupied [GridSize * GridSize]bool
	filled   int
}

var gridBounds = Bounds{1, 1, GridSize, GridSize}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{}
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return gridBounds.Contains(p)
}

func linearIndex(p Point) int {
	return (p.Y-1)*GridSize + (p.X - 1)
}

// TryPlace stores tile at (x, y) if the cell exists and is empty
func (g *Grid) TryPlace(x, y int, tile Tile) bool {
	p := Point{x, y}
	if !g.InBounds(p) {
		return false
	}
	i := linearIndex(p)
	if g.occupied[i] {
		return false
	}
	g.cells[i] = tile
	g.occupied[i] = true
	g.filled++
	return true
}

// Get returns the occupant of (x, y)
func (g *Grid) Get(x, y int) (Tile, bool) {
	p := Point{x, y}
	if !g.InBounds(p) {
		return Tile{}, false
	}
	i := linearIndex(p)
	return g.cells[i], g.occupied[i]
}

// PlaceBlock tries every cell of b and returns how many were placed
func (g *Grid) PlaceBlock(b Bounds, tile Tile) int {
	n := 0
	for _, p := range b.Points() {
		if g.TryPlace(p.X, p.Y, tile) {
			n++
		}
	}
	return n
}

// Filled returns the number of occupied cells
func (g *Grid) Filled() int {
	return g.filled
}

// IsFull reports whether every cell holds a tile
func (g *Grid) IsFull() bool {
	return g.filled == len(g.cells)
}

// Rows returns the grid as GridSize rows of GridSize tiles, top row first.
// Empty cells are zero Tiles.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, GridSize)
	for y := range rows {
		rows[y] = append([]Tile(nil), g.cells[y*GridSize:(y+1)*GridSize]...)
	}
	return rows
}
