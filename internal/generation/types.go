package generation

// Point represents a 1-indexed grid coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Offset returns the point moved one step in direction d
func (p Point) Offset(d Direction) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Direction represents cardinal directions
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Delta returns the x,y offset for moving in this direction.
// Y grows downwards, matching the rendered image.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Bounds represents an inclusive rectangular region
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Around returns the square of radius r centered on p
func Around(p Point, r int) Bounds {
	return Bounds{p.X - r, p.Y - r, p.X + r, p.Y + r}
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Points returns every point of the bounds in row-major order
func (b Bounds) Points() []Point {
	if b.MaxX < b.MinX || b.MaxY < b.MinY {
		return nil
	}
	pts := make([]Point, 0, b.Width()*b.Height())
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			pts = append(pts, Point{x, y})
		}
	}
	return pts
}
