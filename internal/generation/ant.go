package generation

import (
	"errors"
	"fmt"
)

// ErrNoMove is returned when an ant cannot find an in-bounds step
var ErrNoMove = errors.New("no valid move")

const maxMoveAttempts = 1000

// Ant is a walker whose steps decide where terrain grows next
type Ant struct {
	Pos Point
}

// NewAnt creates an ant at (x, y)
func NewAnt(x, y int) *Ant {
	return &Ant{Pos: Point{x, y}}
}

// Advance rolls d4 steps, discarding any that leave the grid, and takes the
// first one that stays inside.
func (a *Ant) Advance(d Dice) error {
	for range maxMoveAttempts {
		next := a.Pos.Offset(D4ToDirection(d.D4()))
		if gridBounds.Contains(next) {
			a.Pos = next
			return nil
		}
	}
	return fmt.Errorf("%w from (%d, %d) after %d rolls", ErrNoMove, a.Pos.X, a.Pos.Y, maxMoveAttempts)
}
