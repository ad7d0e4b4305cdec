package generation

import "fmt"

// ---- Seeded RNG ----

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a pseudo-random int in [0, n).
// The high bits are used; the low bits of an LCG cycle with short periods.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Uint64() >> 33) % uint64(n))
}

// ---- Dice ----

// Source produces uniform integers in [0, n)
type Source interface {
	Intn(n int) int
}

// Dice turns a Source into the rolls used by the generator
type Dice struct {
	src Source
}

// NewDice wraps a source
func NewDice(src Source) Dice {
	return Dice{src: src}
}

// D20 returns a uniform roll in [1, 20]
func (d Dice) D20() int {
	return 1 + d.src.Intn(20)
}

// D4 returns a uniform roll in [1, 4]
func (d Dice) D4() int {
	return 1 + d.src.Intn(4)
}

// Pick returns a uniform index in [0, n)
func (d Dice) Pick(n int) int {
	return d.src.Intn(n)
}

// Between returns a uniform roll in [min, max]
func (d Dice) Between(min, max int) int {
	if min >= max {
		return min
	}
	return min + d.src.Intn(max-min+1)
}

// d4Directions is the cyclic order of d4 faces
var d4Directions = [4]Direction{South, East, North, West}

// D4ToDirection maps a d4 face to its direction: 1 south (0,+1), 2 east (+1,0),
// 3 north (0,-1), 4 west (-1,0).
func D4ToDirection(n int) Direction {
	if n < 1 || n > 4 {
		panic(fmt.Sprintf("generation: d4 face %d out of range", n))
	}
	return d4Directions[n-1]
}

// D4ToOffset maps a d4 face to its unit offset
func D4ToOffset(n int) (dx, dy int) {
	return D4ToDirection(n).Delta()
}
