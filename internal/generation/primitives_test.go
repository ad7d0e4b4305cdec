package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestD4ToOffset(t *testing.T) {
	cases := []struct {
		face   int
		dx, dy int
	}{
		{1, 0, 1},
		{2, 1, 0},
		{3, 0, -1},
		{4, -1, 0},
	}
	for _, tc := range cases {
		dx, dy := D4ToOffset(tc.face)
		assert.Equal(t, tc.dx, dx, "face %d dx", tc.face)
		assert.Equal(t, tc.dy, dy, "face %d dy", tc.face)
	}
}

func TestD4ToOffset_invalidPanics(t *testing.T) {
	assert.Panics(t, func() { D4ToOffset(0) })
	assert.Panics(t, func() { D4ToOffset(5) })
}

func TestDice_ranges(t *testing.T) {
	d := NewDice(NewRNG(42))
	seen20 := make(map[int]bool)
	seen4 := make(map[int]bool)
	for range 5000 {
		r := d.D20()
		assert.True(t, r >= 1 && r <= 20, "d20 %d", r)
		seen20[r] = true

		r = d.D4()
		assert.True(t, r >= 1 && r <= 4, "d4 %d", r)
		seen4[r] = true

		r = d.Between(2, 19)
		assert.True(t, r >= 2 && r <= 19, "between %d", r)
	}
	assert.Len(t, seen20, 20)
	assert.Len(t, seen4, 4)
}

func TestRNG_deterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for range 100 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, 0, NewRNG(1).Intn(0))
}
