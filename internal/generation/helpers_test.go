package generation

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted is a Source that replays fixed Intn results
type scripted struct {
	t    *testing.T
	vals []int
}

func script(t *testing.T, vals ...int) *scripted {
	return &scripted{t: t, vals: vals}
}

func (s *scripted) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.vals, "script exhausted")
	v := s.vals[0]
	s.vals = s.vals[1:]
	require.True(s.t, v >= 0 && v < n, "scripted value %d outside [0,%d)", v, n)
	return v
}

// d20 converts a die face to the Intn value that produces it
func d20(face int) int { return face - 1 }

func def(name string, quota int) TileDefinition {
	c := color.RGBA{R: uint8(len(name) * 20), G: 80, B: 160, A: 255}
	return TileDefinition{Name: name, Color: c, InnerColor: c, Quota: quota}
}

func villageDef(quota int) TileDefinition {
	d := def("village", quota)
	d.Village = true
	return d
}

func corruptionDef(quota int) TileDefinition {
	d := def("corruption", quota)
	d.Corruption = true
	return d
}

func mustRegistry(t *testing.T, defs ...TileDefinition) *Registry {
	t.Helper()
	reg, err := NewRegistry(defs)
	require.NoError(t, err)
	return reg
}
