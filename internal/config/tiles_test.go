package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antgen.dev/internal/generation"
)

const legacyTiles = `
[[tile]]
name = "village"
color = "#112233"
village = true
limit = 5

[[tile.nextgen]]
name = "grass"
lower = 2
upper = 19

[[tile]]
name = "grass"
color = "#00AA00"
inner_color = "#008800"
limit = 50

[[tile]]
name = "corruption"
color = "#000000"
corruption = true
limit = 400
`

const minimalTiles = `
tiles:
  - name: village
    color: "#112233"
    quota: 5
    village: true
  - name: corruption
    color: "#AABBCC"
    inner_color: "#000000"
    quota: 1000
    corruption: true
    transitions:
      - {tile: village, lower: 5, upper: 15}
`

func TestParseTiles(t *testing.T) {
	ts, err := ParseTiles("test.yaml", []byte(minimalTiles))
	require.NoError(t, err)
	require.Len(t, ts.Tiles, 2)

	assert.Equal(t, "village", ts.Tiles[0].Name)
	assert.True(t, ts.Tiles[0].Village)
	assert.Equal(t, 1000, ts.Tiles[1].Quota)
	assert.Equal(t, []TransitionRecord{{Tile: "village", Lower: 5, Upper: 15}}, ts.Tiles[1].Transitions)
}

func TestParseTiles_json(t *testing.T) {
	raw := `{"tiles":[
	  {"name":"v","color":"#010203","quota":1,"village":true},
	  {"name":"c","color":"#040506","quota":9,"corruption":true}
	]}`
	ts, err := ParseTiles("test.json", []byte(raw))
	require.NoError(t, err)
	assert.Len(t, ts.Tiles, 2)
}

func TestParseTiles_rejects(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"no tiles":      `tiles: []`,
		"short color":   "tiles:\n  - {name: a, color: \"#123\", quota: 1}",
		"no hash":       "tiles:\n  - {name: a, color: \"123456\", quota: 1}",
		"bad hex":       "tiles:\n  - {name: a, color: \"#12345G\", quota: 1}",
		"negative":      "tiles:\n  - {name: a, color: \"#123456\", quota: -1}",
		"missing quota": "tiles:\n  - {name: a, color: \"#123456\"}",
		"limit + quota": "tiles:\n  - {name: a, color: \"#123456\", quota: 1, limit: 3}",
		"unknown key":   "tiles:\n  - {name: a, color: \"#123456\", quota: 1, weight: 3}",
		"roll high":     "tiles:\n  - {name: a, color: \"#123456\", quota: 1, transitions: [{tile: a, lower: 2, upper: 21}]}",
		"roll zero":     "tiles:\n  - {name: a, color: \"#123456\", quota: 1, transitions: [{tile: a, lower: 0, upper: 3}]}",
		"inverted":      "tiles:\n  - {name: a, color: \"#123456\", quota: 1, transitions: [{tile: a, lower: 9, upper: 3}]}",
		"not yaml":      "tiles: [",
	}
	for name, raw := range cases {
		_, err := ParseTiles("bad.yaml", []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidTiles, name)
	}
}

func TestTileSet_registry(t *testing.T) {
	ts, err := ParseTiles("test.yaml", []byte(minimalTiles))
	require.NoError(t, err)

	reg, err := ts.Registry()
	require.NoError(t, err)
	v := reg.Definition(reg.Village())
	assert.Equal(t, color.RGBA{0x11, 0x22, 0x33, 0xff}, v.Color)
	assert.Equal(t, v.Color, v.InnerColor, "inner color defaults to outer")

	c := reg.Definition(reg.Corruption())
	assert.Equal(t, color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, c.Color)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, c.InnerColor)
}

func TestTileSet_registryErrors(t *testing.T) {
	ts, err := ParseTiles("t.yaml", []byte("tiles:\n  - {name: a, color: \"#123456\", quota: 1}"))
	require.NoError(t, err)
	_, err = ts.Registry()
	assert.ErrorIs(t, err, generation.ErrMissingRoleTile)

	ts, err = ParseTiles("t.yaml", []byte(minimalTiles+"      - {tile: ghost, lower: 2, upper: 3}\n"))
	require.NoError(t, err)
	_, err = ts.Registry()
	assert.ErrorIs(t, err, generation.ErrUnknownTile)
}

func TestDefaultTiles(t *testing.T) {
	ts := DefaultTiles()
	reg, err := ts.Registry()
	require.NoError(t, err)
	_, ok := reg.Tower()
	assert.True(t, ok)

	res, err := generation.NewGenerator(reg, generation.Options{Villages: 3, Seed: 1}).Generate()
	require.NoError(t, err)
	assert.True(t, res.Grid.IsFull())
}

func TestLoadTiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalTiles), 0o644))

	ts, err := LoadTiles(path)
	require.NoError(t, err)
	assert.Len(t, ts.Tiles, 2)

	_, err = LoadTiles(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTiles_legacyTOML(t *testing.T) {
	ts, err := ParseTiles("map.toml", []byte(legacyTiles))
	require.NoError(t, err)
	require.Len(t, ts.Tiles, 3)

	assert.Equal(t, 5, ts.Tiles[0].Quota)
	assert.Equal(t, []TransitionRecord{{Tile: "grass", Lower: 2, Upper: 19}}, ts.Tiles[0].Transitions)
	assert.Equal(t, "#008800", ts.Tiles[1].InnerColor)
	assert.True(t, ts.Tiles[2].Corruption)

	reg, err := ts.Registry()
	require.NoError(t, err)
	res, err := generation.NewGenerator(reg, generation.Options{Villages: 2, Seed: 3}).Generate()
	require.NoError(t, err)
	assert.True(t, res.Grid.IsFull())
}

func TestParseTiles_legacyKeysInYAML(t *testing.T) {
	raw := `
tile:
  - name: v
    color: "#010203"
    limit: 2
    village: true
    nextgen: [{name: c, lower: 1, upper: 20}]
  - name: c
    color: "#040506"
    limit: 9
    corruption: true
`
	ts, err := ParseTiles("old.yaml", []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, ts.Tiles[0].Quota)
	assert.Equal(t, []TransitionRecord{{Tile: "c", Lower: 1, Upper: 20}}, ts.Tiles[0].Transitions)
}

func TestParseTiles_tomlRejects(t *testing.T) {
	cases := map[string]string{
		"not toml":    "[[tile]\nname = ",
		"no limit":    "[[tile]]\nname = \"a\"\ncolor = \"#123456\"\n",
		"bad color":   "[[tile]]\nname = \"a\"\ncolor = \"red\"\nlimit = 1\n",
		"nextgen key": "[[tile]]\nname = \"a\"\ncolor = \"#123456\"\nlimit = 1\n[[tile.nextgen]]\nname = \"a\"\nlower = 1\nupper = 20\nweight = 2\n",
	}
	for name, raw := range cases {
		_, err := ParseTiles("bad.toml", []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidTiles, name)
	}
}

func TestLoadTiles_toml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.TOML")
	require.NoError(t, os.WriteFile(path, []byte(legacyTiles), 0o644))

	ts, err := LoadTiles(path)
	require.NoError(t, err)
	assert.Len(t, ts.Tiles, 3)
}
