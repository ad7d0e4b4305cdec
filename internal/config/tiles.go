package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"antgen.dev/internal/generation"
	"antgen.dev/internal/models"
)

// ErrInvalidTiles marks a tile file that does not parse or validate
var ErrInvalidTiles = errors.New("invalid tile set")

//go:embed tiles.schema.json
var tilesSchemaSource string

//go:embed default_tiles.yaml
var defaultTilesSource []byte

var tilesSchema = jsonschema.MustCompileString("tiles.schema.json", tilesSchemaSource)

// TileSet is a tile file as written on disk
type TileSet struct {
	Tiles []TileRecord `yaml:"tiles" json:"tiles"`
}

// TileRecord is one tile entry
type TileRecord struct {
	Name        string             `yaml:"name" json:"name"`
	Color       string             `yaml:"color" json:"color"`
	InnerColor  string             `yaml:"inner_color,omitempty" json:"inner_color,omitempty"`
	Quota       int                `yaml:"quota" json:"quota"`
	Village     bool               `yaml:"village,omitempty" json:"village,omitempty"`
	Tower       bool               `yaml:"tower,omitempty" json:"tower,omitempty"`
	Corruption  bool               `yaml:"corruption,omitempty" json:"corruption,omitempty"`
	Transitions []TransitionRecord `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

// TransitionRecord maps an inclusive d20 range to a tile name
type TransitionRecord struct {
	Tile  string `yaml:"tile" json:"tile"`
	Lower int    `yaml:"lower" json:"lower"`
	Upper int    `yaml:"upper" json:"upper"`
}

// LoadTiles reads a tile file. Files ending in .toml are TOML, anything else
// is YAML (which covers JSON).
func LoadTiles(path string) (TileSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TileSet{}, err
	}
	return ParseTiles(filepath.Base(path), raw)
}

// DefaultTiles returns the built-in tile set
func DefaultTiles() TileSet {
	ts, err := ParseTiles("default_tiles.yaml", defaultTilesSource)
	if err != nil {
		panic(err)
	}
	return ts
}

// ParseTiles validates raw against the tile schema and decodes it. The
// format follows the extension of name, which also labels errors.
//
// Tile files in the older layout ([[tile]] records with limit and
// nextgen{name, lower, upper}) are accepted and read as tiles, quota and
// transitions{tile, lower, upper}.
func ParseTiles(name string, raw []byte) (TileSet, error) {
	var ts TileSet

	doc, err := decodeDocument(name, raw)
	if err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}
	v, err := jsonValue(doc)
	if err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}
	upgradeLegacyKeys(v)
	if err := tilesSchema.Validate(v); err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}
	if err := json.Unmarshal(b, &ts); err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}
	if err := ts.Validate(); err != nil {
		return ts, fmt.Errorf("%s: %w: %v", name, ErrInvalidTiles, err)
	}
	return ts, nil
}

func decodeDocument(name string, raw []byte) (any, error) {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		var doc map[string]any
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonValue converts a decoded document into the value shapes the schema
// validator expects.
func jsonValue(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// upgradeLegacyKeys renames older key names in place. A key is only renamed
// when its replacement is absent, so mixed records still fail the schema.
func upgradeLegacyKeys(v any) {
	doc, ok := v.(map[string]any)
	if !ok {
		return
	}
	renameKey(doc, "tile", "tiles")
	tiles, _ := doc["tiles"].([]any)
	for _, t := range tiles {
		tile, ok := t.(map[string]any)
		if !ok {
			continue
		}
		renameKey(tile, "limit", "quota")
		renameKey(tile, "nextgen", "transitions")
		trs, _ := tile["transitions"].([]any)
		for _, tr := range trs {
			if m, ok := tr.(map[string]any); ok {
				renameKey(m, "name", "tile")
			}
		}
	}
}

func renameKey(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	if _, taken := m[to]; taken {
		return
	}
	m[to] = v
	delete(m, from)
}

// Validate checks what the schema cannot express
func (ts TileSet) Validate() error {
	for _, t := range ts.Tiles {
		if _, err := models.ParseHexColor(t.Color); err != nil {
			return fmt.Errorf("tile %q: %w", t.Name, err)
		}
		if t.InnerColor != "" {
			if _, err := models.ParseHexColor(t.InnerColor); err != nil {
				return fmt.Errorf("tile %q: %w", t.Name, err)
			}
		}
		for _, tr := range t.Transitions {
			if tr.Lower > tr.Upper {
				return fmt.Errorf("tile %q: transition to %q has lower %d > upper %d",
					t.Name, tr.Tile, tr.Lower, tr.Upper)
			}
		}
	}
	return nil
}

// Definitions converts records into generation definitions
func (ts TileSet) Definitions() ([]generation.TileDefinition, error) {
	defs := make([]generation.TileDefinition, 0, len(ts.Tiles))
	for _, t := range ts.Tiles {
		outer, err := models.ParseHexColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", t.Name, err)
		}
		inner := outer
		if t.InnerColor != "" {
			if inner, err = models.ParseHexColor(t.InnerColor); err != nil {
				return nil, fmt.Errorf("tile %q: %w", t.Name, err)
			}
		}

		def := generation.TileDefinition{
			Name:       t.Name,
			Color:      outer,
			InnerColor: inner,
			Quota:      t.Quota,
			Village:    t.Village,
			Tower:      t.Tower,
			Corruption: t.Corruption,
		}
		for _, tr := range t.Transitions {
			def.Transitions = append(def.Transitions, generation.Transition{
				Tile:  tr.Tile,
				Lower: tr.Lower,
				Upper: tr.Upper,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Registry builds a generation registry from the set
func (ts TileSet) Registry(opts ...generation.RegistryOption) (*generation.Registry, error) {
	defs, err := ts.Definitions()
	if err != nil {
		return nil, err
	}
	return generation.NewRegistry(defs, opts...)
}
