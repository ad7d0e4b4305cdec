// Package render rasterizes generated grids.
//
// Each cell becomes a square block of pixels: the outer color everywhere and
// the inner color on a centered square inset by 30% of the block.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"antgen.dev/internal/generation"
)

// DefaultCellSize is the block size in pixels for one grid cell
const DefaultCellSize = 10

var ErrCellSize = errors.New("cell size must be at least 1")

// Transparent is the color of unoccupied cells
var Transparent = color.RGBA{}

// Image draws g with cellSize pixels per cell. Empty cells stay transparent.
func Image(g *generation.Grid, cellSize int) (*image.RGBA, error) {
	if cellSize < 1 {
		return nil, ErrCellSize
	}
	size := generation.GridSize * cellSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	lo, hi := innerRange(cellSize)
	for y := 0; y < generation.GridSize; y++ {
		for x := 0; x < generation.GridSize; x++ {
			tile, ok := g.Get(x+1, y+1)
			if !ok {
				continue
			}
			for yi := 0; yi < cellSize; yi++ {
				for xi := 0; xi < cellSize; xi++ {
					c := tile.Color
					if yi >= lo && yi <= hi && xi >= lo && xi <= hi {
						c = tile.InnerColor
					}
					img.SetRGBA(x*cellSize+xi, y*cellSize+yi, c)
				}
			}
		}
	}
	return img, nil
}

// innerRange returns the inclusive pixel range of the inner square; 10 px
// cells get 3..6.
func innerRange(cellSize int) (lo, hi int) {
	inset := cellSize * 3 / 10
	return inset, cellSize - inset - 1
}

// PNG encodes g as a PNG image
func PNG(w io.Writer, g *generation.Grid, cellSize int) error {
	img, err := Image(g, cellSize)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteFile writes g as a PNG file
func WriteFile(path string, g *generation.Grid, cellSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PNG(f, g, cellSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
