// Package ground models the gravel strip rain lands on. Tiles darken to
// blue as they get wet and dry out again over time.
package ground

import (
	"image/color"

	"github.com/plus3/rechthoek/rng"
)

const (
	wetPerHit  = 10
	maxWetness = 100
	dryPerTick = 0.2
)

// Tile is one gravel block. CX is its integer centre.
type Tile struct {
	CX      int
	W, H    int
	Wetness float64
}

// Left and Right use integer halves, so odd tiles overlap their
// neighbours by one pixel.
func (t Tile) Left() int  { return t.CX - t.W/2 }
func (t Tile) Right() int { return t.CX + t.W/2 }

// Color shifts from grey towards blue with wetness.
func (t Tile) Color() color.RGBA {
	blue := int(t.Wetness * 1.5)
	grey := max(0, 80-blue/2)
	return color.RGBA{uint8(grey), uint8(grey), uint8(min(255, 80+blue)), 255}
}

// Strip is the ground singleton.
type Strip struct {
	Line  float64
	Width int
	Tiles []Tile
	Base  bool
}

// Generate lays tiles from x=0 until the strip covers width.
func Generate(width int, line float64, src *rng.Source) Strip {
	s := Strip{Line: line, Width: width}
	for x := 0; x < width; {
		w := src.Between(4, 16)
		h := src.Between(3, 12)
		s.Tiles = append(s.Tiles, Tile{CX: x + w/2, W: w, H: h})
		x += w
	}
	return s
}

// Wet adds water to the first tile spanning x and reports whether one
// was found.
func (s *Strip) Wet(x float64) bool {
	for i := range s.Tiles {
		t := &s.Tiles[i]
		if float64(t.Left()) <= x && x <= float64(t.Right()) {
			t.Wetness = min(t.Wetness+wetPerHit, maxWetness)
			return true
		}
	}
	return false
}

// Dry evaporates one tick's worth of water from every tile.
func (s *Strip) Dry() {
	for i := range s.Tiles {
		s.Tiles[i].Wetness = max(0, s.Tiles[i].Wetness-dryPerTick)
	}
}
