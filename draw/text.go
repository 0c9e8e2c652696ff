package draw

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// LineHeight is the vertical step between HUD lines.
const LineHeight = 25

var (
	faceOnce sync.Once
	face     *text.GoXFace
)

func hudFace() *text.GoXFace {
	faceOnce.Do(func() {
		face = text.NewGoXFace(basicfont.Face7x13)
	})
	return face
}

// Text draws s with its top-left corner at (x, y).
func Text(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, hudFace(), op)
}

// Lines draws each line below the previous one starting at (x, y).
func Lines(dst *ebiten.Image, x, y float64, c color.Color, lines ...string) {
	for i, line := range lines {
		Text(dst, line, x, y+float64(i*LineHeight), c)
	}
}
