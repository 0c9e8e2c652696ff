// Package draw renders filled, optionally rotated rectangles and the few
// other primitives the scenes need on top of ebiten.
package draw

import (
	"image/color"
	"math"
)

// Point is a screen-space coordinate.
type Point struct {
	X, Y float64
}

// Rect is a filled rectangle centred on (X, Y). Rotation is in degrees,
// clockwise on screen because y grows downwards.
type Rect struct {
	X, Y     float64
	W, H     float64
	Rotation float64
	Color    color.RGBA
}

// DefaultRect is the rectangle drawn when no argument is overridden.
func DefaultRect() Rect {
	return Rect{X: 100, Y: 100, W: 80, H: 40, Color: color.RGBA{255, 255, 255, 255}}
}

// Corners returns the four corners clockwise from top-left. Unrotated
// rects are pixel aligned: the left and top edges sit at X-floor(W/2) and
// Y-floor(H/2) and the rect spans exactly W by H from there. Rotated rects
// turn the full W by H box about the centre.
func (r Rect) Corners() [4]Point {
	if r.Rotation == 0 {
		left, top := r.X-math.Floor(r.W/2), r.Y-math.Floor(r.H/2)
		right, bottom := left+r.W, top+r.H
		return [4]Point{{left, top}, {right, top}, {right, bottom}, {left, bottom}}
	}

	hw, hh := r.W/2, r.H/2
	local := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	sin, cos := math.Sincos(r.Rotation * math.Pi / 180)
	for i, p := range local {
		local[i] = Point{
			X: p.X*cos - p.Y*sin + r.X,
			Y: p.X*sin + p.Y*cos + r.Y,
		}
	}
	return local
}
