package draw

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteOnce  sync.Once
	whiteImage *ebiten.Image
)

// whiteSubImage is the 1x1 source every triangle samples. It is carved
// out of a 3x3 image so linear filtering never reads a transparent edge.
func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteImage
}

// maxBatchVertices keeps indices inside uint16.
const maxBatchVertices = math.MaxUint16 - 3

// Batch collects rectangles as triangles and submits them with a single
// DrawTriangles call per flush. Rectangles are drawn in the order added.
type Batch struct {
	vertices []ebiten.Vertex
	indices  []uint16
	dst      *ebiten.Image
}

// NewBatch returns a batch that draws to dst.
func NewBatch(dst *ebiten.Image) *Batch {
	return &Batch{dst: dst}
}

// Reset retargets the batch and drops anything not yet flushed.
func (b *Batch) Reset(dst *ebiten.Image) {
	b.dst = dst
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// Len returns the number of queued rectangles.
func (b *Batch) Len() int {
	return len(b.vertices) / 4
}

// Vertices exposes the queued vertices.
func (b *Batch) Vertices() []ebiten.Vertex {
	return b.vertices
}

// Add queues r. A fully transparent rectangle is skipped.
func (b *Batch) Add(r Rect) {
	if r.Color.A == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	if len(b.vertices)+4 > maxBatchVertices {
		b.Flush()
	}

	cr := float32(r.Color.R) / 0xff
	cg := float32(r.Color.G) / 0xff
	cb := float32(r.Color.B) / 0xff
	ca := float32(r.Color.A) / 0xff

	base := uint16(len(b.vertices))
	for _, p := range r.Corners() {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}

// Flush draws every queued rectangle and empties the batch.
func (b *Batch) Flush() {
	if len(b.vertices) == 0 || b.dst == nil {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}

	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}
	b.dst.DrawTriangles(b.vertices, b.indices, whiteSubImage(), op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// Draw renders a single rectangle immediately.
func (r Rect) Draw(dst *ebiten.Image) {
	b := NewBatch(dst)
	b.Add(r)
	b.Flush()
}
