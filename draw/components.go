package draw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/ecs"
)

// Target carries the image the render scheduler draws into this frame.
type Target struct {
	Screen *ebiten.Image
	batch  Batch
}

// Batch returns the frame's shared batch, pointed at Screen.
func (t *Target) Batch() *Batch {
	t.batch.dst = t.Screen
	return &t.batch
}

// Background is the scene's clear colour.
type Background struct {
	Color color.RGBA
}

// ClearSystem fills the target with the background colour. It runs first
// in every render scheduler.
type ClearSystem struct {
	Target     ecs.Singleton[Target]
	Background ecs.Singleton[Background]
}

func (s *ClearSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Target.Get()
	if target == nil || target.Screen == nil {
		return
	}
	if bg := s.Background.Get(); bg != nil {
		target.Screen.Fill(bg.Color)
	}
}
