package scene

import (
	"fmt"
	"image/color"

	"github.com/plus3/rechthoek/cloud"
	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/fire"
	"github.com/plus3/rechthoek/input"
	"github.com/plus3/rechthoek/particle"
)

var (
	hudColor    = color.RGBA{255, 255, 255, 255}
	bannerColor = color.RGBA{255, 255, 0, 255}
)

const hudX = 10

// EmittersHUD shows the particle total and each emitter's budget.
type EmittersHUD struct {
	Emitters ecs.Query[struct {
		*emitter.Emitter
		*particle.Budget
	}]
	Target ecs.Singleton[draw.Target]

	// Lines is what was last drawn.
	Lines []string
}

// Execute recomputes Lines every frame and draws them when a screen is
// set.
func (h *EmittersHUD) Execute(frame *ecs.UpdateFrame) {
	h.Lines = append(h.Lines[:0], fmt.Sprintf("Particles: %d", particle.Count(frame.Storage)))
	i := 1
	for e := range h.Emitters.Values() {
		h.Lines = append(h.Lines, fmt.Sprintf("Emitter %d: %d/%d active", i, e.Budget.Active, e.Budget.Max))
		i++
	}

	target := h.Target.Get()
	if target == nil || target.Screen == nil {
		return
	}
	draw.Text(target.Screen, h.Lines[0], hudX, 10, hudColor)
	draw.Lines(target.Screen, hudX, 40, hudColor, h.Lines[1:]...)
}

// MouseHUD shows counts, the palette and the controls.
type MouseHUD struct {
	Emitters ecs.Query[struct{ *emitter.Emitter }]
	Palette  ecs.Singleton[Palette]
	Target   ecs.Singleton[draw.Target]

	Lines []string
}

func (h *MouseHUD) Execute(frame *ecs.UpdateFrame) {
	kind := emitter.Kinds[0]
	if p := h.Palette.Get(); p != nil {
		kind = p.Kind()
	}
	h.Lines = append(h.Lines[:0],
		fmt.Sprintf("Particles: %d", particle.Count(frame.Storage)),
		fmt.Sprintf("Emitters: %d", h.Emitters.Len()),
		fmt.Sprintf("Current type: %s", kind),
		"Click to place emitter, SPACE to change type",
	)

	target := h.Target.Get()
	if target == nil || target.Screen == nil {
		return
	}
	draw.Lines(target.Screen, hudX, 10, hudColor, h.Lines...)
}

// CursorHUD shows the cloud, the fire round and, between rounds, a
// banner.
type CursorHUD struct {
	Fires ecs.Query[struct {
		*fire.Fire
		Burning *fire.Burning `ecs:"optional"`
	}]
	Cloud  ecs.Singleton[cloud.Cloud]
	Field  ecs.Singleton[fire.Field]
	Input  ecs.Singleton[input.State]
	Target ecs.Singleton[draw.Target]

	Lines  []string
	// Banner is empty while any fire burns, except on the tick a new
	// round starts.
	Banner string
}

func (h *CursorHUD) Execute(frame *ecs.UpdateFrame) {
	c, field, in := h.Cloud.Get(), h.Field.Get(), h.Input.Get()
	if c == nil || field == nil || in == nil {
		return
	}

	n := c.Size()
	hint := "Hold mouse button to make it rain!"
	if in.Y > c.Mid {
		hint = "Hold mouse button to create fog!"
	}

	active, total := 0, 0
	for f := range h.Fires.Values() {
		total++
		if f.Burning != nil {
			active++
		}
	}

	h.Lines = append(h.Lines[:0],
		fmt.Sprintf("Particles: %d", particle.Count(frame.Storage)),
		fmt.Sprintf("Cloud size: %d | Rain intensity: %d%%", n, int(cloud.RainChance(n)*100)),
		hint,
		"Press +/- to grow/shrink cloud",
		fmt.Sprintf("Active fires: %d/%d", active, total),
		fmt.Sprintf("Round: %d", field.Round),
	)

	h.Banner = ""
	switch {
	case field.Starting:
		h.Banner = "Starting new round!"
	case active == 0 && total > 0:
		if secs := field.Countdown(); secs > 0 {
			h.Banner = fmt.Sprintf("All fires extinguished! Next round in %ds", secs)
		} else {
			h.Banner = "Starting new round!"
		}
	}

	target := h.Target.Get()
	if target == nil || target.Screen == nil {
		return
	}
	draw.Lines(target.Screen, hudX, 10, hudColor, h.Lines...)
	if h.Banner != "" {
		draw.Text(target.Screen, h.Banner, hudX, 10+float64(len(h.Lines))*draw.LineHeight, bannerColor)
	}
}
