// Package bench runs a scene headless under the input autopilot and
// reports how long its ticks take.
package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/rechthoek/app"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/scene"
)

// ErrNoLimit is returned when a run has neither a duration nor a tick
// limit.
var ErrNoLimit = errors.New("bench: no duration or tick limit")

// Options bound a run. It stops at whichever limit is hit first; a zero
// limit is ignored.
type Options struct {
	Duration time.Duration
	MaxTicks int
}

// Report is the outcome of one run.
type Report struct {
	Scene    string
	Seed     uint64
	Duration time.Duration
	MaxTicks int

	Ticks         int64
	TotalTime     time.Duration
	UpdateTime    Stats
	RenderTime    Stats
	PeakEntities  int
	PeakParticles int
	FinalEntities int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
	UpdateSystems []ecs.SystemStats
	RenderSystems []ecs.SystemStats
}

// Run plays sc as fast as possible. Each tick runs the update scheduler
// followed by the render scheduler without a screen, so render systems
// still walk their queries.
func Run(ctx context.Context, sc scene.Scene, cfg *config.Config, opts Options) (*Report, error) {
	if opts.Duration <= 0 && opts.MaxTicks <= 0 {
		return nil, ErrNoLimit
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	stage := sc.Build(cfg, scene.Options{Autopilot: true})
	report := &Report{
		Scene:    sc.Name,
		Seed:     stage.Seed,
		Duration: opts.Duration,
		MaxTicks: opts.MaxTicks,
	}
	log := app.Logger().With("scene", sc.Name)
	log.Info("bench started", "seed", stage.Seed, "duration", opts.Duration, "max_ticks", opts.MaxTicks)

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

Loop:
	for opts.MaxTicks <= 0 || report.Ticks < int64(opts.MaxTicks) {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		t := time.Now()
		stage.Tick()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(t))

		t = time.Now()
		stage.Draw(nil)
		report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(t))

		report.Ticks++
		report.PeakEntities = max(report.PeakEntities, stage.Storage.Len())
		report.PeakParticles = max(report.PeakParticles, stage.Particles())
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.UpdateTime.Finalize()
	report.RenderTime.Finalize()
	report.FinalEntities = stage.Storage.Len()
	report.UpdateSystems = stage.Update.Stats().Systems
	report.RenderSystems = stage.Render.Stats().Systems

	log.Info("bench finished", "ticks", report.Ticks, "avg_update", report.UpdateTime.Avg)
	return report, nil
}
