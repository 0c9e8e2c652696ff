package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rechthoek/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

// NewFrameHistory keeps the last frames samples, at least one.
func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(1, frames))}
}

// Mark records the time since the previous Mark. The first call only
// starts the clock.
func (h *FrameHistory) Mark(now time.Time) {
	if !h.last.IsZero() {
		h.Add(now.Sub(h.last))
	}
	h.last = now
}

// Add records one frame time.
func (h *FrameHistory) Add(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// StorageWindow shows entity, archetype and singleton counts, the
// frame-time plot and a per-archetype table.
func StorageWindow(storage *ecs.Storage, frames *FrameHistory) func() {
	return func() {
		if !imgui.BeginV("Storage", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := storage.CollectStats()
		imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

		if avg := frames.Average(); avg > 0 {
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
		}
		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &frames.samples[0], int32(len(frames.samples)))

		if imgui.TreeNodeStr("Archetype Details") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Archetype ID")
				imgui.TableSetupColumn("Components")
				imgui.TableSetupColumn("Entity Count")
				imgui.TableHeadersRow()

				for _, arch := range stats.ArchetypeBreakdown {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("0x%X", arch.ID))
					imgui.TableNextColumn()
					imgui.Text(shortTypes(arch.ComponentTypes))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Singleton Details") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}

// NamedScheduler labels a scheduler in the scheduler window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// SchedulerWindow shows per-system timings for each scheduler.
func SchedulerWindow(schedulers ...NamedScheduler) func() {
	return func() {
		if !imgui.BeginV("Schedulers", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		for _, named := range schedulers {
			stats := named.Scheduler.Stats()
			if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d ticks)", named.Name, stats.Ticks)) {
				continue
			}

			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV(named.Name+"##systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Avg")
				imgui.TableSetupColumn("Max")
				imgui.TableSetupColumn("Last")
				imgui.TableHeadersRow()

				for _, row := range SystemRows(stats) {
					imgui.TableNextRow()
					for _, cell := range row {
						imgui.TableNextColumn()
						imgui.Text(cell)
					}
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}

// SystemRows formats scheduler stats as table rows of name, average,
// maximum and last duration.
func SystemRows(stats *ecs.SchedulerStats) [][4]string {
	rows := make([][4]string, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		if sys.ExecutionCount == 0 {
			rows = append(rows, [4]string{sys.Name, "-", "-", "-"})
			continue
		}
		rows = append(rows, [4]string{
			sys.Name,
			sys.AvgDuration.String(),
			sys.MaxDuration.String(),
			sys.LastDuration.String(),
		})
	}
	return rows
}
