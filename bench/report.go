package bench

import (
	"io"
	"text/template"
	"time"
)

const reportTemplate = `# Benchmark: {{.Scene}}

## Configuration
- **Seed:** {{.Seed}}
- **Duration limit:** {{if .Duration}}{{.Duration}}{{else}}none{{end}}
- **Tick limit:** {{if .MaxTicks}}{{.MaxTicks}}{{else}}none{{end}}

## Results
- **Ticks:** {{.Ticks}}
- **Total time:** {{.TotalTime}}
- **Update:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- **Render:** avg {{.RenderTime.Avg}}, min {{.RenderTime.Min}}, max {{.RenderTime.Max}}
- **Peak entities:** {{.PeakEntities}} ({{.PeakParticles}} particles)
- **Final entities:** {{.FinalEntities}}

## Memory (bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Total Alloc: {{.MemStatsStart.TotalAlloc}} -> {{.MemStatsEnd.TotalAlloc}} (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- Num GC:      {{.MemStatsStart.NumGC}} -> {{.MemStatsEnd.NumGC}} (delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}})
- GC pause:    {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}

## Update systems
{{template "systems" .UpdateSystems}}
## Render systems
{{template "systems" .RenderSystems}}
{{- define "systems"}}
| system | runs | avg | max |
|--------|------|-----|-----|
{{- range .}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}`

var report = template.Must(template.New("report").Funcs(template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
}).Parse(reportTemplate))

// Generate writes r as markdown.
func (r *Report) Generate(w io.Writer) error {
	return report.Execute(w, r)
}
