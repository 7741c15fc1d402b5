package universe

import (
	"testing"

	"go.uber.org/zap"
)

var (
	testTemplate = Template{"ts1", "", [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}
)

const (
	width  = 200
	height = 200
)

func newUniverseOptions(engine string, mode Mode) Options {
	o := DefaultOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.CellsPerPlayer = width * height / 8
	o.Engine = engine
	o.Mode = mode
	o.Seed = 1
	return o
}

func universeStep(e *Engine, b *testing.B) {
	e.AddTemplate(testTemplate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e.Randomize()
		if e.Status().Mode == ModeClassic {
			_ = e.SettleTemplate("ts1")
		}
		b.StartTimer()
		e.AdvanceGeneration()
	}
}

func Benchmark_Step(b *testing.B) {
	for _, mode := range []Mode{ModeClassic, ModePvP} {
		for _, name := range Engines() {
			b.Run(mode.String()+"/"+name, func(b *testing.B) {
				e, err := New(newUniverseOptions(name, mode), zap.NewNop(), nil)
				if err != nil {
					b.Fatal(err)
				}
				universeStep(e, b)
			})
		}
	}
}
