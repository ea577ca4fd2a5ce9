package hvac

import (
	"math"
	"time"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/model"
)

// syntheticTable generates n rows of a plausible building day cycle:
// warm afternoons, daytime occupancy driving CO2 and lighting, and a
// 15-minute indoor drift consistent with the TFuture15 targets.
// Deterministic, so tests can pin down numeric expectations.
func syntheticTable(n int) *dataset.Table {
	start := time.Date(2012, 3, 13, 0, 0, 0, 0, time.UTC)

	indoorAt := func(i int) float64 {
		f := float64(i)
		return 21 + 3*math.Sin(2*math.Pi*f/96) + 1.5*math.Sin(f/7)
	}

	rows := make([]model.Row, n)
	for i := range rows {
		f := float64(i)
		daily := math.Sin(2 * math.Pi * f / 96)
		occupied := math.Max(0, math.Sin(2*math.Pi*(f-24)/96))

		indoor := indoorAt(i)
		future := indoorAt(i + 1)
		rows[i] = model.Row{
			Sample: model.Sample{
				Timestamp:   start.Add(time.Duration(i) * 15 * time.Minute),
				IndoorTemp:  indoor,
				OutdoorTemp: 14 + 9*daily + 2*math.Sin(f/11),
				CO2:         420 + 450*occupied + 30*math.Sin(f/5),
				Lighting:    15 + 75*occupied + 8*math.Sin(f/3),
			},
			TFuture15: future,
			Delta15:   future - indoor,
		}
	}
	return dataset.NewTable(rows)
}
