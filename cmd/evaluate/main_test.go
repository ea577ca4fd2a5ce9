package main

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
	"hvac_advisor/internal/model"
)

func evalTable(n int) *dataset.Table {
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

func TestEvaluate(t *testing.T) {
	table := evalTable(100)
	cal := hvac.DefaultCalibration()

	log := logrus.New()
	log.SetOutput(io.Discard)

	advisor, err := hvac.NewAdvisor(table, cal, hvac.DefaultPolicy(), log)
	require.NoError(t, err)

	_, test := table.Split(cal.TrainFraction)
	require.NotEmpty(t, test)

	s := evaluate(advisor, test)

	assert.Equal(t, len(test), s.N)
	assert.GreaterOrEqual(t, s.FuzzyMAE, 0.0)
	assert.GreaterOrEqual(t, s.FuzzyRMSE, s.FuzzyMAE)
	assert.GreaterOrEqual(t, s.BaseRMSE, s.BaseMAE)
	// a coarse fuzzy forecast should stay within a degree on this data
	assert.Less(t, s.FuzzyMAE, 1.0)
}

func TestEvaluate_PersistenceBaseline(t *testing.T) {
	table := evalTable(60)
	cal := hvac.DefaultCalibration()

	log := logrus.New()
	log.SetOutput(io.Discard)

	advisor, err := hvac.NewAdvisor(table, cal, hvac.DefaultPolicy(), log)
	require.NoError(t, err)

	_, test := table.Split(cal.TrainFraction)
	s := evaluate(advisor, test)

	var abs float64
	for _, row := range test {
		abs += math.Abs(row.IndoorTemp - row.TFuture15)
	}
	assert.InDelta(t, abs/float64(len(test)), s.BaseMAE, 1e-12)
}
