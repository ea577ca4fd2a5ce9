package hvac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOccupancySystem(t *testing.T) {
	sys, err := BuildOccupancySystem(syntheticTable(300), DefaultCalibration())
	require.NoError(t, err)

	assert.Equal(t, 6, sys.RuleCount())

	// The score universe is the fixed [0,1], independent of data.
	out := sys.Output()
	assert.Equal(t, 0.0, out.Universe.Lo)
	assert.Equal(t, 1.0, out.Universe.Hi)
	require.Len(t, out.Terms, 3)
}

func TestOccupancyScore_WithinUnitInterval(t *testing.T) {
	sys, err := BuildOccupancySystem(syntheticTable(300), DefaultCalibration())
	require.NoError(t, err)

	for _, tc := range [][2]float64{
		{350, 5}, {400, 60}, {650, 50}, {900, 90}, {1200, 120}, {0, 0},
	} {
		score, fired := OccupancyScore(sys, tc[0], tc[1])
		if !fired {
			continue
		}
		assert.GreaterOrEqual(t, score, 0.0, "co2=%v light=%v", tc[0], tc[1])
		assert.LessOrEqual(t, score, 1.0, "co2=%v light=%v", tc[0], tc[1])
	}
}

func TestOccupancyScore_MonotoneInCO2AtBright(t *testing.T) {
	table := syntheticTable(300)
	sys, err := BuildOccupancySystem(table, DefaultCalibration())
	require.NoError(t, err)

	co2 := sys.Inputs()[0].Universe
	bright := sys.Inputs()[1].Universe.Hi

	// More CO2 must mean more occupancy. Centroid defuzzification wobbles
	// by well under 0.02 where rule dominance hands over, so allow that
	// much slack per step while requiring a clear overall rise.
	first, fired := OccupancyScore(sys, co2.Lo, bright)
	require.True(t, fired)
	prev := first
	for i := 1; i <= 100; i++ {
		x := co2.Lo + (co2.Hi-co2.Lo)*float64(i)/100
		score, fired := OccupancyScore(sys, x, bright)
		require.True(t, fired, "co2=%v", x)
		assert.GreaterOrEqual(t, score, prev-0.02, "co2=%v", x)
		prev = score
	}
	assert.Greater(t, prev, first+0.2, "score should rise across the CO2 range")
}

func TestOccupancyScore_NoRuleFired(t *testing.T) {
	sys, err := BuildOccupancySystem(syntheticTable(300), DefaultCalibration())
	require.NoError(t, err)

	// Darkest lighting with the highest CO2 is outside the rule table:
	// no dark&high rule exists, and every other antecedent has zero
	// membership there.
	dark := sys.Inputs()[1].Universe.Lo
	high := sys.Inputs()[0].Universe.Hi
	_, fired := OccupancyScore(sys, high, dark)
	assert.False(t, fired)
}

func TestOccupancySeries(t *testing.T) {
	table := syntheticTable(300)
	sys, err := BuildOccupancySystem(table, DefaultCalibration())
	require.NoError(t, err)

	series := OccupancySeries(table, sys)
	require.Len(t, series, table.Len())
	for i, s := range series {
		assert.GreaterOrEqual(t, s, 0.0, "row %d", i)
		assert.LessOrEqual(t, s, 1.0, "row %d", i)
	}

	// The synthetic day cycle produces a real occupancy spread.
	var lo, hi = series[0], series[0]
	for _, s := range series {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	assert.Less(t, lo, 0.35)
	assert.Greater(t, hi, 0.7)
}
