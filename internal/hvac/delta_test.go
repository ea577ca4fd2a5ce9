package hvac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/fuzzy"
)

func buildDeltaModel(t *testing.T) *DeltaModel {
	t.Helper()
	table := syntheticTable(300)
	cal := DefaultCalibration()
	occSys, err := BuildOccupancySystem(table, cal)
	require.NoError(t, err)
	m, err := BuildDeltaModel(table, occSys, cal)
	require.NoError(t, err)
	return m
}

func TestDeltaRuleTable(t *testing.T) {
	require.Len(t, deltaRules, 18)

	// Every rule names exactly one indoor, one outdoor and one occupancy
	// clause, in that order.
	for i, r := range deltaRules {
		require.Len(t, r.When, 3, "rule %d", i)
		assert.Equal(t, VarIndoor, r.When[0].Variable, "rule %d", i)
		assert.Equal(t, VarOutdoor, r.When[1].Variable, "rule %d", i)
		assert.Equal(t, VarOccupancy, r.When[2].Variable, "rule %d", i)
		assert.Len(t, r.When[0].Terms, 1, "rule %d", i)
		assert.Len(t, r.When[1].Terms, 1, "rule %d", i)
		assert.NotEmpty(t, r.When[2].Terms, "rule %d", i)
	}

	// Spot-check the strong moves and the energy-saving stables.
	assert.Equal(t, fuzzy.Rule{When: clauses3("very_cold", "hot", "medium", "high"), Then: "strong_up"}, deltaRules[0])
	assert.Equal(t, fuzzy.Rule{When: clauses3("hot", "cold", "low"), Then: "strong_down"}, deltaRules[14])
	assert.Equal(t, fuzzy.Rule{When: clauses3("hot", "hot", "low", "medium"), Then: "stable"}, deltaRules[17])
}

func TestBuildDeltaModel_CalibratedRange(t *testing.T) {
	m := buildDeltaModel(t)

	lo, hi := m.Range()
	assert.Less(t, lo, 0.0)
	assert.Greater(t, hi, 0.0)
	// The synthetic drift stays well inside one degree per step.
	assert.Greater(t, lo, -1.0)
	assert.Less(t, hi, 1.0)

	assert.Equal(t, 18, m.System().RuleCount())
}

func TestBuildDeltaModel_TrainOnlyCalibration(t *testing.T) {
	table := syntheticTable(300)
	cal := DefaultCalibration()
	occSys, err := BuildOccupancySystem(table, cal)
	require.NoError(t, err)

	full, err := BuildDeltaModel(table, occSys, cal)
	require.NoError(t, err)

	// Rebuilding from just the training slice yields identical bounds:
	// the trailing rows never touch the calibration.
	train, _ := table.Split(cal.TrainFraction)
	trainOnly := cal
	trainOnly.TrainFraction = 1.0
	fromTrain, err := BuildDeltaModel(dataset.NewTable(train), occSys, trainOnly)
	require.NoError(t, err)

	fLo, fHi := full.Range()
	tLo, tHi := fromTrain.Range()
	assert.InDelta(t, fLo, tLo, 1e-12)
	assert.InDelta(t, fHi, tHi, 1e-12)
}

func TestForecast_ClippedToRange(t *testing.T) {
	m := buildDeltaModel(t)
	lo, hi := m.Range()

	for _, tc := range [][3]float64{
		{16, 26, 0.9}, {26, 4, 0.1}, {21, 21, 0.5}, {35, -10, 1.0},
	} {
		delta, fired := m.Forecast(tc[0], tc[1], tc[2])
		if !fired {
			assert.Zero(t, delta)
			continue
		}
		assert.GreaterOrEqual(t, delta, lo)
		assert.LessOrEqual(t, delta, hi)
	}
}

func TestForecast_StableWhenTemperaturesMatch(t *testing.T) {
	m := buildDeltaModel(t)

	// Matched indoor/outdoor bands keep the forecast near zero across the
	// whole occupancy range; unfired corners fall back to exactly zero.
	for _, temp := range []float64{18, 21, 24} {
		for occ := 0.0; occ <= 1.0; occ += 0.25 {
			delta, _ := m.Forecast(temp, temp, occ)
			assert.InDelta(t, 0.0, delta, 0.25, "temp=%v occ=%v", temp, occ)
		}
	}
}

func TestForecast_DirectionOfPull(t *testing.T) {
	m := buildDeltaModel(t)

	// Cold room, hot outside, occupied: temperature moves up.
	up, fired := m.Forecast(17, 25, 0.85)
	require.True(t, fired)
	assert.Greater(t, up, 0.0)

	// Hot room, cold outside, empty: temperature moves down.
	down, fired := m.Forecast(25, 5, 0.1)
	require.True(t, fired)
	assert.Less(t, down, 0.0)
}
