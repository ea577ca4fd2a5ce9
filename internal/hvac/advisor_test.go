package hvac

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAdvisor(t *testing.T) *Advisor {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	a, err := NewAdvisor(syntheticTable(300), DefaultCalibration(), DefaultPolicy(), log)
	require.NoError(t, err)
	return a
}

func TestSingleStep_QuietRoom(t *testing.T) {
	a := buildAdvisor(t)

	// Low CO2 with moderate light: a low-to-medium occupancy estimate and
	// a forecast close to the current temperature.
	r := a.SingleStep(21, 12, 400, 60)

	assert.Less(t, r.Occupancy, 0.7)
	assert.InDelta(t, 21.0, r.TFuture, 0.4)
	assert.Contains(t, []Action{ActionIdle, ActionOff}, r.Action)
}

func TestSingleStep_ColdRoomHotOutsideOccupied(t *testing.T) {
	a := buildAdvisor(t)

	// Bright, high CO2: occupied. Hot outside pulls the cold room upward,
	// but one 15-minute step cannot reach the comfort band.
	r := a.SingleStep(18, 25, 900, 90)

	assert.Greater(t, r.Occupancy, 0.5)
	assert.True(t, r.Occupied)
	assert.Greater(t, r.DeltaT, 0.0)
	assert.Equal(t, ActionHeatOn, r.Action)
}

func TestSingleStep_WarmEmptyRoom(t *testing.T) {
	a := buildAdvisor(t)

	// Dark and low CO2: unoccupied, so the advisor switches off no matter
	// the temperatures.
	r := a.SingleStep(26, 5, 350, 5)

	assert.LessOrEqual(t, r.Occupancy, 0.5)
	assert.False(t, r.Occupied)
	assert.Equal(t, ActionOff, r.Action)
}

func TestSingleStep_RoundTripExact(t *testing.T) {
	a := buildAdvisor(t)

	inputs := [][4]float64{
		{21, 12, 400, 60},
		{18, 25, 900, 90},
		{26, 5, 350, 5},
		{22.5, 22.5, 650, 50},
		{-40, 60, 1e6, -5},
	}
	for _, in := range inputs {
		r := a.SingleStep(in[0], in[1], in[2], in[3])
		assert.InDelta(t, in[0]+r.DeltaT, r.TFuture, 1e-9, "inputs %v", in)
	}
}

func TestSingleStep_ForecastWithinCalibratedRange(t *testing.T) {
	a := buildAdvisor(t)
	lo, hi := a.DeltaRange()

	for indoor := 15.0; indoor <= 28.0; indoor += 1.3 {
		for outdoor := 2.0; outdoor <= 28.0; outdoor += 2.6 {
			r := a.SingleStep(indoor, outdoor, 700, 80)
			assert.GreaterOrEqual(t, r.DeltaT, lo)
			assert.LessOrEqual(t, r.DeltaT, hi)
		}
	}
}

func TestSingleStep_FallbackCounters(t *testing.T) {
	a := buildAdvisor(t)

	occBefore, deltaBefore := a.NoRuleFallbacks()
	require.Zero(t, occBefore)
	require.Zero(t, deltaBefore)

	// Dark room with very high CO2 sits outside the occupancy rule table;
	// the fallback treats it as unoccupied and switches off.
	r := a.SingleStep(21, 12, 5000, 0)
	assert.Zero(t, r.Occupancy)
	assert.Equal(t, ActionOff, r.Action)

	occAfter, _ := a.NoRuleFallbacks()
	assert.Equal(t, uint64(1), occAfter)
}

func TestSingleStep_ConcurrentQueries(t *testing.T) {
	a := buildAdvisor(t)

	want := a.SingleStep(20, 15, 600, 70)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := a.SingleStep(20, 15, 600, 70)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}

func TestNewAdvisor_NilLogger(t *testing.T) {
	a, err := NewAdvisor(syntheticTable(100), DefaultCalibration(), DefaultPolicy(), nil)
	require.NoError(t, err)
	assert.NotNil(t, a)
}
