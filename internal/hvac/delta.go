package hvac

import (
	"fmt"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/fuzzy"
)

// Variable names of the forecast stage.
const (
	VarIndoor    = "indoor"
	VarOutdoor   = "outdoor"
	VarOccupancy = "occupancy"
	VarDelta     = "delta"
)

var (
	tempTermNames  = [5]string{"very_cold", "cold", "normal", "warm", "hot"}
	deltaTermNames = [5]string{"strong_down", "slight_down", "stable", "slight_up", "strong_up"}
	occTermNames   = [3]string{"low", "medium", "high"}
)

// deltaRules encodes the forecast rule base: large indoor/outdoor gaps
// with occupancy present pull the forecast toward the outdoor
// temperature, matched bands are stable, and low-occupancy rooms stay
// stable even with a gap (energy-saving bias).
var deltaRules = []fuzzy.Rule{
	{When: clauses3("very_cold", "hot", "medium", "high"), Then: "strong_up"},
	{When: clauses3("cold", "hot", "medium", "high"), Then: "strong_up"},
	{When: clauses3("very_cold", "warm", "high"), Then: "slight_up"},
	{When: clauses3("cold", "warm", "high"), Then: "slight_up"},
	{When: clauses3("normal", "warm", "low"), Then: "slight_up"},
	{When: clauses3("normal", "warm", "high"), Then: "slight_up"},
	{When: clauses3("normal", "hot", "medium"), Then: "slight_up"},
	{When: clauses3("normal", "normal", "low"), Then: "stable"},
	{When: clauses3("normal", "normal", "high"), Then: "slight_up"},
	{When: clauses3("warm", "warm", "low", "medium"), Then: "stable"},
	{When: clauses3("cold", "cold", "low", "medium"), Then: "stable"},
	{When: clauses3("warm", "normal", "low"), Then: "slight_down"},
	{When: clauses3("warm", "normal", "high"), Then: "stable"},
	{When: clauses3("hot", "normal", "low"), Then: "slight_down"},
	{When: clauses3("hot", "cold", "low"), Then: "strong_down"},
	{When: clauses3("hot", "cold", "high"), Then: "slight_down"},
	{When: clauses3("very_cold", "very_cold", "low", "medium"), Then: "stable"},
	{When: clauses3("hot", "hot", "low", "medium"), Then: "stable"},
}

// clauses3 builds the three-clause antecedent (indoor, outdoor,
// occupancy). The occupancy clause takes one or two terms; two terms form
// an inner disjunction.
func clauses3(indoor, outdoor string, occ ...string) []fuzzy.Clause {
	return []fuzzy.Clause{
		{Variable: VarIndoor, Terms: []string{indoor}},
		{Variable: VarOutdoor, Terms: []string{outdoor}},
		{Variable: VarOccupancy, Terms: occ},
	}
}

// DeltaModel forecasts the indoor temperature change over the next 15
// minutes. Immutable after construction; safe for concurrent queries.
type DeltaModel struct {
	system *fuzzy.System
	lo, hi float64 // calibrated delta range, raw centroids are clipped here
}

// BuildDeltaModel derives the occupancy feature for every row, calibrates
// all universes from the leading TrainFraction of rows only, and
// assembles the (indoor, outdoor, occupancy) -> delta forecaster. The
// trailing evaluation rows never influence universe bounds.
func BuildDeltaModel(t *dataset.Table, occSys *fuzzy.System, cal Calibration) (*DeltaModel, error) {
	occVals := OccupancySeries(t, occSys)

	train, _ := t.Split(cal.TrainFraction)
	n := len(train)
	indoor := make([]float64, n)
	outdoor := make([]float64, n)
	occ := make([]float64, n)
	deltas := make([]float64, n)
	for i, r := range train {
		indoor[i] = r.IndoorTemp
		outdoor[i] = r.OutdoorTemp
		occ[i] = occVals[i]
		deltas[i] = r.Delta15
	}

	indoorLo, indoorHi := fuzzy.PctRange(indoor, cal.InputLoPct, cal.InputHiPct, cal.InputPad)
	outdoorLo, outdoorHi := fuzzy.PctRange(outdoor, cal.InputLoPct, cal.InputHiPct, cal.InputPad)
	occLo, occHi := fuzzy.PctRange(occ, cal.InputLoPct, cal.InputHiPct, cal.InputPad)
	dLo, dHi := fuzzy.PctRange(deltas, cal.DeltaLoPct, cal.DeltaHiPct, cal.DeltaPad)

	indoorVar := fuzzy.NewVariable(VarIndoor,
		fuzzy.NewUniverse(indoorLo, indoorHi, cal.Resolution),
		fuzzy.FivePartition(indoorLo, indoorHi, tempTermNames))
	outdoorVar := fuzzy.NewVariable(VarOutdoor,
		fuzzy.NewUniverse(outdoorLo, outdoorHi, cal.Resolution),
		fuzzy.FivePartition(outdoorLo, outdoorHi, tempTermNames))
	occVar := fuzzy.NewVariable(VarOccupancy,
		fuzzy.NewUniverse(occLo, occHi, cal.ScoreResolution),
		fuzzy.ThreePartition(occLo, occHi, occTermNames))
	deltaVar := fuzzy.NewVariable(VarDelta,
		fuzzy.NewUniverse(dLo, dHi, cal.Resolution),
		fuzzy.FivePartition(dLo, dHi, deltaTermNames))

	sys, err := fuzzy.NewSystem([]*fuzzy.Variable{indoorVar, outdoorVar, occVar}, deltaVar, deltaRules)
	if err != nil {
		return nil, fmt.Errorf("assembling delta system: %w", err)
	}
	return &DeltaModel{system: sys, lo: dLo, hi: dHi}, nil
}

// Forecast returns the predicted 15-minute change, clipped to the
// calibrated delta range. fired=false reports that no rule fired and the
// conservative zero-change fallback was substituted.
func (m *DeltaModel) Forecast(indoor, outdoor, occScore float64) (delta float64, fired bool) {
	raw, fired := m.system.Infer(map[string]float64{
		VarIndoor:    indoor,
		VarOutdoor:   outdoor,
		VarOccupancy: occScore,
	})
	if !fired {
		return 0, false
	}
	if raw < m.lo {
		raw = m.lo
	}
	if raw > m.hi {
		raw = m.hi
	}
	return raw, true
}

// Range returns the calibrated delta universe bounds.
func (m *DeltaModel) Range() (lo, hi float64) {
	return m.lo, m.hi
}

// System exposes the underlying inference bundle for introspection.
func (m *DeltaModel) System() *fuzzy.System {
	return m.system
}
