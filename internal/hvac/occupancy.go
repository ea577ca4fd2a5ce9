package hvac

import (
	"fmt"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/fuzzy"
	"hvac_advisor/internal/model"
)

// Variable names of the occupancy stage.
const (
	VarCO2      = "co2"
	VarLighting = "light"
	VarOccScore = "occ"
)

// occupancyRules maps (lighting, CO2) term pairs to an occupancy term.
// The table is data, not construction code, so alternative rule sets can
// be swapped in for testing.
var occupancyRules = []fuzzy.Rule{
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"dark"}}, {Variable: VarCO2, Terms: []string{"low"}}}, Then: "low"},
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"bright"}}, {Variable: VarCO2, Terms: []string{"low"}}}, Then: "medium"},
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"dim"}}, {Variable: VarCO2, Terms: []string{"medium"}}}, Then: "medium"},
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"bright"}}, {Variable: VarCO2, Terms: []string{"medium"}}}, Then: "high"},
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"bright"}}, {Variable: VarCO2, Terms: []string{"high"}}}, Then: "high"},
	{When: []fuzzy.Clause{{Variable: VarLighting, Terms: []string{"dim"}}, {Variable: VarCO2, Terms: []string{"high"}}}, Then: "high"},
}

// occupancyScoreTerms is the designed output partition on the fixed [0,1]
// score universe. Occupancy is a score, not a calibrated physical
// quantity, so the breakpoints are independent of data.
func occupancyScoreTerms() []fuzzy.Term {
	return []fuzzy.Term{
		{Name: "low", MF: fuzzy.Tri(0, 0, 0.4)},
		{Name: "medium", MF: fuzzy.Tri(0.2, 0.5, 0.8)},
		{Name: "high", MF: fuzzy.Tri(0.6, 1, 1)},
	}
}

// BuildOccupancySystem calibrates the CO2 and lighting universes from the
// table and assembles the (CO2, lighting) -> occupancy score estimator.
func BuildOccupancySystem(t *dataset.Table, cal Calibration) (*fuzzy.System, error) {
	co2Lo, co2Hi := fuzzy.PctRange(t.Column(model.FeatureCO2), cal.InputLoPct, cal.InputHiPct, cal.InputPad)
	lightLo, lightHi := fuzzy.PctRange(t.Column(model.FeatureLighting), cal.InputLoPct, cal.InputHiPct, cal.InputPad)

	co2 := fuzzy.NewVariable(VarCO2,
		fuzzy.NewUniverse(co2Lo, co2Hi, cal.Resolution),
		fuzzy.ThreePartition(co2Lo, co2Hi, [3]string{"low", "medium", "high"}))
	light := fuzzy.NewVariable(VarLighting,
		fuzzy.NewUniverse(lightLo, lightHi, cal.Resolution),
		fuzzy.ThreePartition(lightLo, lightHi, [3]string{"dark", "dim", "bright"}))
	score := fuzzy.NewVariable(VarOccScore,
		fuzzy.NewUniverse(0, 1, cal.ScoreResolution),
		occupancyScoreTerms())

	sys, err := fuzzy.NewSystem([]*fuzzy.Variable{co2, light}, score, occupancyRules)
	if err != nil {
		return nil, fmt.Errorf("assembling occupancy system: %w", err)
	}
	return sys, nil
}

// OccupancyScore queries the estimator for one reading. fired=false means
// the inputs fell outside every rule's support; callers treat that as
// unoccupied.
func OccupancyScore(sys *fuzzy.System, co2, lighting float64) (float64, bool) {
	return sys.Infer(map[string]float64{VarCO2: co2, VarLighting: lighting})
}

// OccupancySeries derives the occupancy feature for every table row.
// Unqueryable rows get a zero score, matching the per-query fallback.
func OccupancySeries(t *dataset.Table, sys *fuzzy.System) []float64 {
	rows := t.Rows()
	out := make([]float64, len(rows))
	for i, r := range rows {
		score, fired := OccupancyScore(sys, r.CO2, r.Lighting)
		if !fired {
			score = 0
		}
		out[i] = score
	}
	return out
}
