package hvac

// Calibration holds the percentile windows and discretization used to
// derive fuzzy universes from training data. The defaults were tuned on
// the SML2010 building dataset; other sensor deployments will likely need
// different windows, which is why this is configuration rather than
// constants inside the model builders.
type Calibration struct {
	// Input variables (temperatures, CO2, lighting, occupancy score).
	InputLoPct float64
	InputHiPct float64
	InputPad   float64

	// Delta output: tighter window and smaller padding, the 15-minute
	// change is distributed narrowly around zero.
	DeltaLoPct float64
	DeltaHiPct float64
	DeltaPad   float64

	// Leading fraction of rows whose statistics may calibrate universes.
	// The trailing rows are reserved for held-out evaluation.
	TrainFraction float64

	// Universe sample points: Resolution for sensor and delta universes,
	// ScoreResolution for the [0,1] occupancy score.
	Resolution      int
	ScoreResolution int
}

func DefaultCalibration() Calibration {
	return Calibration{
		InputLoPct:      1,
		InputHiPct:      99,
		InputPad:        0.05,
		DeltaLoPct:      5,
		DeltaHiPct:      95,
		DeltaPad:        0.03,
		TrainFraction:   0.8,
		Resolution:      401,
		ScoreResolution: 201,
	}
}
