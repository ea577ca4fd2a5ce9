package hvac

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/fuzzy"
)

// Result is the outcome of one advisory step.
type Result struct {
	Occupancy float64 `json:"occupancy"` // score in [0,1]
	Occupied  bool    `json:"occupied"`  // score above the policy threshold
	DeltaT    float64 `json:"delta_t"`   // °C change over the next 15 minutes
	TFuture   float64 `json:"t_future"`  // IndoorTemp + DeltaT, exactly
	Action    Action  `json:"action"`
}

// Advisor bundles the two fuzzy systems and the decision policy. It is
// built once at startup and read-only afterwards, so concurrent
// SingleStep calls need no locking.
type Advisor struct {
	occ    *fuzzy.System
	delta  *DeltaModel
	policy Policy
	log    *logrus.Logger

	occFallbacks   atomic.Uint64
	deltaFallbacks atomic.Uint64
}

// NewAdvisor builds both stages from the training table. A nil logger
// falls back to the process-wide standard logger. Any build failure is
// fatal to startup; there are no retry semantics.
func NewAdvisor(t *dataset.Table, cal Calibration, policy Policy, log *logrus.Logger) (*Advisor, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	occSys, err := BuildOccupancySystem(t, cal)
	if err != nil {
		return nil, fmt.Errorf("occupancy system: %w", err)
	}
	deltaModel, err := BuildDeltaModel(t, occSys, cal)
	if err != nil {
		return nil, fmt.Errorf("delta system: %w", err)
	}

	dLo, dHi := deltaModel.Range()
	log.WithFields(logrus.Fields{
		"rows":       t.Len(),
		"occ_rules":  occSys.RuleCount(),
		"delta_lo":   dLo,
		"delta_hi":   dHi,
		"delta_rule": deltaModel.System().RuleCount(),
	}).Info("fuzzy advisor built")

	return &Advisor{occ: occSys, delta: deltaModel, policy: policy, log: log}, nil
}

// SingleStep runs the full two-stage inference for one reading. It never
// fails for finite numeric inputs: out-of-range values clip at
// fuzzification, and queries no rule covers degrade to the conservative
// defaults (unoccupied, zero change).
func (a *Advisor) SingleStep(indoor, outdoor, co2, lighting float64) Result {
	occScore, fired := OccupancyScore(a.occ, co2, lighting)
	if !fired {
		a.occFallbacks.Add(1)
		a.log.WithFields(logrus.Fields{
			"co2":      co2,
			"lighting": lighting,
		}).Warn("no occupancy rule fired, assuming unoccupied")
		occScore = 0
	}

	deltaT, fired := a.delta.Forecast(indoor, outdoor, occScore)
	if !fired {
		a.deltaFallbacks.Add(1)
		a.log.WithFields(logrus.Fields{
			"indoor":    indoor,
			"outdoor":   outdoor,
			"occupancy": occScore,
		}).Warn("no delta rule fired, assuming no temperature change")
	}

	tFuture := indoor + deltaT
	return Result{
		Occupancy: occScore,
		Occupied:  occScore > a.policy.OccupiedThreshold,
		DeltaT:    deltaT,
		TFuture:   tFuture,
		Action:    a.policy.Decide(occScore, tFuture),
	}
}

// NoRuleFallbacks returns how many queries needed the conservative
// fallback in each stage. A climbing rate means the calibrated universes
// no longer cover live readings.
func (a *Advisor) NoRuleFallbacks() (occupancy, delta uint64) {
	return a.occFallbacks.Load(), a.deltaFallbacks.Load()
}

// Policy returns the decision thresholds in use.
func (a *Advisor) Policy() Policy {
	return a.policy
}

// DeltaRange returns the calibrated forecast bounds.
func (a *Advisor) DeltaRange() (lo, hi float64) {
	return a.delta.Range()
}

// OccupancySystem exposes the first stage for evaluation tooling.
func (a *Advisor) OccupancySystem() *fuzzy.System {
	return a.occ
}

// DeltaModel exposes the second stage for evaluation tooling.
func (a *Advisor) DeltaModel() *DeltaModel {
	return a.delta
}
