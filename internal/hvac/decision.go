package hvac

// Action is the crisp HVAC command produced by the decision layer.
type Action string

const (
	ActionHeatOn Action = "HEAT_ON"
	ActionCoolOn Action = "COOL_ON"
	ActionIdle   Action = "IDLE"
	ActionOff    Action = "OFF"
)

// Policy holds the comfort band and occupancy threshold. These encode a
// policy choice, not anything derived from data, and are configurable
// without touching the inference engine.
type Policy struct {
	ComfortLow        float64 // °C, heat below this forecast
	ComfortHigh       float64 // °C, cool above this forecast
	OccupiedThreshold float64 // occupancy score above which the room counts as occupied
}

func DefaultPolicy() Policy {
	return Policy{
		ComfortLow:        21.0,
		ComfortHigh:       24.0,
		OccupiedThreshold: 0.5,
	}
}

// Decide maps an occupancy score and forecast temperature to exactly one
// action. Rooms at or below the occupancy threshold are always OFF,
// regardless of temperature.
func (p Policy) Decide(occupancy, tFuture float64) Action {
	if occupancy <= p.OccupiedThreshold {
		return ActionOff
	}
	switch {
	case tFuture < p.ComfortLow:
		return ActionHeatOn
	case tFuture > p.ComfortHigh:
		return ActionCoolOn
	default:
		return ActionIdle
	}
}
