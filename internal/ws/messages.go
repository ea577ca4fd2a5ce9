package ws

import (
	"encoding/json"
	"time"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeAdviseRequest = "advise:request"

	// Server -> Client
	TypeAdviseResult = "advise:result"
	TypeModelLoaded  = "model:loaded"
	TypeError        = "error"
)

// Client -> Server messages

// AdviseRequestPayload carries one sensor quadruple. Pointers distinguish
// a missing field from a zero reading.
type AdviseRequestPayload struct {
	ID       string   `json:"id,omitempty"`
	Indoor   *float64 `json:"indoor"`
	Outdoor  *float64 `json:"outdoor"`
	CO2      *float64 `json:"co2"`
	Lighting *float64 `json:"lighting"`
}

// Server -> Client messages

type AdviseResultPayload struct {
	ID string `json:"id,omitempty"`
	hvac.Result
}

type ErrorPayload struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

type TimeRangeInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DeltaRangeInfo struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

type ModelLoadedPayload struct {
	Rows           int            `json:"rows"`
	TimeRange      TimeRangeInfo  `json:"time_range"`
	DeltaRange     DeltaRangeInfo `json:"delta_range"`
	OccupancyRules int            `json:"occupancy_rules"`
	DeltaRules     int            `json:"delta_rules"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func ModelLoadedFrom(t *dataset.Table, a *hvac.Advisor) ModelLoadedPayload {
	p := ModelLoadedPayload{
		Rows:           t.Len(),
		OccupancyRules: a.OccupancySystem().RuleCount(),
		DeltaRules:     a.DeltaModel().System().RuleCount(),
	}
	p.DeltaRange.Lo, p.DeltaRange.Hi = a.DeltaRange()
	if tr, ok := t.TimeRange(); ok {
		p.TimeRange.Start = tr.Start.Format(time.RFC3339)
		p.TimeRange.End = tr.End.Format(time.RFC3339)
	}
	return p
}
