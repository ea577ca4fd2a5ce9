package ws

import (
	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/hvac"
)

// Bridge broadcasts advice produced outside the WebSocket path, such as
// decisions made for MQTT sensor readings, to all connected clients.
type Bridge struct {
	hub *Hub
	log *logrus.Logger
}

func NewBridge(hub *Hub, log *logrus.Logger) *Bridge {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bridge{hub: hub, log: log}
}

func (b *Bridge) OnDecision(res hvac.Result) {
	msg, err := NewEnvelope(TypeAdviseResult, AdviseResultPayload{Result: res})
	if err != nil {
		b.log.WithError(err).Error("marshaling advice broadcast")
		return
	}
	b.hub.Broadcast(msg)
}
