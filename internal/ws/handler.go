package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes advice requests to the
// advisor.
type Handler struct {
	hub     *Hub
	advisor *hvac.Advisor
	table   *dataset.Table
	log     *logrus.Logger
}

func NewHandler(hub *Hub, advisor *hvac.Advisor, table *dataset.Table, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{hub: hub, advisor: advisor, table: table, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Greet with model metadata so clients can render valid input ranges
	h.sendModelLoaded(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("websocket read error")
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(c, "", "invalid message: "+err.Error())
		return
	}

	switch env.Type {
	case TypeAdviseRequest:
		var p AdviseRequestPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "", "invalid advise:request payload: "+err.Error())
			return
		}
		if p.Indoor == nil || p.Outdoor == nil || p.CO2 == nil || p.Lighting == nil {
			h.sendError(c, p.ID, "advise:request needs numeric indoor, outdoor, co2 and lighting fields")
			return
		}
		res := h.advisor.SingleStep(*p.Indoor, *p.Outdoor, *p.CO2, *p.Lighting)
		h.sendTo(c, TypeAdviseResult, AdviseResultPayload{ID: p.ID, Result: res})

	default:
		h.sendError(c, "", "unknown message type: "+env.Type)
	}
}

func (h *Handler) sendModelLoaded(c *Client) {
	h.sendTo(c, TypeModelLoaded, ModelLoadedFrom(h.table, h.advisor))
}

func (h *Handler) sendError(c *Client, id, message string) {
	h.sendTo(c, TypeError, ErrorPayload{ID: id, Message: message})
}

func (h *Handler) sendTo(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.WithError(err).WithField("type", msgType).Error("marshaling message")
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
