package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/hvac"
)

// Options configures the broker connection and topics.
type Options struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	ReadingsTopic  string
	DecisionsTopic string
}

// ReadingMessage is the sensor quadruple published by room controllers.
// Pointers distinguish a missing field from a zero reading.
type ReadingMessage struct {
	Indoor    *float64  `json:"indoor"`
	Outdoor   *float64  `json:"outdoor"`
	CO2       *float64  `json:"co2"`
	Lighting  *float64  `json:"lighting"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// DecisionMessage is the advice published back for each reading.
type DecisionMessage struct {
	hvac.Result
	Timestamp time.Time `json:"timestamp"`
}

// Bridge subscribes to sensor readings, runs them through the advisor and
// publishes the resulting decisions.
type Bridge struct {
	client  mqtt.Client
	opts    Options
	advisor *hvac.Advisor
	logger  *logrus.Logger

	onDecision func(hvac.Result)
}

func NewBridge(opts Options, advisor *hvac.Advisor, logger *logrus.Logger) *Bridge {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	b := &Bridge{
		opts:    opts,
		advisor: advisor,
		logger:  logger,
	}

	clientOpts := mqtt.NewClientOptions()
	clientOpts.AddBroker(opts.Broker)
	clientOpts.SetClientID(opts.ClientID)
	clientOpts.SetUsername(opts.Username)
	clientOpts.SetPassword(opts.Password)
	clientOpts.SetAutoReconnect(true)
	clientOpts.SetConnectRetry(true)
	clientOpts.SetConnectRetryInterval(5 * time.Second)
	clientOpts.SetKeepAlive(60 * time.Second)

	clientOpts.SetConnectionLostHandler(b.onConnectionLost)
	clientOpts.SetOnConnectHandler(b.onConnect)

	b.client = mqtt.NewClient(clientOpts)

	return b
}

// SetDecisionCallback registers an extra consumer for published decisions,
// such as the WebSocket broadcast bridge.
func (b *Bridge) SetDecisionCallback(fn func(hvac.Result)) {
	b.onDecision = fn
}

func (b *Bridge) Connect() error {
	b.logger.WithField("broker", b.opts.Broker).Info("connecting to MQTT broker")

	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	b.logger.Info("connected to MQTT broker")
	return nil
}

func (b *Bridge) Disconnect() {
	b.logger.Info("disconnecting from MQTT broker")
	b.client.Disconnect(250)
}

func (b *Bridge) onConnect(client mqtt.Client) {
	if token := client.Subscribe(b.opts.ReadingsTopic, 1, b.handleReading); token.Wait() && token.Error() != nil {
		b.logger.WithError(token.Error()).WithField("topic", b.opts.ReadingsTopic).Error("subscribe failed")
		return
	}
	b.logger.WithField("topic", b.opts.ReadingsTopic).Info("subscribed to readings topic")
}

func (b *Bridge) onConnectionLost(client mqtt.Client, err error) {
	b.logger.WithError(err).Error("MQTT connection lost")
}

func (b *Bridge) handleReading(client mqtt.Client, msg mqtt.Message) {
	var reading ReadingMessage
	if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
		b.logger.WithError(err).Warn("dropping unparseable reading")
		return
	}
	if reading.Indoor == nil || reading.Outdoor == nil || reading.CO2 == nil || reading.Lighting == nil {
		b.logger.Warn("dropping reading with missing fields")
		return
	}

	res := b.advisor.SingleStep(*reading.Indoor, *reading.Outdoor, *reading.CO2, *reading.Lighting)

	ts := reading.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	b.publishDecision(DecisionMessage{Result: res, Timestamp: ts})

	if b.onDecision != nil {
		b.onDecision(res)
	}
}

func (b *Bridge) publishDecision(decision DecisionMessage) {
	payload, err := json.Marshal(decision)
	if err != nil {
		b.logger.WithError(err).Error("marshaling decision")
		return
	}
	if token := b.client.Publish(b.opts.DecisionsTopic, 1, false, payload); token.Wait() && token.Error() != nil {
		b.logger.WithError(token.Error()).Error("publishing decision")
		return
	}
	b.logger.WithFields(logrus.Fields{
		"action":    decision.Action,
		"occupancy": fmt.Sprintf("%.3f", decision.Occupancy),
		"t_future":  fmt.Sprintf("%.2f", decision.TFuture),
	}).Debug("published decision")
}
