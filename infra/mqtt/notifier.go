package mqtt

import (
	"encoding/json"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fieldserve/crewsched/core/events"
	"github.com/fieldserve/crewsched/infra/logger"
)

// pahoClient is the subset of the Paho client the notifier uses; it exists
// so tests can substitute a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Notifier publishes conflict events to an MQTT topic so field crews'
// mobile gateways can react to double-bookings as they are detected.
type Notifier struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewNotifier connects to the broker described by cfg.
func NewNotifier(cfg Config) (*Notifier, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_notifier")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Notifier{cli: c, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// PublishConflict publishes the event as JSON.
func (n *Notifier) PublishConflict(ev events.ConflictEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	token := n.cli.Publish(n.topic, n.qos, false, b)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	n.cli.Disconnect(250)
}
