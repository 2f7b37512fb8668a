package transport

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig describes the broker connection.
type MQTTConfig struct {
	Broker         string
	ClientIDPrefix string
	Username       string
	Password       string
	KeepAlive      time.Duration
	ConnectWait    time.Duration
	ConnectWaitMax time.Duration
	Topics         []string
}

// DefaultMQTTConfig matches a local broker with no authentication.
func DefaultMQTTConfig() MQTTConfig {
	return MQTTConfig{
		Broker:         "tcp://localhost:1883",
		ClientIDPrefix: "girder",
		KeepAlive:      60 * time.Second,
		ConnectWait:    time.Second,
		ConnectWaitMax: 60 * time.Second,
		Topics:         Subscriptions(),
	}
}

// MQTT is an event Source backed by a broker subscription.
type MQTT struct {
	cfg MQTTConfig
	log Logger

	// newClient is replaced in tests.
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

func NewMQTT(cfg MQTTConfig, log Logger) *MQTT {
	if len(cfg.Topics) == 0 {
		cfg.Topics = Subscriptions()
	}
	return &MQTT{cfg: cfg, log: log, newClient: mqtt.NewClient}
}

func (m *MQTT) clientID() string {
	return fmt.Sprintf("%s-%d", m.cfg.ClientIDPrefix, rand.IntN(65536))
}

func (m *MQTT) options(ctx context.Context, events chan<- Event) *mqtt.ClientOptions {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		ev := Event{Topic: msg.Topic(), Payload: append([]byte(nil), msg.Payload()...)}
		if err := Send(ctx, events, ev); err != nil {
			m.log.Debugf("mqtt", "dropped %s: %v", ev.Topic, err)
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(m.cfg.Broker).
		SetClientID(m.clientID()).
		SetKeepAlive(m.cfg.KeepAlive).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(m.cfg.ConnectWaitMax).
		SetCleanSession(true)
	if m.cfg.Username != "" {
		opts.SetUsername(m.cfg.Username)
		opts.SetPassword(m.cfg.Password)
	}
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		m.log.Infof("mqtt", "connected to %s", m.cfg.Broker)
		for _, topic := range m.cfg.Topics {
			token := c.Subscribe(topic, 0, handler)
			if token.Wait() && token.Error() != nil {
				m.log.Errorf("mqtt", "subscribe %s: %v", topic, token.Error())
				continue
			}
			m.log.Debugf("mqtt", "subscribed to %s", topic)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		m.log.Warnf("mqtt", "connection lost: %v", err)
	})
	return opts
}

// Run connects, retrying with a linear backoff, and forwards every
// message until ctx is done. Only a fatal system error is returned.
func (m *MQTT) Run(ctx context.Context, events chan<- Event) error {
	client := m.newClient(m.options(ctx, events))

	attempt := 0
	connect := func() (struct{}, error) {
		attempt++
		m.log.Debugf("mqtt", "connect attempt %d", attempt)
		token := client.Connect()
		token.Wait()
		if err := token.Error(); err != nil {
			return struct{}{}, classify(err)
		}
		return struct{}{}, nil
	}
	_, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(&LinearBackOff{
			Initial: m.cfg.ConnectWait,
			Step:    time.Second,
			Max:     m.cfg.ConnectWaitMax,
		}),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			m.log.Errorf("mqtt", "connection failed, attempt %d: %v (retry in %s)", attempt, err, wait)
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("mqtt connect: %w", err)
	}

	<-ctx.Done()
	client.Disconnect(250)
	m.log.Infof("mqtt", "disconnected")
	return nil
}
