package transport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, string, ...interface{}) {}
func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Warnf(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	mqtt.Client

	mu           sync.Mutex
	failures     []error
	connects     int
	disconnected bool
}

func (c *fakeClient) Connect() mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connects++
	if len(c.failures) > 0 {
		err := c.failures[0]
		c.failures = c.failures[1:]
		return &fakeToken{err: err}
	}
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	c.disconnected = true
	c.mu.Unlock()
}

func (c *fakeClient) state() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects, c.disconnected
}

func testConfig() MQTTConfig {
	cfg := DefaultMQTTConfig()
	cfg.ConnectWait = time.Millisecond
	cfg.ConnectWaitMax = 2 * time.Millisecond
	return cfg
}

func TestLinearBackOff(t *testing.T) {
	b := &LinearBackOff{Initial: time.Second, Step: time.Second, Max: 3 * time.Second}
	var got []time.Duration
	for i := 0; i < 5; i++ {
		got = append(got, b.NextBackOff())
	}
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second, 3 * time.Second}, got)

	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(fmt.Errorf("dial: %w", unix.EMFILE)))
	assert.True(t, IsFatal(unix.EACCES))
	assert.False(t, IsFatal(unix.ECONNREFUSED))
	assert.False(t, IsFatal(fmt.Errorf("broker said no")))
}

func TestSendHonoursContext(t *testing.T) {
	events := make(chan Event, 1)
	require.NoError(t, Send(context.Background(), events, Event{Topic: "a"}))
	ev := <-events
	assert.Equal(t, "a", ev.Topic)
	assert.False(t, ev.Received.IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Send(ctx, make(chan Event), Event{Topic: "b"}), context.Canceled)
}

func TestMQTTRetriesUntilConnected(t *testing.T) {
	client := &fakeClient{failures: []error{fmt.Errorf("refused"), fmt.Errorf("refused")}}
	m := NewMQTT(testConfig(), nopLogger{})
	m.newClient = func(*mqtt.ClientOptions) mqtt.Client { return client }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, make(chan Event, 1)) }()

	require.Eventually(t, func() bool {
		n, _ := client.state()
		return n == 3
	}, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	_, disconnected := client.state()
	assert.True(t, disconnected)
}

func TestMQTTFatalErrno(t *testing.T) {
	client := &fakeClient{failures: []error{fmt.Errorf("socket: %w", unix.EMFILE)}}
	m := NewMQTT(testConfig(), nopLogger{})
	m.newClient = func(*mqtt.ClientOptions) mqtt.Client { return client }

	err := m.Run(context.Background(), make(chan Event, 1))
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	n, _ := client.state()
	assert.Equal(t, 1, n)
}

func TestMQTTOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Username = "sign"
	cfg.Password = "secret"
	m := NewMQTT(cfg, nopLogger{})
	opts := m.options(context.Background(), make(chan Event, 1))

	assert.True(t, strings.HasPrefix(opts.ClientID, "girder-"))
	assert.Equal(t, "sign", opts.Username)
	require.Len(t, opts.Servers, 1)
	assert.Equal(t, "localhost:1883", opts.Servers[0].Host)
	assert.Contains(t, Subscriptions(), "weather/#")
}
