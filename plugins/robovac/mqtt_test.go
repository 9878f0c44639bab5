package robovac

import (
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }

func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// stubClient records broker subscriptions. Methods it does not override
// panic through the nil embedded client.
type stubClient struct {
	mqtt.Client
	mu           sync.Mutex
	subscribeErr error
	subscribes   []string
	unsubscribes []string
}

func (c *stubClient) Subscribe(topic string, _ byte, _ mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribes = append(c.subscribes, topic)
	return doneToken{err: c.subscribeErr}
}

func (c *stubClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsubscribes = append(c.unsubscribes, topics...)
	return doneToken{}
}

func newStubSession(client *stubClient) *mqttClient {
	return &mqttClient{client: client, log: zap.NewNop().Sugar(), subs: make(map[string]map[int]func([]byte))}
}

func TestSubscribeSharesBrokerSubscription(t *testing.T) {
	client := &stubClient{}
	session := newStubSession(client)

	unsubA, err := session.subscribe("robovac/vac1/state", func([]byte) {})
	require.NoError(t, err)
	unsubB, err := session.subscribe("robovac/vac1/state", func([]byte) {})
	require.NoError(t, err)
	assert.Equal(t, []string{"robovac/vac1/state"}, client.subscribes)

	unsubA()
	assert.Empty(t, client.unsubscribes)
	unsubB()
	assert.Equal(t, []string{"robovac/vac1/state"}, client.unsubscribes)
}

func TestSubscribeFailureIsRetried(t *testing.T) {
	client := &stubClient{subscribeErr: errors.New("not authorized")}
	session := newStubSession(client)

	_, err := session.subscribe("robovac/vac1/state", func([]byte) {})
	require.Error(t, err)
	assert.Empty(t, session.subs)

	client.subscribeErr = nil
	_, err = session.subscribe("robovac/vac1/state", func([]byte) {})
	require.NoError(t, err)
	assert.Equal(t, []string{"robovac/vac1/state", "robovac/vac1/state"}, client.subscribes)
	assert.Len(t, session.subs["robovac/vac1/state"], 1)
}
