package robovac

import (
	"errors"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// pubSub is the slice of an MQTT session the bridge and publisher use.
type pubSub interface {
	subscribe(topic string, cb func([]byte)) (func(), error)
	publish(topic string, retained bool, payload []byte) error
}

type mqttClient struct {
	client mqtt.Client
	log    *zap.SugaredLogger
	mu     sync.Mutex
	subs   map[string]map[int]func([]byte)
	nextID int
}

// MQTTConfig describes the broker shared with the local protocol bridge.
type MQTTConfig struct {
	Broker   string
	Username string
	Password string
	ClientID string
	Log      *zap.SugaredLogger
}

func newMQTTClient(cfg MQTTConfig) (*mqttClient, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt broker is required")
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetConnectRetry(true).
		SetConnectTimeout(10 * time.Second).
		SetKeepAlive(30 * time.Second)

	mc := &mqttClient{log: log, subs: make(map[string]map[int]func([]byte))}
	opts.SetDefaultPublishHandler(mc.dispatch)
	opts.OnConnect = func(client mqtt.Client) {
		log.Infow("connected to broker", "broker", cfg.Broker)
		mc.resubscribeAll(client)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warnw("lost broker connection", "broker", cfg.Broker, "error", err)
	}
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	mc.client = client
	return mc, nil
}

func (c *mqttClient) subscribe(topic string, cb func([]byte)) (func(), error) {
	c.mu.Lock()
	if c.subs[topic] == nil {
		c.subs[topic] = make(map[int]func([]byte))
	}
	id := c.nextID
	c.nextID++
	c.subs[topic][id] = cb
	needSubscribe := len(c.subs[topic]) == 1
	c.mu.Unlock()

	if needSubscribe {
		if token := c.client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
			c.mu.Lock()
			delete(c.subs[topic], id)
			if len(c.subs[topic]) == 0 {
				delete(c.subs, topic)
			}
			c.mu.Unlock()
			return nil, token.Error()
		}
	}

	return func() {
		c.mu.Lock()
		callbacks := c.subs[topic]
		if callbacks == nil {
			c.mu.Unlock()
			return
		}
		delete(callbacks, id)
		shouldUnsub := len(callbacks) == 0
		if shouldUnsub {
			delete(c.subs, topic)
		}
		c.mu.Unlock()
		if shouldUnsub {
			_ = c.client.Unsubscribe(topic).Wait()
		}
	}, nil
}

func (c *mqttClient) publish(topic string, retained bool, payload []byte) error {
	if token := c.client.Publish(topic, 1, retained, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (c *mqttClient) dispatch(_ mqtt.Client, msg mqtt.Message) {
	c.mu.Lock()
	callbacks := c.subs[msg.Topic()]
	list := make([]func([]byte), 0, len(callbacks))
	for _, cb := range callbacks {
		list = append(list, cb)
	}
	c.mu.Unlock()
	for _, cb := range list {
		cb(msg.Payload())
	}
}

func (c *mqttClient) resubscribeAll(client mqtt.Client) {
	c.mu.Lock()
	topics := make([]string, 0, len(c.subs))
	for topic := range c.subs {
		topics = append(topics, topic)
	}
	c.mu.Unlock()
	for _, topic := range topics {
		if token := client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
			c.log.Warnw("resubscribe failed", "topic", topic, "error", token.Error())
		}
	}
}

func (c *mqttClient) close() {
	c.client.Disconnect(250)
}
