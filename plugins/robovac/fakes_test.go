package robovac

import (
	"context"
	"maps"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeTransport struct {
	mu       sync.Mutex
	dps      map[string]any
	getErr   error
	setErr   error
	sets     []map[string]any
	gets     int
	disabled bool
	push     PushFunc
	// seq is stamped on every Get reply; zero leaves replies unordered.
	seq uint64
	// entered and release, when set, park Get after it has taken its reply.
	entered chan struct{}
	release chan struct{}
}

func newFakeTransport(dps map[string]any) *fakeTransport {
	return &fakeTransport{dps: dps}
}

func (f *fakeTransport) Get(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	f.gets++
	if f.getErr != nil {
		err := f.getErr
		f.mu.Unlock()
		return Snapshot{}, err
	}
	snapshot := Snapshot{DPs: maps.Clone(f.dps), Seq: f.seq}
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}
	return snapshot, nil
}

func (f *fakeTransport) Set(_ context.Context, dps map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets = append(f.sets, maps.Clone(dps))
	return nil
}

func (f *fakeTransport) Disable(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = true
	return nil
}

func (f *fakeTransport) setGetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *fakeTransport) lastSet() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sets) == 0 {
		return nil
	}
	return f.sets[len(f.sets)-1]
}

func (f *fakeTransport) dialer() Dialer {
	return func(_ context.Context, _ ConnectConfig, onPush PushFunc) (Transport, error) {
		f.mu.Lock()
		f.push = onPush
		f.mu.Unlock()
		return f, nil
	}
}

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func newTestDevice(cfg DeviceConfig, transport *fakeTransport) (*Device, *observer.ObservedLogs) {
	log, logs := observedLogger()
	opts := Options{Log: log}
	if transport != nil {
		opts.Dialer = transport.dialer()
	}
	return NewDevice(context.Background(), cfg, opts), logs
}

func t2118Config() DeviceConfig {
	return DeviceConfig{ID: "vac1", Name: "Hallway", Model: "T2118A", IPAddress: "192.168.1.20", AccessToken: "key"}
}

// fakeBroker is an in-memory pubSub. Publishing to a topic synchronously
// runs its subscribers.
type fakeBroker struct {
	mu        sync.Mutex
	subs      map[string]map[int]func([]byte)
	nextID    int
	published []published
	retained  map[string][]byte
	onPublish func(topic string, payload []byte)
}

type published struct {
	topic    string
	retained bool
	payload  []byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{subs: map[string]map[int]func([]byte){}, retained: map[string][]byte{}}
}

func (b *fakeBroker) subscribe(topic string, cb func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = map[int]func([]byte){}
	}
	id := b.nextID
	b.nextID++
	b.subs[topic][id] = cb
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}, nil
}

func (b *fakeBroker) publish(topic string, retained bool, payload []byte) error {
	b.mu.Lock()
	b.published = append(b.published, published{topic: topic, retained: retained, payload: payload})
	if retained {
		if len(payload) == 0 {
			delete(b.retained, topic)
		} else {
			b.retained[topic] = payload
		}
	}
	hook := b.onPublish
	b.mu.Unlock()
	if hook != nil {
		hook(topic, payload)
	}
	return nil
}

// deliver runs the subscribers of topic as the broker would.
func (b *fakeBroker) deliver(topic string, payload []byte) {
	b.mu.Lock()
	list := make([]func([]byte), 0, len(b.subs[topic]))
	for _, cb := range b.subs[topic] {
		list = append(list, cb)
	}
	b.mu.Unlock()
	for _, cb := range list {
		cb(payload)
	}
}

func (b *fakeBroker) subscribed(topic string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic]) > 0
}

func (b *fakeBroker) messages(topic string) []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []published
	for _, m := range b.published {
		if m.topic == topic {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBroker) retainedPayload(topic string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.retained[topic]
}
