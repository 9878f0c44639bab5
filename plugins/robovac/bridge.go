package robovac

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// ErrTransportClosed is returned by operations on a disabled session.
var ErrTransportClosed = errors.New("transport closed")

// Bridge dials device sessions through a local protocol bridge reachable
// over MQTT. Every device gets the topics <prefix>/<id>/{connect,get,set,disconnect}
// for requests and <prefix>/<id>/{state,ack} for replies.
type Bridge struct {
	ps     pubSub
	prefix string
	log    *zap.SugaredLogger
}

func NewBridge(ps pubSub, prefix string, log *zap.SugaredLogger) *Bridge {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Bridge{ps: ps, prefix: strings.TrimSuffix(prefix, "/"), log: log}
}

func (b *Bridge) topic(deviceID, leaf string) string {
	return b.prefix + "/" + deviceID + "/" + leaf
}

type bindingMessage struct {
	Protocol           string `json:"protocol"`
	EmptyStatusPayload bool   `json:"empty_status_payload"`
}

type connectMessage struct {
	RequestID    string         `json:"request_id"`
	DeviceID     string         `json:"device_id"`
	Host         string         `json:"host"`
	LocalKey     string         `json:"local_key"`
	Timeout      float64        `json:"timeout"`
	PingInterval float64        `json:"ping_interval"`
	Binding      bindingMessage `json:"binding"`
}

type getMessage struct {
	RequestID    string `json:"request_id"`
	EmptyPayload bool   `json:"empty_payload,omitempty"`
}

type setMessage struct {
	RequestID string         `json:"request_id"`
	DPS       map[string]any `json:"dps"`
}

type stateMessage struct {
	RequestID string         `json:"request_id,omitempty"`
	DPS       map[string]any `json:"dps"`
}

type ackMessage struct {
	RequestID string `json:"request_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// Dial registers the device with the bridge. It does not wait for the
// device to answer; the first Get does.
func (b *Bridge) Dial(_ context.Context, cfg ConnectConfig, onPush PushFunc) (Transport, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("device id is required")
	}
	t := &bridgeTransport{
		bridge:   b,
		deviceID: cfg.DeviceID,
		binding:  cfg.Binding,
		onPush:   onPush,
		dps:      map[string]any{},
		pending:  map[string]*pendingRequest{},
		log:      b.log.With("device", cfg.DeviceID),
	}

	unsubState, err := b.ps.subscribe(b.topic(cfg.DeviceID, "state"), t.handleState)
	if err != nil {
		return nil, fmt.Errorf("subscribe state: %w", err)
	}
	unsubAck, err := b.ps.subscribe(b.topic(cfg.DeviceID, "ack"), t.handleAck)
	if err != nil {
		unsubState()
		return nil, fmt.Errorf("subscribe ack: %w", err)
	}
	t.unsubs = []func(){unsubState, unsubAck}

	msg := connectMessage{
		RequestID:    uuid.NewString(),
		DeviceID:     cfg.DeviceID,
		Host:         cfg.Host,
		LocalKey:     cfg.LocalKey,
		Timeout:      cfg.Timeout.Seconds(),
		PingInterval: cfg.PingInterval.Seconds(),
		Binding: bindingMessage{
			Protocol:           cfg.Binding.ProtocolVersion(),
			EmptyStatusPayload: cfg.Binding.EmptyStatusPayload,
		},
	}
	if err := t.publish("connect", true, msg); err != nil {
		t.unsubscribe()
		return nil, err
	}
	return t, nil
}

type requestKind int

const (
	requestGet requestKind = iota + 1
	requestSet
)

type pendingRequest struct {
	kind  requestKind
	reply chan reply
}

type reply struct {
	snapshot Snapshot
	err      error
}

type bridgeTransport struct {
	bridge   *Bridge
	deviceID string
	binding  models.TransportBinding
	onPush   PushFunc
	log      *zap.SugaredLogger

	mu      sync.Mutex
	dps     map[string]any
	seq     uint64
	pending map[string]*pendingRequest
	unsubs  []func()
	closed  bool
}

func (t *bridgeTransport) publish(leaf string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", leaf, err)
	}
	if err := t.bridge.ps.publish(t.bridge.topic(t.deviceID, leaf), retained, payload); err != nil {
		return fmt.Errorf("publish %s: %w", leaf, err)
	}
	return nil
}

func (t *bridgeTransport) Get(ctx context.Context) (Snapshot, error) {
	id := uuid.NewString()
	msg := getMessage{RequestID: id, EmptyPayload: t.binding.EmptyStatusPayload}
	r, err := t.roundTrip(ctx, id, requestGet, "get", msg)
	if err != nil {
		return Snapshot{}, &TransportError{Op: "get", Err: err}
	}
	return r.snapshot, nil
}

func (t *bridgeTransport) Set(ctx context.Context, dps map[string]any) error {
	id := uuid.NewString()
	if _, err := t.roundTrip(ctx, id, requestSet, "set", setMessage{RequestID: id, DPS: dps}); err != nil {
		return &TransportError{Op: "set", Err: err}
	}
	return nil
}

func (t *bridgeTransport) roundTrip(ctx context.Context, id string, kind requestKind, leaf string, msg any) (reply, error) {
	pending := &pendingRequest{kind: kind, reply: make(chan reply, 1)}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return reply{}, ErrTransportClosed
	}
	t.pending[id] = pending
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	if err := t.publish(leaf, false, msg); err != nil {
		return reply{}, err
	}
	select {
	case <-ctx.Done():
		return reply{}, ctx.Err()
	case r := <-pending.reply:
		return r, r.err
	}
}

func (t *bridgeTransport) Disable(_ context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	for id, p := range t.pending {
		p.reply <- reply{err: ErrTransportClosed}
		delete(t.pending, id)
	}
	t.mu.Unlock()

	t.unsubscribe()
	err := t.publish("disconnect", false, map[string]string{"device_id": t.deviceID})
	// Clear the retained connect so a restarted bridge forgets the device.
	if clearErr := t.bridge.ps.publish(t.bridge.topic(t.deviceID, "connect"), true, nil); clearErr != nil && err == nil {
		err = fmt.Errorf("clear connect: %w", clearErr)
	}
	return err
}

func (t *bridgeTransport) unsubscribe() {
	for _, unsub := range t.unsubs {
		unsub()
	}
	t.unsubs = nil
}

func (t *bridgeTransport) handleState(payload []byte) {
	var msg stateMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.log.Warnw("invalid state message", "error", err)
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	for code, value := range normalizeDPs(msg.DPS) {
		t.dps[code] = value
	}
	t.seq++
	merged := Snapshot{DPs: maps.Clone(t.dps), Seq: t.seq}
	pending, ok := t.pending[msg.RequestID]
	if ok && pending.kind == requestGet {
		delete(t.pending, msg.RequestID)
	}
	t.mu.Unlock()

	if ok && pending.kind == requestGet {
		pending.reply <- reply{snapshot: merged}
		return
	}
	if ok {
		// A set reply carries the new values; the ack completes the request.
		return
	}
	if t.onPush != nil {
		t.onPush(merged)
	}
}

func (t *bridgeTransport) handleAck(payload []byte) {
	var msg ackMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.log.Warnw("invalid ack message", "error", err)
		return
	}

	t.mu.Lock()
	pending, ok := t.pending[msg.RequestID]
	finished := ok && (!msg.OK || pending.kind == requestSet)
	if finished {
		delete(t.pending, msg.RequestID)
	}
	t.mu.Unlock()

	if !finished {
		return
	}
	if msg.OK {
		pending.reply <- reply{}
		return
	}
	errMsg := msg.Error
	if errMsg == "" {
		errMsg = "request rejected"
	}
	pending.reply <- reply{err: errors.New(errMsg)}
}
