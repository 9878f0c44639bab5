package robovac

import (
	"context"
	"fmt"
	"time"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// Snapshot is the merged DP values a session has seen. Seq increases with
// every merge within one session; zero means the transport does not order
// its snapshots.
type Snapshot struct {
	DPs map[string]any
	Seq uint64
}

// Transport is the session to one device's local protocol endpoint.
type Transport interface {
	Get(ctx context.Context) (Snapshot, error)
	Set(ctx context.Context, dps map[string]any) error
	Disable(ctx context.Context) error
}

// ConnectConfig configures a transport session.
type ConnectConfig struct {
	DeviceID     string
	Host         string
	LocalKey     string
	Timeout      time.Duration
	PingInterval time.Duration
	Binding      models.TransportBinding
}

// PushFunc receives DP snapshots the device reports on its own.
type PushFunc func(Snapshot)

// Dialer opens a transport session and binds the push callback.
type Dialer func(ctx context.Context, cfg ConnectConfig, onPush PushFunc) (Transport, error)

// TransportError wraps any failure returned by a transport operation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(op string, err error) error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TransportError); ok {
		return te
	}
	return &TransportError{Op: op, Err: err}
}
