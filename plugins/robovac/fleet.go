package robovac

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fleet holds every configured device in config order.
type Fleet struct {
	devices []*Device
	byID    map[string]*Device
	log     *zap.SugaredLogger
}

// NewFleet builds one Device per config entry. Each device fails on its own;
// a bad entry never prevents the others from starting.
func NewFleet(ctx context.Context, cfgs []DeviceConfig, opts Options) *Fleet {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	opts.Log = log
	f := &Fleet{byID: make(map[string]*Device, len(cfgs)), log: log}
	for _, cfg := range cfgs {
		d := NewDevice(ctx, cfg, opts)
		f.devices = append(f.devices, d)
		f.byID[cfg.ID] = d
	}
	return f
}

// Devices returns the devices in config order.
func (f *Fleet) Devices() []*Device {
	out := make([]*Device, len(f.devices))
	copy(out, f.devices)
	return out
}

func (f *Fleet) Device(id string) (*Device, bool) {
	d, ok := f.byID[id]
	return d, ok
}

// Tick updates every device in parallel and waits for all of them.
func (f *Fleet) Tick(ctx context.Context) {
	var g errgroup.Group
	for _, d := range f.devices {
		g.Go(func() error {
			d.Update(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// Run ticks immediately and then every interval until ctx is done.
func (f *Fleet) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	f.Tick(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Tick(ctx)
		}
	}
}

// Close removes every device and joins the disable errors.
func (f *Fleet) Close(ctx context.Context) error {
	var g errgroup.Group
	errs := make([]error, len(f.devices))
	for i, d := range f.devices {
		g.Go(func() error {
			if err := d.Remove(ctx); err != nil {
				f.log.Warnw("failed to disable vacuum", "device", d.ID(), "error", err)
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
