package robovac

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Publisher mirrors derived device state to retained <prefix>/<id>/entity topics.
type Publisher struct {
	ps     pubSub
	prefix string
	log    *zap.SugaredLogger
}

func NewPublisher(ps pubSub, prefix string, log *zap.SugaredLogger) *Publisher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Publisher{ps: ps, prefix: strings.TrimSuffix(prefix, "/"), log: log}
}

func (p *Publisher) topic(deviceID string) string {
	return p.prefix + "/" + deviceID + "/entity"
}

// Publish writes the current view of d. Failures are logged.
func (p *Publisher) Publish(d *Device) {
	if err := p.publish(d); err != nil {
		p.log.Warnw("failed to publish entity state", "device", d.ID(), "error", err)
	}
}

func (p *Publisher) publish(d *Device) error {
	payload, err := json.Marshal(NewEntityView(d))
	if err != nil {
		return fmt.Errorf("encode entity: %w", err)
	}
	return p.ps.publish(p.topic(d.ID()), true, payload)
}

// Clear drops the retained entity of a removed device.
func (p *Publisher) Clear(deviceID string) error {
	return p.ps.publish(p.topic(deviceID), true, nil)
}
