package robovac

import (
	"github.com/joshp123/gohome-robovac/plugins/robovac/engine"
)

// EntityView is the host-facing rendering of one device.
type EntityView struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Model            string         `json:"model"`
	Description      string         `json:"description,omitempty"`
	Lifecycle        Lifecycle      `json:"lifecycle"`
	Available        bool           `json:"available"`
	Failures         int            `json:"failures"`
	State            engine.State   `json:"state"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	Attributes       map[string]any `json:"attributes"`
	FanSpeeds        []string       `json:"fan_speeds"`
	HostFeatures     int            `json:"host_features"`
	ExtendedFeatures []string       `json:"extended_features"`
	Commands         []string       `json:"commands"`
}

func NewEntityView(d *Device) EntityView {
	state := d.State()
	view := EntityView{
		ID:               d.ID(),
		Name:             d.Name(),
		Model:            d.ModelCode(),
		Description:      d.Config().Description,
		Lifecycle:        d.Lifecycle(),
		Available:        d.Available(),
		Failures:         d.Failures(),
		State:            state,
		Attributes:       d.Attributes(),
		FanSpeeds:        d.FanSpeeds(),
		HostFeatures:     int(d.HostFeatures()),
		ExtendedFeatures: d.ExtendedFeatures().Names(),
		Commands:         []string{},
	}
	if state.HasError() {
		view.ErrorMessage = engine.ErrorMessage(state.ErrorCode)
	}
	if view.ExtendedFeatures == nil {
		view.ExtendedFeatures = []string{}
	}
	for _, cmd := range d.Declaration().SupportedCommands() {
		view.Commands = append(view.Commands, string(cmd))
	}
	return view
}
