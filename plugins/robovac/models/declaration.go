package models

import "sort"

// Activity is the coarse operational state exposed to the host.
type Activity string

const (
	ActivityNone      Activity = ""
	ActivityCleaning  Activity = "cleaning"
	ActivityPaused    Activity = "paused"
	ActivityDocked    Activity = "docked"
	ActivityReturning Activity = "returning"
	ActivityIdle      Activity = "idle"
	ActivityError     Activity = "error"
)

// Activities lists every defined activity, excluding ActivityNone.
var Activities = []Activity{
	ActivityCleaning,
	ActivityPaused,
	ActivityDocked,
	ActivityReturning,
	ActivityIdle,
	ActivityError,
}

// TransportBinding selects a protocol variant for the transport collaborator.
// The zero value is the default 3.3 session.
type TransportBinding struct {
	Protocol           string
	EmptyStatusPayload bool
}

func (b TransportBinding) ProtocolVersion() string {
	if b.Protocol == "" {
		return "3.3"
	}
	return b.Protocol
}

// Declaration is the static, self-contained table for one hardware model.
// Declarations are shared and must be treated as read-only.
type Declaration struct {
	Code             string
	Name             string
	HostFeatures     HostFeature
	ExtendedFeatures ExtendedFeature
	Commands         map[Command]CommandSpec
	// Activities maps decoded status labels to activities. Nil means the
	// model relies on the legacy heuristics.
	Activities map[string]Activity
	Binding    TransportBinding
}

// Spec returns the command spec when the model declares it.
func (d *Declaration) Spec(cmd Command) (CommandSpec, bool) {
	if d == nil {
		return CommandSpec{}, false
	}
	spec, ok := d.Commands[cmd]
	return spec, ok
}

// SupportedCommands lists the declared commands in canonical order.
func (d *Declaration) SupportedCommands() []Command {
	if d == nil {
		return nil
	}
	out := make([]Command, 0, len(d.Commands))
	for _, cmd := range Commands {
		if _, ok := d.Commands[cmd]; ok {
			out = append(out, cmd)
		}
	}
	return out
}

// HasActivityMap reports whether the model declares an explicit status table.
func (d *Declaration) HasActivityMap() bool {
	return d != nil && d.Activities != nil
}

// ActivityLabels lists the declared status labels, sorted.
func (d *Declaration) ActivityLabels() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.Activities))
	for label := range d.Activities {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
