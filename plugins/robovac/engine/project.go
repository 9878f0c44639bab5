package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// Attribute keys emitted by Attributes.
const (
	AttrError        = "error"
	AttrCleaningArea = "cleaning_area"
	AttrCleaningTime = "cleaning_time"
	AttrAutoReturn   = "auto_return"
	AttrDoNotDisturb = "do_not_disturb"
	AttrBoostIQ      = "boost_iq"
	AttrConsumables  = "consumables"
	AttrMode         = "mode"
)

// State is the host-visible projection of one device snapshot.
type State struct {
	Battery      int             `json:"battery"`
	Status       any             `json:"status,omitempty"`
	ErrorCode    any             `json:"error_code"`
	ErrorLabel   string          `json:"error_label,omitempty"`
	Activity     models.Activity `json:"activity,omitempty"`
	Mode         string          `json:"mode,omitempty"`
	FanSpeed     string          `json:"fan_speed,omitempty"`
	CleaningArea string          `json:"cleaning_area,omitempty"`
	CleaningTime string          `json:"cleaning_time,omitempty"`
	AutoReturn   string          `json:"auto_return,omitempty"`
	DoNotDisturb string          `json:"do_not_disturb,omitempty"`
	BoostIQ      string          `json:"boost_iq,omitempty"`
	Consumables  any             `json:"consumables,omitempty"`
}

// HasError reports whether the state carries a real error.
func (s State) HasError() bool {
	return !IsNoError(s.ErrorCode)
}

// WithError overrides the error code and recomputes the fields that depend on it.
func (s State) WithError(code any, activities map[string]models.Activity) State {
	s.ErrorCode = code
	s.ErrorLabel = ""
	if !IsNoError(code) {
		s.ErrorLabel = ErrorMessage(code)
	}
	s.Activity = DeriveActivity(s.Status, s.ErrorCode, activities)
	return s
}

var fanSpeedDisplay = map[string]string{
	"No_suction": "No Suction",
	"Boost_IQ":   "Boost IQ",
	"Quiet":      "Pure",
}

// Project recomputes derived state from a snapshot. Only the consumable
// duration is carried over from prev, and only when the snapshot does not
// decode to a new one.
func Project(snapshot map[string]any, tr *Translator, prev State) State {
	decl := tr.Declaration()
	state := State{
		Battery:   projectBattery(snapshot, decl, tr),
		ErrorCode: 0,
	}

	if raw, ok := lookup(snapshot, Resolve(decl, string(models.CommandStatus))); ok {
		state.Status = tr.ToHuman(models.CommandStatus, raw)
	}
	if raw, ok := lookup(snapshot, Resolve(decl, FieldErrorCode)); ok {
		state.ErrorCode = tr.ToHuman(models.CommandError, raw)
	}
	state = state.WithError(state.ErrorCode, decl.Activities)

	if raw, ok := lookup(snapshot, Resolve(decl, string(models.CommandMode))); ok {
		state.Mode = text(tr.ToHuman(models.CommandMode, raw))
	}
	if raw, ok := lookup(snapshot, Resolve(decl, string(models.CommandFanSpeed))); ok {
		state.FanSpeed = fanSpeedLabel(decl, raw)
	}

	state.CleaningArea = field(snapshot, decl, models.CommandCleaningArea)
	state.CleaningTime = field(snapshot, decl, models.CommandCleaningTime)
	state.AutoReturn = field(snapshot, decl, models.CommandAutoReturn)
	state.DoNotDisturb = field(snapshot, decl, models.CommandDoNotDisturb)
	state.BoostIQ = field(snapshot, decl, models.CommandBoostIQ)

	if decl.ExtendedFeatures.Has(models.ExtConsumables) {
		state.Consumables = prev.Consumables
		duration, ok, errs := ConsumableDuration(snapshot, ConsumablesCodes(decl))
		for _, err := range errs {
			tr.log.Warnw("failed to decode consumable data", "model", decl.Code, "error", err)
		}
		if ok {
			state.Consumables = duration
		}
	}
	return state
}

// Attributes returns the extra state attributes gated by the model's extended features.
func Attributes(state State, decl *models.Declaration) map[string]any {
	out := make(map[string]any)
	if state.HasError() {
		out[AttrError] = ErrorMessage(state.ErrorCode)
	}
	var features models.ExtendedFeature
	if decl != nil {
		features = decl.ExtendedFeatures
	}
	gated := []struct {
		feature models.ExtendedFeature
		key     string
		value   string
	}{
		{models.ExtCleaningArea, AttrCleaningArea, state.CleaningArea},
		{models.ExtCleaningTime, AttrCleaningTime, state.CleaningTime},
		{models.ExtAutoReturn, AttrAutoReturn, state.AutoReturn},
		{models.ExtDoNotDisturb, AttrDoNotDisturb, state.DoNotDisturb},
		{models.ExtBoostIQ, AttrBoostIQ, state.BoostIQ},
	}
	for _, g := range gated {
		if features.Has(g.feature) && g.value != "" {
			out[g.key] = g.value
		}
	}
	if features.Has(models.ExtConsumables) && truthy(state.Consumables) {
		out[AttrConsumables] = state.Consumables
	}
	if state.Mode != "" {
		out[AttrMode] = state.Mode
	}
	return out
}

// IsTrue reports whether a cached toggle value reads as enabled.
func IsTrue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "True" || strings.ToLower(b) == "true"
	default:
		return false
	}
}

func projectBattery(snapshot map[string]any, decl *models.Declaration, tr *Translator) int {
	raw, ok := lookup(snapshot, Resolve(decl, FieldBatteryLevel))
	if !ok {
		return 0
	}
	level, err := toInt(raw)
	if err != nil {
		tr.log.Warnw("invalid battery level value", "model", modelCode(decl), "value", raw)
		return 0
	}
	return max(0, min(100, level))
}

func fanSpeedLabel(decl *models.Declaration, raw any) string {
	if human, ok := LookupHuman(decl, models.CommandFanSpeed, raw); ok {
		return human
	}
	label := text(raw)
	if display, ok := fanSpeedDisplay[label]; ok {
		return display
	}
	return label
}

func field(snapshot map[string]any, decl *models.Declaration, cmd models.Command) string {
	raw, ok := lookup(snapshot, ResolveCommand(decl, cmd))
	if !ok {
		return ""
	}
	return text(raw)
}

func lookup(snapshot map[string]any, code string) (any, bool) {
	if code == "" {
		return nil, false
	}
	raw, ok := snapshot[code]
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return !isNumericZero(v)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not a finite number: %v", n)
		}
		return int(n), nil
	case float32:
		return toInt(float64(n))
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
