package robovac

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/joshp123/gohome-robovac/plugins/robovac/engine"
	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// Commands accepted by SendCommand.
const (
	CommandEdgeClean      = "edgeClean"
	CommandSmallRoomClean = "smallRoomClean"
	CommandAutoClean      = "autoClean"
	CommandAutoReturn     = "autoReturn"
	CommandDoNotDisturb   = "doNotDisturb"
	CommandBoostIQ        = "boostIQ"
	CommandRoomClean      = "roomClean"
)

var modeCommands = map[string]string{
	CommandEdgeClean:      "edge",
	CommandSmallRoomClean: "small_room",
	CommandAutoClean:      "auto",
}

// SendCommandNames lists every name SendCommand understands.
var SendCommandNames = []string{
	CommandEdgeClean,
	CommandSmallRoomClean,
	CommandAutoClean,
	CommandAutoReturn,
	CommandDoNotDisturb,
	CommandBoostIQ,
	CommandRoomClean,
}

// now is swapped in tests.
var now = time.Now

func (d *Device) Start(ctx context.Context) {
	d.setMode(ctx, "start", "auto")
}

func (d *Device) Pause(ctx context.Context) {
	if !d.ready("pause") {
		return
	}
	d.send(ctx, "pause", models.CommandStartPause, d.tr.ToDevice(models.CommandStartPause, "pause"))
}

// Stop returns the vacuum to its dock.
func (d *Device) Stop(ctx context.Context) {
	d.ReturnToBase(ctx)
}

func (d *Device) ReturnToBase(ctx context.Context) {
	d.log.Debugw("return home pressed")
	if !d.ready("return to base") {
		return
	}
	d.send(ctx, "return to base", models.CommandReturnHome, d.tr.ToDevice(models.CommandReturnHome, "return_home"))
}

func (d *Device) CleanSpot(ctx context.Context) {
	d.log.Debugw("spot clean pressed")
	d.setMode(ctx, "clean spot", "spot")
}

// Locate sends the model's locate value, or toggles the locate DP when the
// model only exposes a boolean.
func (d *Device) Locate(ctx context.Context) {
	d.log.Debugw("locate pressed")
	if !d.ready("locate") {
		return
	}
	if spec, ok := d.decl.Spec(models.CommandLocate); ok {
		if value, ok := spec.Values.DeviceFor("locate"); ok {
			d.send(ctx, "locate", models.CommandLocate, value)
			return
		}
	}
	code := engine.ResolveCommand(d.decl, models.CommandLocate)
	current := false
	if code != "" {
		current = engine.IsTrue(d.Snapshot()[code])
	}
	d.send(ctx, "locate", models.CommandLocate, !current)
}

// SetFanSpeed accepts a display label or its normalized form.
func (d *Device) SetFanSpeed(ctx context.Context, label string) {
	d.log.Debugw("fan speed selected", "fan_speed", label)
	if !d.ready("set fan speed") {
		return
	}
	d.send(ctx, "set fan speed", models.CommandFanSpeed, d.fanSpeedValue(label))
}

func (d *Device) fanSpeedValue(label string) any {
	spec, _ := d.decl.Spec(models.CommandFanSpeed)
	if value, ok := spec.Values.DeviceFor(label); ok {
		return value
	}
	normalized := normalizeLabel(label)
	for _, human := range spec.Values.Humans() {
		if normalizeLabel(human) == normalized {
			value, _ := spec.Values.DeviceFor(human)
			return value
		}
	}
	return normalized
}

func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// SendCommand runs a vendor specific command. Unknown names are logged and ignored.
func (d *Device) SendCommand(ctx context.Context, name string, params map[string]any) {
	d.log.Debugw("send command pressed", "command", name)
	if !d.ready("send command") {
		return
	}

	if mode, ok := modeCommands[name]; ok {
		d.send(ctx, name, models.CommandMode, d.tr.ToDevice(models.CommandMode, mode))
		return
	}

	state := d.State()
	switch name {
	case CommandAutoReturn:
		d.send(ctx, name, models.CommandAutoReturn, !engine.IsTrue(state.AutoReturn))
	case CommandDoNotDisturb:
		d.send(ctx, name, models.CommandDoNotDisturb, !engine.IsTrue(state.DoNotDisturb))
	case CommandBoostIQ:
		d.send(ctx, name, models.CommandBoostIQ, !engine.IsTrue(state.BoostIQ))
	case CommandRoomClean:
		payload, err := roomCleanPayload(params, now())
		if err != nil {
			d.log.Errorw("failed to encode room clean request", "error", err)
			return
		}
		d.send(ctx, name, models.CommandRoomClean, payload)
	default:
		d.log.Warnw("unknown command", "command", name)
	}
}

type roomCleanRequest struct {
	Method    string        `json:"method"`
	Data      roomCleanData `json:"data"`
	Timestamp int64         `json:"timestamp"`
}

type roomCleanData struct {
	RoomIDs    any `json:"roomIds"`
	CleanTimes any `json:"cleanTimes"`
}

func roomCleanPayload(params map[string]any, at time.Time) (string, error) {
	var roomIDs any = []int{1}
	var count any = 1
	if v, ok := params["roomIds"]; ok {
		roomIDs = v
	}
	if v, ok := params["count"]; ok {
		count = v
	} else if v, ok := params["cleanTimes"]; ok {
		count = v
	}
	body, err := json.Marshal(roomCleanRequest{
		Method:    "selectRoomsClean",
		Data:      roomCleanData{RoomIDs: roomIDs, CleanTimes: count},
		Timestamp: at.UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(body), nil
}

func (d *Device) setMode(ctx context.Context, action, mode string) {
	if !d.ready(action) {
		return
	}
	d.send(ctx, action, models.CommandMode, d.tr.ToDevice(models.CommandMode, mode))
}

func (d *Device) ready(action string) bool {
	d.mu.RLock()
	transport, lifecycle := d.transport, d.lifecycle
	d.mu.RUnlock()
	if transport == nil || lifecycle == LifecycleRemoved {
		d.log.Errorw("cannot run command: vacuum not initialized", "action", action)
		return false
	}
	return true
}

// send writes one DP. Set failures are logged, never retried.
func (d *Device) send(ctx context.Context, action string, cmd models.Command, value any) {
	code := engine.ResolveCommand(d.decl, cmd)
	if code == "" {
		d.log.Warnw("command not supported on this model", "action", action, "command", string(cmd), "model", d.decl.Code)
		return
	}
	d.mu.RLock()
	transport := d.transport
	d.mu.RUnlock()

	setCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		setCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := transport.Set(setCtx, map[string]any{code: value}); err != nil {
		d.log.Errorw("failed to send command", "action", action, "dp", code, "error", transportError("set", err))
		return
	}
	d.log.Debugw("sent command", "action", action, "dp", code, "value", value)
}
