package robovac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Commands accepted by the HTTP API.
const (
	apiStart        = "start"
	apiPause        = "pause"
	apiStop         = "stop"
	apiReturnToBase = "return_to_base"
	apiCleanSpot    = "clean_spot"
	apiLocate       = "locate"
	apiSetFanSpeed  = "set_fan_speed"
	apiSendCommand  = "send_command"
)

// CommandRequest is the body of POST /vacuums/{id}/commands.
type CommandRequest struct {
	Command  string         `json:"command"`
	FanSpeed string         `json:"fan_speed,omitempty"`
	Name     string         `json:"name,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

type api struct {
	fleet *Fleet
	log   *zap.SugaredLogger
}

// Routes serves the fleet under /vacuums.
func Routes(fleet *Fleet, log *zap.SugaredLogger) func(chi.Router) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	a := &api{fleet: fleet, log: log}
	return func(r chi.Router) {
		r.Get("/", a.list)
		r.Route("/{deviceID}", func(r chi.Router) {
			r.Get("/", a.get)
			r.Post("/commands", a.command)
			r.Post("/refresh", a.refresh)
		})
	}
}

func (a *api) list(w http.ResponseWriter, _ *http.Request) {
	devices := a.fleet.Devices()
	out := make([]EntityView, 0, len(devices))
	for _, d := range devices {
		out = append(out, NewEntityView(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) device(w http.ResponseWriter, r *http.Request) (*Device, bool) {
	d, ok := a.fleet.Device(chi.URLParam(r, "deviceID"))
	if !ok {
		writeError(w, http.StatusNotFound, "vacuum not found")
	}
	return d, ok
}

func (a *api) get(w http.ResponseWriter, r *http.Request) {
	d, ok := a.device(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewEntityView(d))
}

func (a *api) refresh(w http.ResponseWriter, r *http.Request) {
	d, ok := a.device(w, r)
	if !ok {
		return
	}
	d.Update(r.Context())
	writeJSON(w, http.StatusOK, NewEntityView(d))
}

func (a *api) command(w http.ResponseWriter, r *http.Request) {
	d, ok := a.device(w, r)
	if !ok {
		return
	}
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	switch req.Command {
	case apiStart:
		d.Start(ctx)
	case apiPause:
		d.Pause(ctx)
	case apiStop:
		d.Stop(ctx)
	case apiReturnToBase:
		d.ReturnToBase(ctx)
	case apiCleanSpot:
		d.CleanSpot(ctx)
	case apiLocate:
		d.Locate(ctx)
	case apiSetFanSpeed:
		if req.FanSpeed == "" {
			writeError(w, http.StatusBadRequest, "fan_speed is required")
			return
		}
		d.SetFanSpeed(ctx, req.FanSpeed)
	case apiSendCommand:
		if !slices.Contains(SendCommandNames, req.Name) {
			writeError(w, http.StatusBadRequest, "unknown vendor command")
			return
		}
		var params map[string]any
		if req.Params != nil {
			params = normalizeDPs(req.Params)
		}
		d.SendCommand(ctx, req.Name, params)
	default:
		writeError(w, http.StatusBadRequest, "unknown command")
		return
	}
	a.log.Debugw("dispatched command", "device", d.ID(), "command", req.Command)
	writeJSON(w, http.StatusAccepted, NewEntityView(d))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		buf.WriteString(`{"error":"encode response"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
