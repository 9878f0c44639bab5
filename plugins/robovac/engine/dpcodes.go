package engine

import (
	"strings"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// Logical field names that differ from their command name.
const (
	FieldBatteryLevel = "BATTERY_LEVEL"
	FieldErrorCode    = "ERROR_CODE"
)

var defaultCodes = map[string]string{
	"START_PAUSE":     "2",
	"DIRECTION":       "3",
	"MODE":            "5",
	"STATUS":          "15",
	"RETURN_HOME":     "101",
	"FAN_SPEED":       "102",
	"LOCATE":          "103",
	FieldBatteryLevel: "104",
	FieldErrorCode:    "106",
	"DO_NOT_DISTURB":  "107",
	"CLEANING_TIME":   "109",
	"CLEANING_AREA":   "110",
	"BOOST_IQ":        "118",
	"ROOM_CLEAN":      "124",
	"AUTO_RETURN":     "135",
}

var defaultConsumablesCodes = []string{"142", "116"}

var fieldToCommand = map[string]models.Command{
	FieldBatteryLevel: models.CommandBattery,
	FieldErrorCode:    models.CommandError,
}

var commandToField = map[models.Command]string{
	models.CommandBattery: FieldBatteryLevel,
	models.CommandError:   FieldErrorCode,
}

// FieldFor returns the logical field name a command's DP is reported under.
func FieldFor(cmd models.Command) string {
	if field, ok := commandToField[cmd]; ok {
		return field
	}
	return string(cmd)
}

// Resolve returns the DP code for a logical field. The model's own entry
// wins, then the global default. An empty string means the field is not
// supported on this model.
func Resolve(decl *models.Declaration, field string) string {
	cmd, ok := fieldToCommand[field]
	if !ok {
		cmd = models.Command(field)
	}
	if spec, ok := decl.Spec(cmd); ok && spec.Code != "" {
		return spec.Code
	}
	if code, ok := defaultCodes[field]; ok {
		return code
	}
	// Callers may also pass the command name for an aliased field.
	if alias, ok := commandToField[cmd]; ok {
		return defaultCodes[alias]
	}
	return ""
}

// ResolveCommand is Resolve keyed by command.
func ResolveCommand(decl *models.Declaration, cmd models.Command) string {
	return Resolve(decl, FieldFor(cmd))
}

// DPCodes reports the model's declared codes keyed by logical field.
func DPCodes(decl *models.Declaration) map[string]string {
	out := make(map[string]string)
	if decl == nil {
		return out
	}
	for cmd, spec := range decl.Commands {
		if spec.Code == "" {
			continue
		}
		out[FieldFor(cmd)] = spec.Code
	}
	return out
}

// ConsumablesCodes returns the DP codes that may carry consumables data.
func ConsumablesCodes(decl *models.Declaration) []string {
	spec, ok := decl.Spec(models.CommandConsumables)
	if !ok || strings.TrimSpace(spec.Code) == "" {
		out := make([]string, len(defaultConsumablesCodes))
		copy(out, defaultConsumablesCodes)
		return out
	}
	var out []string
	for _, part := range strings.Split(spec.Code, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
