package models

import (
	"fmt"
	"strings"
)

// Command is a logical vacuum command or status field.
type Command string

const (
	CommandStatus       Command = "STATUS"
	CommandMode         Command = "MODE"
	CommandFanSpeed     Command = "FAN_SPEED"
	CommandBattery      Command = "BATTERY"
	CommandError        Command = "ERROR"
	CommandStartPause   Command = "START_PAUSE"
	CommandReturnHome   Command = "RETURN_HOME"
	CommandLocate       Command = "LOCATE"
	CommandDirection    Command = "DIRECTION"
	CommandCleaningArea Command = "CLEANING_AREA"
	CommandCleaningTime Command = "CLEANING_TIME"
	CommandBoostIQ      Command = "BOOST_IQ"
	CommandAutoReturn   Command = "AUTO_RETURN"
	CommandDoNotDisturb Command = "DO_NOT_DISTURB"
	CommandConsumables  Command = "CONSUMABLES"
	CommandRoomClean    Command = "ROOM_CLEAN"
)

// Commands is the closed set of logical commands in a stable order.
var Commands = []Command{
	CommandStatus,
	CommandMode,
	CommandFanSpeed,
	CommandBattery,
	CommandError,
	CommandStartPause,
	CommandReturnHome,
	CommandLocate,
	CommandDirection,
	CommandCleaningArea,
	CommandCleaningTime,
	CommandBoostIQ,
	CommandAutoReturn,
	CommandDoNotDisturb,
	CommandConsumables,
	CommandRoomClean,
}

// ParseCommand resolves a logical command name, ignoring case.
func ParseCommand(name string) (Command, bool) {
	upper := Command(strings.ToUpper(strings.TrimSpace(name)))
	for _, cmd := range Commands {
		if cmd == upper {
			return cmd, true
		}
	}
	return "", false
}

// CommandSpec binds a command to its DP code and optional value table.
type CommandSpec struct {
	Code   string
	Values *ValueTable
}

// Pair is one human <-> device entry of a mapping table.
type Pair struct {
	Human  string
	Device any
}

type tableKind int

const (
	tableMapping tableKind = iota + 1
	tableLiterals
)

// ValueTable is either a bidirectional mapping or a set of permitted raw literals.
// Lookups are exact-match; encoded values are never parsed.
type ValueTable struct {
	kind     tableKind
	pairs    []Pair
	literals []any
}

// Mapping builds a bidirectional table. Earlier pairs win on duplicate keys in either direction.
func Mapping(pairs ...Pair) *ValueTable {
	return &ValueTable{kind: tableMapping, pairs: pairs}
}

// Literals builds a set of raw values that are valid as-is.
func Literals(values ...any) *ValueTable {
	return &ValueTable{kind: tableLiterals, literals: values}
}

func (t *ValueTable) IsMapping() bool {
	return t != nil && t.kind == tableMapping
}

func (t *ValueTable) IsLiterals() bool {
	return t != nil && t.kind == tableLiterals
}

// Pairs returns a copy of the mapping entries.
func (t *ValueTable) Pairs() []Pair {
	if !t.IsMapping() {
		return nil
	}
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Humans lists the human side of a mapping, first occurrence only.
func (t *ValueTable) Humans() []string {
	if !t.IsMapping() {
		return nil
	}
	seen := make(map[string]bool, len(t.pairs))
	out := make([]string, 0, len(t.pairs))
	for _, p := range t.pairs {
		if seen[p.Human] {
			continue
		}
		seen[p.Human] = true
		out = append(out, p.Human)
	}
	return out
}

// DeviceFor returns the device value declared for a human value.
func (t *ValueTable) DeviceFor(human string) (any, bool) {
	if !t.IsMapping() {
		return nil, false
	}
	for _, p := range t.pairs {
		if p.Human == human {
			return p.Device, true
		}
	}
	return nil, false
}

// HumanFor returns the human value declared for a raw device value.
func (t *ValueTable) HumanFor(raw any) (string, bool) {
	if !t.IsMapping() {
		return "", false
	}
	for _, p := range t.pairs {
		if SameValue(p.Device, raw) {
			return p.Human, true
		}
	}
	return "", false
}

// Allows reports whether raw is one of the permitted literals.
func (t *ValueTable) Allows(raw any) bool {
	if !t.IsLiterals() {
		return false
	}
	for _, lit := range t.literals {
		if SameValue(lit, raw) {
			return true
		}
	}
	return false
}

// SameValue compares a declared device value with a raw DP value.
// Strings match exactly, booleans also match their textual form, numbers
// match by decimal rendering.
func SameValue(declared, raw any) bool {
	switch d := declared.(type) {
	case string:
		switch r := raw.(type) {
		case string:
			return d == r
		case nil, bool:
			return false
		default:
			return d == fmt.Sprint(r)
		}
	case bool:
		switch r := raw.(type) {
		case bool:
			return d == r
		case string:
			if d {
				return r == "true" || r == "True"
			}
			return r == "false" || r == "False"
		default:
			return false
		}
	case nil:
		return raw == nil
	default:
		if raw == nil {
			return false
		}
		return fmt.Sprint(d) == fmt.Sprint(raw)
	}
}
