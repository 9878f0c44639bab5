package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownModels(t *testing.T) {
	codes := Codes()
	require.Equal(t, []string{"T2080", "T2118", "T2193", "T2250", "T2267", "T2276", "T2277", "T2278", "T2320"}, codes)
	for _, code := range codes {
		decl, err := Lookup(code)
		require.NoError(t, err, code)
		assert.Equal(t, code, decl.Code)
		assert.NotEmpty(t, decl.Name, code)
		assert.NotEmpty(t, decl.Commands, code)
	}
}

func TestLookupUnsupported(t *testing.T) {
	decl, err := Lookup("T9999")
	assert.Nil(t, decl)
	assert.True(t, errors.Is(err, ErrUnsupportedModel))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "T2080", Prefix("T2080A"))
	assert.Equal(t, "T2118", Prefix(" T2118 "))
	assert.Equal(t, "T21", Prefix("T21"))
	assert.Equal(t, "", Prefix(""))
}

func TestMappingRoundTrip(t *testing.T) {
	for _, code := range Codes() {
		decl, err := Lookup(code)
		require.NoError(t, err)
		for cmd, spec := range decl.Commands {
			for _, human := range spec.Values.Humans() {
				device, ok := spec.Values.DeviceFor(human)
				require.True(t, ok)
				back, ok := spec.Values.HumanFor(device)
				require.True(t, ok, "%s %s %v", code, cmd, device)
				assert.Equal(t, human, back, "%s %s", code, cmd)
			}
		}
	}
}

func TestDuplicateDeviceValuesShareOneLabel(t *testing.T) {
	decl, _ := Lookup("T2080")
	for _, raw := range []string{"BhAHQgBSAA==", "BgoAEAUyAA==", "AA=="} {
		human, ok := decl.Commands[CommandStatus].Values.HumanFor(raw)
		require.True(t, ok)
		assert.Equal(t, "Standby", human)
	}
}

func TestUndeclaredValuesStayUndeclared(t *testing.T) {
	decl, _ := Lookup("T2276")
	_, ok := decl.Commands[CommandStartPause].Values.DeviceFor("pause")
	assert.False(t, ok)

	decl, _ = Lookup("T2080")
	assert.Nil(t, decl.Commands[CommandStartPause].Values)
	assert.True(t, decl.Commands[CommandReturnHome].Values.Allows("AggB"))
	_, ok = decl.Activities["Adding Water"]
	assert.False(t, ok)

	decl, _ = Lookup("T2193")
	assert.Nil(t, decl.Commands[CommandStartPause].Values)
	assert.Nil(t, decl.Commands[CommandReturnHome].Values)
}

func TestActivityMapOnlyOnT2080(t *testing.T) {
	for _, code := range Codes() {
		decl, _ := Lookup(code)
		assert.Equal(t, code == "T2080", decl.HasActivityMap(), code)
	}
	decl, _ := Lookup("T2080")
	assert.Equal(t, ActivityIdle, decl.Activities["Standby"])
	assert.Equal(t, ActivityReturning, decl.Activities["Heading Home"])
	assert.Contains(t, decl.ActivityLabels(), "Charging")
}

func TestTransportBinding(t *testing.T) {
	decl, _ := Lookup("T2276")
	assert.Equal(t, "3.5", decl.Binding.ProtocolVersion())
	assert.True(t, decl.Binding.EmptyStatusPayload)

	decl, _ = Lookup("T2080")
	assert.Equal(t, "3.3", decl.Binding.ProtocolVersion())
	assert.False(t, decl.Binding.EmptyStatusPayload)
}

func TestSupportedCommandsOrder(t *testing.T) {
	decl, _ := Lookup("T2278")
	assert.Equal(t, []Command{
		CommandStatus, CommandMode, CommandFanSpeed, CommandBattery,
		CommandError, CommandReturnHome, CommandLocate,
	}, decl.SupportedCommands())
}
