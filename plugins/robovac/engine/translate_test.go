package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

func mustLookup(t *testing.T, code string) *models.Declaration {
	t.Helper()
	decl, err := models.Lookup(code)
	require.NoError(t, err)
	return decl
}

func observedTranslator(t *testing.T, code string) (*Translator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewTranslator(mustLookup(t, code), zap.New(core).Sugar(), nil), logs
}

func TestToDeviceL60Auto(t *testing.T) {
	decl := mustLookup(t, "T2278")
	assert.Equal(t, "BBoCCAE=", ToDevice(decl, models.CommandMode, "auto"))
}

func TestToDevicePassThrough(t *testing.T) {
	decl := mustLookup(t, "T2080")
	assert.Equal(t, "turbo-ish", ToDevice(decl, models.CommandFanSpeed, "turbo-ish"))
	assert.Equal(t, "forward", ToDevice(decl, models.CommandDirection, "forward"))
	assert.Equal(t, 7, ToDevice(decl, models.CommandBattery, 7))
	assert.Equal(t, "x", ToDevice(decl, models.CommandRoomClean, "x"))
	assert.Equal(t, "auto", ToDevice(nil, models.CommandMode, "auto"))
}

func TestToDeviceBooleans(t *testing.T) {
	decl := mustLookup(t, "T2320")
	assert.Equal(t, false, ToDevice(decl, models.CommandStartPause, "pause"))
	assert.Equal(t, true, ToDevice(decl, models.CommandLocate, "locate"))
}

func TestToHumanDecodesStatus(t *testing.T) {
	tr, logs := observedTranslator(t, "T2080")
	assert.Equal(t, "Standby", tr.ToHuman(models.CommandStatus, "BhAHQgBSAA=="))
	assert.Equal(t, "Charging", tr.ToHuman(models.CommandStatus, "BBADGgA="))
	assert.Equal(t, 0, logs.Len())
}

func TestToHumanMissWarns(t *testing.T) {
	var misses []models.Command
	core, logs := observer.New(zapcore.DebugLevel)
	tr := NewTranslator(mustLookup(t, "T2080"), zap.New(core).Sugar(), func(cmd models.Command) {
		misses = append(misses, cmd)
	})

	assert.Equal(t, "ZZZZ", tr.ToHuman(models.CommandStatus, "ZZZZ"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "STATUS", fields["command"])
	assert.Equal(t, "ZZZZ", fields["value"])
	assert.Equal(t, "T2080", fields["model"])
	assert.Equal(t, []models.Command{models.CommandStatus}, misses)
}

func TestToHumanTablelessIsSilent(t *testing.T) {
	tr, logs := observedTranslator(t, "T2080")
	assert.Equal(t, 0, tr.ToHuman(models.CommandError, 0))
	assert.Equal(t, "back", tr.ToHuman(models.CommandDirection, "back"))
	assert.Equal(t, 0, logs.Len())

	assert.Equal(t, "up", tr.ToHuman(models.CommandDirection, "up"))
	assert.Equal(t, 1, logs.Len())
}

func TestRoundTripAllModels(t *testing.T) {
	for _, code := range models.Codes() {
		tr, logs := observedTranslator(t, code)
		for cmd, spec := range tr.Declaration().Commands {
			for _, human := range spec.Values.Humans() {
				assert.Equal(t, human, tr.ToHuman(cmd, tr.ToDevice(cmd, human)), "%s %s", code, cmd)
			}
		}
		assert.Equal(t, 0, logs.Len(), code)
	}
}

func TestUndeclaredLabelPassesThrough(t *testing.T) {
	assert.Equal(t, "pause", ToDevice(mustLookup(t, "T2276"), models.CommandStartPause, "pause"))
	assert.Equal(t, false, ToDevice(mustLookup(t, "T2276"), models.CommandStartPause, "stop"))
	assert.Equal(t, "pause", ToDevice(mustLookup(t, "T2193"), models.CommandStartPause, "pause"))
	assert.Equal(t, "return_home", ToDevice(mustLookup(t, "T2080"), models.CommandReturnHome, "return_home"))
}

func TestFanSpeeds(t *testing.T) {
	assert.Equal(t, []string{"Quiet", "Standard", "Turbo", "Max"}, FanSpeeds(mustLookup(t, "T2080")))
	assert.Equal(t, []string{"No Suction", "Standard", "Boost IQ", "Max"}, FanSpeeds(mustLookup(t, "T2118")))
	assert.Equal(t, []string{}, FanSpeeds(mustLookup(t, "T2250")))
	assert.Equal(t, []string{}, FanSpeeds(nil))
}
