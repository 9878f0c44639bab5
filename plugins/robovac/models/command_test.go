package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand("fan_speed")
	assert.True(t, ok)
	assert.Equal(t, CommandFanSpeed, cmd)

	_, ok = ParseCommand("TURBO")
	assert.False(t, ok)
}

func TestSameValue(t *testing.T) {
	cases := []struct {
		declared any
		raw      any
		want     bool
	}{
		{"AggN", "AggN", true},
		{"AggN", "aggn", false},
		{true, true, true},
		{true, "True", true},
		{true, "true", true},
		{false, "False", true},
		{false, true, false},
		{"1", 1, true},
		{"1", true, false},
		{"x", nil, false},
		{3, 3.0, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SameValue(tc.declared, tc.raw), "%v vs %v", tc.declared, tc.raw)
	}
}

func TestValueTableKinds(t *testing.T) {
	var none *ValueTable
	assert.False(t, none.IsMapping())
	assert.False(t, none.IsLiterals())
	assert.Nil(t, none.Humans())

	lits := Literals("forward", "back")
	assert.True(t, lits.Allows("back"))
	assert.False(t, lits.Allows("up"))
	_, ok := lits.DeviceFor("forward")
	assert.False(t, ok)

	m := Mapping(Pair{"Standby", "AA=="}, Pair{"Standby", "BgoA"}, Pair{"Idle", "AA=="})
	assert.Equal(t, []string{"Standby", "Idle"}, m.Humans())
	human, ok := m.HumanFor("AA==")
	assert.True(t, ok)
	assert.Equal(t, "Standby", human)
	device, _ := m.DeviceFor("Standby")
	assert.Equal(t, "AA==", device)
}

func TestExtendedFeatureNames(t *testing.T) {
	assert.Equal(t, []string{"edge", "small_room"}, (ExtEdge | ExtSmallRoom).Names())
	assert.True(t, ExtBoostIQ == 1024)
	assert.True(t, (HostBattery | HostStart).Has(HostStart))
}
