package models

// HostFeature is a bitset of capabilities native to the host vacuum entity.
type HostFeature int

const (
	HostPause       HostFeature = 4
	HostStop        HostFeature = 8
	HostReturnHome  HostFeature = 16
	HostFanSpeed    HostFeature = 32
	HostBattery     HostFeature = 64
	HostStatus      HostFeature = 128
	HostSendCommand HostFeature = 256
	HostLocate      HostFeature = 512
	HostCleanSpot   HostFeature = 1024
	HostMap         HostFeature = 2048
	HostState       HostFeature = 4096
	HostStart       HostFeature = 8192
)

// Has reports whether every bit of f is set.
func (h HostFeature) Has(f HostFeature) bool {
	return h&f == f
}

// ExtendedFeature is a bitset of vendor capabilities the host has no native notion of.
type ExtendedFeature int

const (
	ExtEdge ExtendedFeature = 1 << iota
	ExtSmallRoom
	ExtCleaningTime
	ExtCleaningArea
	ExtDoNotDisturb
	ExtAutoReturn
	ExtConsumables
	ExtRoom
	ExtZone
	ExtMap
	ExtBoostIQ
)

func (e ExtendedFeature) Has(f ExtendedFeature) bool {
	return e&f == f
}

var extendedNames = []struct {
	bit  ExtendedFeature
	name string
}{
	{ExtEdge, "edge"},
	{ExtSmallRoom, "small_room"},
	{ExtCleaningTime, "cleaning_time"},
	{ExtCleaningArea, "cleaning_area"},
	{ExtDoNotDisturb, "do_not_disturb"},
	{ExtAutoReturn, "auto_return"},
	{ExtConsumables, "consumables"},
	{ExtRoom, "room"},
	{ExtZone, "zone"},
	{ExtMap, "map"},
	{ExtBoostIQ, "boost_iq"},
}

// Names lists the set bits in declaration order.
func (e ExtendedFeature) Names() []string {
	var out []string
	for _, entry := range extendedNames {
		if e.Has(entry.bit) {
			out = append(out, entry.name)
		}
	}
	return out
}
