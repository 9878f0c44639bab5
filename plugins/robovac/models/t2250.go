package models

// RoboVac G30. Extended DPs (cleaning time/area, do-not-disturb, auto return,
// consumables) use the global default codes.
var t2250 = Declaration{
	Code: "T2250",
	Name: "RoboVac G30",
	HostFeatures: HostBattery | HostCleanSpot | HostFanSpeed | HostLocate | HostPause |
		HostReturnHome | HostSendCommand | HostStart | HostState | HostStop | HostStatus,
	ExtendedFeatures: ExtCleaningTime | ExtCleaningArea | ExtDoNotDisturb | ExtAutoReturn | ExtConsumables,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "2", Values: Mapping(
			Pair{"start", true},
			Pair{"pause", false},
		)},
		CommandDirection: {Code: "3", Values: Literals("forward", "back", "left", "right")},
		CommandMode: {Code: "5", Values: Mapping(
			Pair{"auto", "auto"},
			Pair{"small_room", "SmallRoom"},
			Pair{"edge", "Edge"},
			Pair{"spot", "Spot"},
		)},
		CommandStatus: {Code: "15"},
		CommandReturnHome: {Code: "101", Values: Mapping(
			Pair{"return_home", true},
		)},
		CommandFanSpeed: {Code: "102"},
		CommandLocate:   {Code: "103"},
		CommandBattery:  {Code: "104"},
		CommandError:    {Code: "106"},
	},
}
