package models

// RoboVac LR30 Hybrid.
var t2193 = Declaration{
	Code: "T2193",
	Name: "RoboVac LR30 Hybrid",
	HostFeatures: HostBattery | HostCleanSpot | HostFanSpeed | HostLocate | HostPause |
		HostReturnHome | HostSendCommand | HostStart | HostState | HostStop | HostMap,
	ExtendedFeatures: ExtCleaningTime | ExtCleaningArea | ExtDoNotDisturb | ExtAutoReturn |
		ExtRoom | ExtZone | ExtBoostIQ | ExtMap | ExtConsumables,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "2"},
		CommandDirection: {Code: "3", Values: Mapping(
			Pair{"forward", "Forward"},
			Pair{"back", "Back"},
			Pair{"left", "Left"},
			Pair{"right", "Right"},
		)},
		CommandMode: {Code: "5", Values: Mapping(
			Pair{"auto", "Auto"},
			Pair{"small_room", "SmallRoom"},
			Pair{"spot", "Spot"},
			Pair{"edge", "Edge"},
			Pair{"nosweep", "Nosweep"},
		)},
		CommandStatus: {Code: "15"},
		CommandReturnHome: {Code: "101"},
		CommandFanSpeed: {Code: "102", Values: Mapping(
			Pair{"Quiet", "Quiet"},
			Pair{"Standard", "Standard"},
			Pair{"Turbo", "Turbo"},
			Pair{"Max", "Max"},
		)},
		CommandLocate:  {Code: "103"},
		CommandBattery: {Code: "104"},
		CommandError:   {Code: "106"},
	},
}
