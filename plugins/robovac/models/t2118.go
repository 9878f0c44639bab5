package models

// RoboVac 15C. Legacy plain-string DPs; activity comes from the status heuristics.
var t2118 = Declaration{
	Code: "T2118",
	Name: "RoboVac 15C",
	HostFeatures: HostBattery | HostCleanSpot | HostFanSpeed | HostLocate | HostPause |
		HostReturnHome | HostSendCommand | HostStart | HostState | HostStop | HostStatus,
	ExtendedFeatures: ExtEdge | ExtSmallRoom,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "2", Values: Mapping(
			Pair{"start", true},
			Pair{"pause", false},
		)},
		CommandDirection: {Code: "3", Values: Literals("forward", "back", "left", "right")},
		CommandMode: {Code: "5", Values: Mapping(
			Pair{"auto", "auto"},
			Pair{"small_room", "SmallRoom"},
			Pair{"spot", "Spot"},
			Pair{"edge", "Edge"},
			Pair{"nosweep", "Nosweep"},
		)},
		CommandStatus: {Code: "15"},
		CommandReturnHome: {Code: "101", Values: Mapping(
			Pair{"return_home", true},
		)},
		CommandFanSpeed: {Code: "102", Values: Mapping(
			Pair{"No Suction", "No_suction"},
			Pair{"Standard", "Standard"},
			Pair{"Boost IQ", "Boost_IQ"},
			Pair{"Max", "Max"},
		)},
		CommandLocate:  {Code: "103"},
		CommandBattery: {Code: "104"},
		CommandError:   {Code: "106"},
	},
}
