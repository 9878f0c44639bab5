package models

// Robot Vacuum and Mop X9 Pro with Auto-Clean Station.
var t2320 = Declaration{
	Code: "T2320",
	Name: "RoboVac X9 Pro",
	HostFeatures: HostBattery | HostFanSpeed | HostLocate | HostPause | HostReturnHome |
		HostSendCommand | HostStart | HostState | HostStop,
	ExtendedFeatures: ExtDoNotDisturb | ExtBoostIQ,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "2", Values: Mapping(
			Pair{"start", true},
			Pair{"pause", false},
		)},
		CommandMode: {Code: "152", Values: Mapping(
			Pair{"auto", "auto"},
			Pair{"return", "return"},
			Pair{"pause", "pause"},
			Pair{"small_room", "small_room"},
			Pair{"single_room", "single_room"},
		)},
		CommandStatus: {Code: "173"},
		CommandReturnHome: {Code: "153", Values: Mapping(
			Pair{"return_home", true},
		)},
		CommandFanSpeed: {Code: "154", Values: Mapping(
			Pair{"Standard", "standard"},
			Pair{"Boost IQ", "boost_iq"},
			Pair{"Max", "max"},
			Pair{"Quiet", "Quiet"},
		)},
		CommandLocate: {Code: "153", Values: Mapping(
			Pair{"locate", true},
		)},
		CommandBattery: {Code: "172"},
		CommandError:   {Code: "169"},
	},
}
