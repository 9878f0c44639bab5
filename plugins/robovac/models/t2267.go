package models

// eufy Clean L60.
var t2267 = Declaration{
	Code: "T2267",
	Name: "eufy Clean L60",
	HostFeatures: HostBattery | HostFanSpeed | HostLocate | HostPause | HostReturnHome |
		HostSendCommand | HostStart | HostState | HostStop,
	ExtendedFeatures: ExtDoNotDisturb | ExtBoostIQ,
	Commands: map[Command]CommandSpec{
		CommandMode: {Code: "152", Values: Mapping(
			Pair{"auto", "BBoCCAE="},
			Pair{"pause", "AggN"},
			Pair{"spot", "AA=="},
			Pair{"return", "AggG"},
			Pair{"nosweep", "AggO"},
		)},
		CommandStatus: {Code: "153"},
		CommandReturnHome: {Code: "153", Values: Mapping(
			Pair{"return_home", "AggB"},
		)},
		CommandFanSpeed: {Code: "158", Values: Mapping(
			Pair{"Quiet", "Quiet"},
			Pair{"Standard", "Standard"},
			Pair{"Turbo", "Turbo"},
			Pair{"Max", "Max"},
		)},
		CommandLocate: {Code: "153", Values: Mapping(
			Pair{"locate", "AggC"},
		)},
		CommandBattery: {Code: "163"},
		CommandError:   {Code: "177"},
	},
}
