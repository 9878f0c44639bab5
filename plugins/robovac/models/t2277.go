package models

// eufy Clean L60 SES.
var t2277 = Declaration{
	Code: "T2277",
	Name: "eufy Clean L60 SES",
	HostFeatures: HostBattery | HostFanSpeed | HostLocate | HostPause | HostReturnHome |
		HostSendCommand | HostStart | HostState | HostStop,
	ExtendedFeatures: ExtDoNotDisturb | ExtBoostIQ,
	Commands: map[Command]CommandSpec{
		CommandMode: {Code: "152", Values: Mapping(
			Pair{"small_room", "AA=="},
			Pair{"pause", "AggN"},
			Pair{"edge", "AggG"},
			Pair{"auto", "BBoCCAE="},
			Pair{"nosweep", "AggO"},
		)},
		CommandStatus: {Code: "173"},
		CommandReturnHome: {Code: "153", Values: Mapping(
			Pair{"return_home", "AggB"},
		)},
		CommandFanSpeed: {Code: "154", Values: Mapping(
			Pair{"fan_speed", "AgkBCgIKAQoDCgEKBAoB"},
		)},
		CommandLocate: {Code: "153", Values: Mapping(
			Pair{"locate", "AggC"},
		)},
		CommandBattery: {Code: "172"},
		CommandError:   {Code: "169"},
	},
}
