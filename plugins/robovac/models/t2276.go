package models

// RoboVac X8 Pro SES. Speaks protocol 3.5 and polls with an empty status payload.
var t2276 = Declaration{
	Code: "T2276",
	Name: "RoboVac X8 Pro SES",
	HostFeatures: HostBattery | HostFanSpeed | HostLocate | HostPause | HostReturnHome |
		HostSendCommand | HostStart | HostState | HostStop,
	ExtendedFeatures: ExtDoNotDisturb | ExtBoostIQ,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "1", Values: Mapping(
			Pair{"start", true},
			Pair{"stop", false},
		)},
		CommandStatus: {Code: "15"},
		CommandMode: {Code: "5", Values: Mapping(
			Pair{"auto", "auto"},
			Pair{"spot", "spot"},
			Pair{"edge", "edge"},
		)},
		CommandReturnHome: {Code: "7", Values: Mapping(
			Pair{"return_home", true},
		)},
		CommandFanSpeed: {Code: "102", Values: Mapping(
			Pair{"Max", "Max"},
			Pair{"Mid", "Mid"},
			Pair{"Min", "Min"},
		)},
		CommandBattery: {Code: "104"},
		CommandError:   {Code: "2"},
	},
	Binding: TransportBinding{Protocol: "3.5", EmptyStatusPayload: true},
}
