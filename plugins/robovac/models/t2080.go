package models

// RoboVac S1 Pro. Status and mode DPs carry opaque base64 frames.
var t2080 = Declaration{
	Code: "T2080",
	Name: "RoboVac S1 Pro",
	HostFeatures: HostBattery | HostCleanSpot | HostFanSpeed | HostLocate | HostPause |
		HostReturnHome | HostSendCommand | HostStart | HostState | HostStop | HostMap,
	ExtendedFeatures: ExtCleaningTime | ExtCleaningArea | ExtDoNotDisturb | ExtAutoReturn |
		ExtRoom | ExtZone | ExtBoostIQ | ExtMap | ExtConsumables,
	Commands: map[Command]CommandSpec{
		CommandStartPause: {Code: "2"},
		CommandDirection: {Code: "176", Values: Literals("forward", "back", "left", "right")},
		CommandMode: {Code: "152", Values: Mapping(
			Pair{"auto", "BBoCCAE="},
			Pair{"pause", "AggN"},
			Pair{"spot", "AA=="},
			Pair{"return", "AggG"},
			Pair{"nosweep", "AggO"},
		)},
		CommandStatus: {Code: "153", Values: Mapping(
			Pair{"Paused", "CAoAEAUyAggB"},
			Pair{"Room Cleaning", "CAoCCAEQBTIA"},
			Pair{"Room Positioning", "CAoCCAEQBVIA"},
			Pair{"Room Positioning", "DAoCCAEQBTICEAFSAA=="},
			Pair{"Room Paused", "CgoCCAEQBTICCAE="},
			Pair{"Standby", "BhAHQgBSAA=="},
			Pair{"Standby", "BgoAEAUyAA=="},
			Pair{"Standby", "AA=="},
			Pair{"Heading Home", "BBAHQgA="},
			Pair{"Heading Home", "AgoA"},
			Pair{"Charging", "BBADGgA="},
			Pair{"Completed", "BhADGgIIAQ=="},
			Pair{"Sleeping", "AhAB"},
			Pair{"Adding Water", "DAoCCAEQCRoCCAEyAA=="},
			Pair{"Drying Mop", "BhAJOgIQAg=="},
			Pair{"Drying Mop", "CBAJGgA6AhAC"},
			Pair{"Drying Mop", "ChAJGgIIAToCEAI="},
			Pair{"Washing Mop", "EAoCCAEQCRoCCAEyADoCEAE="},
			Pair{"Washing Mop", "BhAJOgIQAQ=="},
			Pair{"Removing Dirty Water", "AhAJ"},
			Pair{"Manual Control", "BhAGGgIIAQ=="},
			Pair{"Auto Cleaning", "CgoAEAkaAggBMgA="},
		)},
		CommandReturnHome: {Code: "152", Values: Literals("AggB")},
		CommandLocate: {Code: "103"},
		CommandError:  {Code: "106"},
		CommandFanSpeed: {Code: "158", Values: Mapping(
			Pair{"Quiet", "Quiet"},
			Pair{"Standard", "Standard"},
			Pair{"Turbo", "Turbo"},
			Pair{"Max", "Max"},
		)},
		CommandBattery:      {Code: "163"},
		CommandBoostIQ:      {Code: "159"},
		CommandCleaningTime: {Code: "6"},
		CommandCleaningArea: {Code: "7"},
	},
	Activities: map[string]Activity{
		"AUTO":                 ActivityCleaning,
		"POSITION":             ActivityCleaning,
		"Paused":               ActivityPaused,
		"Auto Cleaning":        ActivityCleaning,
		"Room Cleaning":        ActivityCleaning,
		"Room Positioning":     ActivityCleaning,
		"Room Paused":          ActivityPaused,
		"SPOT":                 ActivityCleaning,
		"SPOT_POSITION":        ActivityCleaning,
		"SPOT_PAUSE":           ActivityPaused,
		"START_MANUAL":         ActivityCleaning,
		"Standby":              ActivityIdle,
		"Heading Home":         ActivityReturning,
		"Charging":             ActivityDocked,
		"Completed":            ActivityDocked,
		"Sleeping":             ActivityIdle,
		"Drying Mop":           ActivityDocked,
		"Washing Mop":          ActivityDocked,
		"Removing Dirty Water": ActivityDocked,
		"Emptying Dust":        ActivityDocked,
		"Manual Control":       ActivityCleaning,
	},
}
