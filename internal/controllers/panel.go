package controllers

// PanelState is the overhead-panel pushbutton/fire-handle snapshot
// sampled once at tick start and passed immutably to every controller
// (spec.md section 9 design note: "Global state (overhead pushbuttons).
// Package as a single POD PanelState struct snapshotted at tick start
// and passed immutably to consumers.").
type PanelState struct {
	GreenPumpPushbutton  PushbuttonMode
	BluePumpPushbutton   PushbuttonMode
	YellowPumpPushbutton PushbuttonMode
	PTUPushbutton        PushbuttonMode

	EngineOneFirePushbuttonReleased bool
	EngineTwoFirePushbuttonReleased bool

	BlueOverridePressed bool

	AutobrakeArmRequested bool
	AutobrakeArmRequest   int // brakes.State, kept as int to avoid an import cycle

	ParkBrakeOn bool

	RATManualDeployPushed bool

	ACESSFeedAltn bool

	ExternalDisarmEvent bool
}

// FaultLamps is the set of overhead fault indications a HydraulicOverheadPanel
// exposes to the host each tick (spec.md data model row "HydraulicOverheadPanel
// | Pushbutton states, fault lamps").
type FaultLamps struct {
	GreenPumpFault  bool
	BluePumpFault   bool
	YellowPumpFault bool
	ReservoirOverheat [3]bool // Green, Blue, Yellow
	LowLevel          [3]bool
	PTUFault          bool
}
