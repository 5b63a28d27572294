// Package controllers implements the discrete logic that selects pump,
// PTU, and RAT activation from panel/engine/electrical inputs, plus the
// brake-steering computer that ties brakes and nose-wheel steering
// together (spec.md section 4.5). Grounded on the teacher's
// failsafe.EmergencySystem enum-state-machine idiom
// (internal/failsafe/emergency.go) for the small discrete controllers
// here, each collapsed to a pure function of its sampled inputs per
// tick (spec.md section 5: "controllers read consistent inputs sampled
// at tick start").
package controllers

// PushbuttonMode is the overhead-panel 2 or 3-position switch shape
// shared by the pump pushbuttons (AUTO/ON/OFF, or AUTO/OFF for PTU).
type PushbuttonMode int

const (
	Auto PushbuttonMode = iota
	On
	Off
)

// EngineDrivenPumpInputs are the per-tick sampled signals for one
// engine-driven pump controller.
type EngineDrivenPumpInputs struct {
	Pushbutton          PushbuttonMode
	FirePushbuttonReleased bool
	OnGround            bool
	EngineRunningNormally bool
	EngineOilPressureLow bool
	PressureLowSensor   bool
	ControllerPowered   bool
}

// EngineDrivenPumpController implements spec.md section 4.5
// "Engine-driven-pump controller".
type EngineDrivenPumpController struct {
	fault bool
}

// ShouldPressurise reports the should_pressurise discrete. An unpowered
// controller defaults true (spec.md section 4.2 "Solenoid convention":
// the depressurise solenoid is energised to prevent pressurisation, so
// losing control power defaults to pressurise).
func (c *EngineDrivenPumpController) ShouldPressurise(in EngineDrivenPumpInputs) bool {
	if !in.ControllerPowered {
		return true
	}
	commandedOn := in.Pushbutton == Auto && !in.FirePushbuttonReleased &&
		(in.OnGround || in.EngineRunningNormally)
	return commandedOn
}

// Update refreshes the fault latch (spec.md: "Fault if pressure-low
// sensor set AND should_pressurise AND not (on-ground and engine oil
// pressure low)" — the 11-KS1 ground/oil-pressure inhibit).
func (c *EngineDrivenPumpController) Update(in EngineDrivenPumpInputs) {
	shouldPressurise := c.ShouldPressurise(in)
	inhibited := in.OnGround && in.EngineOilPressureLow
	c.fault = in.PressureLowSensor && shouldPressurise && !inhibited
}

// Fault reports the latched PUMP FAULT discrete.
func (c *EngineDrivenPumpController) Fault() bool { return c.fault }

// BlueElectricPumpInputs are the per-tick sampled signals for the Blue
// electric pump controller.
type BlueElectricPumpInputs struct {
	Pushbutton     PushbuttonMode
	AnyEngineRunning bool
	Airborne       bool
	OverridePressed bool
	DCESSPowered   bool
}

// BlueElectricPumpController implements spec.md section 4.5 "Blue
// electric-pump controller", including the momentary override button
// that latches via a DC-ESS relay.
type BlueElectricPumpController struct {
	overrideLatched bool
}

// Update advances the override latch one tick.
func (c *BlueElectricPumpController) Update(in BlueElectricPumpInputs) {
	if !in.DCESSPowered {
		c.overrideLatched = false // losing DC ESS resets the latch
		return
	}
	if in.OverridePressed {
		c.overrideLatched = true
	}
}

// ShouldRun reports whether the pump should be commanded on.
func (c *BlueElectricPumpController) ShouldRun(in BlueElectricPumpInputs) bool {
	return in.Pushbutton == Auto && (in.AnyEngineRunning || in.Airborne || c.overrideLatched)
}

// YellowElectricPumpInputs are the per-tick sampled signals for the
// Yellow electric pump controller.
type YellowElectricPumpInputs struct {
	Pushbutton           PushbuttonMode
	CargoDoorOperationRequested bool
	SecondsSinceLastDoorOpen float64
	MainBusPowered       bool
	SecondaryBusPowered  bool
}

// YellowElectricPumpController implements spec.md section 4.5 "Yellow
// electric-pump controller": main bus ON position, or the secondary
// ground-handling bus for up to 20 s after a cargo-door operation.
type YellowElectricPumpController struct{}

const yellowDoorWindowS = 20.0

// ShouldRun reports whether the pump should be commanded on.
func (c *YellowElectricPumpController) ShouldRun(in YellowElectricPumpInputs) bool {
	if in.Pushbutton == On && in.MainBusPowered {
		return true
	}
	doorActive := in.CargoDoorOperationRequested || in.SecondsSinceLastDoorOpen <= yellowDoorWindowS
	return doorActive && in.SecondaryBusPowered
}

// PTUControllerInputs are the per-tick sampled signals for the PTU
// controller.
type PTUControllerInputs struct {
	Pushbutton         PushbuttonMode
	OnGround           bool
	NoseGearCompressed bool
	EngineOneMasterOn  bool
	EngineTwoMasterOn  bool
	ParkBrakeOn        bool
	PushbackTugAttached bool
	SecondsSinceCargoDoorOp float64
	ControllerPowered  bool
}

// PTUController implements spec.md section 4.5 "PTU controller".
type PTUController struct{}

const ptuCargoDoorInhibitS = 40.0

// ShouldEnable reports the should_enable discrete (spec.md: "Unpowered
// controller defaults ENABLE (safety-on)").
func (c *PTUController) ShouldEnable(in PTUControllerInputs) bool {
	if !in.ControllerPowered {
		return true
	}
	if in.SecondsSinceCargoDoorOp <= ptuCargoDoorInhibitS {
		return false
	}
	oneEngineOnly := in.EngineOneMasterOn != in.EngineTwoMasterOn
	groundInhibit := in.OnGround && in.NoseGearCompressed && oneEngineOnly &&
		in.ParkBrakeOn && !in.PushbackTugAttached
	return in.Pushbutton == Auto && !groundInhibit
}

// RATControllerInputs are the per-tick sampled signals for the RAT
// deploy controller.
type RATControllerInputs struct {
	ManualDeployPushed bool
	EmergencyElecActive bool
	SolenoidOneEnergised bool
	SolenoidTwoEnergised bool
	SimReady           bool
}

// RATController implements spec.md section 4.5 "RAT controller": either
// of two independent DC-HOT-bus solenoids, energised and tripped by
// manual push or emergency-elec state, latches deployment once the sim
// is ready.
type RATController struct {
	deployed bool
}

// Update advances the deploy latch one tick.
func (c *RATController) Update(in RATControllerInputs) {
	if c.deployed || !in.SimReady {
		return
	}
	trigger := in.ManualDeployPushed || in.EmergencyElecActive
	if trigger && (in.SolenoidOneEnergised || in.SolenoidTwoEnergised) {
		c.deployed = true
	}
}

// Deployed reports the latched deploy discrete.
func (c *RATController) Deployed() bool { return c.deployed }
