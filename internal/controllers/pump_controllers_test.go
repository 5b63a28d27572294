package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineDrivenPumpUnpoweredControllerDefaultsPressurise(t *testing.T) {
	c := &EngineDrivenPumpController{}
	assert.True(t, c.ShouldPressurise(EngineDrivenPumpInputs{ControllerPowered: false}))
}

func TestEngineDrivenPumpAutoPressurisesWhenEngineRunning(t *testing.T) {
	c := &EngineDrivenPumpController{}
	in := EngineDrivenPumpInputs{
		Pushbutton:            Auto,
		ControllerPowered:     true,
		EngineRunningNormally: true,
	}
	assert.True(t, c.ShouldPressurise(in))
}

func TestEngineDrivenPumpFireReleaseStopsCommand(t *testing.T) {
	c := &EngineDrivenPumpController{}
	in := EngineDrivenPumpInputs{
		Pushbutton:             Auto,
		ControllerPowered:      true,
		EngineRunningNormally:  true,
		FirePushbuttonReleased: true,
	}
	assert.False(t, c.ShouldPressurise(in))
}

func TestEngineDrivenPumpFaultLatchesOnPressureLowWhenCommanded(t *testing.T) {
	c := &EngineDrivenPumpController{}
	in := EngineDrivenPumpInputs{
		Pushbutton:            Auto,
		ControllerPowered:     true,
		EngineRunningNormally: true,
		PressureLowSensor:     true,
	}
	c.Update(in)
	assert.True(t, c.Fault())
}

func TestEngineDrivenPumpFaultInhibitedOnGroundWithLowOilPressure(t *testing.T) {
	c := &EngineDrivenPumpController{}
	in := EngineDrivenPumpInputs{
		Pushbutton:            Auto,
		ControllerPowered:     true,
		OnGround:              true,
		EngineOilPressureLow:  true,
		PressureLowSensor:     true,
	}
	c.Update(in)
	assert.False(t, c.Fault())
}

func TestBlueElectricPumpRunsWhenAirborne(t *testing.T) {
	c := &BlueElectricPumpController{}
	in := BlueElectricPumpInputs{Pushbutton: Auto, Airborne: true, DCESSPowered: true}
	c.Update(in)
	assert.True(t, c.ShouldRun(in))
}

func TestBlueElectricPumpOverrideLatchesUntilDCESSLost(t *testing.T) {
	c := &BlueElectricPumpController{}
	in := BlueElectricPumpInputs{Pushbutton: Auto, OverridePressed: true, DCESSPowered: true}
	c.Update(in)
	assert.True(t, c.ShouldRun(BlueElectricPumpInputs{Pushbutton: Auto, DCESSPowered: true}))

	c.Update(BlueElectricPumpInputs{DCESSPowered: false})
	assert.False(t, c.ShouldRun(BlueElectricPumpInputs{Pushbutton: Auto, DCESSPowered: true}))
}

func TestYellowElectricPumpRunsOnMainBusWhenOn(t *testing.T) {
	c := &YellowElectricPumpController{}
	in := YellowElectricPumpInputs{Pushbutton: On, MainBusPowered: true}
	assert.True(t, c.ShouldRun(in))
}

func TestYellowElectricPumpRunsDuringCargoDoorWindow(t *testing.T) {
	c := &YellowElectricPumpController{}
	in := YellowElectricPumpInputs{
		CargoDoorOperationRequested: true,
		SecondaryBusPowered:         true,
	}
	assert.True(t, c.ShouldRun(in))

	inTimedOut := YellowElectricPumpInputs{
		SecondsSinceLastDoorOpen: 21,
		SecondaryBusPowered:      true,
	}
	assert.False(t, c.ShouldRun(inTimedOut))
}

func TestPTUControllerUnpoweredDefaultsEnable(t *testing.T) {
	c := &PTUController{}
	assert.True(t, c.ShouldEnable(PTUControllerInputs{ControllerPowered: false}))
}

func TestPTUControllerInhibitedDuringCargoDoorWindow(t *testing.T) {
	c := &PTUController{}
	in := PTUControllerInputs{Pushbutton: Auto, ControllerPowered: true, SecondsSinceCargoDoorOp: 10}
	assert.False(t, c.ShouldEnable(in))
}

func TestPTUControllerGroundInhibitWithSingleEngineAndParkBrake(t *testing.T) {
	c := &PTUController{}
	in := PTUControllerInputs{
		Pushbutton:              Auto,
		ControllerPowered:       true,
		SecondsSinceCargoDoorOp: 100,
		OnGround:                true,
		NoseGearCompressed:      true,
		EngineOneMasterOn:       true,
		EngineTwoMasterOn:       false,
		ParkBrakeOn:             true,
		PushbackTugAttached:     false,
	}
	assert.False(t, c.ShouldEnable(in))

	in.PushbackTugAttached = true
	assert.True(t, c.ShouldEnable(in))
}

func TestRATControllerDeploysOnManualPushWithEnergisedSolenoid(t *testing.T) {
	c := &RATController{}
	in := RATControllerInputs{ManualDeployPushed: true, SolenoidOneEnergised: true, SimReady: true}
	c.Update(in)
	assert.True(t, c.Deployed())
}

func TestRATControllerDeploysOnEmergencyElec(t *testing.T) {
	c := &RATController{}
	in := RATControllerInputs{EmergencyElecActive: true, SolenoidTwoEnergised: true, SimReady: true}
	c.Update(in)
	assert.True(t, c.Deployed())
}

func TestRATControllerNeverDeploysWithoutEnergisedSolenoid(t *testing.T) {
	c := &RATController{}
	in := RATControllerInputs{ManualDeployPushed: true, SimReady: true}
	c.Update(in)
	assert.False(t, c.Deployed())
}

func TestRATControllerLatchesDeployment(t *testing.T) {
	c := &RATController{}
	c.Update(RATControllerInputs{ManualDeployPushed: true, SolenoidOneEnergised: true, SimReady: true})
	assert.True(t, c.Deployed())

	c.Update(RATControllerInputs{SimReady: true})
	assert.True(t, c.Deployed())
}
