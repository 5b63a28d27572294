package hydraulic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/units"
)

func testCircuitCfg(hasBrakeAcc bool) config.CircuitConfig {
	target := units.PSIToPa(3000)
	c := config.CircuitConfig{
		Name:             config.Yellow,
		TargetPressurePa: target,
		MaxPressurePa:    target * 1.2,
		Reservoir:        testResCfg(),
		MainAccumulator: config.AccumulatorConfig{
			PrechargePa:   units.PSIToPa(1885),
			MaxFluidM3:    units.GallonToM3(0.264),
			HasCheckValve: true,
		},
		HasBrakeAccumulator:  hasBrakeAcc,
		PriorityValveOpenPa:  units.PSIToPa(1750),
		PriorityValveClosePa: units.PSIToPa(1450),
		SystemPressureSwitch: testSwitchCfg(),
		PumpSidePressureSwitch: testSwitchCfg(),
		FluidStiffness:       target / units.GallonToM3(0.08),
		Pump:                 testPumpCfg(),
	}
	if hasBrakeAcc {
		c.BrakeAccumulator = config.AccumulatorConfig{
			PrechargePa:   units.PSIToPa(1000),
			MaxFluidM3:    units.GallonToM3(1.0),
			HasCheckValve: true,
		}
	}
	return c
}

func TestCircuitStartsAtZeroPressure(t *testing.T) {
	c := NewCircuit(testCircuitCfg(false), 1)
	assert.Equal(t, 0.0, c.SystemSectionPressure())
	assert.False(t, c.SystemPressureSwitchClosed())
}

func TestCircuitPressurisesWhenPumpRuns(t *testing.T) {
	c := NewCircuit(testCircuitCfg(false), 1)
	p := NewPump(KindEngineDriven, testPumpCfg())
	p.SetShouldPressurise(true)
	p.SetShaftSpeed(300)

	for i := 0; i < 200; i++ {
		c.Update([]*Pump{p}, 0.01)
	}

	assert.Positive(t, c.SystemSectionPressure())
}

func TestCircuitClampsToMaxPressure(t *testing.T) {
	c := NewCircuit(testCircuitCfg(false), 1)
	p := NewPump(KindEngineDriven, testPumpCfg())
	p.SetShouldPressurise(true)
	p.SetShaftSpeed(300)

	for i := 0; i < 2000; i++ {
		c.Update([]*Pump{p}, 0.01)
	}

	assert.LessOrEqual(t, c.SystemSectionPressure(), testCircuitCfg(false).MaxPressurePa)
	assert.LessOrEqual(t, c.PumpSectionPressure(0), testCircuitCfg(false).MaxPressurePa)
}

func TestCircuitBrakeAccumulatorOnlyWhenConfigured(t *testing.T) {
	withAcc := NewCircuit(testCircuitCfg(true), 1)
	withoutAcc := NewCircuit(testCircuitCfg(false), 1)

	assert.NotNil(t, withAcc.BrakeAccumulator)
	assert.Nil(t, withoutAcc.BrakeAccumulator)
}

func TestCircuitFireValveIsolatesPumpSectionSensor(t *testing.T) {
	c := NewCircuit(testCircuitCfg(false), 1)
	p := NewPump(KindEngineDriven, testPumpCfg())
	p.SetShouldPressurise(true)
	p.SetShaftSpeed(300)
	p.SetFireValve(true)

	for i := 0; i < 50; i++ {
		c.Update([]*Pump{p}, 0.01)
	}
	assert.Positive(t, c.PumpSectionPressure(0))

	c.FireValve(0).Trip()
	assert.Equal(t, 0.0, c.PumpSectionPressure(0))
}

func TestCircuitActuatorVolumeConsumesSystemPressure(t *testing.T) {
	newSteadyCircuit := func() *Circuit {
		c := NewCircuit(testCircuitCfg(false), 1)
		p := NewPump(KindEngineDriven, testPumpCfg())
		p.SetShouldPressurise(true)
		p.SetShaftSpeed(300)
		for i := 0; i < 200; i++ {
			c.Update([]*Pump{p}, 0.01)
		}
		return c
	}

	undrawn := newSteadyCircuit()
	p1 := NewPump(KindEngineDriven, testPumpCfg())
	p1.SetShouldPressurise(true)
	p1.SetShaftSpeed(300)
	undrawn.Update([]*Pump{p1}, 0.01)

	drawn := newSteadyCircuit()
	p2 := NewPump(KindEngineDriven, testPumpCfg())
	p2.SetShouldPressurise(true)
	p2.SetShaftSpeed(300)
	drawn.AddActuatorVolume(1.0e-4)
	drawn.Update([]*Pump{p2}, 0.01)

	assert.Less(t, drawn.SystemSectionPressure(), undrawn.SystemSectionPressure())
}
