package steering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdeck/hydraulicsim/internal/config"
)

func testSteeringCfg() config.SteeringConfig {
	return config.SteeringConfig{
		MaxAngleDeg:          75.0,
		PedalDisableKnots:    20.0,
		PedalScaleStartKnots: 0.0,
		TillerDisableKnots:   70.0,
		AutopilotLimitDeg:    6.0,
	}
}

func TestSteeringDisabledWithoutNoseGearCompressed(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{AntiskidOn: true, NoseGearCompressed: false}
	assert.False(t, c.Enabled(in))
	assert.Equal(t, 0.0, c.DemandDeg(in))
}

func TestSteeringDisabledWithBothEnginesOilPressureLow(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{AntiskidOn: true, NoseGearCompressed: true, EngineOilPressureLowBoth: true}
	assert.False(t, c.Enabled(in))
}

func TestSteeringDisabledWithoutAntiskid(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{AntiskidOn: false, NoseGearCompressed: true}
	assert.False(t, c.Enabled(in))
}

func TestSteeringTillerDominatesAtLowSpeed(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{
		TillerRatio:        1.0,
		GroundSpeedKt:      5,
		NoseGearCompressed: true,
		AntiskidOn:         true,
	}
	assert.InDelta(t, testSteeringCfg().MaxAngleDeg, c.DemandDeg(in), 1e-9)
}

func TestSteeringTillerDisabledAboveThreshold(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{
		TillerRatio:        1.0,
		GroundSpeedKt:      90,
		NoseGearCompressed: true,
		AntiskidOn:         true,
	}
	assert.Equal(t, 0.0, c.DemandDeg(in))
}

func TestSteeringPedalScalesOutAboveScaleStart(t *testing.T) {
	c := NewController(testSteeringCfg())
	low := Inputs{PedalRatio: 1.0, GroundSpeedKt: 0, NoseGearCompressed: true, AntiskidOn: true}
	high := Inputs{PedalRatio: 1.0, GroundSpeedKt: 19, NoseGearCompressed: true, AntiskidOn: true}

	assert.Greater(t, c.DemandDeg(low), c.DemandDeg(high))
}

func TestSteeringAutopilotDemandClampedToLimit(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{
		AutopilotDemandDeg: 100,
		NoseGearCompressed: true,
		AntiskidOn:         true,
	}
	assert.InDelta(t, testSteeringCfg().AutopilotLimitDeg, c.DemandDeg(in), 1e-9)
}

func TestSteeringTotalDemandClampedToMaxAngle(t *testing.T) {
	c := NewController(testSteeringCfg())
	in := Inputs{
		PedalRatio:         1.0,
		TillerRatio:        1.0,
		AutopilotDemandDeg: 6.0,
		GroundSpeedKt:      0,
		NoseGearCompressed: true,
		AntiskidOn:         true,
	}
	assert.LessOrEqual(t, c.DemandDeg(in), testSteeringCfg().MaxAngleDeg)
}

func TestSteeringActuatorSlewsTowardDemandAtConfiguredRate(t *testing.T) {
	a := NewActuator(10.0) // deg/s
	a.Step(5.0, 0.1)
	assert.InDelta(t, 1.0, a.AngleDeg(), 1e-9)

	for i := 0; i < 10; i++ {
		a.Step(5.0, 0.1)
	}
	assert.InDelta(t, 5.0, a.AngleDeg(), 1e-9)
}

func TestSteeringActuatorSlewRateLimitsLargeReversal(t *testing.T) {
	a := NewActuator(10.0)
	a.Step(50.0, 10) // converge fully first
	a.Step(-50.0, 0.1)
	assert.InDelta(t, 49.0, a.AngleDeg(), 1e-6)
}
