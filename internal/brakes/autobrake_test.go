package brakes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdeck/hydraulicsim/internal/config"
)

func testAutobrakeCfg() config.AutobrakeConfig {
	return config.AutobrakeConfig{
		Low:             buildProfile(1.7),
		Medium:          buildProfile(3.0),
		Max:             buildProfile(5.0),
		MaxRejectDelayS: 10.0,
		GovernorKp:      0.3,
		GovernorKi:      0.05,
	}
}

// buildProfile returns an empty profile: config's curve points are
// unexported, so finalDecel is not used and the profile's target is
// zero at every time.
func buildProfile(finalDecel float64) config.AutobrakeProfile {
	return config.AutobrakeProfile{}
}

func TestAutobrakeArmsOnRequest(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Low, WeightOnWheels: true}, 0.1)
	assert.Equal(t, Low, c.State())
}

func TestAutobrakeIgnoresArmRequestSentinel(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: false, WeightOnWheels: true}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeMaxRejectedInFlightAfterDelay(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	// Airborne for longer than MaxRejectDelayS before the MAX arm attempt.
	for i := 0; i < 110; i++ {
		c.Update(Inputs{WeightOnWheels: false}, 0.1)
	}
	c.Update(Inputs{ArmRequested: true, ArmRequest: Max, WeightOnWheels: false}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeMaxAcceptedShortlyAfterLiftoff(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{WeightOnWheels: false}, 0.1)
	c.Update(Inputs{ArmRequested: true, ArmRequest: Max, WeightOnWheels: false}, 0.1)
	assert.Equal(t, Max, c.State())
}

func TestAutobrakeEngagesOnlyWithGroundSpoilersOut(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Low, WeightOnWheels: true}, 0.1)

	c.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: false}, 0.1)
	assert.Equal(t, 0.0, c.Demand())

	c.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: true, AntiskidOn: true}, 0.1)
	assert.GreaterOrEqual(t, c.Demand(), 0.0)
}

func TestAutobrakeDisarmsWhenSpoilersRetractAfterEngagement(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Low, WeightOnWheels: true}, 0.1)
	c.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: true, AntiskidOn: true}, 0.1)
	assert.Equal(t, Low, c.State())

	c.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: false, AntiskidOn: true}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeLowMediumDisarmOnModeratePedal(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Medium, WeightOnWheels: true}, 0.1)
	assert.Equal(t, Medium, c.State())

	c.Update(Inputs{WeightOnWheels: true, PedalLeft: 0.6}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeMaxRequiresHigherPedalToDisarm(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Max, WeightOnWheels: true}, 0.1)

	// A pedal input that would disarm LOW/MEDIUM does not disarm MAX.
	c.Update(Inputs{WeightOnWheels: true, PedalLeft: 0.6}, 0.1)
	assert.Equal(t, Max, c.State())

	c.Update(Inputs{WeightOnWheels: true, PedalLeft: 0.8}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeExternalDisarm(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Low, WeightOnWheels: true}, 0.1)
	c.Update(Inputs{WeightOnWheels: true, ExternalDisarm: true}, 0.1)
	assert.Equal(t, None, c.State())
}

func TestAutobrakeAntiskidOffDisarmsWhenSimReady(t *testing.T) {
	c := NewController(testAutobrakeCfg())
	c.Update(Inputs{ArmRequested: true, ArmRequest: Low, WeightOnWheels: true}, 0.1)
	c.Update(Inputs{WeightOnWheels: true, SimReady: true, AntiskidOn: false}, 0.1)
	assert.Equal(t, None, c.State())
}

// The governor tracks measured deceleration toward the curve's target
// rather than ramping open loop: a measured deceleration already at the
// MEDIUM target must settle on a far smaller demand than one stuck at
// zero, since errDecel := target - measuredDecel shrinks toward zero in
// the former case but stays at the full target value in the latter.
func TestAutobrakeGovernorTracksMeasuredDeceleration(t *testing.T) {
	cfg := config.Default().Autobrake
	mediumTarget := cfg.Medium.TimePoints[len(cfg.Medium.TimePoints)-1].TargetDecelMPerSS

	atTarget := NewController(cfg)
	atTarget.Update(Inputs{ArmRequested: true, ArmRequest: Medium, WeightOnWheels: true}, 0.1)
	for i := 0; i < 50; i++ {
		atTarget.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: true, AntiskidOn: true, MeasuredDecelMPerSS: mediumTarget}, 0.1)
	}

	stuckAtZero := NewController(cfg)
	stuckAtZero.Update(Inputs{ArmRequested: true, ArmRequest: Medium, WeightOnWheels: true}, 0.1)
	for i := 0; i < 50; i++ {
		stuckAtZero.Update(Inputs{WeightOnWheels: true, GroundSpoilersOut: true, AntiskidOn: true, MeasuredDecelMPerSS: 0}, 0.1)
	}

	assert.Less(t, atTarget.Demand(), stuckAtZero.Demand())
}
