package dynamics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBodyCfg() BodyConfig {
	return BodyConfig{
		MassKg:       35.0,
		InertiaKgM2:  4.0,
		CGArmM:       0.4,
		ActuatorArmM: 0.5,
		ThetaMinRad:  0,
		ThetaMaxRad:  1.65,
	}
}

func TestRigidBodyStartsAtThetaMin(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	assert.Equal(t, testBodyCfg().ThetaMinRad, b.Theta())
	assert.Equal(t, 0.0, b.ThetaDot())
}

func TestRigidBodyIntegratesUnderForce(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	for i := 0; i < 100; i++ {
		b.Integrate(500, 0, 0.01)
	}
	assert.Greater(t, b.Theta(), testBodyCfg().ThetaMinRad)
}

func TestRigidBodyClampsAtThetaMax(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	for i := 0; i < 10000; i++ {
		b.Integrate(5000, 0, 0.01)
	}
	assert.Equal(t, testBodyCfg().ThetaMaxRad, b.Theta())
	assert.Equal(t, 0.0, b.ThetaDot())
}

func TestRigidBodyClampsAtThetaMin(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	for i := 0; i < 10000; i++ {
		b.Integrate(-5000, 0, 0.01)
	}
	assert.Equal(t, testBodyCfg().ThetaMinRad, b.Theta())
}

func TestRigidBodyLockedIgnoresForce(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	b.SetLocked(true)

	for i := 0; i < 100; i++ {
		b.Integrate(5000, 0, 0.01)
	}

	assert.Equal(t, testBodyCfg().ThetaMinRad, b.Theta())
	assert.True(t, b.Locked())
}

func TestRigidBodyAttachVelocityScalesByArm(t *testing.T) {
	b := NewRigidBodyOnHinge(testBodyCfg())
	for i := 0; i < 50; i++ {
		b.Integrate(500, 0, 0.01)
	}
	assert.InDelta(t, b.ThetaDot()*testBodyCfg().ActuatorArmM, b.AttachVelocity(), 1e-9)
}
