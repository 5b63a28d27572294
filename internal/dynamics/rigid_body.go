package dynamics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BodyConfig is the static geometry for a RigidBodyOnHinge (spec.md
// data model): mass, inertia about the hinge axis, centre-of-gravity
// arm, the actuator attach arm length, and angular travel limits.
type BodyConfig struct {
	MassKg          float64
	InertiaKgM2     float64
	CGArmM          float64 // distance from hinge to centre of gravity
	ActuatorArmM    float64 // distance from hinge to actuator attach point
	ThetaMinRad     float64
	ThetaMaxRad     float64
	InitiallyLocked bool
}

// RigidBodyOnHinge integrates one rotational degree of freedom under
// actuator force (projected through the actuator arm), gravity, an
// externally supplied aerodynamic torque, and lock reaction (spec.md
// section 4.4 step 5). Grounded on the teacher's fusion.ExtendedKalmanFilter
// state-integration pattern (internal/fusion/ekf.go), whose 15-element
// mat.VecDense state this reduces to a 2-element [theta, thetaDot] state.
type RigidBodyOnHinge struct {
	cfg BodyConfig

	state *mat.VecDense // [theta, thetaDot]
	locked bool
}

// NewRigidBodyOnHinge builds a body starting at rest at thetaMin.
func NewRigidBodyOnHinge(cfg BodyConfig) *RigidBodyOnHinge {
	b := &RigidBodyOnHinge{
		cfg:    cfg,
		state:  mat.NewVecDense(2, []float64{cfg.ThetaMinRad, 0}),
		locked: cfg.InitiallyLocked,
	}
	return b
}

// Theta returns the current hinge angle, rad (invariant P4: in [min, max]).
func (b *RigidBodyOnHinge) Theta() float64 { return b.state.AtVec(0) }

// ThetaDot returns the current angular rate, rad/s.
func (b *RigidBodyOnHinge) ThetaDot() float64 { return b.state.AtVec(1) }

// AttachVelocity returns the linear velocity at the actuator attach
// point, used to drive an actuator in ActiveDamping/ClosedCircuitDamping
// mode (spec.md section 4.4).
func (b *RigidBodyOnHinge) AttachVelocity() float64 {
	return b.ThetaDot() * b.cfg.ActuatorArmM
}

// SetLocked sets the body lock discrete directly (e.g. a gear uplock).
func (b *RigidBodyOnHinge) SetLocked(v bool) { b.locked = v }

// Locked reports the lock discrete.
func (b *RigidBodyOnHinge) Locked() bool { return b.locked }

const gravityMPerSS = 9.80665

// Integrate advances the body one sub-step given the net actuator force
// (N, sum over all actuators attached to this body; Integrate projects
// it to a torque via ActuatorArmM) and an external aerodynamic torque
// (N*m), using semi-implicit Euler (spec.md section 4.4 step 5).
func (b *RigidBodyOnHinge) Integrate(actuatorForceN, aeroTorqueNm, dt float64) {
	if b.locked {
		b.state.SetVec(1, 0)
		return
	}

	theta := b.state.AtVec(0)
	thetaDot := b.state.AtVec(1)

	actuatorTorque := actuatorForceN * b.cfg.ActuatorArmM
	gravityTorque := -b.cfg.MassKg * gravityMPerSS * b.cfg.CGArmM * math.Cos(theta)

	totalTorque := actuatorTorque + gravityTorque + aeroTorqueNm
	thetaDDot := totalTorque / b.cfg.InertiaKgM2

	thetaDot += thetaDDot * dt
	theta += thetaDot * dt

	if theta < b.cfg.ThetaMinRad {
		theta = b.cfg.ThetaMinRad
		thetaDot = 0 // restoring impulse: limit reaction absorbs the excess
	} else if theta > b.cfg.ThetaMaxRad {
		theta = b.cfg.ThetaMaxRad
		thetaDot = 0
	}

	b.state.SetVec(0, theta)
	b.state.SetVec(1, thetaDot)
}
