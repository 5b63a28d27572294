// Package dynamics implements the hydraulic-to-mechanical coupling:
// linear actuators, the rigid body they drive, and the assembly that
// ties N actuators to one body (spec.md section 4.4, data model
// LinearActuator/RigidBodyOnHinge/HydraulicAssembly).
package dynamics

import "math"

// Mode is one of the three actuator control modes (spec.md section 3).
type Mode int

const (
	PositionControl Mode = iota
	ActiveDamping
	ClosedCircuitDamping
)

// Command is the capability struct collapsing the teacher-inspired deep
// controller-interface hierarchy into one value type (spec.md section 9
// design note): controllers write it, assemblies read it, no runtime
// dispatch required.
type Command struct {
	Mode                  Mode
	RequestedPosition     float64 // m, 0..stroke
	ShouldLock            bool
	RequestedLockPosition float64
}

// ActuatorConfig is the static geometry/gain set for one LinearActuator.
type ActuatorConfig struct {
	HeadAreaM2       float64
	RodAreaM2        float64
	StrokeM          float64
	MaxFlowM3PerS    float64
	PositionKp       float64
	PositionKi       float64
	ForceFeedforward float64
	DampingNPerMPS   float64
	LockedDampingNPerMPS float64
	LossFactor       float64 // single-sided force approximation loss (0..1)
}

// LinearActuator converts section pressure into piston force and motion
// under one of three control modes (spec.md section 4.4).
type LinearActuator struct {
	cfg ActuatorConfig

	position float64
	velocity float64
	integral float64

	locked       bool
	lockPosition float64

	lastForce  float64
	lastFlowM3 float64 // this sub-step's net volume consumed (+) or returned (-)
}

// NewLinearActuator builds an actuator starting at the mid-stroke
// position (a reasonable "parked" default before the first command).
func NewLinearActuator(cfg ActuatorConfig) *LinearActuator {
	return &LinearActuator{cfg: cfg, position: cfg.StrokeM / 2}
}

// Position returns the current piston position in [0, stroke] (invariant P3).
func (a *LinearActuator) Position() float64 { return a.position }

// Force returns the most recently computed piston force, N.
func (a *LinearActuator) Force() float64 { return a.lastForce }

// VolumeDelta returns this sub-step's net fluid volume consumed (+) or
// returned (-) to the circuit's system side, m^3.
func (a *LinearActuator) VolumeDelta() float64 { return a.lastFlowM3 }

// Step advances the actuator one sub-step given the supply pressure
// (head-side, Pa) and the externally-applied velocity (from the rigid
// body's motion at the actuator's attach point, m/s — used by the
// damping modes). It returns the piston force to be summed into the
// rigid body torque balance.
//
// should_lock freezes the actuator at requested_lock_position regardless
// of mode, per spec.md section 4.4 "Locking".
func (a *LinearActuator) Step(cmd Command, supplyPressure, bodyVelocityAtAttach, dt float64) float64 {
	if cmd.ShouldLock {
		a.locked = true
		a.lockPosition = cmd.RequestedLockPosition
	} else {
		a.locked = false
	}

	if a.locked {
		a.position = clamp(a.lockPosition, 0, a.cfg.StrokeM)
		a.velocity = 0
		a.lastFlowM3 = 0
		a.lastForce = 0
		return 0
	}

	areaEff := a.cfg.HeadAreaM2 - a.cfg.RodAreaM2*a.cfg.LossFactor
	if areaEff <= 0 {
		areaEff = a.cfg.HeadAreaM2
	}

	var desiredVelocity float64
	var flowLimited bool

	switch cmd.Mode {
	case PositionControl:
		errPos := cmd.RequestedPosition - a.position
		a.integral += errPos * dt
		desiredVelocity = a.cfg.PositionKp*errPos + a.cfg.PositionKi*a.integral

		maxV := a.cfg.MaxFlowM3PerS / areaEff
		if desiredVelocity > maxV {
			desiredVelocity = maxV
			flowLimited = true
		} else if desiredVelocity < -maxV {
			desiredVelocity = -maxV
			flowLimited = true
		}

		force := supplyPressure*a.cfg.HeadAreaM2 + a.cfg.ForceFeedforward*errPos
		a.lastForce = force

	case ActiveDamping:
		desiredVelocity = bodyVelocityAtAttach
		a.lastForce = -a.cfg.DampingNPerMPS * bodyVelocityAtAttach

	case ClosedCircuitDamping:
		desiredVelocity = bodyVelocityAtAttach * 0.05 // near-zero leak back to reservoir
		a.lastForce = -a.cfg.LockedDampingNPerMPS * bodyVelocityAtAttach
	}

	a.velocity = desiredVelocity
	a.position += a.velocity * dt
	if a.position < 0 {
		a.position = 0
		a.velocity = 0
	} else if a.position > a.cfg.StrokeM {
		a.position = a.cfg.StrokeM
		a.velocity = 0
	}

	flow := areaEff * a.velocity * dt
	if cmd.Mode == ClosedCircuitDamping {
		flow *= 0.02
	}
	_ = flowLimited
	a.lastFlowM3 = flow

	return a.lastForce
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
