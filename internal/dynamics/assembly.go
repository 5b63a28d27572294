package dynamics

// Assembly couples N actuators (N in {1,2,3}) to one rigid body (spec.md
// data model HydraulicAssembly). Each tick it receives a vector of
// per-actuator commands and a vector of supply pressures, resolves each
// actuator's flow/force, integrates the body, and reports position and
// consumed/returned fluid volumes upward.
type Assembly struct {
	Body      *RigidBodyOnHinge
	Actuators []*LinearActuator

	aeroTorqueNm float64
}

// NewAssembly builds an assembly from a body and its actuators (ordering
// matches the per-actuator commands/pressures slices passed to Tick).
func NewAssembly(body *RigidBodyOnHinge, actuators []*LinearActuator) *Assembly {
	return &Assembly{Body: body, Actuators: actuators}
}

// SetAerodynamicTorque sets the externally supplied aerodynamic torque
// for the next Tick (spec.md: "the flight model's aerodynamic force
// computation" is an external collaborator referenced only by interface).
func (a *Assembly) SetAerodynamicTorque(torqueNm float64) { a.aeroTorqueNm = torqueNm }

// Tick resolves every actuator and integrates the body one sub-step. It
// returns, per actuator, the net fluid volume consumed (+) or returned
// (-) that the caller must report to the owning circuit's system section
// via Circuit.AddActuatorVolume.
func (a *Assembly) Tick(commands []Command, pressures []float64, dt float64) []float64 {
	attachVelocity := a.Body.AttachVelocity()

	var netForce float64
	volumes := make([]float64, len(a.Actuators))
	for i, act := range a.Actuators {
		cmd := commands[i]
		force := act.Step(cmd, pressures[i], attachVelocity, dt)
		netForce += force
		volumes[i] = act.VolumeDelta()
	}

	a.Body.Integrate(netForce, a.aeroTorqueNm, dt)
	return volumes
}

// Position returns the body's current hinge angle, rad.
func (a *Assembly) Position() float64 { return a.Body.Theta() }
