// Package rat implements the ram-air-turbine deploy pendulum and its
// coupled emergency generator shaft model (spec.md section 4.7).
package rat

import (
	"math"

	"github.com/flightdeck/hydraulicsim/internal/config"
)

const (
	stowAngleRad   = 0.0
	deployAngleRad = math.Pi / 2

	springTorqueNm = 45.0
	dragCoeff      = 0.02
	inertiaKgM2    = 0.8

	rpmPerRadPerS = 60.0 / (2 * math.Pi)
)

// Turbine is the RAT's 1-DOF deploy pendulum plus its airspeed-coupled
// shaft speed response (spec.md section 4.7).
type Turbine struct {
	cfg config.RATConfig

	angleRad    float64
	angleRateRS float64
	deployed    bool

	shaftSpeedRadS float64 // omega_rat
}

// NewTurbine builds a stowed RAT.
func NewTurbine(cfg config.RATConfig) *Turbine {
	return &Turbine{cfg: cfg, angleRad: stowAngleRad}
}

// Deploy releases the pendulum (idempotent).
func (t *Turbine) Deploy() { t.deployed = true }

// Deployed reports whether deployment has been commanded.
func (t *Turbine) Deployed() bool { return t.deployed }

// StowRatio returns 0 (fully stowed) to 1 (fully deployed) for host I/O.
func (t *Turbine) StowRatio() float64 {
	return (t.angleRad - stowAngleRad) / (deployAngleRad - stowAngleRad)
}

// Tick integrates the pendulum and the shaft-speed first-order response
// to airspeed (spec.md: "Turbine angular velocity omega_rat is a
// first-order response to airspeed once deployed, saturating at ~12000
// rpm above ~100 kt").
func (t *Turbine) Tick(airspeedKt, dt float64) {
	if t.deployed && t.angleRad < deployAngleRad {
		dragTorque := -dragCoeff * t.angleRateRS * math.Abs(t.angleRateRS)
		angleAccel := (springTorqueNm + dragTorque) / inertiaKgM2
		t.angleRateRS += angleAccel * dt
		t.angleRad += t.angleRateRS * dt
		if t.angleRad >= deployAngleRad {
			t.angleRad = deployAngleRad
			t.angleRateRS = 0
		}
	}

	if !t.deployed {
		t.shaftSpeedRadS = 0
		return
	}

	targetKt := airspeedKt
	if targetKt > t.cfg.SaturationKnots {
		targetKt = t.cfg.SaturationKnots
	}
	targetRadS := (targetKt / t.cfg.SaturationKnots) * rpmToRadS(t.cfg.MaxRPM)

	tau := t.cfg.TimeConstantS
	if tau <= 0 {
		tau = 1.0
	}
	t.shaftSpeedRadS += (targetRadS - t.shaftSpeedRadS) * (dt / tau)
}

// ShaftSpeedRadS returns the current turbine shaft angular speed.
func (t *Turbine) ShaftSpeedRadS() float64 { return t.shaftSpeedRadS }

// RPM returns the current turbine shaft speed in rpm for host I/O.
func (t *Turbine) RPM() float64 { return t.shaftSpeedRadS * rpmPerRadPerS }

func rpmToRadS(rpm float64) float64 { return rpm / rpmPerRadPerS }

// EmergencyGenerator reports is_at_nominal_speed once the RAT shaft
// exceeds the configured threshold (spec.md: "Emergency generator
// reports is_at_nominal_speed when omega_rat exceeds 2000 rpm on the
// generator shaft, after which TR-ESS may be powered").
type EmergencyGenerator struct {
	cfg config.RATConfig
}

// NewEmergencyGenerator builds the generator coupled to a RAT turbine.
func NewEmergencyGenerator(cfg config.RATConfig) *EmergencyGenerator {
	return &EmergencyGenerator{cfg: cfg}
}

// IsAtNominalSpeed reports whether the turbine has spun up enough to
// supply useful power.
func (g *EmergencyGenerator) IsAtNominalSpeed(t *Turbine) bool {
	return t.RPM() > g.cfg.GeneratorNominalRPM
}

// OutputWithinNormalParameters implements the source contract every
// electrical source exposes (spec.md section 3 "Electrical sources").
func (g *EmergencyGenerator) OutputWithinNormalParameters(t *Turbine) bool {
	return g.IsAtNominalSpeed(t)
}
