package controllers

import (
	"github.com/flightdeck/hydraulicsim/internal/brakes"
	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/steering"
)

// BrakeSteeringComputerInputs are the per-tick sampled signals the
// brake-steering computer reads, in addition to the two brake circuits
// and steering controller it owns.
type BrakeSteeringComputerInputs struct {
	GreenAvailable bool // Green system pressure switch closed
	AntiskidOn     bool

	PedalLeft  float64
	PedalRight float64
	ParkingBrakeOn bool

	AutobrakeDemand float64

	Steering steering.Inputs
}

// BrakeSteeringComputer selects between normal (Green) and alternate
// (Yellow-with-accumulator) braking and drives nose-wheel steering
// (spec.md section 4.5 "Brake-steering computer").
type BrakeSteeringComputer struct {
	cfg config.BrakeConfig

	Normal    *brakes.Circuit
	Alternate *brakes.Circuit
	Autobrake *brakes.Controller
	Steering  *steering.Controller

	usingNormal bool
}

// NewBrakeSteeringComputer builds the computer and its owned circuits.
func NewBrakeSteeringComputer(brakeCfg config.BrakeConfig, steerCfg config.SteeringConfig, autobrakeCfg config.AutobrakeConfig) *BrakeSteeringComputer {
	return &BrakeSteeringComputer{
		cfg:       brakeCfg,
		Normal:    brakes.NewCircuit(brakeCfg.PedalLimitPa),
		Alternate: brakes.NewCircuit(brakeCfg.PedalLimitPa),
		Autobrake: brakes.NewController(autobrakeCfg),
		Steering:  steering.NewController(steerCfg),
		usingNormal: true,
	}
}

// UsingNormal reports which circuit is currently active.
func (b *BrakeSteeringComputer) UsingNormal() bool { return b.usingNormal }

// limitFor picks the active pressure limit: parking overrides pedal,
// anti-skid-off overrides both (spec.md section 4.5).
func (b *BrakeSteeringComputer) limitFor(in BrakeSteeringComputerInputs) float64 {
	if !in.AntiskidOn {
		return b.cfg.AntiskidOffLimitPa
	}
	if in.ParkingBrakeOn {
		return b.cfg.ParkingLimitPa
	}
	return b.cfg.PedalLimitPa
}

// Update advances the computer one sub-step: selects the active
// circuit (normal while Green is available and anti-skid is on,
// otherwise alternate), sets the pressure limits, and computes per-side
// demand as max(pedal, autobrake). Nose-wheel steering is not driven
// here; it comes from SteeringDemandDeg. normalSupplyPa/alternateSupplyPa
// are the available source pressures (Green system section; Yellow
// system section or its brake accumulator when the Yellow pump is off).
func (b *BrakeSteeringComputer) Update(in BrakeSteeringComputerInputs, normalSupplyPa, alternateSupplyPa, dt float64) {
	b.usingNormal = in.GreenAvailable && in.AntiskidOn

	limit := b.limitFor(in)
	b.Normal.SetPressureLimit(limit)
	b.Alternate.SetPressureLimit(limit)
	b.Normal.SetParkingBrake(in.ParkingBrakeOn)
	b.Alternate.SetParkingBrake(in.ParkingBrakeOn)

	leftDemand := maxf(in.PedalLeft, in.AutobrakeDemand)
	rightDemand := maxf(in.PedalRight, in.AutobrakeDemand)

	if b.usingNormal {
		b.Normal.Update(leftDemand, rightDemand, normalSupplyPa)
		b.Alternate.Update(0, 0, 0)
	} else {
		b.Alternate.Update(leftDemand, rightDemand, alternateSupplyPa)
		b.Normal.Update(0, 0, 0)
	}

}

// SteeringDemandDeg returns the nose-wheel angle demand for this tick,
// for the caller to drive a steering.Actuator's Step.
func (b *BrakeSteeringComputer) SteeringDemandDeg(in steering.Inputs) float64 {
	return b.Steering.DemandDeg(in)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
