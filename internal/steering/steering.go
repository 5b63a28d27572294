// Package steering implements the nose-wheel steering actuator and its
// controller (spec.md data model SteeringActuator + SteeringController,
// section 4.5 "Brake-steering computer").
package steering

import (
	"math"

	"github.com/flightdeck/hydraulicsim/internal/config"
)

// Inputs are the per-tick sampled signals the steering controller reads.
type Inputs struct {
	PedalRatio      float64 // -1..1
	TillerRatio     float64 // -1..1
	AutopilotDemandDeg float64
	GroundSpeedKt   float64
	NoseGearCompressed bool
	AntiskidOn      bool
	EngineOilPressureLowBoth bool
}

// Controller computes nose-wheel demand from pedal, tiller, and
// autopilot contributions (spec.md section 4.5).
type Controller struct {
	cfg config.SteeringConfig
}

// NewController builds a steering controller from its static config.
func NewController(cfg config.SteeringConfig) *Controller {
	return &Controller{cfg: cfg}
}

// Enabled reports whether steering demand should be produced at all
// (spec.md: "Disabled when both engines oil-pressure-low OR anti-skid
// off OR nose gear not compressed").
func (c *Controller) Enabled(in Inputs) bool {
	return !in.EngineOilPressureLowBoth && in.AntiskidOn && in.NoseGearCompressed
}

// DemandDeg computes the commanded nose-wheel angle, clamped to the
// configured maximum (spec.md section 4.5).
func (c *Controller) DemandDeg(in Inputs) float64 {
	if !c.Enabled(in) {
		return 0
	}

	pedalDeg := 0.0
	if in.GroundSpeedKt < c.cfg.PedalDisableKnots {
		scale := 1.0
		if in.GroundSpeedKt > c.cfg.PedalScaleStartKnots {
			span := c.cfg.PedalDisableKnots - c.cfg.PedalScaleStartKnots
			if span > 0 {
				scale = 1 - (in.GroundSpeedKt-c.cfg.PedalScaleStartKnots)/span
			}
		}
		pedalDeg = in.PedalRatio * c.cfg.MaxAngleDeg * 0.5 * scale
	}

	tillerDeg := 0.0
	if in.GroundSpeedKt < c.cfg.TillerDisableKnots {
		tillerDeg = in.TillerRatio * c.cfg.MaxAngleDeg
	}

	apDeg := clamp(in.AutopilotDemandDeg, -c.cfg.AutopilotLimitDeg, c.cfg.AutopilotLimitDeg)

	total := pedalDeg + tillerDeg + apDeg
	return clamp(total, -c.cfg.MaxAngleDeg, c.cfg.MaxAngleDeg)
}

// Actuator is the hydraulic servo driving the nose wheel to the
// commanded angle. It is a thin position-servo wrapper rather than a
// full LinearActuator, since nose-wheel steering is rotary and its
// fluid consumption is not separately budgeted in spec.md's hydraulic
// balance (spec.md section 4.6 lists it only as a surface output).
type Actuator struct {
	angleDeg     float64
	rateDegPerS  float64
}

// NewActuator builds a steering actuator with the given maximum slew rate.
func NewActuator(rateDegPerS float64) *Actuator {
	return &Actuator{rateDegPerS: rateDegPerS}
}

// Step slews the actual angle toward demandDeg at the configured rate.
func (a *Actuator) Step(demandDeg, dt float64) {
	maxDelta := a.rateDegPerS * dt
	delta := demandDeg - a.angleDeg
	if delta > maxDelta {
		delta = maxDelta
	} else if delta < -maxDelta {
		delta = -maxDelta
	}
	a.angleDeg += delta
}

// AngleDeg returns the actual nose-wheel angle.
func (a *Actuator) AngleDeg() float64 { return a.angleDeg }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
