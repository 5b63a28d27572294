package hydraulic

import (
	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/curve"
)

// Kind distinguishes the three pump families sharing one flow model
// (spec.md section 4.2).
type Kind int

const (
	KindEngineDriven Kind = iota
	KindElectric
	KindRAT
)

// Pump produces volumetric flow each sub-step from displacement(pressure)
// times shaft speed times enable, gated by fire-valve state and
// reservoir availability. Grounded on the teacher's MotorModel
// (config + state + Update) in propulsion/electric/motor.go, generalized
// from electrical torque/current to hydraulic displacement/flow.
type Pump struct {
	kind Kind

	displacement *curve.Piecewise
	overheatAt   float64

	// discrete inputs, held constant between sub-steps (spec.md section 5)
	shouldPressurise bool
	fireValveOpen    bool
	shaftSpeedRadS   float64

	// electric-pump-only duty accounting
	dutyFraction      float64
	overheated        bool
	pendingDutyTarget float64

	lastFlowM3 float64
}

// NewPump builds a pump of the given kind from its displacement curve.
func NewPump(kind Kind, cfg config.PumpConfig) *Pump {
	pts := make([]curve.Point, len(cfg.DisplacementCurve))
	for i, p := range cfg.DisplacementCurve {
		pts[i] = curve.Point{X: p.PressurePa, Y: p.DisplacementM3PerRad}
	}
	return &Pump{
		kind:          kind,
		displacement:  curve.New(pts),
		overheatAt:    cfg.OverheatThreshold,
		fireValveOpen: true,
	}
}

// SetFireValve is called by the circuit once the fire shutoff valve's
// discrete state is known for this sub-step.
func (p *Pump) SetFireValve(open bool) { p.fireValveOpen = open }

// SetShouldPressurise sets the controller's enable demand. Per spec.md
// section 4.2, callers must already have folded the "unpowered
// controller defaults to pressurise" safety rule into this value before
// calling SetShouldPressurise.
func (p *Pump) SetShouldPressurise(v bool) { p.shouldPressurise = v }

// SetShaftSpeed sets the mechanical input in rad/s (engine N2-derived for
// an EDP, RAT-turbine-derived for the RAT pump; ignored for electric
// pumps, which use SetElectricSpeed instead).
func (p *Pump) SetShaftSpeed(radS float64) { p.shaftSpeedRadS = radS }

// SetElectricSpeed sets the motor-derived shaft speed for an electric
// pump, enables it for this sub-step, and records the target for
// duty-cycle/overheat accounting.
func (p *Pump) SetElectricSpeed(radS float64, enabled bool) {
	p.shaftSpeedRadS = radS
	p.shouldPressurise = enabled
	if p.kind != KindElectric {
		return
	}
	target := 0.0
	if enabled {
		target = 1.0
	}
	// handled per-sub-step in Tick via dt; store target for Tick to consume
	p.pendingDutyTarget = target
}

// Tick advances the pump one sub-step and returns produced flow in m^3,
// bounded by the reservoir's available draw (spec.md section 4.1 step 1).
func (p *Pump) Tick(sectionPressure float64, reservoir *Reservoir, dt float64) float64 {
	if p.kind == KindElectric {
		const dutyTau = 60.0
		p.dutyFraction += (p.pendingDutyTarget - p.dutyFraction) * dt / dutyTau
		p.overheated = p.dutyFraction > p.overheatAt
	}

	enable := p.shouldPressurise && p.fireValveOpen && reservoir.IsUsable()
	if p.kind == KindElectric && p.overheated {
		enable = false
	}
	if !enable {
		p.lastFlowM3 = 0
		return 0
	}

	disp := p.displacement.At(sectionPressure)
	want := disp * p.shaftSpeedRadS * dt
	got := reservoir.Draw(want)
	p.lastFlowM3 = got
	return got
}

// IsOverheated reports the electric-pump duty-cycle fault.
func (p *Pump) IsOverheated() bool { return p.overheated }

// LastFlow returns the most recently produced flow, m^3 for the sub-step.
func (p *Pump) LastFlow() float64 { return p.lastFlowM3 }
