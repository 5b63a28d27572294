package brakes

import (
	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/curve"
)

// State is the autobrake arming/engagement state (spec.md section 4.5,
// host I/O armed-mode codes in spec.md section 6: 0=NONE 1=LOW 2=MED 3=MAX).
type State int

const (
	None State = iota
	Low
	Medium
	Max
)

// Inputs are the per-tick sampled signals the autobrake controller reads.
type Inputs struct {
	// ArmRequested is false when the host wrote -1 ("no change", spec.md
	// section 6); the caller is responsible for that translation so this
	// state machine never sees the sentinel value itself.
	ArmRequested      bool
	ArmRequest        State
	GroundSpoilersOut bool
	PedalLeft         float64 // 0..1
	PedalRight        float64 // 0..1
	AntiskidOn        bool
	SimReady          bool
	WeightOnWheels    bool
	ExternalDisarm    bool
	MeasuredDecelMPerSS float64
}

// Controller is the autobrake state machine plus its deceleration
// governor (spec.md section 4.5). Grounded on the teacher's
// failsafe.EmergencySystem enum-state-machine idiom
// (internal/failsafe/emergency.go).
type Controller struct {
	cfg config.AutobrakeConfig

	state           State
	timeEngagedS    float64
	timeAirborneS   float64
	lastWoW         bool
	governorIntegral float64

	lowCurve  *curve.Piecewise
	medCurve  *curve.Piecewise
	maxCurve  *curve.Piecewise

	demand float64
}

// NewController builds an autobrake controller from its static profiles.
func NewController(cfg config.AutobrakeConfig) *Controller {
	return &Controller{
		cfg:      cfg,
		lastWoW:  true,
		lowCurve: buildCurve(cfg.Low),
		medCurve: buildCurve(cfg.Medium),
		maxCurve: buildCurve(cfg.Max),
	}
}

func buildCurve(p config.AutobrakeProfile) *curve.Piecewise {
	pts := make([]curve.Point, len(p.TimePoints))
	for i, tp := range p.TimePoints {
		pts[i] = curve.Point{X: tp.TimeS, Y: tp.TargetDecelMPerSS}
	}
	return curve.New(pts)
}

// State returns the current armed/engaged state.
func (c *Controller) State() State { return c.state }

// Demand returns the 0..1 brake-demand signal produced by the governor
// (spec.md: "fed to the normal brake circuit's left+right demands as
// max(pedal, autobrake)" — the max() combination is done by the caller).
func (c *Controller) Demand() float64 { return c.demand }

// Update advances the controller one sub-step.
func (c *Controller) Update(in Inputs, dt float64) {
	if !in.WeightOnWheels {
		c.timeAirborneS += dt
	} else {
		c.timeAirborneS = 0
	}
	c.lastWoW = in.WeightOnWheels

	c.applyArmRequest(in)
	c.applyDisarmConditions(in)

	if c.state != None && in.GroundSpoilersOut {
		c.timeEngagedS += dt
		c.demand = c.runGovernor(in.MeasuredDecelMPerSS, dt)
	} else {
		c.timeEngagedS = 0
		c.governorIntegral = 0
		c.demand = 0
	}
}

func (c *Controller) applyArmRequest(in Inputs) {
	if !in.ArmRequested {
		return
	}
	if in.ArmRequest == Max && !in.WeightOnWheels && c.timeAirborneS > c.cfg.MaxRejectDelayS {
		return // MAX rejected in flight after the 10 s delay since WoW=false
	}
	c.state = in.ArmRequest
}

func (c *Controller) applyDisarmConditions(in Inputs) {
	if c.state == None {
		return
	}
	if in.ExternalDisarm {
		c.state = None
		return
	}
	if !in.GroundSpoilersOut && c.timeEngagedS > 0 {
		c.state = None
		return
	}
	if in.SimReady && !in.AntiskidOn {
		c.state = None
		return
	}

	switch c.state {
	case Low, Medium:
		if in.PedalLeft > 0.53 || in.PedalRight > 0.53 || (in.PedalLeft > 0.11 && in.PedalRight > 0.11) {
			c.state = None
		}
	case Max:
		if in.PedalLeft > 0.77 || in.PedalRight > 0.77 || (in.PedalLeft > 0.53 && in.PedalRight > 0.53) {
			c.state = None
		}
	}
}

func (c *Controller) runGovernor(measuredDecel, dt float64) float64 {
	var target float64
	switch c.state {
	case Low:
		target = c.lowCurve.At(c.timeEngagedS)
	case Medium:
		target = c.medCurve.At(c.timeEngagedS)
	case Max:
		target = c.maxCurve.At(c.timeEngagedS)
	default:
		return 0
	}

	errDecel := target - measuredDecel
	c.governorIntegral += errDecel * dt
	out := c.cfg.GovernorKp*errDecel + c.cfg.GovernorKi*c.governorIntegral
	return clamp01(out)
}
