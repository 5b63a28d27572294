package hydraulic

import "github.com/flightdeck/hydraulicsim/internal/config"

// Accumulator is a gas-over-fluid energy store (spec.md section 3). It
// sources flow when section pressure drops below its own pressure and
// sinks flow when section pressure exceeds it, unless a one-way check
// valve forbids the return path.
type Accumulator struct {
	precharge     float64
	maxFluid      float64
	fluid         float64
	hasCheckValve bool
}

// NewAccumulator builds an accumulator starting fully charged (fluid at
// max), matching a pressurised-at-dispatch aircraft.
func NewAccumulator(cfg config.AccumulatorConfig) *Accumulator {
	return &Accumulator{
		precharge:     cfg.PrechargePa,
		maxFluid:      cfg.MaxFluidM3,
		fluid:         cfg.MaxFluidM3,
		hasCheckValve: cfg.HasCheckValve,
	}
}

// Pressure implements spec.md's P(V_f) = P0 * Vgas_max / (Vgas_max - Vf)
// gas-spring curve, zero when uncompressed (Vf == 0).
func (a *Accumulator) Pressure() float64 {
	if a.fluid <= 0 {
		return 0
	}
	headroom := a.maxFluid - a.fluid
	if headroom <= 1e-12 {
		headroom = 1e-12
	}
	return a.precharge * a.maxFluid / headroom
}

// Fluid returns the current stored fluid volume in m^3.
func (a *Accumulator) Fluid() float64 { return a.fluid }

// ExchangeWithSection is called once per sub-step with the section
// pressure the accumulator is plumbed to. It returns the net volume
// delta applied to the section (positive = accumulator sourced flow to
// the section, negative = accumulator absorbed flow from the section).
// rate bounds how much volume can move in one sub-step (a simple
// orifice-limited transfer, since this is a lumped model rather than
// true transient fluid dynamics).
func (a *Accumulator) ExchangeWithSection(sectionPressure, maxRateM3PerS, dt float64) float64 {
	accPressure := a.Pressure()
	maxStep := maxRateM3PerS * dt

	if sectionPressure < accPressure {
		// Accumulator discharges into the section.
		want := maxStep
		if want > a.fluid {
			want = a.fluid
		}
		a.fluid -= want
		return want
	}

	if sectionPressure > accPressure && !a.hasCheckValve {
		// Section recharges the accumulator (no check valve forbidding return).
		want := maxStep
		room := a.maxFluid - a.fluid
		if want > room {
			want = room
		}
		a.fluid += want
		return -want
	}

	return 0
}

// Recharge directly adds fluid (used when a brake accumulator is
// recharged from the normal system independent of a section exchange
// loop, e.g. by the brake circuit itself).
func (a *Accumulator) Recharge(amount float64) {
	a.fluid += amount
	if a.fluid > a.maxFluid {
		a.fluid = a.maxFluid
	}
}

// Drain removes up to want m^3 and returns what was actually available.
func (a *Accumulator) Drain(want float64) float64 {
	if want <= 0 {
		return 0
	}
	got := want
	if got > a.fluid {
		got = a.fluid
	}
	a.fluid -= got
	return got
}
