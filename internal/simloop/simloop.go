// Package simloop implements the fixed-step sub-stepping adapter that
// sits between the host's variable-Δt outer tick and the simulator's
// fixed 10 ms physics/hydraulics core (spec.md section 5 "Scheduling
// model"). No teacher equivalent exists for this piece — the teacher is
// purely event/timer driven — so it is built directly from spec.md's
// description rather than adapted from a teacher file.
package simloop

// MaxStepLoop accumulates variable-length outer-tick deltas and drains
// them in fixed sub-steps, carrying any remainder to the next outer
// tick (spec.md: "a fixed-step sub-loop runs the hydraulic/physics core
// at 10 ms sub-steps via an adapter that preserves an accumulator across
// ticks").
type MaxStepLoop struct {
	subStepS   float64
	maxSteps   int
	accumulator float64
}

// NewMaxStepLoop builds a loop with the given fixed sub-step size.
// maxStepsPerTick bounds how many sub-steps one outer tick may drain,
// so a host stall (e.g. a debugger pause) cannot trigger a runaway
// catch-up burst; any further backlog is simply dropped rather than
// simulated in a burst, since a fixed-step physics core dropping wall
// time after a stall is preferable to spiralling further behind.
func NewMaxStepLoop(subStepS float64, maxStepsPerTick int) *MaxStepLoop {
	return &MaxStepLoop{subStepS: subStepS, maxSteps: maxStepsPerTick}
}

// SubStepS returns the fixed sub-step size.
func (l *MaxStepLoop) SubStepS() float64 { return l.subStepS }

// Advance accumulates dtOuter and invokes step once per fixed sub-step
// that has accumulated, passing the fixed sub-step size each time. It
// returns the number of sub-steps actually run.
func (l *MaxStepLoop) Advance(dtOuter float64, step func(subStepS float64)) int {
	l.accumulator += dtOuter

	// A tolerance of a billionth of a sub-step keeps float rounding (0.03 s
	// accumulating to just under three 0.01 s steps) from losing a step.
	threshold := l.subStepS * (1 - 1e-9)
	ran := 0
	for l.accumulator >= threshold && ran < l.maxSteps {
		step(l.subStepS)
		l.accumulator -= l.subStepS
		ran++
	}
	if ran == l.maxSteps && l.accumulator >= threshold {
		// Backlog exceeds the per-tick cap: drop the remainder rather than
		// let the accumulator grow without bound.
		l.accumulator = 0
	}
	return ran
}
