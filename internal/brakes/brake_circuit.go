// Package brakes implements per-wheel brake pressure distribution and
// the autobrake deceleration governor (spec.md data model BrakeCircuit
// and Autobrake controller, section 4.5).
package brakes

// Side identifies left or right wheel brakes.
type Side int

const (
	Left Side = iota
	Right
)

// Circuit is one of the aircraft's two independent brake circuits
// (normal, fed from Green; alternate, fed from Yellow with accumulator
// backup). It turns a per-side [0,1] demand plus a pressure limit into a
// per-side output pressure, bounded by whatever source pressure is
// actually available.
type Circuit struct {
	pressureLimitPa float64
	outputPa        [2]float64
	parkingActive   bool
}

// NewCircuit builds a brake circuit with the given nominal pedal limit.
func NewCircuit(pressureLimitPa float64) *Circuit {
	return &Circuit{pressureLimitPa: pressureLimitPa}
}

// SetParkingBrake forces demand to 1 on both sides. The output stays
// bounded by the current pressure limit; the brake-steering computer
// switches that limit to the parking limit via SetPressureLimit.
func (c *Circuit) SetParkingBrake(active bool) { c.parkingActive = active }

// SetPressureLimit updates the active limit (the brake-steering computer
// swaps this between the pedal, parking, and anti-skid-off limits).
func (c *Circuit) SetPressureLimit(limitPa float64) { c.pressureLimitPa = limitPa }

// Update computes output pressure for both sides given demand in [0,1]
// and the available source pressure (section pressure, or accumulator
// pressure for the alternate circuit when the system pump is off).
func (c *Circuit) Update(leftDemand, rightDemand, availablePressurePa float64) {
	ld, rd := leftDemand, rightDemand
	if c.parkingActive {
		ld, rd = 1.0, 1.0
	}
	c.outputPa[Left] = clamp01(ld) * minf(c.pressureLimitPa, availablePressurePa)
	c.outputPa[Right] = clamp01(rd) * minf(c.pressureLimitPa, availablePressurePa)
}

// Pressure returns the output pressure on the given side, Pa.
func (c *Circuit) Pressure(side Side) float64 { return c.outputPa[side] }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
