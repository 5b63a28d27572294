package hydraulic

import (
	"github.com/flightdeck/hydraulicsim/internal/config"
)

// equaliseTimeConstantS is how fast the pump-side and system-side
// pressures converge once the priority valve is open (spec.md section
// 4.1 step 6: "equalise with system side over a time constant").
const equaliseTimeConstantS = 0.15

// Circuit is one of Green/Blue/Yellow: a reservoir, an optional brake
// accumulator, a pump-side section and a system-side section separated
// by a priority valve, a fire shutoff valve per pump, and a leak
// measurement valve on the system side (spec.md section 4.1). Grounded
// on the teacher's IntegratedSimulation orchestration shape
// (config + owned sub-objects + one Update entry point).
type Circuit struct {
	Name config.CircuitName

	Reservoir        *Reservoir
	MainAccumulator  *Accumulator // always present, buffers the system section
	BrakeAccumulator *Accumulator // nil if this circuit has none

	priorityValve *PriorityValve
	leakValve     *LeakMeasurementValve

	fireValves []*FireShutoffValve

	pumpSidePressure   float64
	systemSidePressure float64
	maxPressure        float64
	stiffness          float64

	systemSwitch   *PressureSwitch
	pumpSideSwitch *PressureSwitch

	pendingActuatorFlow float64 // m^3 consumed by actuators this sub-step
	pendingExternalFlow float64 // m^3 net from PTU etc, system side
}

// NewCircuit builds a circuit from its static config. nPumps is the
// number of engine-driven/electric pumps plumbed into the pump-side
// section, each getting its own fire shutoff valve.
func NewCircuit(cfg config.CircuitConfig, nPumps int) *Circuit {
	c := &Circuit{
		Name:            cfg.Name,
		Reservoir:       NewReservoir(cfg.Reservoir),
		MainAccumulator: NewAccumulator(cfg.MainAccumulator),
		priorityValve:   NewPriorityValve(cfg.PriorityValveOpenPa, cfg.PriorityValveClosePa),
		leakValve:     NewLeakMeasurementValve(cfg.SystemPressureSwitch.HighThresholdPa, 1.0e-6),
		maxPressure:   cfg.MaxPressurePa,
		stiffness:     cfg.FluidStiffness,
		systemSwitch:  NewPressureSwitch(cfg.SystemPressureSwitch),
		pumpSideSwitch: NewPressureSwitch(cfg.PumpSidePressureSwitch),
	}
	if cfg.HasBrakeAccumulator {
		c.BrakeAccumulator = NewAccumulator(cfg.BrakeAccumulator)
	}
	for i := 0; i < nPumps; i++ {
		c.fireValves = append(c.fireValves, NewFireShutoffValve())
	}
	return c
}

// FireValve returns the fire shutoff valve for pump index idx.
func (c *Circuit) FireValve(idx int) *FireShutoffValve { return c.fireValves[idx] }

// AddActuatorVolume accumulates one actuator's consumed/returned volume
// for the next pressure solve (spec.md "update_system_actuator_volumes").
// Positive amount means fluid consumed from the system section; negative
// means fluid returned to it.
func (c *Circuit) AddActuatorVolume(amount float64) {
	c.pendingActuatorFlow += amount
}

// AddExternalSystemFlow accumulates a net volumetric delta applied to
// the system section this sub-step, used by the power transfer unit.
func (c *Circuit) AddExternalSystemFlow(amount float64) {
	c.pendingExternalFlow += amount
}

// SetLeakValveClosed sets the maintenance leak-measurement-valve state.
func (c *Circuit) SetLeakValveClosed(closed bool) { c.leakValve.SetClosed(closed) }

// Update advances the circuit one sub-step (spec.md section 4.1
// "Algorithm per sub-step, per section"). pumps are all pumps feeding
// this circuit's pump-side section (engine-driven and electric); fire
// valve gating has already been applied to each pump via SetFireValve
// before calling Update.
func (c *Circuit) Update(pumps []*Pump, dt float64) {
	c.Reservoir.Tick(dt) // injected reservoir-leak failure, if configured

	// (1) Sum pump output flows, bounded by reservoir availability.
	var pumpFlow float64
	for _, p := range pumps {
		pumpFlow += p.Tick(c.pumpSidePressure, c.Reservoir, dt)
	}

	// (4) Leak-measurement-valve leakage.
	leak := c.leakValve.LeakFlow(c.systemSidePressure, dt)

	// System-side net volume: actuator consumption (+ = consumed),
	// external (PTU) contribution, minus leak loss to reservoir return.
	systemNet := -c.pendingActuatorFlow + c.pendingExternalFlow - leak
	c.Reservoir.Return(leak) // leaked fluid returns via the case drain

	// (5) Update pump-side pressure from net volume-above-nominal via the
	// stiffness curve; reservoir draw already removed pump inflow volume
	// from the reservoir, so pump-side pressure rises with pumpFlow and
	// falls with whatever crosses the priority valve to the system side.
	c.pumpSidePressure += pumpFlow * c.stiffness
	c.systemSidePressure += systemNet * c.stiffness

	// (6) Resolve priority valve and equalise when open.
	c.priorityValve.Update(c.pumpSidePressure)
	if c.priorityValve.Open() {
		delta := c.pumpSidePressure - c.systemSidePressure
		transfer := delta * (dt / equaliseTimeConstantS)
		if transfer > delta {
			transfer = delta
		}
		c.pumpSidePressure -= transfer / 2
		c.systemSidePressure += transfer / 2
	}

	// Main accumulator always exchanges with the system section, damping
	// pressure transients and supplying a brief reserve after shutdown.
	mainExch := c.MainAccumulator.ExchangeWithSection(c.systemSidePressure, 3.0e-4, dt)
	c.systemSidePressure -= mainExch * c.stiffness

	// Brake accumulator, if present, exchanges with the system section.
	if c.BrakeAccumulator != nil {
		exch := c.BrakeAccumulator.ExchangeWithSection(c.systemSidePressure, 2.0e-4, dt)
		c.systemSidePressure -= exch * c.stiffness
	}

	// Clamp to [0, Pmax] (invariant P2, 20% overshoot margin).
	c.pumpSidePressure = clamp(c.pumpSidePressure, 0, c.maxPressure)
	c.systemSidePressure = clamp(c.systemSidePressure, 0, c.maxPressure)

	// (7) Update pressure switches by hysteresis.
	c.pumpSideSwitch.Update(c.pumpSidePressure)
	c.systemSwitch.Update(c.systemSidePressure)

	c.pendingActuatorFlow = 0
	c.pendingExternalFlow = 0
}

// SystemSectionPressure returns the scalar pressure at the system side.
func (c *Circuit) SystemSectionPressure() float64 { return c.systemSidePressure }

// PumpSectionPressure returns the pump side pressure as seen upstream of
// the indicated pump's fire shutoff valve (zero if that valve is
// closed, since the local sensor sits downstream of it).
func (c *Circuit) PumpSectionPressure(idx int) float64 {
	if idx < len(c.fireValves) && !c.fireValves[idx].Open() {
		return 0
	}
	return c.pumpSidePressure
}

// SystemPressureSwitchClosed reports the system-side pressure switch.
func (c *Circuit) SystemPressureSwitchClosed() bool { return c.systemSwitch.Closed() }

// PumpPressureSwitchClosed reports the pump-side pressure switch.
func (c *Circuit) PumpPressureSwitchClosed() bool { return c.pumpSideSwitch.Closed() }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
