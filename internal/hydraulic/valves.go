package hydraulic

// PriorityValve separates the pump-side and system-side sections of a
// circuit. It opens above its high hysteresis and closes below its low
// hysteresis (spec.md section 3 HydraulicCircuit invariant).
type PriorityValve struct {
	openAt  float64
	closeAt float64
	open    bool
}

// NewPriorityValve builds a priority valve from its hysteresis pair.
func NewPriorityValve(openAt, closeAt float64) *PriorityValve {
	return &PriorityValve{openAt: openAt, closeAt: closeAt}
}

// Update applies hysteresis against the pump-side pressure.
func (v *PriorityValve) Update(pumpSidePressure float64) {
	if pumpSidePressure > v.openAt {
		v.open = true
	} else if pumpSidePressure < v.closeAt {
		v.open = false
	}
}

// Open reports whether the valve is currently open (pump and system
// sides equalising).
func (v *PriorityValve) Open() bool { return v.open }

// FireShutoffValve isolates a pump from its reservoir/section feed when
// the associated engine-fire pushbutton has been released. Once closed
// by a fire-pushbutton release, it latches closed for the rest of the
// flight (spec.md section 4.1 "Failure semantics").
type FireShutoffValve struct {
	open   bool
	latched bool
}

// NewFireShutoffValve returns a valve that starts open.
func NewFireShutoffValve() *FireShutoffValve {
	return &FireShutoffValve{open: true}
}

// SetCommand applies the controller's commanded state. A latched closure
// from a prior fire-pushbutton release cannot be reopened by a later
// command (spec.md: "isolates the associated pump for the rest of the
// flight").
func (v *FireShutoffValve) SetCommand(open bool) {
	if v.latched {
		return
	}
	v.open = open
}

// Trip closes the valve and latches it closed, modelling an
// engine-fire-pushbutton release.
func (v *FireShutoffValve) Trip() {
	v.open = false
	v.latched = true
}

// Open reports the valve's current discrete state.
func (v *FireShutoffValve) Open() bool { return v.open }

// LeakMeasurementValve sits on the system side and, when closed, allows a
// small continuous leakage above a pressure threshold so maintenance can
// measure circuit leak rate (spec.md section 4.1 step 4). Default state
// is open (no leak path) in normal operation.
type LeakMeasurementValve struct {
	closed    bool
	thresholdPa float64
	leakRateM3PerS float64
}

// NewLeakMeasurementValve builds a valve with the given leak threshold
// and rate, defaulting to the closed-for-leak-test state off (i.e. the
// valve is open, no leak path).
func NewLeakMeasurementValve(thresholdPa, leakRateM3PerS float64) *LeakMeasurementValve {
	return &LeakMeasurementValve{thresholdPa: thresholdPa, leakRateM3PerS: leakRateM3PerS}
}

// SetClosed sets the maintenance-commanded discrete state.
func (v *LeakMeasurementValve) SetClosed(closed bool) { v.closed = closed }

// LeakFlow returns the leakage volume for this sub-step given the
// current system pressure (spec.md: "leak-measurement-valve leakage when
// valve closed and pressure > threshold").
func (v *LeakMeasurementValve) LeakFlow(systemPressure, dt float64) float64 {
	if !v.closed || systemPressure <= v.thresholdPa {
		return 0
	}
	return v.leakRateM3PerS * dt
}
