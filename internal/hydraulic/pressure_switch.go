package hydraulic

import "github.com/flightdeck/hydraulicsim/internal/config"

// PressureSwitch produces a hysteretic discrete output from an analogue
// pressure input (spec.md section 3). It starts in the "not pressurised"
// state so a cold-and-dark session reports no spurious discretes.
type PressureSwitch struct {
	highThreshold float64
	lowThreshold  float64
	closed        bool
}

// NewPressureSwitch builds a switch from its threshold pair.
func NewPressureSwitch(cfg config.PressureSwitchConfig) *PressureSwitch {
	return &PressureSwitch{
		highThreshold: cfg.HighThresholdPa,
		lowThreshold:  cfg.LowThresholdPa,
	}
}

// Update applies hysteresis: closes above the high threshold, opens
// below the low threshold, holds state in between.
func (p *PressureSwitch) Update(pressure float64) {
	if pressure >= p.highThreshold {
		p.closed = true
	} else if pressure <= p.lowThreshold {
		p.closed = false
	}
}

// Closed reports the current discrete state.
func (p *PressureSwitch) Closed() bool { return p.closed }
