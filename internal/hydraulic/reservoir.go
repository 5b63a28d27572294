// Package hydraulic implements the fluid-balance core: reservoirs,
// accumulators, pressure switches, pumps, valves, circuits, and the
// power-transfer unit (spec.md sections 3 and 4.1-4.3).
package hydraulic

import "github.com/flightdeck/hydraulicsim/internal/config"

// Reservoir holds fluid for one hydraulic circuit. Owned exclusively by
// its parent HydraulicCircuit (spec.md section 3).
type Reservoir struct {
	maxVolume       float64
	usableVolume    float64
	volume          float64
	airPressure     float64
	lowLevelThresh  float64
	lowAirThresh    float64
	overheat        bool
	leakRateM3PerS  float64
}

// NewReservoir builds a reservoir from its static config, starting at
// the configured initial fill level.
func NewReservoir(cfg config.ReservoirConfig) *Reservoir {
	return &Reservoir{
		maxVolume:      cfg.MaxVolumeM3,
		usableVolume:   cfg.UsableVolumeM3,
		volume:         cfg.InitialVolumeM3,
		airPressure:    cfg.AirPrechargePa,
		lowLevelThresh: cfg.LowLevelThreshold,
		lowAirThresh:   cfg.LowAirThreshold,
	}
}

// Draw removes up to want m^3 from the reservoir and returns how much was
// actually available. Never drives volume negative (invariant P1).
func (r *Reservoir) Draw(want float64) float64 {
	if want <= 0 {
		return 0
	}
	got := want
	if got > r.volume {
		got = r.volume
	}
	r.volume -= got
	return got
}

// Return adds returned fluid back to the reservoir, clamped at max
// volume (invariant P1); any excess is treated as overboard loss, which
// does not happen in a healthy system but protects the invariant under
// injected failures.
func (r *Reservoir) Return(amount float64) {
	if amount <= 0 {
		return
	}
	r.volume += amount
	if r.volume > r.maxVolume {
		r.volume = r.maxVolume
	}
}

// SetLeak configures a continuous drain rate (m^3/s) for an injected
// reservoir-leak failure (spec.md section 4.1 "Failure semantics"). A
// rate of zero disables the leak.
func (r *Reservoir) SetLeak(rateM3PerS float64) { r.leakRateM3PerS = rateM3PerS }

// SetOverheat sets the discrete overheat fault flag directly (injected
// failure; spec.md section 7 "Structural failures").
func (r *Reservoir) SetOverheat(v bool) { r.overheat = v }

// Tick applies the configured leak rate for one sub-step.
func (r *Reservoir) Tick(dt float64) {
	if r.leakRateM3PerS <= 0 {
		return
	}
	r.Draw(r.leakRateM3PerS * dt)
}

// Volume returns the current fill level in m^3.
func (r *Reservoir) Volume() float64 { return r.volume }

// MaxVolume returns the reservoir's physical capacity in m^3.
func (r *Reservoir) MaxVolume() float64 { return r.maxVolume }

// IsLowLevel reports the low-level discrete (invariant from spec.md
// section 3: is_low_level <=> V < low_level_threshold).
func (r *Reservoir) IsLowLevel() bool { return r.volume < r.lowLevelThresh }

// IsLowAirPressure reports the low-air discrete.
func (r *Reservoir) IsLowAirPressure() bool { return r.airPressure < r.lowAirThresh }

// IsOverheat reports the overheat fault, which the pump controllers
// consume to drive the PUMP FAULT lamp.
func (r *Reservoir) IsOverheat() bool { return r.overheat }

// IsUsable reports whether enough fluid remains to draw from (an empty
// reservoir forces pump output to zero per spec.md section 4.1).
func (r *Reservoir) IsUsable() bool { return r.volume > 0 }
