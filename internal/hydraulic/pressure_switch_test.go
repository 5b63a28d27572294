package hydraulic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/units"
)

func testSwitchCfg() config.PressureSwitchConfig {
	return config.PressureSwitchConfig{
		HighThresholdPa: units.PSIToPa(2200),
		LowThresholdPa:  units.PSIToPa(1740),
	}
}

func TestPressureSwitchStartsOpen(t *testing.T) {
	sw := NewPressureSwitch(testSwitchCfg())
	assert.False(t, sw.Closed())
}

func TestPressureSwitchClosesAboveHighThreshold(t *testing.T) {
	sw := NewPressureSwitch(testSwitchCfg())
	sw.Update(units.PSIToPa(2300))
	assert.True(t, sw.Closed())
}

func TestPressureSwitchHoldsInHysteresisBand(t *testing.T) {
	sw := NewPressureSwitch(testSwitchCfg())
	sw.Update(units.PSIToPa(2300))
	assert.True(t, sw.Closed())

	sw.Update(units.PSIToPa(2000)) // between low and high: holds closed
	assert.True(t, sw.Closed())
}

func TestPressureSwitchOpensBelowLowThreshold(t *testing.T) {
	sw := NewPressureSwitch(testSwitchCfg())
	sw.Update(units.PSIToPa(2300))
	sw.Update(units.PSIToPa(1700))
	assert.False(t, sw.Closed())
}
