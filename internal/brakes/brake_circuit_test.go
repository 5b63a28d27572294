package brakes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrakeCircuitScalesOutputByDemandAndLimit(t *testing.T) {
	c := NewCircuit(15.0e6)
	c.Update(0.5, 1.0, 20.0e6)

	assert.InDelta(t, 7.5e6, c.Pressure(Left), 1e-6)
	assert.InDelta(t, 15.0e6, c.Pressure(Right), 1e-6)
}

func TestBrakeCircuitClampsDemandToUnitInterval(t *testing.T) {
	c := NewCircuit(15.0e6)
	c.Update(-0.5, 2.0, 20.0e6)

	assert.Equal(t, 0.0, c.Pressure(Left))
	assert.InDelta(t, 15.0e6, c.Pressure(Right), 1e-6)
}

func TestBrakeCircuitBoundedByAvailablePressure(t *testing.T) {
	c := NewCircuit(15.0e6)
	c.Update(1.0, 1.0, 3.0e6)

	assert.InDelta(t, 3.0e6, c.Pressure(Left), 1e-6)
	assert.InDelta(t, 3.0e6, c.Pressure(Right), 1e-6)
}

func TestBrakeCircuitParkingBrakeForcesFullDemandUpToLimit(t *testing.T) {
	c := NewCircuit(15.0e6)
	c.SetParkingBrake(true)
	c.Update(0.0, 0.0, 20.0e6)

	assert.InDelta(t, 15.0e6, c.Pressure(Left), 1e-6)
	assert.InDelta(t, 15.0e6, c.Pressure(Right), 1e-6)
}

func TestBrakeCircuitPressureLimitIsUpdatable(t *testing.T) {
	c := NewCircuit(15.0e6)
	c.SetPressureLimit(5.0e6)
	c.Update(1.0, 1.0, 20.0e6)

	assert.InDelta(t, 5.0e6, c.Pressure(Left), 1e-6)
}
