package electrical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func settleWithTRs(t *Topology) {
	t.Net.Settle()
	t.TRs["1"].SetInputPowered(t.Net.Bus("AC BUS 1").Powered())
	t.TRs["2"].SetInputPowered(t.Net.Bus("AC BUS 2").Powered())
	t.TRs["ESS"].SetInputPowered(t.Net.Bus("AC ESS").Powered())
	t.Net.Settle()
}

func TestA320TopologyDCBusFollowsACViaTR(t *testing.T) {
	topo := NewA320Topology()
	topo.EngineGenerators[0].Update(true, false, 5.0)
	topo.EngineGenerators[1].Update(true, false, 5.0)

	settleWithTRs(topo)

	assert.True(t, topo.Net.Bus("DC BUS 1").Powered())
	assert.True(t, topo.Net.Bus("DC BUS 2").Powered())
}

func TestA320TopologyBusTieCarriesPowerAcrossLostGenerator(t *testing.T) {
	topo := NewA320Topology()
	topo.EngineGenerators[0].Update(true, false, 5.0)
	// GEN 2 never stabilised: AC BUS 2 depends on the bus tie from AC BUS 1.

	settleWithTRs(topo)

	assert.True(t, topo.Net.Bus("AC BUS 2").Powered())
	assert.Equal(t, topo.Net.Bus("AC BUS 1").Source().Name(), topo.Net.Bus("AC BUS 2").Source().Name())
}

func TestA320TopologyAllMainACBusesLostWhenBothGeneratorsDown(t *testing.T) {
	topo := NewA320Topology()
	topo.Net.Settle()
	assert.True(t, topo.AllMainACBusesLost())
}

func TestA320TopologyDCEssFallsBackToBatteryWhenTRUnpowered(t *testing.T) {
	topo := NewA320Topology()
	topo.SetBatteryPushbuttonsOn(true)
	settleWithTRs(topo)

	assert.True(t, topo.Net.Bus("DC ESS").Powered())
	assert.Equal(t, topo.BCRUs["1"].Name(), topo.Net.Bus("DC ESS").Source().Name())
}

func TestA320TopologyDCEssStaysUnpoweredWhenBatteryPushbuttonOff(t *testing.T) {
	topo := NewA320Topology()
	settleWithTRs(topo)

	assert.False(t, topo.Net.Bus("DC ESS").Powered())
}

func TestA320TopologyDCApuBackedUpByBatteryApuViaBcru(t *testing.T) {
	topo := NewA320Topology()
	topo.SetBatteryPushbuttonsOn(true)
	topo.Net.Settle()

	assert.True(t, topo.Net.Bus("DC APU").Powered())
	assert.Equal(t, topo.BCRUs["APU"].Name(), topo.Net.Bus("DC APU").Source().Name())
}

func TestA320TopologyEmergencyGenFeedsACEssInAltnWhenNoAC(t *testing.T) {
	topo := NewA320Topology()
	topo.SetACESSFeedAltn(true)
	topo.EmergencyGen.SetExternallyReady(true)
	topo.Net.Settle()

	assert.True(t, topo.Net.Bus("AC ESS").Powered())
	assert.Equal(t, topo.EmergencyGen.Name(), topo.Net.Bus("AC ESS").Source().Name())
}

func TestA380TopologyHasFourACBuses(t *testing.T) {
	topo := NewA380Topology()
	for i := 1; i <= 4; i++ {
		assert.NotNil(t, topo.Net.Bus(busACName(i)))
	}
}

func TestA380TopologyCrossTiesOnlyBetweenAdjacentBuses(t *testing.T) {
	topo := NewA380Topology()
	topo.EngineGenerators[0].Update(true, false, 5.0) // feeds AC BUS 1 only
	topo.Net.Settle()

	assert.True(t, topo.Net.Bus("AC BUS 1").Powered())
	assert.True(t, topo.Net.Bus("AC BUS 2").Powered()) // tied from 1
	assert.False(t, topo.Net.Bus("AC BUS 3").Powered())
	assert.False(t, topo.Net.Bus("AC BUS 4").Powered())
}
