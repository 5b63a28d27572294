package electrical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOverheadPanelCommandsGeneratorLineContactors(t *testing.T) {
	topo := NewA320Topology()
	topo.EngineGenerators[0].Update(true, false, 5.0)
	topo.EngineGenerators[1].Update(true, false, 5.0)

	topo.ApplyOverheadPanel(OverheadPanelInputs{
		Gen1PushbuttonOn:             false,
		Gen2PushbuttonOn:             true,
		EngineFirePushbuttonReleased: []bool{false, false},
	})
	topo.Net.Settle()

	assert.False(t, topo.Net.Contactor("GEN 1 LC").Closed())
	assert.True(t, topo.Net.Contactor("GEN 2 LC").Closed())
}

func TestApplyOverheadPanelFireReleaseOpensGeneratorLineContactor(t *testing.T) {
	topo := NewA320Topology()
	topo.EngineGenerators[0].Update(true, false, 5.0)

	topo.ApplyOverheadPanel(OverheadPanelInputs{
		Gen1PushbuttonOn:             true,
		EngineFirePushbuttonReleased: []bool{true, false},
	})
	topo.Net.Settle()

	assert.False(t, topo.Net.Contactor("GEN 1 LC").Closed())
}

func TestApplyOverheadPanelACESSFeedSelection(t *testing.T) {
	topo := NewA320Topology()
	topo.ApplyOverheadPanel(OverheadPanelInputs{ACESSFeedAltn: true})
	assert.False(t, topo.acEssNormalSelected())

	topo.ApplyOverheadPanel(OverheadPanelInputs{ACESSFeedAltn: false})
	assert.True(t, topo.acEssNormalSelected())
}

func TestApplyOverheadPanelBatteryPushbuttons(t *testing.T) {
	topo := NewA320Topology()

	// HOT buses are always powered while the battery has charge, entirely
	// independent of the battery pushbutton (spec.md section 4.6).
	topo.ApplyOverheadPanel(OverheadPanelInputs{BatteryPushbuttonsOn: false})
	topo.Net.Settle()
	assert.True(t, topo.Net.Bus("DC HOT 1").Powered())
	assert.True(t, topo.Net.Bus("DC HOT 2").Powered())
	// With no AC ESS and the battery pushbutton off, the BCRU must not
	// back up DC ESS from the battery.
	assert.False(t, topo.Net.Bus("DC ESS").Powered())

	topo.ApplyOverheadPanel(OverheadPanelInputs{BatteryPushbuttonsOn: true})
	topo.Net.Settle()
	assert.True(t, topo.Net.Bus("DC ESS").Powered())
}

func TestReadFaultLampsReflectsGeneratorHealth(t *testing.T) {
	topo := NewA320Topology()
	galley := NewGalleySupply(5.0)

	lamps := ReadFaultLamps(topo, galley)
	assert.True(t, lamps.Gen1Fault)
	assert.True(t, lamps.Gen2Fault)

	topo.EngineGenerators[0].Update(true, false, 5.0)
	lamps = ReadFaultLamps(topo, galley)
	assert.False(t, lamps.Gen1Fault)
}
