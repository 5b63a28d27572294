package electrical

// OverheadPanelInputs are the pushbutton states the electrical overhead
// panel samples once at tick start (spec.md data model row
// "ElectricalOverheadPanel + EmergencyElectricalPanel | Pushbutton /
// fault / manual RAT deploy").
type OverheadPanelInputs struct {
	Gen1PushbuttonOn bool
	Gen2PushbuttonOn bool
	APUGenPushbuttonOn bool
	ExtPowerPushbuttonOn bool
	BatteryPushbuttonsOn bool
	ACESSFeedAltn      bool

	// EngineFirePushbuttonReleased[i] drives that engine's generator
	// line contactor interlock (spec.md section 3 "Contactor").
	EngineFirePushbuttonReleased []bool

	ManualRATDeployPushed bool
}

// ApplyOverheadPanel commands every panel-gated contactor from the
// pushbutton states (spec.md section 4.6 settlement algorithm step (2):
// "each controller computes its desired contactor signals from
// pushbutton state, source health, and interlocks"). Contactors that are
// not pushbutton-gated (bus ties, TRs, battery-hot-bus backups, AC-ESS
// feed selection) are left commanded closed from construction and rely
// only on their interlock/upstream-health gating. The battery pushbutton
// is not one of these direct contactor commands: per spec.md section 4.6
// "Battery hot-bus", it gates the BCRU path onto DC ESS/DC APU, not the
// HOT buses themselves, which stay powered from their battery whenever
// it has charge regardless of pushbutton position.
func (t *Topology) ApplyOverheadPanel(in OverheadPanelInputs) {
	t.SetACESSFeedAltn(in.ACESSFeedAltn)
	t.SetBatteryPushbuttonsOn(in.BatteryPushbuttonsOn)

	for i := range t.fireReleased {
		if i < len(in.EngineFirePushbuttonReleased) {
			t.fireReleased[i] = in.EngineFirePushbuttonReleased[i]
		}
	}

	commandIfPresent(t, genName(1)+" LC", in.Gen1PushbuttonOn)
	commandIfPresent(t, genName(2)+" LC", in.Gen2PushbuttonOn)
	commandIfPresent(t, genName(3)+" LC", in.Gen1PushbuttonOn)
	commandIfPresent(t, genName(4)+" LC", in.Gen2PushbuttonOn)
	commandIfPresent(t, "APU GEN LC (BUS1)", in.APUGenPushbuttonOn)
	commandIfPresent(t, "EXT PWR", in.ExtPowerPushbuttonOn)
}

func commandIfPresent(t *Topology, name string, closed bool) {
	if c := t.Net.Contactor(name); c != nil {
		c.SetCommanded(closed)
	}
}

// FaultLamps is the set of electrical fault/status lamps the overhead
// and emergency electrical panels expose to the host each tick.
type FaultLamps struct {
	Gen1Fault  bool
	Gen2Fault  bool
	APUGenFault bool
	EmergencyGenRunning bool
	GalleyTripShed      bool
	GalleyEmergencyShed bool
}

// ReadFaultLamps derives the fault lamp snapshot from the resolved
// topology and generator/galley state.
func ReadFaultLamps(t *Topology, galley *GalleySupply) FaultLamps {
	return FaultLamps{
		Gen1Fault:           len(t.EngineGenerators) > 0 && !t.EngineGenerators[0].OutputWithinNormalParameters(),
		Gen2Fault:           len(t.EngineGenerators) > 1 && !t.EngineGenerators[1].OutputWithinNormalParameters(),
		APUGenFault:         len(t.APUGenerators) > 0 && !t.APUGenerators[0].OutputWithinNormalParameters(),
		EmergencyGenRunning: t.EmergencyGen.OutputWithinNormalParameters(),
		GalleyTripShed:      galley.GalleyTripShed(),
		GalleyEmergencyShed: galley.GalleyEmergencyShed(),
	}
}
