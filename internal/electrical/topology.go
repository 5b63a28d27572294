package electrical

// Topology bundles a Network with the named sources and the emergency-
// elec latch that reads it, for one aircraft variant (spec.md section
// 4.6 "Topology"; SPEC_FULL.md section 7 keeps both an A320-style
// 2-AC-bus topology and an A380-style 4-AC-bus topology behind the same
// contract).
type Topology struct {
	Net *Network

	EngineGenerators []*Generator
	APUGenerators    []*Generator
	ExternalPowers   []*ExternalPower
	Batteries        map[string]*Battery                    // "1", "2", "ESS", "APU"
	BCRUs            map[string]*BatteryChargeRectifierUnit // same keys as Batteries
	TRs              map[string]*TransformerRectifier
	StaticInverter   *StaticInverter
	EmergencyGen     *Generator

	acMainBuses []*Bus // the buses emergency-elec watches for "all lost"

	acESSFeedAltn bool // pushbutton-selected NORMAL/ALTN feed

	// fireReleased[i] is true once engine i's fire pushbutton has been
	// released, opening that engine's generator line contactor
	// (spec.md section 3 "Contactor": "engine-fire pushbutton released
	// opens that generator's line contactor" is the canonical interlock
	// example). Set per tick by ApplyOverheadPanel.
	fireReleased []bool

	emergencyElecLatched bool
}

// acEssNormalSelected reports whether AC ESS should draw from its NORMAL
// feed (the bus-tie side) rather than the ALTN pushbutton-selected path.
func (t *Topology) acEssNormalSelected() bool { return !t.acESSFeedAltn }

// SetACESSFeedAltn applies the AC-ESS-feed pushbutton (spec.md: "AC ESS
// selectable between two feeds (NORMAL and ALTN) via pushbutton").
func (t *Topology) SetACESSFeedAltn(altn bool) { t.acESSFeedAltn = altn }

// SetBatteryPushbuttonsOn applies the battery pushbutton to every BCRU
// (spec.md section 4.6 "Battery hot-bus"). The HOT buses are unaffected:
// they stay commanded closed from construction and are gated only by
// battery charge.
func (t *Topology) SetBatteryPushbuttonsOn(on bool) {
	for _, r := range t.BCRUs {
		r.SetPushbuttonOn(on)
	}
}

// newCommonSources builds the sources shared by both topologies.
func newCommonSources(engineCount int) (*Topology, *Network) {
	net := NewNetwork()
	t := &Topology{
		Net:       net,
		Batteries: make(map[string]*Battery),
		BCRUs:     make(map[string]*BatteryChargeRectifierUnit),
		TRs:       make(map[string]*TransformerRectifier),
	}
	for i := 1; i <= engineCount; i++ {
		t.EngineGenerators = append(t.EngineGenerators, NewGenerator(genName(i), EngineGenerator, 3.0))
	}
	t.fireReleased = make([]bool, engineCount)
	t.APUGenerators = append(t.APUGenerators, NewGenerator("APU GEN", APUGenerator, 3.0))
	t.Batteries["1"] = NewBattery("BAT 1", 23.0)
	t.Batteries["2"] = NewBattery("BAT 2", 23.0)
	t.Batteries["ESS"] = NewBattery("BAT ESS", 23.0)
	t.Batteries["APU"] = NewBattery("BAT APU", 23.0)
	// Only batteries 1, ESS and APU back up a DC bus through a BCRU in
	// this topology (spec.md: "batteries 1+3 in parallel" feed DC ESS);
	// battery 2 only ever supplies its own HOT bus directly.
	for _, id := range []string{"1", "ESS", "APU"} {
		t.BCRUs[id] = NewBatteryChargeRectifierUnit("BCRU "+id, t.Batteries[id])
	}
	t.TRs["1"] = NewTransformerRectifier("TR1")
	t.TRs["2"] = NewTransformerRectifier("TR2")
	t.TRs["ESS"] = NewTransformerRectifier("TR ESS")
	t.TRs["APU"] = NewTransformerRectifier("TR APU")
	t.StaticInverter = NewStaticInverter("STATIC INV", 0.25)
	t.EmergencyGen = NewGenerator("EMER GEN", EmergencyGenerator, 0)
	return t, net
}

// fireInterlock builds the per-generator interlock closure reading
// Topology.fireReleased[idx], captured by index rather than by the loop
// variable.
func fireInterlock(t *Topology, idx int) func() bool {
	return func() bool { return !t.fireReleased[idx] }
}

func genName(i int) string {
	names := []string{"GEN 1", "GEN 2", "GEN 3", "GEN 4"}
	if i-1 < len(names) {
		return names[i-1]
	}
	return "GEN"
}

// NewA320Topology builds the smaller 2-AC-bus variant (spec.md's plain
// reading: "both AC buses lost" in scenario S4).
func NewA320Topology() *Topology {
	t, net := newCommonSources(2)

	ac1 := NewBus("AC BUS 1", ACBus)
	ac2 := NewBus("AC BUS 2", ACBus)
	acEss := NewBus("AC ESS", ACEssBus)
	acEssShed := NewBus("AC ESS SHED", ACEssShedBus)
	dc1 := NewBus("DC BUS 1", DCBus)
	dc2 := NewBus("DC BUS 2", DCBus)
	dcEss := NewBus("DC ESS", DCEssBus)
	dcApu := NewBus("DC APU", DCApuBus)
	dcHot1 := NewBus("DC HOT 1", DCHotBus)
	dcHot2 := NewBus("DC HOT 2", DCHotBus)

	net.AddBus(ac1)
	net.AddBus(ac2)
	net.AddBus(dcHot1)
	net.AddBus(dcHot2)
	net.AddBus(acEss)
	net.AddBus(acEssShed)
	net.AddBus(dc1)
	net.AddBus(dc2)
	net.AddBus(dcEss)
	net.AddBus(dcApu)

	net.AddContactor(NewContactor(genName(1)+" LC", AsNode(t.EngineGenerators[0]), ac1, fireInterlock(t, 0)))
	net.AddContactor(NewContactor(genName(2)+" LC", AsNode(t.EngineGenerators[1]), ac2, fireInterlock(t, 1)))
	net.AddContactor(NewContactor("APU GEN LC (BUS1)", AsNode(t.APUGenerators[0]), ac1, nil))
	net.AddContactor(NewContactor("BUS TIE (1->2)", ac1, ac2, nil))

	// HOT buses stay commanded closed from construction (spec.md section
	// 4.6: powered whenever the battery has charge, independent of the
	// battery pushbutton); only their battery's own health gates them.
	net.AddContactor(NewContactor("BAT HOT1", AsNode(t.Batteries["1"]), dcHot1, nil))
	net.AddContactor(NewContactor("BAT HOT2", AsNode(t.Batteries["2"]), dcHot2, nil))

	net.AddContactor(NewContactor("AC ESS NORMAL", ac1, acEss, func() bool { return t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS ALTN (STATIC INV)", AsNode(t.StaticInverter), acEss, func() bool { return !t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS ALTN (EMER GEN)", AsNode(t.EmergencyGen), acEss, func() bool { return !t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS SHED", acEss, acEssShed, nil))

	net.AddContactor(NewContactor("TR1", AsNode(t.TRs["1"]), dc1, nil))
	net.AddContactor(NewContactor("TR2", AsNode(t.TRs["2"]), dc2, nil))
	net.AddContactor(NewContactor("TR ESS", AsNode(t.TRs["ESS"]), dcEss, nil))
	net.AddContactor(NewContactor("DC ESS BAT BACKUP (BAT1)", AsNode(t.BCRUs["1"]), dcEss, func() bool { return !dcEss.Powered() }))
	net.AddContactor(NewContactor("DC ESS BAT BACKUP (BAT ESS)", AsNode(t.BCRUs["ESS"]), dcEss, func() bool { return !dcEss.Powered() }))

	net.AddContactor(NewContactor("TR APU", AsNode(t.TRs["APU"]), dcApu, nil))
	net.AddContactor(NewContactor("DC APU BAT BACKUP", AsNode(t.BCRUs["APU"]), dcApu, func() bool { return !dcApu.Powered() }))

	t.acMainBuses = []*Bus{ac1, ac2}
	return t
}

// NewA380Topology builds the richer 4-AC-bus variant with adjacent
// cross-tie priority edges only (SPEC_FULL.md section 7: "AC BUS 1-4
// fed from ENG 1-4 gens with cross-ties only between adjacent buses
// (1-2, 3-4) plus APU/ext-power entry points").
func NewA380Topology() *Topology {
	t, net := newCommonSources(4)

	ac := make([]*Bus, 4)
	for i := range ac {
		ac[i] = NewBus(busACName(i+1), ACBus)
	}
	acEss := NewBus("AC ESS", ACEssBus)
	acEssShed := NewBus("AC ESS SHED", ACEssShedBus)
	acEha := NewBus("AC EHA", ACEhaBus)
	dc1 := NewBus("DC BUS 1", DCBus)
	dc2 := NewBus("DC BUS 2", DCBus)
	dcEss := NewBus("DC ESS", DCEssBus)
	dcEha := NewBus("DC EHA", DCEhaBus)
	dcApu := NewBus("DC APU", DCApuBus)

	for i := 0; i < 4; i++ {
		net.AddBus(ac[i])
	}
	net.AddBus(acEss)
	net.AddBus(acEssShed)
	net.AddBus(acEha)
	net.AddBus(dc1)
	net.AddBus(dc2)
	net.AddBus(dcEss)
	net.AddBus(dcEha)
	net.AddBus(dcApu)

	for i := 0; i < 4; i++ {
		net.AddContactor(NewContactor(genName(i+1)+" LC", AsNode(t.EngineGenerators[i]), ac[i], fireInterlock(t, i)))
	}
	net.AddContactor(NewContactor("APU GEN LC (BUS1)", AsNode(t.APUGenerators[0]), ac[0], nil))
	net.AddContactor(NewContactor("BUS TIE (1-2)", ac[0], ac[1], nil))
	net.AddContactor(NewContactor("BUS TIE (3-4)", ac[2], ac[3], nil))
	t.ExternalPowers = append(t.ExternalPowers, NewExternalPower("EXT PWR"))
	if len(t.ExternalPowers) > 0 {
		net.AddContactor(NewContactor("EXT PWR", AsNode(t.ExternalPowers[0]), ac[0], nil))
	}

	net.AddContactor(NewContactor("AC ESS NORMAL", ac[0], acEss, func() bool { return t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS ALTN (STATIC INV)", AsNode(t.StaticInverter), acEss, func() bool { return !t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS ALTN (EMER GEN)", AsNode(t.EmergencyGen), acEss, func() bool { return !t.acEssNormalSelected() }))
	net.AddContactor(NewContactor("AC ESS SHED", acEss, acEssShed, nil))
	net.AddContactor(NewContactor("AC EHA", acEss, acEha, nil))

	net.AddContactor(NewContactor("TR1", AsNode(t.TRs["1"]), dc1, nil))
	net.AddContactor(NewContactor("TR2", AsNode(t.TRs["2"]), dc2, nil))
	net.AddContactor(NewContactor("TR ESS", AsNode(t.TRs["ESS"]), dcEss, nil))
	net.AddContactor(NewContactor("DC ESS BAT BACKUP (BAT1)", AsNode(t.BCRUs["1"]), dcEss, func() bool { return !dcEss.Powered() }))
	net.AddContactor(NewContactor("DC ESS BAT BACKUP (BAT ESS)", AsNode(t.BCRUs["ESS"]), dcEss, func() bool { return !dcEss.Powered() }))
	net.AddContactor(NewContactor("DC EHA", dcEss, dcEha, nil))

	net.AddContactor(NewContactor("TR APU", AsNode(t.TRs["APU"]), dcApu, nil))
	net.AddContactor(NewContactor("DC APU BAT BACKUP", AsNode(t.BCRUs["APU"]), dcApu, func() bool { return !dcApu.Powered() }))

	t.acMainBuses = ac
	return t
}

func busACName(i int) string {
	names := []string{"AC BUS 1", "AC BUS 2", "AC BUS 3", "AC BUS 4"}
	return names[i-1]
}

// AllMainACBusesLost reports whether every main AC bus is currently
// unpowered (the emergency-elec trigger condition, spec.md section
// 4.6: "both AC bus 1 and AC bus 2 (A320) or all four AC buses (A380)
// are unpowered").
func (t *Topology) AllMainACBusesLost() bool {
	for _, b := range t.acMainBuses {
		if b.Powered() {
			return false
		}
	}
	return true
}
