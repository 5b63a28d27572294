package electrical

// EmergencyElec is the latched "both/all main AC buses lost and
// airspeed above threshold" condition (spec.md section 4.6
// "Emergency-elec"). It owns the static inverter's inhibit trigger; the
// AC ESS feed itself follows the AC ESS feed pushbutton
// (Topology.SetACESSFeedAltn).
type EmergencyElec struct {
	airspeedThresholdKt float64

	latched bool
}

// NewEmergencyElec builds the latch with the given airspeed threshold.
func NewEmergencyElec(airspeedThresholdKt float64) *EmergencyElec {
	return &EmergencyElec{airspeedThresholdKt: airspeedThresholdKt}
}

// Latched reports the current latch state.
func (e *EmergencyElec) Latched() bool { return e.latched }

// Update advances the latch (spec.md: "Latched TRUE when ... AND
// airspeed > 100 kt; reset when any main AC bus is restored"). staticInv
// is told to start its short cross-start inhibit window (0.25 s as built
// by both topologies) the instant the latch trips.
func (e *EmergencyElec) Update(t *Topology, airspeedKt float64) {
	wasLatched := e.latched
	if !e.latched {
		e.latched = t.AllMainACBusesLost() && airspeedKt > e.airspeedThresholdKt
	} else if !t.AllMainACBusesLost() {
		e.latched = false
	}
	if e.latched && !wasLatched {
		t.StaticInverter.Inhibit()
	}
}

// GalleySupply is the two-tier galley load shed SPEC_FULL.md section 7
// adds on top of spec.md's plain "galley sheds": a trip shed the moment
// emergency-elec latches, then a deeper emergency shed once the static
// inverter's settle window has elapsed and the network is confirmed
// still in the emergency configuration.
type GalleySupply struct {
	settleS          float64
	timeInEmergencyS float64

	tripShed      bool
	emergencyShed bool
}

// NewGalleySupply builds the galley shed tracker.
func NewGalleySupply(settleS float64) *GalleySupply { return &GalleySupply{settleS: settleS} }

// Update advances both shed tiers from the emergency-elec latch.
func (g *GalleySupply) Update(emergencyElecLatched bool, dt float64) {
	if !emergencyElecLatched {
		g.tripShed = false
		g.emergencyShed = false
		g.timeInEmergencyS = 0
		return
	}
	g.tripShed = true
	g.timeInEmergencyS += dt
	if g.timeInEmergencyS > g.settleS {
		g.emergencyShed = true
	}
}

// GalleyTripShed reports the first-tier shed discrete.
func (g *GalleySupply) GalleyTripShed() bool { return g.tripShed }

// GalleyEmergencyShed reports the second-tier (deeper) shed discrete.
func (g *GalleySupply) GalleyEmergencyShed() bool { return g.emergencyShed }
