// Package electrical implements the AC/DC bus network: sources,
// contactors, buses, and the deterministic contactor-settlement
// algorithm (spec.md section 4.6). Grounded on
// `redundancy.RedundantSystem`'s deterministic mode-resolution pass
// (generalized from 3-way failover to N-source bus settlement) and on
// `original_source/fbw-a380x/.../electrical/mod.rs` for the real
// topology, galley-shed tiers, and static-inverter inhibit window
// (SPEC_FULL.md section 7).
package electrical

// Source is anything that can feed a bus (spec.md section 3 "Electrical
// sources"): every source exposes OutputWithinNormalParameters, the
// sole gate on a contactor closing onto it.
type Source interface {
	Name() string
	OutputWithinNormalParameters() bool
}

// GeneratorKind distinguishes an engine generator, APU generator, or
// emergency generator. Engine and APU generators share the same
// stabilisation-delay shape; the emergency generator ignores the delay
// and reports only its externally set readiness.
type GeneratorKind int

const (
	EngineGenerator GeneratorKind = iota
	APUGenerator
	EmergencyGenerator
)

// Generator is an engine or APU generator (spec.md: "idle above a
// stabilisation delay of a few seconds after first valid shaft speed").
// The emergency generator's own readiness is driven externally by
// internal/rat.EmergencyGenerator.IsAtNominalSpeed and fed in via
// SetExternallyReady, since its source of truth (the RAT shaft) lives
// outside this package.
type Generator struct {
	name string
	kind GeneratorKind

	stabilisationDelayS float64
	timeAboveThresholdS float64

	shaftSpeedValid bool
	externallyReady bool
	apuAvailable    bool
}

// NewGenerator builds a generator with the given stabilisation delay.
func NewGenerator(name string, kind GeneratorKind, stabilisationDelayS float64) *Generator {
	return &Generator{name: name, kind: kind, stabilisationDelayS: stabilisationDelayS}
}

func (g *Generator) Name() string { return g.name }

// Update advances the stabilisation timer from shaft-speed validity
// (engine/APU generators) each tick.
func (g *Generator) Update(shaftSpeedValid, apuAvailable bool, dt float64) {
	g.shaftSpeedValid = shaftSpeedValid
	g.apuAvailable = apuAvailable
	if shaftSpeedValid {
		g.timeAboveThresholdS += dt
	} else {
		g.timeAboveThresholdS = 0
	}
}

// SetExternallyReady lets the emergency generator's readiness (driven by
// rat.EmergencyGenerator) be folded into the same Source contract.
func (g *Generator) SetExternallyReady(ready bool) { g.externallyReady = ready }

// OutputWithinNormalParameters implements the Source contract.
func (g *Generator) OutputWithinNormalParameters() bool {
	switch g.kind {
	case EmergencyGenerator:
		return g.externallyReady
	case APUGenerator:
		return g.apuAvailable && g.timeAboveThresholdS > g.stabilisationDelayS
	default:
		return g.shaftSpeedValid && g.timeAboveThresholdS > g.stabilisationDelayS
	}
}

// ExternalPower is a ground power cart plugged into the aircraft.
type ExternalPower struct {
	name       string
	connected  bool
	pushbuttonOn bool
}

// NewExternalPower builds an external power source.
func NewExternalPower(name string) *ExternalPower { return &ExternalPower{name: name} }

func (e *ExternalPower) Name() string { return e.name }

// SetState updates the plug-connected and pushbutton-on discretes.
func (e *ExternalPower) SetState(connected, pushbuttonOn bool) {
	e.connected, e.pushbuttonOn = connected, pushbuttonOn
}

// OutputWithinNormalParameters implements the Source contract.
func (e *ExternalPower) OutputWithinNormalParameters() bool {
	return e.connected && e.pushbuttonOn
}

// Battery is a finite-energy DC source (spec.md: "hot bus always
// powered if battery charge > 0").
type Battery struct {
	name        string
	capacityAh  float64
	chargeAh    float64
	chargeRateA float64
}

// NewBattery builds a fully charged battery.
func NewBattery(name string, capacityAh float64) *Battery {
	return &Battery{name: name, capacityAh: capacityAh, chargeAh: capacityAh}
}

func (b *Battery) Name() string { return b.name }

// ChargeAh returns the remaining charge.
func (b *Battery) ChargeAh() float64 { return b.chargeAh }

// Discharge drains the battery by currentA for dt seconds.
func (b *Battery) Discharge(currentA, dt float64) {
	b.chargeAh -= currentA * (dt / 3600.0)
	if b.chargeAh < 0 {
		b.chargeAh = 0
	}
}

// Charge replenishes the battery from a TR at currentA for dt seconds.
func (b *Battery) Charge(currentA, dt float64) {
	b.chargeAh += currentA * (dt / 3600.0)
	if b.chargeAh > b.capacityAh {
		b.chargeAh = b.capacityAh
	}
}

// OutputWithinNormalParameters implements the Source contract: the hot
// bus is powered whenever there is any charge left.
func (b *Battery) OutputWithinNormalParameters() bool { return b.chargeAh > 0 }

// TransformerRectifier converts an AC bus to DC (spec.md: "DC buses fed
// from TRs").
type TransformerRectifier struct {
	name   string
	inputPowered bool
}

// NewTransformerRectifier builds a TR.
func NewTransformerRectifier(name string) *TransformerRectifier {
	return &TransformerRectifier{name: name}
}

func (t *TransformerRectifier) Name() string { return t.name }

// SetInputPowered records whether the TR's upstream AC bus is powered
// this tick. Network.Settle does not set it: the simulator sets it from
// the first settlement pass (internal/sim's setTransformerRectifierInputs)
// before settling again with the TR as a source for its DC bus.
func (t *TransformerRectifier) SetInputPowered(powered bool) { t.inputPowered = powered }

// OutputWithinNormalParameters implements the Source contract.
func (t *TransformerRectifier) OutputWithinNormalParameters() bool { return t.inputPowered }

// BatteryChargeRectifierUnit (BCRU) gates a battery's contribution to
// its corresponding DC bus/ESS behind the battery pushbutton (spec.md
// section 4.6 "Battery hot-bus": "Closing the battery pushbutton AUTO
// permits the battery to also supply its corresponding DC bus/ESS via a
// battery-charge-rectifier-unit"). The battery's own HOT bus bypasses
// the BCRU entirely and stays powered from the battery whenever it has
// charge, pushbutton or no.
type BatteryChargeRectifierUnit struct {
	name         string
	battery      *Battery
	pushbuttonOn bool
}

// NewBatteryChargeRectifierUnit builds a BCRU wrapping the given battery.
func NewBatteryChargeRectifierUnit(name string, battery *Battery) *BatteryChargeRectifierUnit {
	return &BatteryChargeRectifierUnit{name: name, battery: battery}
}

func (r *BatteryChargeRectifierUnit) Name() string { return r.name }

// SetPushbuttonOn applies the battery pushbutton's AUTO/OFF discrete.
func (r *BatteryChargeRectifierUnit) SetPushbuttonOn(on bool) { r.pushbuttonOn = on }

// OutputWithinNormalParameters implements the Source contract.
func (r *BatteryChargeRectifierUnit) OutputWithinNormalParameters() bool {
	return r.pushbuttonOn && r.battery.OutputWithinNormalParameters()
}

// StaticInverter is the DC-to-AC-ESS emergency fallback (spec.md:
// "static inverter (DC->AC ESS fallback)"), fed from the batteries.
// SPEC_FULL.md section 7 adds a short cross-start inhibit window right
// after emergency-elec latches, to avoid chatter against the spinning-up
// emergency generator.
type StaticInverter struct {
	name           string
	batteryPowered bool
	inhibitS       float64
	inhibitRemainingS float64
}

// NewStaticInverter builds a static inverter with the given inhibit window.
func NewStaticInverter(name string, inhibitS float64) *StaticInverter {
	return &StaticInverter{name: name, inhibitS: inhibitS}
}

func (s *StaticInverter) Name() string { return s.name }

// SetBatteryPowered records whether its battery input is available.
func (s *StaticInverter) SetBatteryPowered(powered bool) { s.batteryPowered = powered }

// Inhibit starts (or restarts) the cross-start inhibit window.
func (s *StaticInverter) Inhibit() { s.inhibitRemainingS = s.inhibitS }

// Tick counts down the inhibit window.
func (s *StaticInverter) Tick(dt float64) {
	if s.inhibitRemainingS > 0 {
		s.inhibitRemainingS -= dt
		if s.inhibitRemainingS < 0 {
			s.inhibitRemainingS = 0
		}
	}
}

// OutputWithinNormalParameters implements the Source contract.
func (s *StaticInverter) OutputWithinNormalParameters() bool {
	return s.batteryPowered && s.inhibitRemainingS <= 0
}
