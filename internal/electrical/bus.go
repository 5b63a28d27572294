package electrical

// BusKind names the electrical bus families spec.md section 3 lists
// ("Bus. ... Types include AC BUS 1..4, AC ESS, AC ESS SHED, AC EHA, AC
// GND/FLT SERVICE, DC BUS 1..2, DC ESS, DC EHA, DC APU, DC GND/FLT
// SERVICE, DC HOT 1..4").
type BusKind int

const (
	ACBus BusKind = iota
	ACEssBus
	ACEssShedBus
	ACEhaBus
	ACGroundServiceBus
	DCBus
	DCEssBus
	DCEhaBus
	DCApuBus
	DCGroundServiceBus
	DCHotBus
)

// Bus is a named node in the electrical graph. At most one effective
// upstream source is selected per tick by the contactor graph (spec.md
// section 3 "Bus").
type Bus struct {
	Name string
	Kind BusKind

	source  Source
	powered bool
}

// NewBus builds an unpowered bus.
func NewBus(name string, kind BusKind) *Bus {
	return &Bus{Name: name, Kind: kind}
}

// Powered reports whether this bus has an effective source this tick.
func (b *Bus) Powered() bool { return b.powered }

// Source returns the effective upstream source, or nil if unpowered.
func (b *Bus) Source() Source { return b.source }

func (b *Bus) reset() {
	b.source = nil
	b.powered = false
}

func (b *Bus) energise(src Source) {
	b.source = src
	b.powered = true
}
