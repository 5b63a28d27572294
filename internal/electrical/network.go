package electrical

// Network owns the bus graph and runs the contactor-settlement
// algorithm (spec.md section 4.6 "Contactor settlement algorithm"):
// sources first update their own normal-parameters flag, controllers
// compute desired contactor signals, then the graph is traversed in
// dependency order so that each bus's effective source is resolved
// before any bus-tie contactor fed from it is evaluated. Buses must be
// added in dependency order (sources/generators-fed buses first,
// bus-tie/sub-buses after) — the construction-time topology
// constructors (NewA320Topology, NewA380Topology) guarantee this.
type Network struct {
	buses           []*Bus
	byName          map[string]*Bus
	contactorsByBus map[string][]*Contactor
	contactorByName map[string]*Contactor
}

// NewNetwork builds an empty network.
func NewNetwork() *Network {
	return &Network{
		byName:          make(map[string]*Bus),
		contactorsByBus: make(map[string][]*Contactor),
		contactorByName: make(map[string]*Contactor),
	}
}

// AddBus registers a bus in dependency order.
func (n *Network) AddBus(b *Bus) {
	n.buses = append(n.buses, b)
	n.byName[b.Name] = b
}

// Bus looks up a registered bus by name.
func (n *Network) Bus(name string) *Bus { return n.byName[name] }

// Contactor looks up a registered contactor by name, for the per-tick
// panel-pushbutton commanding pass (ApplyOverheadPanel). Returns nil if
// no contactor by that name exists in this topology.
func (n *Network) Contactor(name string) *Contactor { return n.contactorByName[name] }

// AddContactor registers a contactor feeding bus c.To; contactors on the
// same bus are tried in the order added, giving deterministic priority
// (spec.md: "deterministic priority (generator > APU > external >
// battery/TR) is applied by the topology, not by runtime tie-breaking").
func (n *Network) AddContactor(c *Contactor) {
	n.contactorsByBus[c.To.Name] = append(n.contactorsByBus[c.To.Name], c)
	n.contactorByName[c.Name] = c
}

// Settle runs step (3) of the settlement algorithm: resets every bus,
// then resolves each bus's effective source in registration order. Step
// (1) (sources' own OutputWithinNormalParameters) and step (2)
// (controllers computing contactor SetCommanded signals) must already
// have been applied by the caller this tick before calling Settle.
func (n *Network) Settle() {
	for _, b := range n.buses {
		b.reset()
	}
	for _, b := range n.buses {
		for _, c := range n.contactorsByBus[b.Name] {
			if c.Closed() {
				b.energise(c.From.EffectiveSource())
				break
			}
		}
	}
}

// Buses returns every registered bus, in dependency order.
func (n *Network) Buses() []*Bus { return n.buses }
