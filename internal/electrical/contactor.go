package electrical

// Node is anything a Contactor can draw power from: a raw Source or
// another Bus already resolved earlier in the settlement pass.
type Node interface {
	Powered() bool
	EffectiveSource() Source
}

type sourceNode struct{ Source }

func (s sourceNode) Powered() bool         { return s.OutputWithinNormalParameters() }
func (s sourceNode) EffectiveSource() Source { return s.Source }

// AsNode wraps a raw Source as a contactor upstream Node.
func AsNode(s Source) Node { return sourceNode{s} }

// EffectiveSource implements Node for Bus, returning its own resolved
// upstream source so a bus-tie contactor can chain power onward.
func (b *Bus) EffectiveSource() Source { return b.source }

// Contactor is a binary switch between an upstream Node and a downstream
// Bus (spec.md section 3 "Contactor"). It closes only when commanded,
// its upstream is within normal parameters, and no interlock forbids it.
type Contactor struct {
	Name      string
	From      Node
	To        *Bus
	commanded bool
	interlock func() bool
}

// NewContactor builds a contactor commanded closed by default (most
// contactors in this network are "try to close whenever upstream is
// healthy and no interlock forbids it"; ApplyOverheadPanel overrides the
// handful that are actually pushbutton-gated). interlock may be nil.
func NewContactor(name string, from Node, to *Bus, interlock func() bool) *Contactor {
	return &Contactor{Name: name, From: from, To: to, commanded: true, interlock: interlock}
}

// SetCommanded sets the controller-supplied Open/Close signal.
func (c *Contactor) SetCommanded(closed bool) { c.commanded = closed }

// Closed reports the settled closed/open state (spec.md invariant P5:
// "closed <=> upstream_source.within_normal_parameters AND
// controller_signal == Close", modulo the interlock term).
func (c *Contactor) Closed() bool {
	if !c.commanded || !c.From.Powered() {
		return false
	}
	if c.interlock != nil && !c.interlock() {
		return false
	}
	return true
}
