package electrical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkContactorPriorityFavorsFirstAdded(t *testing.T) {
	gen := NewGenerator("GEN 1", EngineGenerator, 1.0)
	gen.Update(true, false, 2.0)
	apu := NewGenerator("APU GEN", APUGenerator, 1.0)
	apu.Update(true, true, 2.0)

	bus := NewBus("AC BUS 1", ACBus)
	net := NewNetwork()
	net.AddBus(bus)
	net.AddContactor(NewContactor("GEN 1 LC", AsNode(gen), bus, nil))
	net.AddContactor(NewContactor("APU GEN LC", AsNode(apu), bus, nil))

	net.Settle()
	assert.Equal(t, gen.Name(), bus.Source().Name())
}

func TestNetworkFallsBackToLowerPriorityWhenFirstUnhealthy(t *testing.T) {
	gen := NewGenerator("GEN 1", EngineGenerator, 1.0) // never updated: unhealthy
	apu := NewGenerator("APU GEN", APUGenerator, 1.0)
	apu.Update(true, true, 2.0)

	bus := NewBus("AC BUS 1", ACBus)
	net := NewNetwork()
	net.AddBus(bus)
	net.AddContactor(NewContactor("GEN 1 LC", AsNode(gen), bus, nil))
	net.AddContactor(NewContactor("APU GEN LC", AsNode(apu), bus, nil))

	net.Settle()
	assert.Equal(t, apu.Name(), bus.Source().Name())
}

func TestNetworkBusUnpoweredWhenNoContactorCloses(t *testing.T) {
	gen := NewGenerator("GEN 1", EngineGenerator, 1.0)
	bus := NewBus("AC BUS 1", ACBus)
	net := NewNetwork()
	net.AddBus(bus)
	net.AddContactor(NewContactor("GEN 1 LC", AsNode(gen), bus, nil))

	net.Settle()
	assert.False(t, bus.Powered())
	assert.Nil(t, bus.Source())
}

func TestNetworkContactorLookupByName(t *testing.T) {
	gen := NewGenerator("GEN 1", EngineGenerator, 1.0)
	bus := NewBus("AC BUS 1", ACBus)
	net := NewNetwork()
	net.AddBus(bus)
	c := NewContactor("GEN 1 LC", AsNode(gen), bus, nil)
	net.AddContactor(c)

	assert.Same(t, c, net.Contactor("GEN 1 LC"))
	assert.Nil(t, net.Contactor("NO SUCH CONTACTOR"))
}

func TestNetworkSettleResetsStaleSourceOnFailure(t *testing.T) {
	gen := NewGenerator("GEN 1", EngineGenerator, 1.0)
	gen.Update(true, false, 2.0)
	bus := NewBus("AC BUS 1", ACBus)
	net := NewNetwork()
	net.AddBus(bus)
	net.AddContactor(NewContactor("GEN 1 LC", AsNode(gen), bus, nil))

	net.Settle()
	assert.True(t, bus.Powered())

	gen.Update(false, false, 0.1) // shaft speed drops out
	net.Settle()
	assert.False(t, bus.Powered())
	assert.Nil(t, bus.Source())
}
