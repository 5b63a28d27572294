package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAddAndGet(t *testing.T) {
	a := NewArena[int]()

	id0 := a.Add(10)
	id1 := a.Add(20)

	assert.Equal(t, ID(0), id0)
	assert.Equal(t, ID(1), id1)
	assert.Equal(t, 10, *a.Get(id0))
	assert.Equal(t, 20, *a.Get(id1))
	assert.Equal(t, 2, a.Len())
}

func TestArenaGetAllowsInPlaceMutation(t *testing.T) {
	a := NewArena[int]()
	id := a.Add(1)

	*a.Get(id) = 42

	assert.Equal(t, 42, *a.Get(id))
}

func TestArenaIDsNeverReused(t *testing.T) {
	a := NewArena[string]()
	a.Add("first")
	second := a.Add("second")

	assert.Equal(t, ID(1), second)
	assert.Equal(t, []ID{0, 1}, a.All())
}

func TestArenaPointerStability(t *testing.T) {
	// An ID stays valid after further inserts: Get(id) still reaches the
	// stored value once the arena has grown, which is the whole point of
	// looking nodes up by ID instead of holding pointers across a growing
	// arena.
	a := NewArena[*int]()
	v := 7
	id := a.Add(&v)

	for i := 0; i < 100; i++ {
		a.Add(&v)
	}

	assert.Equal(t, 7, **a.Get(id))
}
