package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureRoundTrip(t *testing.T) {
	psi := 3000.0
	pa := PSIToPa(psi)

	assert.InDelta(t, 20684271.88, pa, 1.0)
	assert.InDelta(t, psi, PaToPSI(pa), 1e-6)
}

func TestVolumeRoundTrip(t *testing.T) {
	gal := 4.5
	m3 := GallonToM3(gal)

	assert.InDelta(t, gal, M3ToGallon(m3), 1e-9)
}

func TestAngleRoundTrip(t *testing.T) {
	deg := 74.0
	assert.InDelta(t, deg, RadToDeg(DegToRad(deg)), 1e-9)
}

func TestSpeedRoundTrip(t *testing.T) {
	kt := 250.0
	assert.InDelta(t, kt, MPSToKnot(KnotToMPS(kt)), 1e-9)
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{v: 5, lo: 0, hi: 10, want: 5},
		{v: -5, lo: 0, hi: 10, want: 0},
		{v: 15, lo: 0, hi: 10, want: 10},
		{v: 0, lo: 0, hi: 10, want: 0},
		{v: 10, lo: 0, hi: 10, want: 10},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clamp(c.v, c.lo, c.hi))
	}
}
