package main

import (
	"math"
	"testing"
)

func TestFloat16ExactRoundTrips(t *testing.T) {
	// Dyadic rationals within half precision convert without loss.
	exact := []float32{0, 1, -1, 0.5, 0.25, 0.75, 2, -2, 0.125, 1024, -0.09375}
	for _, f := range exact {
		got := float16BitsToFloat32(float32ToFloat16Bits(f))
		if got != f {
			t.Errorf("round trip of %v = %v", f, got)
		}
	}
}

func TestFloat16Specials(t *testing.T) {
	inf := float32(math.Inf(1))
	if got := float16BitsToFloat32(float32ToFloat16Bits(inf)); got != inf {
		t.Errorf("+Inf round trip = %v", got)
	}
	if got := float16BitsToFloat32(float32ToFloat16Bits(-inf)); got != -inf {
		t.Errorf("-Inf round trip = %v", got)
	}
	nan := float32(math.NaN())
	if got := float16BitsToFloat32(float32ToFloat16Bits(nan)); got == got {
		t.Errorf("NaN round trip = %v, want NaN", got)
	}
	// Values past the binary16 range saturate to infinity.
	if got := float16BitsToFloat32(float32ToFloat16Bits(1e6)); got != inf {
		t.Errorf("overflow converts to %v, want +Inf", got)
	}
}

func TestPackColor16Palette(t *testing.T) {
	for i, c := range palette {
		got := unpackColor16(packColor16(c))
		if math.Abs(float64(got.R-c.R)) > 1e-3 ||
			math.Abs(float64(got.G-c.G)) > 1e-3 ||
			math.Abs(float64(got.B-c.B)) > 1e-3 {
			t.Errorf("palette[%d] round trip = %+v, want %+v", i, got, c)
		}
	}
}
