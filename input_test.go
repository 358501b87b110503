package ssimulacra2

import (
	"math"
	"testing"
)

func TestNewRGB8RejectsBadDimensions(t *testing.T) {
	_, err := NewRGB8(make([]uint8, 3), 0, 1)
	var se *Error
	if !asError(err, &se) || se.Kind != InvalidDimensions {
		t.Errorf("got %v, want Kind=InvalidDimensions", err)
	}
}

func TestNewRGB8RejectsWrongLength(t *testing.T) {
	_, err := NewRGB8(make([]uint8, 5), 2, 1)
	var se *Error
	if !asError(err, &se) || se.Kind != InvalidDimensions {
		t.Errorf("got %v, want Kind=InvalidDimensions", err)
	}
}

func TestRGB8WhiteConvertsToOne(t *testing.T) {
	in, err := NewRGB8([]uint8{255, 255, 255}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	linear, err := in.toLinearRGB()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range linear {
		if math.Abs(float64(v)-1) > 1e-4 {
			t.Errorf("channel %d = %v, want ~1", i, v)
		}
	}
}

func TestRGB8BlackConvertsToZero(t *testing.T) {
	in, err := NewRGB8([]uint8{0, 0, 0}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	linear, err := in.toLinearRGB()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range linear {
		if v != 0 {
			t.Errorf("channel %d = %v, want 0", i, v)
		}
	}
}

func TestLinearRGBFPassesThroughUnchanged(t *testing.T) {
	src := []float32{0.1, 0.2, 0.3}
	in, err := NewLinearRGBF(src, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := in.toLinearRGB()
	if err != nil {
		t.Fatal(err)
	}
	for i := range src {
		if out[i] != src[i] {
			t.Errorf("index %d: got %v, want %v", i, out[i], src[i])
		}
	}
}

func TestGray8ReplicatesAcrossChannels(t *testing.T) {
	in, err := NewGray8([]uint8{128}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := in.toLinearRGB()
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != out[1] || out[1] != out[2] {
		t.Errorf("gray8 channels diverged: %v", out)
	}
}
