package dsp

import "testing"

func TestSplitXYBDeinterleaves(t *testing.T) {
	xyb := []float32{1, 2, 3, 4, 5, 6}
	p := NewPlanar3(2, 1)
	SplitXYB(&p, xyb, 2, 1)
	want := [3][]float32{{1, 4}, {2, 5}, {3, 6}}
	for c := 0; c < 3; c++ {
		for i := range want[c] {
			if p.P[c][i] != want[c][i] {
				t.Errorf("plane %d index %d: got %v, want %v", c, i, p.P[c][i], want[c][i])
			}
		}
	}
}

func TestMultiplyElementwise(t *testing.T) {
	a := NewPlanar3(2, 1)
	b := NewPlanar3(2, 1)
	out := NewPlanar3(2, 1)
	for c := 0; c < 3; c++ {
		a.P[c][0], a.P[c][1] = 2, 3
		b.P[c][0], b.P[c][1] = 4, 5
	}
	Multiply(&out, &a, &b)
	for c := 0; c < 3; c++ {
		if out.P[c][0] != 8 || out.P[c][1] != 15 {
			t.Errorf("plane %d: got (%v,%v), want (8,15)", c, out.P[c][0], out.P[c][1])
		}
	}
}

func TestPlanar3TruncateReusesBacking(t *testing.T) {
	p := NewPlanar3(8, 8)
	before := &p.P[0][0]
	p.Truncate(4, 4)
	if p.W != 4 || p.H != 4 {
		t.Fatalf("Truncate did not update dimensions: %d x %d", p.W, p.H)
	}
	if len(p.P[0]) != 16 {
		t.Fatalf("Truncate did not shrink length: %d", len(p.P[0]))
	}
	if &p.P[0][0] != before {
		t.Fatalf("Truncate reallocated backing array")
	}
}
