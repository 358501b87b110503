package dsp

// Planar3 is the de-interleaved representation of an XYB image: three
// equal-length row-major planes, spec §3's PlanarTriple.
type Planar3 struct {
	P         [3][]float32
	W, H      int
}

// NewPlanar3 allocates a Planar3 with all three planes sized width*height.
func NewPlanar3(width, height int) Planar3 {
	n := width * height
	return Planar3{
		P: [3][]float32{
			make([]float32, n),
			make([]float32, n),
			make([]float32, n),
		},
		W: width,
		H: height,
	}
}

// Truncate shrinks all three planes to width*height without reallocating,
// matching §9's "truncates logical length, does not free" arena discipline.
// The backing arrays must already be at least width*height long (callers
// allocate once at the largest scale and only ever truncate afterwards).
func (p *Planar3) Truncate(width, height int) {
	n := width * height
	for c := range p.P {
		p.P[c] = p.P[c][:n]
	}
	p.W, p.H = width, height
}

// SplitXYB de-interleaves an XYB buffer (row-major rgb-style triples) into
// dst, a Planar3 of matching size. Spec §4.4 "Split".
func SplitXYB(dst *Planar3, xyb []float32, width, height int) {
	n := width * height
	p0, p1, p2 := dst.P[0], dst.P[1], dst.P[2]
	for i := 0; i < n; i++ {
		p0[i] = xyb[3*i+0]
		p1[i] = xyb[3*i+1]
		p2[i] = xyb[3*i+2]
	}
}

// Multiply computes elementwise out[c][i] = a[c][i] * b[c][i] for all three
// planes. Spec §4.4 "Multiply"; used both for p*p (variance component) and
// p1*p2 (covariance component) in §4.6. out may alias a or b.
func Multiply(out *Planar3, a, b *Planar3) {
	for c := 0; c < 3; c++ {
		oc, ac, bc := out.P[c], a.P[c], b.P[c]
		for i := range oc {
			oc[i] = ac[i] * bc[i]
		}
	}
}
