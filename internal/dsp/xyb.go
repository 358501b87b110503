package dsp

import "math"

// XYB color transform (spec §4.3): linear RGB -> opponent XYB, followed by
// the positivity remap that keeps every later stage's inputs strictly
// positive and well conditioned for the multiply-blur pipeline.
//
// Grounded on original_source/ssimulacra2/src/xyb_unsafe_simd.rs's matrix
// constants and cbrtf_fast, and structurally on the teacher's
// sharpyuv/gamma.go LUT-driven transfer-function style (precompute once,
// apply per pixel in a tight loop).

// XYB mixing matrix (row-major), spec §4.3.
var xybMatrix = [3][3]float64{
	{0.30, 0.622, 0.078},
	{0.23, 0.692, 0.078},
	{0.24342269, 0.20476745, 0.55181986},
}

// xybBias is added to M*rgb before the cube root, spec §4.3.
const xybBias = 0.0037930734

var xybBiasCbrt = cubeRoot(xybBias)

// LinearToXYB converts an interleaved linear-RGB buffer (rgb triples,
// row-major, len == 3*width*height) into an interleaved XYB buffer of the
// same length, in place of a provided destination slice.
//
// dst and src may overlap only if dst == src (safe: each pixel is read
// before being overwritten).
func LinearToXYB(dst, src []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		r := float64(src[3*i+0])
		g := float64(src[3*i+1])
		b := float64(src[3*i+2])

		m0 := xybMatrix[0][0]*r + xybMatrix[0][1]*g + xybMatrix[0][2]*b + xybBias
		m1 := xybMatrix[1][0]*r + xybMatrix[1][1]*g + xybMatrix[1][2]*b + xybBias
		m2 := xybMatrix[2][0]*r + xybMatrix[2][1]*g + xybMatrix[2][2]*b + xybBias
		if m0 < 0 {
			m0 = 0
		}
		if m1 < 0 {
			m1 = 0
		}
		if m2 < 0 {
			m2 = 0
		}

		mixed0 := cubeRoot(m0) - xybBiasCbrt
		mixed1 := cubeRoot(m1) - xybBiasCbrt
		mixed2 := cubeRoot(m2) - xybBiasCbrt

		x := 0.5 * (mixed0 - mixed1)
		y := 0.5 * (mixed0 + mixed1)

		dst[3*i+0] = float32(x)
		dst[3*i+1] = float32(y)
		dst[3*i+2] = float32(mixed2)
	}
}

// MakePositiveXYB applies the positivity remap of spec §4.3 in place to an
// interleaved XYB buffer: B' = (B - Y) + 0.55, X' = 14*X + 0.42, Y' = Y + 0.01.
func MakePositiveXYB(xyb []float32, width, height int) {
	n := width * height
	for i := 0; i < n; i++ {
		x := xyb[3*i+0]
		y := xyb[3*i+1]
		b := xyb[3*i+2]
		xyb[3*i+0] = 14*x + 0.42
		xyb[3*i+1] = y + 0.01
		xyb[3*i+2] = (b - y) + 0.55
	}
}

// cubeRootMagic seeds the fast cube-root bit-manipulation guess (spec §4.3):
// a single integer constant reused by every call, not a table — named here
// to mirror the teacher's init-then-reuse style for precomputed constants
// (sharpyuv/gamma.go's initGammaTables), even though in this case there's
// a single scalar constant rather than a LUT.
const cubeRootMagic = 709_958_130

func initCubeRootTables() {
	// No precomputation needed: cubeRoot below is already O(1) per call.
	// Kept as a named Init step so dsp.Init()'s sequence documents every
	// stage that could, in principle, need one-time setup.
}

// cubeRoot computes x^(1/3) for x >= 0 using the fast approximation
// required by spec §4.3: a bit-manipulation initial guess refined by two
// Newton iterations, matching the precision of the standard library cbrt
// to within 1 ULP on [0, 10].
//
// Grounded on original_source/ssimulacra2/src/xyb_unsafe_simd.rs's
// cbrtf_fast: reinterpret the float as an integer, divide the (sign-masked)
// exponent+mantissa bits by 3 and add a magic offset, then two rounds of
// t <- t*(2x+t^3)/(x+2t^3).
func cubeRoot(x float64) float64 {
	if x == 0 {
		return 0
	}
	neg := x < 0
	if neg {
		x = -x
	}

	f := float32(x)
	bits := math.Float32bits(f)
	sign := bits & 0x8000_0000
	hx := (bits & 0x7FFF_FFFF) / 3
	hx += cubeRootMagic
	guess := math.Float32frombits(sign | hx)

	t := float64(guess)
	for i := 0; i < 2; i++ {
		t3 := t * t * t
		t = t * (x + x + t3) / (x + t3 + t3)
	}

	if neg {
		return -t
	}
	return t
}
