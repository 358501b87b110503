// Package dsp implements the numeric core of the SSIMULACRA2 metric: the
// XYB color transform, the recursive-Gaussian blur, and the per-scale SSIM
// and edge-diff reduction. It is pure computation — no I/O, no logging,
// nothing that can block.
//
// Hot functions are exposed as package-level variables, set once by Init()
// and overridden per-architecture when a faster backend is available. This
// mirrors how the teacher dsp package dispatches VP8 transforms: a single
// call site (e.g. Blur) never branches on CPU features itself, it just
// calls through whatever Init() wired up.
package dsp

// Backend selects which implementation family a component uses.
type Backend int

const (
	// BackendScalar is the portable, most-readable reference implementation.
	// It is always available and is what every other backend is checked
	// against in conformance tests.
	BackendScalar Backend = iota
	// BackendSIMD is a portable lane-grouped implementation: arithmetic is
	// expressed over fixed-width groups of columns/pixels the way a real
	// SIMD backend would, without depending on assembly.
	BackendSIMD
	// BackendIntrinsics is the platform-dispatch backend: when SetBackend
	// selects it, it picks the widest lane group the detected CPU supports (see cpuid.go),
	// falling back to BackendSIMD's width on platforms/CPUs with no wider
	// feature detected.
	BackendIntrinsics
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendSIMD:
		return "simd"
	case BackendIntrinsics:
		return "intrinsics"
	default:
		return "unknown"
	}
}

// RecursiveGaussianSigma is the standard deviation approximated by the
// recursive Gaussian blur (spec §4.5).
const RecursiveGaussianSigma = 1.5

// Radius is the one-sided boundary support of the recursive Gaussian.
const Radius = 5

// Blur function variables for dispatch, set by Init(). BlurPlane runs the
// full separable horizontal+vertical pass; the per-pass functions are
// exposed individually so BlurState can pipeline horizontal/vertical
// across planes without repeated dispatch overhead.
var (
	blurHorizontal func(st *BlurState, in, out []float32, width, height int)
	blurVertical   func(st *BlurState, in, out []float32, width, height int)
)

// activeIntrinsicsWidth records the vertical-pass lane width of the backend
// SetBackend most recently wired up (1 for BackendScalar), for diagnostics.
var activeIntrinsicsWidth int

// Init wires every dispatch table to its default implementation. It is
// called automatically at package load; SetBackend later rewires the blur
// tables without calling Init again.
func Init() {
	initCubeRootTables()
	SetBackend(BackendSIMD)
}

func init() {
	Init()
}

// SetBackend switches the blur dispatch tables to the requested backend.
// xyb and reduce computations do not currently have distinct backend
// implementations beyond scalar Go (see xyb.go, reduce.go) since their
// cost is dominated by a handful of scalar ops per pixel rather than a
// long per-lane recurrence; Config.XYBBackend/ReduceBackend are accepted
// for forward compatibility and validated, but only Blur dispatches today.
func SetBackend(b Backend) {
	switch b {
	case BackendScalar:
		blurHorizontal = blurHorizontalScalar
		blurVertical = blurVerticalScalar
		activeIntrinsicsWidth = 1
	case BackendSIMD:
		blurHorizontal = blurHorizontalScalar
		blurVertical = blurVerticalLanes(portableLaneWidth)
		activeIntrinsicsWidth = portableLaneWidth
	case BackendIntrinsics:
		w := intrinsicsLaneWidth()
		blurHorizontal = blurHorizontalScalar
		blurVertical = blurVerticalLanes(w)
		activeIntrinsicsWidth = w
	default:
		blurHorizontal = blurHorizontalScalar
		blurVertical = blurVerticalLanes(portableLaneWidth)
		activeIntrinsicsWidth = portableLaneWidth
	}
}

// ActiveLaneWidth returns the SIMD group width the current backend uses for
// the vertical blur pass. 1 means the scalar backend is active.
func ActiveLaneWidth() int {
	return activeIntrinsicsWidth
}
