package ssimulacra2

import (
	"math"
	"testing"

	"github.com/imazen/ssimulacra2/internal/dsp"
	"github.com/imazen/ssimulacra2/internal/testutil"
)

func mustRGB8(t *testing.T, pix []uint8, w, h int) Input {
	t.Helper()
	in, err := NewRGB8(pix, w, h)
	if err != nil {
		t.Fatalf("NewRGB8: %v", err)
	}
	return in
}

func TestScoreIdenticalImagesIsMaximal(t *testing.T) {
	pix := testutil.Gradient(64, 48)
	ref := mustRGB8(t, pix, 64, 48)
	dist := mustRGB8(t, append([]uint8(nil), pix...), 64, 48)

	score, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score < 99.999 {
		t.Errorf("identical images scored %v, want ~100", score)
	}
}

// TestScoreIdenticalHorizontalGradientIsExactly100 is spec §8's "identical
// 64x64 horizontal gradient must yield 100.0" synthetic scenario.
func TestScoreIdenticalHorizontalGradientIsExactly100(t *testing.T) {
	pix := testutil.HorizontalGradient(64, 64)
	ref := mustRGB8(t, pix, 64, 64)
	dist := mustRGB8(t, append([]uint8(nil), pix...), 64, 64)

	score, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 100 {
		t.Errorf("identical horizontal gradient scored %v, want exactly 100", score)
	}
}

// TestScoreIdenticalCheckerboard8IsExactly100 is spec §8's "identical 64x64
// checkerboard-8 must yield 100.0" synthetic scenario.
func TestScoreIdenticalCheckerboard8IsExactly100(t *testing.T) {
	pix := testutil.Checkerboard(64, 64, 8, [3]uint8{255, 255, 255}, [3]uint8{0, 0, 0})
	ref := mustRGB8(t, pix, 64, 64)
	dist := mustRGB8(t, append([]uint8(nil), pix...), 64, 64)

	score, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 100 {
		t.Errorf("identical checkerboard-8 scored %v, want exactly 100", score)
	}
}

// TestScoreUniformShiftBy20ScoresInRange is spec §8's "uniform-shift by +20
// (128->148) on a 64x64 field must yield a score in [81, 95]" synthetic
// scenario, chosen specifically for its near-zero-variance denominators.
func TestScoreUniformShiftBy20ScoresInRange(t *testing.T) {
	ref := mustRGB8(t, testutil.Uniform(64, 64, [3]uint8{128, 128, 128}), 64, 64)
	dist := mustRGB8(t, testutil.Uniform(64, 64, [3]uint8{148, 148, 148}), 64, 64)

	score, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score < 81 || score > 95 {
		t.Errorf("uniform +20 shift scored %v, want in [81, 95]", score)
	}
}

func TestScoreDetectsDistortion(t *testing.T) {
	pix := testutil.Checkerboard(64, 64, 8, [3]uint8{255, 255, 255}, [3]uint8{0, 0, 0})
	ref := mustRGB8(t, pix, 64, 64)
	dist := mustRGB8(t, testutil.Perturb(pix, 80), 64, 64)

	score, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score >= 99.999 {
		t.Errorf("heavily distorted image scored %v, want well below 100", score)
	}
}

func TestScoreMonotonicWithDistortion(t *testing.T) {
	pix := testutil.Gradient(48, 48)
	ref := mustRGB8(t, pix, 48, 48)

	mild := mustRGB8(t, testutil.Perturb(pix, 4), 48, 48)
	severe := mustRGB8(t, testutil.Perturb(pix, 60), 48, 48)

	mildScore, err := Score(ref, mild, DefaultConfig())
	if err != nil {
		t.Fatalf("Score(mild): %v", err)
	}
	severeScore, err := Score(ref, severe, DefaultConfig())
	if err != nil {
		t.Fatalf("Score(severe): %v", err)
	}
	if severeScore >= mildScore {
		t.Errorf("severe distortion scored %v, mild scored %v; want severe < mild", severeScore, mildScore)
	}
}

func TestScoreDimensionMismatch(t *testing.T) {
	ref := mustRGB8(t, testutil.Uniform(16, 16, [3]uint8{10, 10, 10}), 16, 16)
	dist := mustRGB8(t, testutil.Uniform(8, 8, [3]uint8{10, 10, 10}), 8, 8)

	_, err := Score(ref, dist, DefaultConfig())
	if err == nil {
		t.Fatal("expected a dimension mismatch error")
	}
	var se *Error
	if !asError(err, &se) || se.Kind != DimensionMismatch {
		t.Errorf("got %v, want Kind=DimensionMismatch", err)
	}
}

func TestScoreTooSmall(t *testing.T) {
	ref := mustRGB8(t, testutil.Uniform(2, 2, [3]uint8{1, 1, 1}), 2, 2)
	dist := mustRGB8(t, testutil.Uniform(2, 2, [3]uint8{1, 1, 1}), 2, 2)

	_, err := Score(ref, dist, DefaultConfig())
	if err == nil {
		t.Fatal("expected a too-small error")
	}
	var se *Error
	if !asError(err, &se) || se.Kind != TooSmall {
		t.Errorf("got %v, want Kind=TooSmall", err)
	}
}

func TestScoreBackendsAgree(t *testing.T) {
	pix := testutil.Gradient(40, 36)
	ref := mustRGB8(t, pix, 40, 36)
	dist := mustRGB8(t, testutil.Perturb(pix, 20), 40, 36)

	var scores []float64
	cfgScalar := DefaultConfig()
	cfgScalar.BlurBackend = dsp.BackendScalar
	cfgSIMD := DefaultConfig()
	cfgSIMD.BlurBackend = dsp.BackendSIMD
	cfgIntrinsics := DefaultConfig()
	cfgIntrinsics.BlurBackend = dsp.BackendIntrinsics

	for _, cfg := range []Config{cfgScalar, cfgSIMD, cfgIntrinsics} {
		s, err := Score(ref, dist, cfg)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		scores = append(scores, s)
	}

	for i := 1; i < len(scores); i++ {
		if math.Abs(scores[i]-scores[0]) > 0.5 {
			t.Errorf("backend %d scored %v, scalar scored %v; want close agreement", i, scores[i], scores[0])
		}
	}
}

// asError is a small helper so tests can assert on *Error without a type
// switch at every call site.
func asError(err error, target **Error) bool {
	se, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = se
	return true
}
