package ssimulacra2

import (
	"math"
	"testing"

	"github.com/imazen/ssimulacra2/internal/dsp"
	"github.com/imazen/ssimulacra2/internal/testutil"
)

func TestReferenceCompareMatchesScore(t *testing.T) {
	pix := testutil.Gradient(48, 40)
	refPix := pix
	distPix := testutil.Perturb(pix, 15)

	ref := mustRGB8(t, refPix, 48, 40)
	dist := mustRGB8(t, distPix, 48, 40)

	want, err := Score(ref, dist, DefaultConfig())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	reference, err := NewReference(ref, DefaultConfig())
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	got, err := reference.Compare(dist)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Reference.Compare = %v, Score = %v; want equal", got, want)
	}
}

func TestReferenceNumScalesAndDims(t *testing.T) {
	ref := mustRGB8(t, testutil.Gradient(64, 32), 64, 32)
	reference, err := NewReference(ref, DefaultConfig())
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	if reference.Width() != 64 || reference.Height() != 32 {
		t.Errorf("got %dx%d, want 64x32", reference.Width(), reference.Height())
	}
	if reference.NumScales() < 1 || reference.NumScales() > maxScales {
		t.Errorf("NumScales = %d, want in [1,%d]", reference.NumScales(), maxScales)
	}
}

func TestReferenceCompareDimensionMismatch(t *testing.T) {
	ref := mustRGB8(t, testutil.Uniform(32, 32, [3]uint8{5, 5, 5}), 32, 32)
	reference, err := NewReference(ref, DefaultConfig())
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	dist := mustRGB8(t, testutil.Uniform(16, 16, [3]uint8{5, 5, 5}), 16, 16)

	_, err = reference.Compare(dist)
	if err == nil {
		t.Fatal("expected a dimension mismatch error")
	}
	var se *Error
	if !asError(err, &se) || se.Kind != DimensionMismatch {
		t.Errorf("got %v, want Kind=DimensionMismatch", err)
	}
}

func TestReferenceMultipleComparesReuseState(t *testing.T) {
	pix := testutil.Gradient(48, 48)
	ref := mustRGB8(t, pix, 48, 48)
	reference, err := NewReference(ref, DefaultConfig())
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}

	for i, delta := range []int{5, 25, 60} {
		dist := mustRGB8(t, testutil.Perturb(pix, delta), 48, 48)
		score, err := reference.Compare(dist)
		if err != nil {
			t.Fatalf("Compare[%d]: %v", i, err)
		}
		if score > 100 {
			t.Errorf("Compare[%d] = %v, want <= 100", i, score)
		}
	}
}

func TestBreakdownReportsPerScaleRecords(t *testing.T) {
	pix := testutil.Gradient(48, 48)
	ref := mustRGB8(t, pix, 48, 48)
	reference, err := NewReference(ref, DefaultConfig())
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	dist := mustRGB8(t, testutil.Perturb(pix, 30), 48, 48)

	bd, err := reference.Breakdown(dist)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	if len(bd.Scales) != reference.NumScales() {
		t.Errorf("got %d scale records, want %d", len(bd.Scales), reference.NumScales())
	}
	if math.Abs(bd.Score-dsp.CombineScales(bd.Scales)) > 1e-9 {
		t.Errorf("Breakdown.Score does not match CombineScales(Breakdown.Scales)")
	}
}
