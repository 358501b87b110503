package ssimulacra2

import "github.com/imazen/ssimulacra2/internal/dsp"

// maxScales caps the pyramid at six levels (spec §3); the actual number
// of scales processed for a given image pair may be fewer, and every
// downstream reduction uses that emitted count rather than this constant.
const maxScales = 6

// minScaleDim is the smallest width or height the pipeline will run a
// scale over. Below it the recursive-Gaussian boundary handling would
// dominate the entire plane, producing a meaningless SSIM map, so the
// pyramid stops one level early instead (spec's TooSmall boundary).
const minScaleDim = 8

// scaleStats holds everything one pyramid scale precomputes for a single
// image: the positive XYB planes, their blurred mean, and their blurred
// square (for variance). Grounded on
// original_source/ssimulacra2/src/precompute.rs's Ssim2Reference, which
// stores exactly this tuple per scale so compare() only has to repeat
// the other half of the work for a second image.
//
// Only xyb and mu and sq are ever blurred per image (2 of the scale's 5
// total Blur3 calls; the 5th blurs the cross term p1*p2, which needs both
// images at once and so lives in compareScale instead) — spec §4.5's
// "run five times per scale, on p1, on p2, on p1*p1, on p2*p2, on p1*p2"
// with no additional blur of an edge/deviation plane: the edge term
// (spec §4.6) compares the raw xyb plane directly against mu, it does not
// smooth the deviation a second time.
type scaleStats struct {
	width, height int
	xyb           dsp.Planar3
	mu            dsp.Planar3
	sq            dsp.Planar3
}

// scaleArena holds one image side's xyb/mu/sq Planar3 buffers, sized for
// the pyramid's largest scale and truncated (not reallocated) for every
// smaller scale via Planar3.Truncate — spec §9's "truncates logical
// length, does not free" arena discipline, the same one BlurState.ShrinkTo
// applies to the blur's own scratch buffers. A scaleArena is reused across
// every scale of one Score call, or across every Compare call against one
// Reference's distorted side; Reference's precomputed reference-side
// scales are the one exception (see buildScaleStats).
type scaleArena struct {
	xyb, mu, sq dsp.Planar3
}

// newScaleArena allocates a scaleArena sized for images up to
// maxWidth x maxHeight, the first (largest) scale a pyramid will ever
// process.
func newScaleArena(maxWidth, maxHeight int) *scaleArena {
	return &scaleArena{
		xyb: dsp.NewPlanar3(maxWidth, maxHeight),
		mu:  dsp.NewPlanar3(maxWidth, maxHeight),
		sq:  dsp.NewPlanar3(maxWidth, maxHeight),
	}
}

// buildScaleStats runs C1(already done)->C3->C4->C5 for one image at one
// scale: linear RGB in, scaleStats out. st must already be ShrinkTo'd to
// width x height, and arena holds buffers at least width x height.
//
// The returned scaleStats' Planar3 fields alias arena's backing arrays, so
// the caller must not call buildScaleStats again for the same arena before
// it is done with the previous result — true for every caller here except
// Reference.NewReference, which gives each scale its own arena (all scales
// must coexist for the life of the Reference) rather than reusing one
// across scales.
func buildScaleStats(linearRGB []float32, width, height int, st *dsp.BlurState, arena *scaleArena) scaleStats {
	arena.xyb.Truncate(width, height)
	arena.mu.Truncate(width, height)
	arena.sq.Truncate(width, height)

	xybInterleaved := make([]float32, width*height*3)
	dsp.LinearToXYB(xybInterleaved, linearRGB, width, height)
	dsp.MakePositiveXYB(xybInterleaved, width, height)

	dsp.SplitXYB(&arena.xyb, xybInterleaved, width, height)

	st.Blur3(&arena.mu, &arena.xyb)

	dsp.Multiply(&arena.sq, &arena.xyb, &arena.xyb)
	st.Blur3(&arena.sq, &arena.sq)

	return scaleStats{width: width, height: height, xyb: arena.xyb, mu: arena.mu, sq: arena.sq}
}

// scaleDim is one level of the pyramid's width/height sequence.
type scaleDim struct {
	W, H int
}

// scaleDims computes the sequence of (width, height) pairs the pyramid
// will process for an image of the given top-level size: up to maxScales
// entries, halving (rounding up) each step, stopping one level early if a
// further halving would fall below minScaleDim. Both images in a Score or
// Reference/Compare pair share this sequence since their dimensions must
// already match.
func scaleDims(width, height int) []scaleDim {
	dims := make([]scaleDim, 0, maxScales)
	cw, ch := width, height
	for i := 0; i < maxScales; i++ {
		if cw < minScaleDim || ch < minScaleDim {
			break
		}
		dims = append(dims, scaleDim{W: cw, H: ch})
		nw, nh := (cw+1)/2, (ch+1)/2
		if nw < minScaleDim && nh < minScaleDim {
			break
		}
		cw, ch = nw, nh
	}
	return dims
}

// downscaleLinearRGB halves an interleaved linear-RGB buffer, returning a
// freshly allocated destination sized for the next scaleDim in sequence.
func downscaleLinearRGB(cur []float32, cw, ch, nw, nh int) []float32 {
	next := make([]float32, nw*nh*3)
	dsp.DownscaleBy2(next, cur, cw, ch)
	return next
}

// compareScale computes one scale's ScaleRecord from two images' already
// blurred stats, plus a cross term it blurs itself (the only quantity
// that genuinely needs both images at once and so cannot be precomputed
// by either side alone). st must already be ShrinkTo'd to the stats'
// dimensions.
func compareScale(ref, dist scaleStats, st *dsp.BlurState, scaleIdx int) dsp.ScaleRecord {
	width, height := ref.width, ref.height
	n := width * height
	cross := make([]float32, n)
	crossBlur := make([]float32, n)
	ssimMap := make([]float32, n)
	artifactMap := make([]float32, n)
	detailMap := make([]float32, n)

	var accum dsp.ScaleAccum
	for c := 0; c < 3; c++ {
		a, b := ref.xyb.P[c], dist.xyb.P[c]
		for i := range cross {
			cross[i] = a[i] * b[i]
		}
		st.BlurPlane(crossBlur, cross, width, height)

		dsp.SSIMMap(ssimMap, ref.mu.P[c], dist.mu.P[c], ref.sq.P[c], dist.sq.P[c], crossBlur)
		dsp.EdgeDiffMaps(artifactMap, detailMap, ref.xyb.P[c], ref.mu.P[c], dist.xyb.P[c], dist.mu.P[c])
		accum.Add(c, ssimMap, artifactMap, detailMap)
	}

	ssimMean, ssimQ, artifactMean, artifactQ, detailMean, detailQ := dsp.ScaleScore(&accum)
	return dsp.NewScaleRecord(scaleIdx, ssimMean, ssimQ, artifactMean, artifactQ, detailMean, detailQ)
}
