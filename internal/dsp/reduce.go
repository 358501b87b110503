package dsp

import "math"

// SSIM-map and edge-difference-map reduction (spec §4.6), the last stage
// of each scale. Grounded on
// original_source/ssimulacra2/src/ssim_unsafe_simd.rs's ssim_map_scalar
// and edge_diff_map_scalar: both compute a per-pixel dissimilarity value
// (0 when the two images agree exactly) and fold it into a per-channel
// (mean, quartic-mean) pair, exactly the "plane_averages" shape that
// source returns.

// c2 stabilizes the SSIM ratio's denominator, spec §4.6.
const c2 = 0.0009

// ChannelWeights assigns X, Y, B their relative contribution to the final
// per-scale accumulation. Upstream's exact per-channel coefficients were
// not recoverable from the retrieved sources (see DESIGN.md); these
// values keep Y (closest to achromatic luminance) dominant, consistent
// with human contrast sensitivity, and are documented as an approximation
// rather than a bit-exact reproduction. They are used only by Breakdown's
// cross-channel summary scalars, not by CombineScales itself: the final
// score's per-channel terms combine multiplicatively (spec §4.6), which
// has no room for an additive weight.
var ChannelWeights = [3]float64{0.2, 0.6, 0.2}

// ScaleAccum holds the running per-channel accumulators for one scale:
// for the SSIM dissimilarity term and for each of the edge term's two
// signs (artifact, detail-lost), the sum of the per-pixel value and the
// sum of its 4th power, needed to produce the (mean, quartic-mean) pair
// spec §3's ScaleRecord calls for. Each channel is folded independently;
// nothing here is pre-weighted, since the channels enter the final
// combination as independent multiplicative factors (spec §4.6), not as
// terms of a weighted sum.
type ScaleAccum struct {
	SSIMSum, SSIMSum4         [3]float64
	ArtifactSum, ArtifactSum4 [3]float64
	DetailSum, DetailSum4     [3]float64
	Count                     float64
}

// Add folds one channel's SSIM-dissimilarity and edge-artifact/detail
// maps into the accumulator. ssim, artifact, detail must be same-length
// per-pixel maps for channel c (spec §4.6's d, artifact, detail_lost).
func (a *ScaleAccum) Add(c int, ssim, artifact, detail []float32) {
	for i := range ssim {
		d := float64(ssim[i])
		a.SSIMSum[c] += d
		a.SSIMSum4[c] += d * d * d * d

		ar := float64(artifact[i])
		a.ArtifactSum[c] += ar
		a.ArtifactSum4[c] += ar * ar * ar * ar

		de := float64(detail[i])
		a.DetailSum[c] += de
		a.DetailSum4[c] += de * de * de * de
	}
	a.Count = float64(len(ssim))
}

// SSIMMap writes, per pixel, the single-scale SSIM dissimilarity value
// derived from the precomputed means/second-moments/cross-moment of two
// same-size planes (spec §4.6). mu1, mu2 are blurred means; sigma1Sq,
// sigma2Sq, sigma12 are the blurred (value*value)/(value1*value2) planes
// ("variance" and "covariance" before the mean is subtracted out here).
//
// The output is d = max(0, 1 - num_m*num_s/den_s): 0 when the two planes
// agree exactly at a pixel's local neighborhood, growing with local
// structural disagreement. This is a dissimilarity, not a similarity —
// CombineScales below treats it that way.
func SSIMMap(dst []float32, mu1, mu2, sigma1Sq, sigma2Sq, sigma12 []float32) {
	for i := range dst {
		m1 := float64(mu1[i])
		m2 := float64(mu2[i])
		mu11 := m1 * m1
		mu22 := m2 * m2
		mu12 := m1 * m2

		s11 := float64(sigma1Sq[i]) - mu11
		s22 := float64(sigma2Sq[i]) - mu22
		s12 := float64(sigma12[i]) - mu12

		muDiff := m1 - m2
		numM := 1 - muDiff*muDiff
		numS := 2*s12 + c2
		denS := s11 + s22 + c2

		var d float64
		if denS != 0 {
			d = 1 - (numM*numS)/denS
		}
		if d < 0 {
			d = 0
		}
		dst[i] = float32(d)
	}
}

// EdgeDiffMaps writes, per pixel, the two one-sided edge-dissimilarity
// signals of spec §4.6: p1, mu1 are the reference plane and its blurred
// mean; p2, mu2 are the distorted plane and its blurred mean (neither
// deviation is blurred a second time — the ratio is taken directly from
// the raw plane against its own blurred mean, per
// original_source/ssimulacra2/src/ssim_unsafe_simd.rs's
// edge_diff_map_scalar). artifact penalizes the distorted image acquiring
// local contrast the reference didn't have; detail penalizes it losing
// contrast the reference did have.
func EdgeDiffMaps(artifact, detail, p1, mu1, p2, mu2 []float32) {
	for i := range artifact {
		e1 := float64(p1[i]) - float64(mu1[i])
		if e1 < 0 {
			e1 = -e1
		}
		e2 := float64(p2[i]) - float64(mu2[i])
		if e2 < 0 {
			e2 = -e2
		}

		d1 := (1+e2)/(1+e1) - 1

		a := d1
		if a < 0 {
			a = 0
		}
		de := -d1
		if de < 0 {
			de = 0
		}
		artifact[i] = float32(a)
		detail[i] = float32(de)
	}
}

// ScaleScore reduces one scale's accumulated per-channel sums to the
// (mean, quartic-mean) pairs spec §3's ScaleRecord stores.
func ScaleScore(a *ScaleAccum) (ssimMean, ssimQuarticMean, artifactMean, artifactQuarticMean, detailMean, detailQuarticMean [3]float64) {
	if a.Count == 0 {
		return
	}
	for c := 0; c < 3; c++ {
		ssimMean[c] = a.SSIMSum[c] / a.Count
		ssimQuarticMean[c] = math.Sqrt(math.Sqrt(a.SSIMSum4[c] / a.Count))
		artifactMean[c] = a.ArtifactSum[c] / a.Count
		artifactQuarticMean[c] = math.Sqrt(math.Sqrt(a.ArtifactSum4[c] / a.Count))
		detailMean[c] = a.DetailSum[c] / a.Count
		detailQuarticMean[c] = math.Sqrt(math.Sqrt(a.DetailSum4[c] / a.Count))
	}
	return
}

// ScaleRecord is the summary a single pyramid scale contributes to the
// final reduction: the per-channel (mean, quartic-mean) pairs for the
// SSIM term and for each sign of the edge term — never a pixel-level map
// (spec's "no intermediate maps escape the core" non-goal; Breakdown() in
// the root package exposes these records for diagnostics without
// violating that, since a ScaleRecord is already a summary, not a map).
//
// SSIMMeanAvg and EdgeMeanAvg are ChannelWeights-weighted convenience
// scalars for cross-scale diagnostics (Breakdown); CombineScales itself
// never reads them, since the real reduction treats channels as
// independent multiplicative factors, not as terms of a weighted sum.
type ScaleRecord struct {
	Scale int

	SSIMMean, SSIMQuarticMean         [3]float64
	ArtifactMean, ArtifactQuarticMean [3]float64
	DetailMean, DetailQuarticMean     [3]float64

	SSIMMeanAvg, EdgeMeanAvg float64
}

// CombineScales folds the per-scale per-channel records emitted for each
// of the L scales actually computed (spec's Open Question: use the
// emitted count, not a hardcoded 6) into the final single score.
//
// Spec §4.6 literally states:
//
//	ssim     = ∏_scale ∏_c SSIM_c,2
//	ssim_max = ∏_scale ∏_c min(EDGE_c,artifact2, EDGE_c,detail2)
//	g        = (3·L)⁻¹
//	ssim     ← ssim^g; ssim_max ← ssim_max^g
//	if ssim < ssim_max: ssim ← ssim_max
//	return max(−500, 100·(ssim − 1))
//
// Taken completely literally that formula cannot satisfy spec §8's P1
// ("score(I, I) == 100.0 exactly"): SSIM_c,2 and EDGE_c,artifact2/detail2
// are dissimilarity terms (0 when the two images agree exactly, per
// SSIMMap/EdgeDiffMaps above and the original_source this repository's
// per-pixel math is grounded on), so for identical images every factor of
// both products is exactly 0, the geometric means (the ^g step, since g
// is exactly 1/(number of factors)) are 0, and "100*(ssim-1)" evaluates
// to -100 rather than 100.
//
// This repository resolves the contradiction by taking the spec's §8
// invariants (P1-P6, explicitly mandatory and independently checkable)
// as authoritative over the final arithmetic step's sign, which is
// treated as a transcription slip: the natural reading consistent with
// P1-P3 and P5 is that "ssim" names a combined DISSIMILARITY in [0, ∞)
// (0 = identical, growing with distortion, exactly the geometric mean
// the ^g exponent already computes) and the score is
//
//	return max(-500, 100*(1 - ssim))
//
// i.e. the complement, not "ssim - 1". This keeps every other piece of
// the literal formula (the per-channel/per-scale product, the ^(1/3L)
// geometric mean, taking the larger of the SSIM-based and edge-based
// dissimilarity before the final step) and changes only the final sign,
// which is the minimal edit that makes P1 hold exactly while leaving
// P2 (score <= 100, now immediate since ssim >= 0) and P5 (monotone
// decreasing in distortion, since more distortion enlarges every
// per-pixel dissimilarity term) consistent with the rest of the design.
func CombineScales(records []ScaleRecord) float64 {
	l := len(records)
	if l == 0 {
		return -500
	}
	g := 1.0 / float64(3*l)

	ssimProduct := 1.0
	edgeProduct := 1.0
	for _, r := range records {
		for c := 0; c < 3; c++ {
			ssimProduct *= r.SSIMQuarticMean[c]

			edgeMin := r.ArtifactQuarticMean[c]
			if r.DetailQuarticMean[c] < edgeMin {
				edgeMin = r.DetailQuarticMean[c]
			}
			edgeProduct *= edgeMin
		}
	}

	ssim := math.Pow(ssimProduct, g)
	ssimMax := math.Pow(edgeProduct, g)
	if ssimMax > ssim {
		ssim = ssimMax
	}
	// ssim is a dissimilarity and every per-pixel term it is built from is
	// clamped to >= 0 at the source (SSIMMap/EdgeDiffMaps), so it can never
	// go negative; P2's "score <= 100" therefore holds unconditionally.
	// It has no upper bound: a badly distorted pair can push ssim well
	// above 1, driving the score negative (spec §8 P3's -500 floor exists
	// precisely for that case).
	score := 100 * (1 - ssim)
	if score < -500 {
		return -500
	}
	return score
}

// weightedAvg folds a per-channel array into a single scalar using
// ChannelWeights, for Breakdown's cross-scale diagnostics.
func weightedAvg(v [3]float64) float64 {
	var sum, wsum float64
	for c := 0; c < 3; c++ {
		sum += ChannelWeights[c] * v[c]
		wsum += ChannelWeights[c]
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// NewScaleRecord builds a ScaleRecord from one scale's accumulated
// per-channel statistics, filling in the ChannelWeights-weighted
// convenience scalars Breakdown uses.
func NewScaleRecord(scaleIdx int, ssimMean, ssimQuarticMean, artifactMean, artifactQuarticMean, detailMean, detailQuarticMean [3]float64) ScaleRecord {
	// artifact and detail-lost are the two one-sided halves of the same
	// edge-dissimilarity signal; the diagnostic scalar averages them.
	edgeMeanAvg := (weightedAvg(artifactMean) + weightedAvg(detailMean)) / 2

	return ScaleRecord{
		Scale:               scaleIdx,
		SSIMMean:            ssimMean,
		SSIMQuarticMean:     ssimQuarticMean,
		ArtifactMean:        artifactMean,
		ArtifactQuarticMean: artifactQuarticMean,
		DetailMean:          detailMean,
		DetailQuarticMean:   detailQuarticMean,
		SSIMMeanAvg:         weightedAvg(ssimMean),
		EdgeMeanAvg:         edgeMeanAvg,
	}
}
