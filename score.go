package ssimulacra2

import "github.com/imazen/ssimulacra2/internal/dsp"

// Score computes the SSIMULACRA2 distance between a reference and a
// distorted image of identical dimensions: a single float64 no greater
// than 100, where 100 means the images are identical and lower values
// mean progressively more visible distortion (spec §1).
//
// For repeated comparisons against the same reference, build a Reference
// once and call its Compare method instead; it precomputes the half of
// the pipeline that depends only on the reference image.
func Score(ref, dist Input, cfg Config) (float64, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if ref.width != dist.width || ref.height != dist.height {
		return 0, newError(DimensionMismatch, "reference and distorted images must have the same dimensions")
	}
	dims := scaleDims(ref.width, ref.height)
	if len(dims) == 0 {
		return 0, newError(TooSmall, "image is smaller than the minimum pyramid scale")
	}

	dsp.SetBackend(cfg.BlurBackend)

	refLinear, err := ref.toLinearRGB()
	if err != nil {
		return 0, wrapError(ConversionFailed, "reference image", err)
	}
	distLinear, err := dist.toLinearRGB()
	if err != nil {
		return 0, wrapError(ConversionFailed, "distorted image", err)
	}

	st := dsp.NewBlurState(dims[0].W, dims[0].H)
	refArena := newScaleArena(dims[0].W, dims[0].H)
	distArena := newScaleArena(dims[0].W, dims[0].H)
	records := make([]dsp.ScaleRecord, 0, len(dims))

	curRef, curDist := refLinear, distLinear
	for i, d := range dims {
		st.ShrinkTo(d.W, d.H)
		refStats := buildScaleStats(curRef, d.W, d.H, st, refArena)
		distStats := buildScaleStats(curDist, d.W, d.H, st, distArena)
		records = append(records, compareScale(refStats, distStats, st, i))

		if i == len(dims)-1 {
			break
		}
		next := dims[i+1]
		curRef = downscaleLinearRGB(curRef, d.W, d.H, next.W, next.H)
		curDist = downscaleLinearRGB(curDist, d.W, d.H, next.W, next.H)
	}

	return dsp.CombineScales(records), nil
}
