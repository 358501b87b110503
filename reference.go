package ssimulacra2

import "github.com/imazen/ssimulacra2/internal/dsp"

// Reference precomputes a reference image's full pyramid once so that
// comparing it against many distorted candidates (e.g. scanning encoder
// quality settings) does roughly half the work of an equivalent number of
// independent Score calls (spec §6). Grounded on
// original_source/ssimulacra2/src/precompute.rs's Ssim2Reference.
//
// A Reference is not safe for concurrent Compare calls: it owns one
// BlurState arena that Compare reuses and reshapes every call. Build one
// Reference per goroutine, or guard a shared one with external
// synchronization.
type Reference struct {
	cfg           Config
	width, height int
	dims          []scaleDim
	scales        []scaleStats
	st            *dsp.BlurState
	distArena     *scaleArena
}

// NewReference precomputes ref's pyramid under cfg.
func NewReference(ref Input, cfg Config) (*Reference, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	dims := scaleDims(ref.width, ref.height)
	if len(dims) == 0 {
		return nil, newError(TooSmall, "image is smaller than the minimum pyramid scale")
	}

	dsp.SetBackend(cfg.BlurBackend)

	linear, err := ref.toLinearRGB()
	if err != nil {
		return nil, wrapError(ConversionFailed, "reference image", err)
	}

	st := dsp.NewBlurState(dims[0].W, dims[0].H)
	scales := make([]scaleStats, len(dims))
	cur := linear
	for i, d := range dims {
		st.ShrinkTo(d.W, d.H)
		// Every scale's stats must stay alive for the lifetime of the
		// Reference (Compare reads scales[i] on every call), so each gets
		// its own arena here rather than sharing one reused buffer.
		scales[i] = buildScaleStats(cur, d.W, d.H, st, newScaleArena(d.W, d.H))
		if i == len(dims)-1 {
			break
		}
		next := dims[i+1]
		cur = downscaleLinearRGB(cur, d.W, d.H, next.W, next.H)
	}

	return &Reference{
		cfg:       cfg,
		width:     ref.width,
		height:    ref.height,
		dims:      dims,
		scales:    scales,
		st:        st,
		distArena: newScaleArena(dims[0].W, dims[0].H),
	}, nil
}

// NumScales returns how many pyramid levels this reference actually
// produced (<= 6), matching precompute.rs's Ssim2Reference::num_scales().
func (r *Reference) NumScales() int { return len(r.scales) }

// Width returns the reference image's width in pixels.
func (r *Reference) Width() int { return r.width }

// Height returns the reference image's height in pixels.
func (r *Reference) Height() int { return r.height }

// Compare scores dist against the precomputed reference. dist must have
// the same dimensions as the reference image.
func (r *Reference) Compare(dist Input) (float64, error) {
	records, err := r.compareRecords(dist)
	if err != nil {
		return 0, err
	}
	return dsp.CombineScales(records), nil
}

// compareRecords runs the distorted half of the pipeline and returns the
// per-scale records, shared by Compare and Breakdown.
func (r *Reference) compareRecords(dist Input) ([]dsp.ScaleRecord, error) {
	if dist.width != r.width || dist.height != r.height {
		return nil, newError(DimensionMismatch, "distorted image dimensions do not match the reference")
	}

	dsp.SetBackend(r.cfg.BlurBackend)

	linear, err := dist.toLinearRGB()
	if err != nil {
		return nil, wrapError(ConversionFailed, "distorted image", err)
	}

	records := make([]dsp.ScaleRecord, 0, len(r.dims))
	cur := linear
	for i, d := range r.dims {
		r.st.ShrinkTo(d.W, d.H)
		distStats := buildScaleStats(cur, d.W, d.H, r.st, r.distArena)
		records = append(records, compareScale(r.scales[i], distStats, r.st, i))

		if i == len(r.dims)-1 {
			break
		}
		next := r.dims[i+1]
		cur = downscaleLinearRGB(cur, d.W, d.H, next.W, next.H)
	}
	return records, nil
}
