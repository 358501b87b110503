package ssimulacra2

import (
	"github.com/imazen/ssimulacra2/internal/dsp"
	"gonum.org/v1/gonum/stat"
)

// Breakdown is a per-scale diagnostic summary: it never exposes a pixel
// map (only the per-channel scalar aggregates CombineScales already
// consumes, plus ChannelWeights-weighted convenience scalars), so it
// does not reintroduce the intermediate-map surface the metric otherwise
// keeps entirely internal.
type Breakdown struct {
	Scales       []dsp.ScaleRecord
	Score        float64
	MeanSSIM     float64
	StdDevSSIM   float64
	MeanEdgeDiff float64
}

// Breakdown scores dist against the reference and additionally reports
// the per-scale records plus cross-scale summary statistics, computed
// with gonum/stat rather than hand-rolled mean/variance loops.
func (r *Reference) Breakdown(dist Input) (Breakdown, error) {
	records, err := r.compareRecords(dist)
	if err != nil {
		return Breakdown{}, err
	}

	ssimMeans := make([]float64, len(records))
	edgeMeans := make([]float64, len(records))
	for i, rec := range records {
		ssimMeans[i] = rec.SSIMMeanAvg
		edgeMeans[i] = rec.EdgeMeanAvg
	}

	meanSSIM := stat.Mean(ssimMeans, nil)
	var stdDev float64
	if len(ssimMeans) > 1 {
		stdDev = stat.StdDev(ssimMeans, nil)
	}
	meanEdge := stat.Mean(edgeMeans, nil)

	return Breakdown{
		Scales:       records,
		Score:        dsp.CombineScales(records),
		MeanSSIM:     meanSSIM,
		StdDevSSIM:   stdDev,
		MeanEdgeDiff: meanEdge,
	}, nil
}
