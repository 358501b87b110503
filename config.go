package ssimulacra2

import (
	"fmt"

	"github.com/imazen/ssimulacra2/internal/dsp"
)

// Config selects which backend implementation each pipeline stage uses.
// The zero value is valid and selects the scalar backend for every stage;
// DefaultConfig selects the portable-SIMD blur.
type Config struct {
	BlurBackend   dsp.Backend
	XYBBackend    dsp.Backend
	ReduceBackend dsp.Backend
}

// DefaultConfig picks the portable-SIMD backend for blur (the stage that
// dominates runtime), per spec §6's "the default SHOULD be the
// portable-SIMD backend," and the scalar backend elsewhere.
func DefaultConfig() Config {
	return Config{
		BlurBackend:   dsp.BackendSIMD,
		XYBBackend:    dsp.BackendScalar,
		ReduceBackend: dsp.BackendScalar,
	}
}

func (c Config) validate() error {
	for _, b := range []dsp.Backend{c.BlurBackend, c.XYBBackend, c.ReduceBackend} {
		switch b {
		case dsp.BackendScalar, dsp.BackendSIMD, dsp.BackendIntrinsics:
		default:
			return newError(UnsupportedFormat, fmt.Sprintf("unknown backend %d", int(b)))
		}
	}
	return nil
}
