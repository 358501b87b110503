// Package testutil builds small, deterministic synthetic images for use
// across this module's tests: gradients, checkerboards and uniform-shift
// pairs that exercise the metric's documented properties (identical
// images score 100, uniform color shifts degrade smoothly, and so on)
// without depending on decoding a real image file.
package testutil

import "github.com/valyala/fastrand"

// Gradient returns an interleaved 8-bit RGB buffer where each channel
// ramps linearly across the image, useful for exercising the downscale
// and blur passes against a smooth, non-constant signal.
func Gradient(width, height int) []uint8 {
	pix := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			pix[i+0] = uint8(x * 255 / maxInt(width-1, 1))
			pix[i+1] = uint8(y * 255 / maxInt(height-1, 1))
			pix[i+2] = uint8((x + y) * 255 / maxInt(width+height-2, 1))
		}
	}
	return pix
}

// HorizontalGradient returns an interleaved 8-bit RGB buffer that ramps
// linearly across width only, every row identical: the plain
// "horizontal gradient" synthetic scenario spec §8 calls for, as opposed
// to Gradient's two-axis ramp.
func HorizontalGradient(width, height int) []uint8 {
	pix := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / maxInt(width-1, 1))
			i := (y*width + x) * 3
			pix[i+0], pix[i+1], pix[i+2] = v, v, v
		}
	}
	return pix
}

// Checkerboard returns an interleaved 8-bit RGB buffer alternating between
// two flat colors in blockSize x blockSize squares, a sharp-edge stress
// test for the recursive-Gaussian blur's boundary handling.
func Checkerboard(width, height, blockSize int, a, b [3]uint8) []uint8 {
	pix := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			even := ((x/blockSize)+(y/blockSize))%2 == 0
			c := b
			if even {
				c = a
			}
			pix[i+0], pix[i+1], pix[i+2] = c[0], c[1], c[2]
		}
	}
	return pix
}

// Uniform returns an interleaved 8-bit RGB buffer of a single flat color,
// the baseline for constant-plane invariants.
func Uniform(width, height int, c [3]uint8) []uint8 {
	pix := make([]uint8, width*height*3)
	for i := 0; i < width*height; i++ {
		pix[3*i+0], pix[3*i+1], pix[3*i+2] = c[0], c[1], c[2]
	}
	return pix
}

// Noise returns an interleaved 8-bit RGB buffer of pseudo-random values.
// The generator is seeded with a fixed value, so repeated calls with the
// same dimensions reproduce the same image.
func Noise(width, height int) []uint8 {
	pix := make([]uint8, width*height*3)
	rng := fastrand.RNG{}
	rng.Seed(1)
	for i := range pix {
		pix[i] = uint8(rng.Uint32n(256))
	}
	return pix
}

// Perturb returns a copy of pix with every sample nudged by a pseudo-random
// amount in [-maxDelta, maxDelta], clamped to [0,255]: a cheap stand-in for
// lossy-compression-like distortion of a reference image.
func Perturb(pix []uint8, maxDelta int) []uint8 {
	out := make([]uint8, len(pix))
	rng := fastrand.RNG{}
	rng.Seed(1)
	span := uint32(2*maxDelta + 1)
	for i, v := range pix {
		delta := int(rng.Uint32n(span)) - maxDelta
		nv := int(v) + delta
		if nv < 0 {
			nv = 0
		}
		if nv > 255 {
			nv = 255
		}
		out[i] = uint8(nv)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
