// Package ssimulacra2 computes a perceptual image quality score between a
// reference and a distorted image of identical dimensions: a single
// float64 no greater than 100, where 100 means the images are
// indistinguishable and lower values indicate progressively more visible
// distortion.
//
// The metric builds a multiscale pyramid (up to six scales): each scale
// converts its input to the XYB color space, runs a recursive-Gaussian
// blur to estimate local means and variances, and reduces those to an
// SSIM-like structural term plus an edge-detail term. The per-scale
// results are combined into the final score.
//
// Score is the simplest entry point. For repeated comparisons against the
// same reference image, build a Reference once with NewReference and call
// its Compare method, which does roughly half the work of an independent
// Score call per comparison.
package ssimulacra2
