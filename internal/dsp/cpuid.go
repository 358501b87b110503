package dsp

import "github.com/klauspost/cpuid/v2"

// portableLaneWidth is the SIMD group width used by BackendSIMD: it does
// not depend on the running CPU, only on what a "portable" SIMD register
// is generally assumed to hold for float32 (spec §4.5 names W in {4,8,16}).
const portableLaneWidth = 4

// intrinsicsLaneWidth picks the widest lane group the detected CPU
// supports, mirroring the teacher's cpuid_amd64.go probe-then-dispatch
// pattern but backed by github.com/klauspost/cpuid/v2 instead of an inline
// CPUID asm stub (no assembler is available in this environment, and the
// library gives the same answer across amd64 and arm64 uniformly).
func intrinsicsLaneWidth() int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return 16
	case cpuid.CPU.Supports(cpuid.AVX2):
		return 8
	case cpuid.CPU.Supports(cpuid.SSE2), cpuid.CPU.Supports(cpuid.ASIMD):
		return 4
	default:
		return portableLaneWidth
	}
}

// HasAVX2 reports whether the running CPU supports AVX2, for callers that
// want to explain the backend choice without re-deriving it.
func HasAVX2() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}

// HasNEON reports whether the running CPU supports ARM NEON (ASIMD).
func HasNEON() bool {
	return cpuid.CPU.Supports(cpuid.ASIMD)
}
