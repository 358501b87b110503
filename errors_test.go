package ssimulacra2

import (
	"errors"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := wrapError(ConversionFailed, "context", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestKindStringsAreDistinct(t *testing.T) {
	kinds := []Kind{InvalidDimensions, TooSmall, DimensionMismatch, UnsupportedFormat, ConversionFailed}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
