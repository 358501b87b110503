package ssimulacra2

import "math"

// Input is a reference or distorted image in one of six pixel layouts
// (spec §4.1). Construct one with the New* functions; the zero value is
// not valid.
//
// Every variant converts to an interleaved linear-RGB float32 buffer (the
// sole input to the pyramid's first scale). The 8-bit variants go through
// a 256-entry sRGB transfer-function LUT, matching the teacher's
// precompute-once-apply-per-pixel LUT style (sharpyuv/gamma.go); the
// 16-bit and sRGB-encoded float variants evaluate the transfer function
// per sample, and the linear float variant is copied unchanged.
type Input struct {
	kind          inputKind
	width, height int
	pix8          []uint8
	pix16         []uint16
	pixF          []float32
}

type inputKind int

const (
	kindRGB8 inputKind = iota
	kindRGB16
	kindRGBF
	kindGray8
	kindGrayF
	kindLinearRGBF
)

// Width returns the image width in pixels.
func (in Input) Width() int { return in.width }

// Height returns the image height in pixels.
func (in Input) Height() int { return in.height }

func validateDims(width, height int) error {
	if width <= 0 || height <= 0 {
		return newError(InvalidDimensions, "width and height must be positive")
	}
	return nil
}

// NewRGB8 wraps an interleaved 8-bit sRGB rgb buffer (length width*height*3).
func NewRGB8(pix []uint8, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height*3 {
		return Input{}, newError(InvalidDimensions, "rgb8 buffer length does not match width*height*3")
	}
	return Input{kind: kindRGB8, width: width, height: height, pix8: pix}, nil
}

// NewRGB16 wraps an interleaved 16-bit sRGB rgb buffer (length width*height*3).
func NewRGB16(pix []uint16, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height*3 {
		return Input{}, newError(InvalidDimensions, "rgb16 buffer length does not match width*height*3")
	}
	return Input{kind: kindRGB16, width: width, height: height, pix16: pix}, nil
}

// NewRGBF wraps an interleaved float32 sRGB-encoded rgb buffer, values
// nominally in [0,1] (length width*height*3).
func NewRGBF(pix []float32, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height*3 {
		return Input{}, newError(InvalidDimensions, "rgbF buffer length does not match width*height*3")
	}
	return Input{kind: kindRGBF, width: width, height: height, pixF: pix}, nil
}

// NewGray8 wraps an 8-bit sRGB grayscale buffer (length width*height),
// replicated across R, G and B during conversion.
func NewGray8(pix []uint8, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height {
		return Input{}, newError(InvalidDimensions, "gray8 buffer length does not match width*height")
	}
	return Input{kind: kindGray8, width: width, height: height, pix8: pix}, nil
}

// NewGrayF wraps a float32 sRGB-encoded grayscale buffer (length width*height).
func NewGrayF(pix []float32, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height {
		return Input{}, newError(InvalidDimensions, "grayF buffer length does not match width*height")
	}
	return Input{kind: kindGrayF, width: width, height: height, pixF: pix}, nil
}

// NewLinearRGBF wraps an interleaved float32 buffer already in linear RGB
// (length width*height*3); no transfer-function conversion is applied.
func NewLinearRGBF(pix []float32, width, height int) (Input, error) {
	if err := validateDims(width, height); err != nil {
		return Input{}, err
	}
	if len(pix) != width*height*3 {
		return Input{}, newError(InvalidDimensions, "linearRgbF buffer length does not match width*height*3")
	}
	return Input{kind: kindLinearRGBF, width: width, height: height, pixF: pix}, nil
}

// srgbLUT8 maps an 8-bit sRGB sample directly to its linear equivalent,
// built once at package init (spec §4.1's mandatory 256-entry LUT).
var srgbLUT8 [256]float32

func init() {
	for i := range srgbLUT8 {
		srgbLUT8[i] = float32(srgbToLinear(float64(i) / 255.0))
	}
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// toLinearRGB produces an interleaved linear-RGB float32 buffer
// (width*height*3) regardless of the input's original variant.
func (in Input) toLinearRGB() ([]float32, error) {
	n := in.width * in.height
	dst := make([]float32, n*3)

	switch in.kind {
	case kindRGB8:
		for i := 0; i < n; i++ {
			dst[3*i+0] = srgbLUT8[in.pix8[3*i+0]]
			dst[3*i+1] = srgbLUT8[in.pix8[3*i+1]]
			dst[3*i+2] = srgbLUT8[in.pix8[3*i+2]]
		}
	case kindRGB16:
		for i := 0; i < n; i++ {
			dst[3*i+0] = float32(srgbToLinear(float64(in.pix16[3*i+0]) / 65535.0))
			dst[3*i+1] = float32(srgbToLinear(float64(in.pix16[3*i+1]) / 65535.0))
			dst[3*i+2] = float32(srgbToLinear(float64(in.pix16[3*i+2]) / 65535.0))
		}
	case kindRGBF:
		for i := 0; i < n; i++ {
			dst[3*i+0] = float32(srgbToLinear(float64(in.pixF[3*i+0])))
			dst[3*i+1] = float32(srgbToLinear(float64(in.pixF[3*i+1])))
			dst[3*i+2] = float32(srgbToLinear(float64(in.pixF[3*i+2])))
		}
	case kindGray8:
		for i := 0; i < n; i++ {
			v := srgbLUT8[in.pix8[i]]
			dst[3*i+0], dst[3*i+1], dst[3*i+2] = v, v, v
		}
	case kindGrayF:
		for i := 0; i < n; i++ {
			v := float32(srgbToLinear(float64(in.pixF[i])))
			dst[3*i+0], dst[3*i+1], dst[3*i+2] = v, v, v
		}
	case kindLinearRGBF:
		copy(dst, in.pixF)
	default:
		return nil, newError(UnsupportedFormat, "unrecognized input variant")
	}
	return dst, nil
}
