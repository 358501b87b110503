// Package imageio bridges decoded image.Image values (from files, HTTP
// uploads, or in-memory buffers) to ssimulacra2.Input, and is shared by
// the ssimulacra2 and ssimulacra2-server commands so neither has to
// re-implement format detection or pixel flattening.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/imazen/ssimulacra2"
)

// Load decodes the file at path. WebP is handled by nativewebp directly;
// every other extension goes through imaging.Open, which covers JPEG,
// PNG, GIF, BMP and TIFF and applies EXIF orientation correction.
func Load(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		return nativewebp.Decode(f)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// Decode decodes r, using filename's extension to choose between
// nativewebp and imaging's decoder the same way Load does.
func Decode(r io.Reader, filename string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(filename), ".webp") {
		return nativewebp.Decode(r)
	}
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// ToInput flattens any image.Image into an interleaved 8-bit sRGB RGB8
// Input, dropping alpha: SSIMULACRA2 scores color difference, not
// compositing.
func ToInput(img image.Image) (ssimulacra2.Input, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		rgba = dst
	}

	pix := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		srcOff := rgba.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			si := srcOff + x*4
			di := (y*w + x) * 3
			pix[di+0] = rgba.Pix[si+0]
			pix[di+1] = rgba.Pix[si+1]
			pix[di+2] = rgba.Pix[si+2]
		}
	}
	return ssimulacra2.NewRGB8(pix, w, h)
}

// ResizeToMatch scales img to exactly (width, height) using high-quality
// CatmullRom interpolation, for comparing images of differing resolution
// (the metric itself requires identical dimensions).
func ResizeToMatch(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
