package dsp

// DownscaleBy2 box-averages an interleaved linear-RGB image (rgb triples,
// row-major) by 2x, producing a (ceil(w/2), ceil(h/2)) image. Spec §4.2:
// each output pixel is the mean of up to four input pixels, but the
// divisor is always 4, even when the 2x2 source block is clipped at the
// right/bottom edge — pixels outside the image contribute zero rather than
// being excluded from the average. This matches the widely deployed
// reference behavior (spec §9 Open Questions) rather than a live-pixel-count
// average, and deliberately produces darker edge pixels for odd dimensions.
func DownscaleBy2(dst, src []float32, srcW, srcH int) (dstW, dstH int) {
	dstW = (srcW + 1) / 2
	dstH = (srcH + 1) / 2

	for oy := 0; oy < dstH; oy++ {
		y0 := oy * 2
		y1 := y0 + 1
		for ox := 0; ox < dstW; ox++ {
			x0 := ox * 2
			x1 := x0 + 1

			var sum [3]float32
			if x0 < srcW && y0 < srcH {
				addPixel(&sum, src, srcW, x0, y0)
			}
			if x1 < srcW && y0 < srcH {
				addPixel(&sum, src, srcW, x1, y0)
			}
			if x0 < srcW && y1 < srcH {
				addPixel(&sum, src, srcW, x0, y1)
			}
			if x1 < srcW && y1 < srcH {
				addPixel(&sum, src, srcW, x1, y1)
			}

			di := (oy*dstW + ox) * 3
			dst[di+0] = sum[0] * 0.25
			dst[di+1] = sum[1] * 0.25
			dst[di+2] = sum[2] * 0.25
		}
	}
	return dstW, dstH
}

func addPixel(sum *[3]float32, src []float32, srcW, x, y int) {
	si := (y*srcW + x) * 3
	sum[0] += src[si+0]
	sum[1] += src[si+1]
	sum[2] += src[si+2]
}
