package render

import (
	"image"
	"image/color"

	"github.com/Ashboy64/disease-spread/internal/core"
)

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last color.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image paints cells into a new RGBA image, each cell a scale x scale block.
func Image(size core.Size, cells []uint8, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	if scale == 1 {
		FillPaletteRGBA(img.Pix, cells, palette)
		return img
	}

	row := make([]byte, size.W*4)
	for y := 0; y < size.H; y++ {
		FillPaletteRGBA(row, cells[y*size.W:(y+1)*size.W], palette)
		for sy := 0; sy < scale; sy++ {
			off := img.PixOffset(0, y*scale+sy)
			for x := 0; x < size.W; x++ {
				px := row[x*4 : x*4+4]
				for sx := 0; sx < scale; sx++ {
					copy(img.Pix[off+(x*scale+sx)*4:], px)
				}
			}
		}
	}
	return img
}

// Ramp returns n colors blending from lo to hi.
func Ramp(lo, hi color.RGBA, n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = color.RGBA{
			R: lerp(lo.R, hi.R, t),
			G: lerp(lo.G, hi.G, t),
			B: lerp(lo.B, hi.B, t),
			A: lerp(lo.A, hi.A, t),
		}
	}
	return out
}

// Quantize maps values in [0, ceiling] onto levels buckets. Values outside the
// range are clamped.
func Quantize(values []float64, ceiling float64, levels int) []uint8 {
	out := make([]uint8, len(values))
	if ceiling <= 0 || levels <= 1 {
		return out
	}
	top := levels - 1
	for i, v := range values {
		idx := int(v / ceiling * float64(top))
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		out[i] = uint8(idx)
	}
	return out
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
