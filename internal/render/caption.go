package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CaptionHeight is the pixel height of one caption line.
const CaptionHeight = 16

// Caption writes text onto a dark band across the top of img.
func Caption(img *image.RGBA, text string) {
	band := image.Rect(0, 0, img.Bounds().Dx(), CaptionHeight).Intersect(img.Bounds())
	draw.Draw(img, band, image.NewUniform(color.RGBA{R: 16, G: 16, B: 20, A: 220}), image.Point{}, draw.Over)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 12),
	}
	d.DrawString(text)
}

// TextWidth reports the rendered width of text in pixels.
func TextWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
