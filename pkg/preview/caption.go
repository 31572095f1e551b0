package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionPadding = 4

// drawCaption writes text into the top left corner on a dimmed band
func drawCaption(img *image.RGBA, text string, col color.RGBA) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil() + captionPadding*2
	height := metrics.Height.Ceil() + captionPadding*2

	band := image.Rect(0, 0, width, height).Intersect(img.Bounds())
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A})
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(captionPadding), Y: fixed.I(captionPadding) + metrics.Ascent},
	}
	d.DrawString(text)
}
