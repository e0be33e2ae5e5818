package renderer

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// minLabelHeight keeps far labels readable.
const minLabelHeight = 9.0

var outline = []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1}, {-1, 1}, {1, -1}}

// drawText renders text with a dark outline into dst, centered on (cx, cy)
// and scaled to the given pixel height.
func drawText(dst *image.RGBA, text string, cx, cy, height float64, c color.Color) {
	face := basicfont.Face7x13
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := m.Height.Ceil()
	if w == 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w+2, h+2))
	d := &font.Drawer{Dst: glyphs, Face: face, Src: image.NewUniform(color.RGBA{A: 200})}
	baseline := 1 + m.Ascent.Ceil()
	for _, o := range outline {
		d.Dot = fixed.P(1+o.X, baseline+o.Y)
		d.DrawString(text)
	}
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(1, baseline)
	d.DrawString(text)

	if height < minLabelHeight {
		height = minLabelHeight
	}
	k := height / float64(h)
	sw, sh := float64(glyphs.Bounds().Dx())*k, float64(glyphs.Bounds().Dy())*k
	r := image.Rect(int(cx-sw/2), int(cy-sh/2), int(cx+sw/2), int(cy+sh/2))
	xdraw.ApproxBiLinear.Scale(dst, r, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// drawCaption puts a caption line centered near the bottom of the frame.
func drawCaption(dst *image.RGBA, text string) {
	b := dst.Bounds()
	height := float64(b.Dy()) / 18
	drawText(dst, text, float64(b.Dx())/2, float64(b.Dy())-height*1.5, height, color.White)
}
