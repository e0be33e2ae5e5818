// Package renderer rasterizes scene trees into RGBA frames for the offline
// preview: a pinhole projection, painter's ordering and flat shading drawn
// with gogpu/gg, plus labels and captions drawn with x/image fonts.
package renderer

import (
	"fmt"
	"image"
	"sort"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/scene"
)

// Frame is what one output frame shows.
type Frame struct {
	Root    *scene.Node // nil draws the background only
	Caption string
}

// Stats counts what a render drew.
type Stats struct {
	Faces  int
	Culled int
	Labels int
}

func (s *Stats) Add(o Stats) {
	s.Faces += o.Faces
	s.Culled += o.Culled
	s.Labels += o.Labels
}

// Renderer draws frames of a fixed size. Render is safe for concurrent use
// once configured.
type Renderer struct {
	Camera     Camera
	Light      geometry.Vec3 // direction towards the light
	Ambient    float64
	Background gg.RGBA
	MeshStep   int // grid cells merged per drawn quad along each axis

	backdrop *image.RGBA
}

func New(width, height int) *Renderer {
	return &Renderer{
		Camera:     DefaultCamera(width, height),
		Light:      geometry.V3(0.4, 0.7, 1).Normalize(),
		Ambient:    0.45,
		Background: gg.Hex("#1c1c24"),
		MeshStep:   1,
	}
}

// SetBackdrop scales img to cover the frame, cropping the overflow. A nil
// image removes the backdrop.
func (r *Renderer) SetBackdrop(img image.Image) {
	if img == nil {
		r.backdrop = nil
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Camera.Width, r.Camera.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds(), dst.Bounds()), xdraw.Src, nil)
	r.backdrop = dst
}

// Backdrop is the scaled backdrop, or nil.
func (r *Renderer) Backdrop() *image.RGBA { return r.backdrop }

// coverRect is the centered part of src with the aspect ratio of dst.
func coverRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw*dh > sh*dw {
		w := sh * dw / dh
		x := src.Min.X + (sw-w)/2
		return image.Rect(x, src.Min.Y, x+w, src.Max.Y)
	}
	h := sw * dh / dw
	y := src.Min.Y + (sh-h)/2
	return image.Rect(src.Min.X, y, src.Max.X, y+h)
}

// Render draws f into a new image.
func (r *Renderer) Render(f Frame) (*image.RGBA, Stats, error) {
	dst := image.NewRGBA(image.Rect(0, 0, r.Camera.Width, r.Camera.Height))
	st, err := r.RenderInto(dst, f)
	return dst, st, err
}

// RenderInto draws f over the whole of dst, which must have the camera's
// size.
func (r *Renderer) RenderInto(dst *image.RGBA, f Frame) (Stats, error) {
	if dst.Bounds().Dx() != r.Camera.Width || dst.Bounds().Dy() != r.Camera.Height {
		return Stats{}, fmt.Errorf("frame %v does not match camera %dx%d", dst.Bounds(), r.Camera.Width, r.Camera.Height)
	}

	t := &tessellator{cam: r.Camera, light: r.Light.Normalize(), ambient: r.Ambient, meshStep: r.MeshStep}
	if f.Root != nil {
		t.walk(f.Root)
	}
	// far to near
	sort.SliceStable(t.faces, func(i, j int) bool { return t.faces[i].depth > t.faces[j].depth })

	var dc *gg.Context
	if r.backdrop != nil {
		dc = gg.NewContextForImage(r.backdrop)
	} else {
		dc = gg.NewContext(r.Camera.Width, r.Camera.Height)
		dc.ClearWithColor(r.Background)
	}
	defer dc.Close()

	for _, fc := range t.faces {
		dc.SetRGBA(fc.color.R, fc.color.G, fc.color.B, fc.color.A)
		dc.MoveTo(fc.pts[0].X, fc.pts[0].Y)
		for _, p := range fc.pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return Stats{}, fmt.Errorf("fill face: %w", err)
		}
	}

	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok && len(rgba.Pix) == len(dst.Pix) {
		copy(dst.Pix, rgba.Pix)
	} else {
		xdraw.Draw(dst, dst.Bounds(), img, image.Point{}, xdraw.Src)
	}

	for _, l := range t.labels {
		drawText(dst, l.text, l.at.X, l.at.Y, l.height, l.color.Color())
	}
	if f.Caption != "" {
		drawCaption(dst, f.Caption)
	}

	st := Stats{Faces: len(t.faces), Culled: t.culled, Labels: len(t.labels)}
	logging.Logger().Debug("frame rendered", "faces", st.Faces, "culled", st.Culled, "labels", st.Labels)
	return st, nil
}
