package scene

import (
	"fmt"
	"math"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/foldfield"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/layout"
	"github.com/ivlev/drapery/internal/product"
)

// DrapeSwayDepth converts sway into the forward offset of drape panels.
const DrapeSwayDepth = 0.2

var (
	rodZ     = geometry.Euler{Z: math.Pi / 2}
	ringTilt = geometry.Euler{X: math.Pi / 2}
)

// builder composes one product model for the current tick.
type builder struct {
	p      config.Product
	style  product.Style
	scale  product.SceneScale
	open   float64
	sway   *animation.Sway
	field  *foldfield.Field
	fabric product.Material
	weave  **geometry.Grid
}

func (b builder) build() *Node {
	switch s := b.style.(type) {
	case product.CurtainStyle:
		return b.curtain()
	case product.DrapeStyle:
		return b.drape(s)
	case product.BlindStyle:
		return b.blind(s)
	case product.ShadeStyle:
		return b.shade(s)
	}
	return b.curtain()
}

func (b builder) grid() *geometry.Grid {
	if b.field == nil {
		return geometry.NewPlane(1, 1)
	}
	return b.field.Grid()
}

func (b builder) curtain() *Node {
	s := b.scale
	drop := b.p.Dimensions.Sanitize().DropUnits()
	total := s.Height + drop
	rodY := s.Height/2 + 0.08
	rodLen := s.Width + 0.4

	g := Group("curtain", geometry.Vec3{})
	g.Add(Cylinder("rod", 0.018, 0.018, rodLen, geometry.V3(0, rodY, 0.05), rodZ, product.Metal("#c8c8c8", 0.75, 0.2)))
	for _, side := range []float64{-1, 1} {
		g.Add(Group("rod-end", geometry.V3(side*rodLen/2, rodY, 0.05),
			Box("bracket", geometry.V3(0.04, 0.05, 0.04), geometry.V3(0, 0, -0.03), product.Metal("#a8a8a8", 0.6, 0.3)),
			Cylinder("finial", 0.022, 0.018, 0.05, geometry.V3(side*0.03, 0, 0), rodZ, product.Metal("#b8b8b8", 0.7, 0.25)),
		))
	}

	if rings := int(math.Floor(s.Width * 6)); rings > 0 {
		spacing := s.Width / float64(rings)
		ring := product.Metal("#d0d0d0", 0.85, 0.15)
		for i := 0; i < rings; i++ {
			x := -s.Width/2 + float64(i)*spacing + spacing/2
			g.Add(Torus("ring", 0.01, 0.003, geometry.V3(x, s.Height/2+0.1, 0.05), ringTilt, ring))
		}
	}

	minBunch := product.ParamsFor(b.style).MinBunchRatio
	for _, pn := range layout.Panels(s.Width, b.p.PanelCount, minBunch, b.open) {
		n := Mesh("panel", b.grid(), geometry.V3(pn.OffsetX, -drop/2, 0.05+pn.ZStagger), pn.Width, total, b.fabric)
		n.Transform.Rotation.Y = b.sway.Value() * pn.SwaySign()
		g.Add(n)
	}

	glass := product.Glass
	glass.Color = product.ParseColor("#dce8f5")
	glass.Opacity = 0.5
	g.Add(windowFrame(s.Width, s.Height, -0.05, 0.06, product.Painted("#f8f8f8", 0.5), glass))

	if b.p.ShowMeasurements {
		g.Add(b.measurements(0.12)...)
	}
	return g
}

func (b builder) drape(style product.DrapeStyle) *Node {
	s := b.scale
	total := s.Height + b.p.Dimensions.Sanitize().DropUnits()
	rodY := total/2 + 0.15
	rodLen := s.Width + 0.6
	finish := product.RodFinish(style)
	ornate := style == product.Classic || style == product.Luxury

	g := Group("drape", geometry.V3(0, -0.1, 0))
	g.Add(Cylinder("rod", 0.03, 0.03, rodLen, geometry.V3(0, rodY, 0.1), rodZ, finish))
	for _, side := range []float64{-1, 1} {
		end := Group("rod-end", geometry.V3(side*rodLen/2, rodY, 0.1))
		if ornate {
			end.Add(Sphere("finial", 0.06, geometry.Vec3{}, finish))
			end.Add(Cylinder("finial-tip", 0.01, 0.04, 0.1, geometry.V3(side*0.06, 0, 0), rodZ, finish))
		} else {
			end.Add(Cylinder("finial", 0.04, 0.04, 0.08, geometry.Vec3{}, rodZ, finish))
		}
		g.Add(end)
	}

	minBunch := product.ParamsFor(style).MinBunchRatio
	for _, pn := range layout.Panels(s.Width, 2, minBunch, b.open) {
		z := 0.1 + pn.ZStagger + b.sway.Value()*pn.SwaySign()*DrapeSwayDepth
		g.Add(Mesh("panel", b.grid(), geometry.V3(pn.OffsetX, 0, z), pn.Width, total, b.fabric))
	}

	g.Add(windowFrame(s.Width, total, -0.1, 0.05, product.Painted("#ffffff", 0.4), product.Glass))

	if b.p.ShowMeasurements {
		d := b.p.Dimensions.Sanitize()
		text := fmt.Sprintf("%d cm x %d cm", int(math.Round(d.Width)), int(math.Round(d.Height)))
		g.Add(Label("measurement", text, 0.15, geometry.V3(0, total/2+0.4, 0)))
	}
	return g
}

// windowFrame is the frame and pane behind a product, centred at depth z.
func windowFrame(width, height, z, depth float64, frame, glass product.Material) *Node {
	return Group("window", geometry.V3(0, 0, z),
		Box("frame", geometry.V3(width+0.15, height+0.15, depth), geometry.Vec3{}, frame),
		Plane("glass", width, height, geometry.V3(0, 0, depth/2+0.005), glass),
	)
}

// measurements labels the width above the product and the height beside it.
func (b builder) measurements(fontSize float64) []*Node {
	d := b.p.Dimensions.Sanitize()
	s := b.scale
	width := Label("measurement", fmt.Sprintf("%d cm", int(math.Round(d.Width))), fontSize, geometry.V3(0, s.Height/2+0.3, 0))
	height := Label("measurement", fmt.Sprintf("%d cm", int(math.Round(d.Height))), fontSize, geometry.V3(s.Width/2+0.3, 0, 0))
	height.Transform.Rotation.Z = -math.Pi / 2
	return []*Node{width, height}
}
