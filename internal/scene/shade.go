package scene

import (
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/layout"
	"github.com/ivlev/drapery/internal/product"
)

// HoneycombCellDepth is the distance between the two pleated layers of a
// cellular shade.
const HoneycombCellDepth = 0.04

func (b builder) shade(style product.ShadeStyle) *Node {
	s := b.scale
	d := layout.ShadeDrop(style, s, b.open)
	g := Group("shade", geometry.Vec3{})
	g.Add(Box("headrail", geometry.V3(s.Width+0.1, 0.1, 0.12), geometry.V3(0, s.Height/2+0.05, 0.05), product.Painted("#eeeeee", 0.2)))

	center := geometry.V3(0, d.CenterY, 0.05)
	switch style {
	case product.Pleated:
		g.Add(Mesh("fabric", b.grid(), center, s.Width, d.Height, b.fabric))

	case product.Honeycomb:
		g.Add(Group("cells", center,
			Mesh("fabric", b.grid(), geometry.V3(0, 0, HoneycombCellDepth/2), s.Width, d.Height, b.fabric),
			Mesh("fabric", b.grid(), geometry.V3(0, 0, -HoneycombCellDepth/2), s.Width, d.Height, b.fabric),
		))

	case product.Solar:
		g.Add(Mesh("fabric", b.grid(), center, s.Width, d.Height, b.fabric))
		roll := b.fabric
		roll.Opacity, roll.Transmission = 1, 0
		g.Add(Cylinder("roll", d.RollRadius, d.RollRadius, s.Width-0.02, geometry.V3(0, s.Height/2+0.05, 0.05), rodZ, roll))

	case product.Bamboo:
		g.Add(Mesh("fabric", b.weaveGrid(d.Rows), center, s.Width, d.Height, b.fabric))
		g.Add(Cylinder("roll", d.RollRadius, d.RollRadius, s.Width+0.02, geometry.V3(0, d.BottomY, 0.06), rodZ, product.Painted(b.p.Color, 0.9)))
	}

	if rail, ok := layout.ShadeRail(style, d); ok {
		g.Add(Box("bottom-rail", geometry.V3(s.Width, 0.04, 0.08), geometry.V3(0, rail.Y, 0.05), product.Painted(rail.Color, 0.3)))
	}

	g.Add(windowFrame(s.Width, s.Height, -0.1, 0.05, product.Painted("#ffffff", 0.4), product.Glass))
	if b.p.ShowMeasurements {
		g.Add(b.measurements(0.15)...)
	}
	return g
}

// weaveGrid returns the bamboo plane with one row per slat, reusing the
// previous grid while the row count is unchanged.
func (b builder) weaveGrid(rows int) *geometry.Grid {
	if w := *b.weave; w != nil && w.Rows == max(rows, 1) {
		return w
	}
	*b.weave = geometry.NewPlane(1, rows)
	return *b.weave
}
