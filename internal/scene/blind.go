package scene

import (
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/layout"
	"github.com/ivlev/drapery/internal/product"
)

func (b builder) blind(style product.BlindStyle) *Node {
	s := b.scale
	g := Group("blind", geometry.Vec3{})

	if style == product.Vertical {
		g.Add(Box("headrail", geometry.V3(s.Width+0.2, 0.08, 0.12), geometry.V3(0, s.Height/2+0.06, 0.05), product.Metal("#eeeeee", 0.8, 0.2)))
	} else {
		g.Add(Box("headrail", geometry.V3(s.Width+0.1, 0.1, 0.12), geometry.V3(0, s.Height/2+0.05, 0.05), product.Metal("#f5f5f5", 0.4, 0.4)))
	}

	switch style {
	case product.Roller:
		d := layout.RollerDrop(s, b.open)
		g.Add(Mesh("fabric", b.grid(), geometry.V3(0, d.CenterY, 0.06), s.Width-0.02, d.Height, b.fabric))
		roll := b.fabric
		roll.Opacity, roll.Transmission = 1, 0
		g.Add(Cylinder("roll", d.RollRadius, d.RollRadius, s.Width-0.04, geometry.V3(0, s.Height/2+0.05, 0.06), rodZ, roll))
		g.Add(Box("bottom-bar", geometry.V3(s.Width, 0.03, 0.03), geometry.V3(0, d.BottomY, 0.06), product.Metal("#dddddd", 0.5, 0.3)))

	case product.Venetian:
		rail := product.Metal("#dddddd", 0.5, 0.3)
		for _, sl := range layout.VenetianSlats(s, b.open) {
			n := Box("slat", sl.Size, sl.Position, b.fabric)
			n.Transform.Rotation = sl.Rotation
			if sl.Rail {
				n.Name, n.Material = "bottom-rail", rail
			} else {
				n.Transform.Rotation.X += b.sway.Value()
			}
			g.Add(n)
		}

	case product.Vertical:
		hanger := product.Metal("#999999", 0.8, 0.5)
		for _, sl := range layout.VerticalSlats(s, b.open) {
			slat := Box("slat", sl.Size, geometry.Vec3{}, b.fabric)
			slat.Transform.Rotation = sl.Rotation
			slat.Transform.Rotation.Y += b.sway.Value()
			g.Add(Group("slat-group", sl.Position,
				Box("hanger", geometry.V3(0.01, 0.04, 0.02), geometry.V3(0, s.Height/2+0.03, 0), hanger),
				slat,
			))
		}

	case product.Roman:
		for _, sec := range layout.RomanSectionLayout(s, b.open) {
			g.Add(Mesh("section", b.grid(), geometry.V3(0, sec.CenterY, sec.Z), s.Width, sec.Height, b.fabric))
		}
	}

	g.Add(windowFrame(s.Width, s.Height, -0.1, 0.05, product.Painted("#ffffff", 0.4), product.Glass))
	if b.p.ShowMeasurements {
		g.Add(b.measurements(0.15)...)
	}
	return g
}
