package renderer

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
	"github.com/ivlev/drapery/internal/scene"
)

// Segment counts of the curved primitives.
const (
	cylinderSegments = 16
	sphereRings      = 8
	sphereSlices     = 12
	torusSegments    = 24
	torusSides       = 8
	reticleSegments  = 32
)

// face is a projected, shaded polygon.
type face struct {
	pts   []geometry.Vec2
	depth float64
	color gg.RGBA
}

// label is a text anchored at a projected point.
type label struct {
	at     geometry.Vec2
	height float64 // pixels
	text   string
	color  gg.RGBA
}

// tessellator turns a node tree into faces and labels for one frame.
type tessellator struct {
	cam      Camera
	light    geometry.Vec3
	ambient  float64
	meshStep int

	faces  []face
	labels []label
	culled int
}

func (t *tessellator) walk(root *scene.Node) {
	root.Walk(func(n *scene.Node, chain geometry.Chain) {
		switch n.Kind {
		case scene.KindMesh:
			t.mesh(n, chain)
		case scene.KindBox:
			t.box(n, chain)
		case scene.KindCylinder:
			t.cylinder(n, chain)
		case scene.KindSphere:
			t.sphere(n, chain)
		case scene.KindTorus:
			t.torus(n, chain)
		case scene.KindPlane:
			hx, hy := n.Size.X/2, n.Size.Y/2
			t.poly(chain, n.Material, nil,
				geometry.V3(-hx, hy, 0), geometry.V3(hx, hy, 0), geometry.V3(hx, -hy, 0), geometry.V3(-hx, -hy, 0))
		case scene.KindReticle:
			t.ring(n, chain)
		case scene.KindLabel:
			t.label(n, chain)
		}
	})
}

// poly emits one polygon given in node-local coordinates. With a center the
// polygon belongs to a closed convex solid: its normal points away from the
// center and it is culled when facing away. Without one the polygon is
// drawn from both sides.
func (t *tessellator) poly(chain geometry.Chain, m product.Material, center *geometry.Vec3, local ...geometry.Vec3) {
	world := make([]geometry.Vec3, len(local))
	var centroid geometry.Vec3
	for i, p := range local {
		world[i] = chain.Apply(p)
		centroid = centroid.Add(world[i])
	}
	centroid = centroid.Scale(1 / float64(len(world)))

	n := newell(world)
	if n.Len() < 1e-12 {
		t.culled++
		return
	}
	view := t.cam.Position.Sub(centroid).Normalize()
	if center != nil {
		if n.Dot(centroid.Sub(*center)) < 0 {
			n = n.Scale(-1)
		}
		if n.Dot(view) <= 0 {
			t.culled++
			return
		}
	} else if n.Dot(view) < 0 {
		n = n.Scale(-1)
	}

	pts := make([]geometry.Vec2, len(world))
	depth := 0.0
	for i, p := range world {
		s, d, ok := t.cam.Project(p)
		if !ok {
			t.culled++
			return
		}
		pts[i] = s
		depth += d
	}
	t.faces = append(t.faces, face{
		pts:   pts,
		depth: depth / float64(len(pts)),
		color: t.shade(m, n, view),
	})
}

// newell returns the unit normal of a polygon, tolerating repeated points.
func newell(pts []geometry.Vec3) geometry.Vec3 {
	var n geometry.Vec3
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// shade lights a surface with one directional light: ambient plus Lambert
// diffuse, a Blinn highlight for glossy and metallic finishes and a sheen
// rim for soft fabrics.
func (t *tessellator) shade(m product.Material, n, view geometry.Vec3) gg.RGBA {
	diffuse := math.Max(0, n.Dot(t.light))
	k := t.ambient + (1-t.ambient)*diffuse

	h := t.light.Add(view).Normalize()
	gloss := 8 + 56*(1-m.Roughness)
	specular := math.Pow(math.Max(0, n.Dot(h)), gloss) * (0.1 + 0.5*m.Metalness + 0.3*m.Clearcoat) * (1 - 0.7*m.Roughness)
	rim := m.Sheen * 0.15 * (1 - math.Abs(n.Dot(view)))

	c := m.Color
	return gg.RGBA{
		R: clamp01(c.R*k + specular + rim),
		G: clamp01(c.G*k + specular + rim),
		B: clamp01(c.B*k + specular + rim),
		A: clamp01(m.Opacity),
	}
}

func (t *tessellator) mesh(n *scene.Node, chain geometry.Chain) {
	g := n.Grid
	if g == nil {
		return
	}
	step := max(t.meshStep, 1)
	for r := 0; r < g.Rows; r += step {
		r2 := min(r+step, g.Rows)
		for c := 0; c < g.Cols; c += step {
			c2 := min(c+step, g.Cols)
			t.poly(chain, n.Material, nil, g.At(r, c), g.At(r, c2), g.At(r2, c2), g.At(r2, c))
		}
	}
}

func (t *tessellator) box(n *scene.Node, chain geometry.Chain) {
	hx, hy, hz := n.Size.X/2, n.Size.Y/2, n.Size.Z/2
	center := chain.Apply(geometry.Vec3{})
	v := func(x, y, z float64) geometry.Vec3 { return geometry.V3(x*hx, y*hy, z*hz) }
	sides := [6][4]geometry.Vec3{
		{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)},
		{v(1, -1, -1), v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1)},
		{v(1, -1, 1), v(1, -1, -1), v(1, 1, -1), v(1, 1, 1)},
		{v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1)},
		{v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1), v(-1, 1, -1)},
		{v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)},
	}
	for _, s := range sides {
		t.poly(chain, n.Material, &center, s[:]...)
	}
}

func (t *tessellator) cylinder(n *scene.Node, chain geometry.Chain) {
	top, length, bottom := n.Size.X, n.Size.Y, n.Size.Z
	center := chain.Apply(geometry.Vec3{})
	ring := func(radius, y float64) []geometry.Vec3 {
		pts := make([]geometry.Vec3, cylinderSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / cylinderSegments
			pts[i] = geometry.V3(radius*math.Cos(a), y, radius*math.Sin(a))
		}
		return pts
	}
	upper, lower := ring(top, length/2), ring(bottom, -length/2)
	for i := range upper {
		j := (i + 1) % len(upper)
		t.poly(chain, n.Material, &center, upper[i], upper[j], lower[j], lower[i])
	}
	if top > 0 {
		t.poly(chain, n.Material, &center, upper...)
	}
	if bottom > 0 {
		t.poly(chain, n.Material, &center, lower...)
	}
}

func (t *tessellator) sphere(n *scene.Node, chain geometry.Chain) {
	radius := n.Size.X
	center := chain.Apply(geometry.Vec3{})
	at := func(ring, slice int) geometry.Vec3 {
		phi := math.Pi * float64(ring) / sphereRings
		theta := 2 * math.Pi * float64(slice) / sphereSlices
		return geometry.V3(
			radius*math.Sin(phi)*math.Cos(theta),
			radius*math.Cos(phi),
			radius*math.Sin(phi)*math.Sin(theta),
		)
	}
	for r := 0; r < sphereRings; r++ {
		for s := 0; s < sphereSlices; s++ {
			t.poly(chain, n.Material, &center, at(r, s), at(r, s+1), at(r+1, s+1), at(r+1, s))
		}
	}
}

// torus draws the ring in local XY. Tori are not convex, so their faces
// are two-sided rather than culled.
func (t *tessellator) torus(n *scene.Node, chain geometry.Chain) {
	radius, tube := n.Size.X, n.Size.Y
	at := func(seg, side int) geometry.Vec3 {
		u := 2 * math.Pi * float64(seg) / torusSegments
		v := 2 * math.Pi * float64(side) / torusSides
		r := radius + tube*math.Cos(v)
		return geometry.V3(r*math.Cos(u), r*math.Sin(u), tube*math.Sin(v))
	}
	for s := 0; s < torusSegments; s++ {
		for d := 0; d < torusSides; d++ {
			t.poly(chain, n.Material, nil, at(s, d), at(s+1, d), at(s+1, d+1), at(s, d+1))
		}
	}
}

// ring draws a flat annulus lying in local XZ.
func (t *tessellator) ring(n *scene.Node, chain geometry.Chain) {
	inner, outer := n.Size.X, n.Size.Y
	at := func(i int, r float64) geometry.Vec3 {
		a := 2 * math.Pi * float64(i) / reticleSegments
		return geometry.V3(r*math.Cos(a), 0, r*math.Sin(a))
	}
	for i := 0; i < reticleSegments; i++ {
		t.poly(chain, n.Material, nil, at(i, inner), at(i, outer), at(i+1, outer), at(i+1, inner))
	}
}

// label anchors text at the node origin. Labels always face the viewer
// upright, whatever their rotation.
func (t *tessellator) label(n *scene.Node, chain geometry.Chain) {
	origin := chain.Apply(geometry.Vec3{})
	s, depth, ok := t.cam.Project(origin)
	if !ok || n.Text == "" {
		return
	}
	// font size in world units follows the accumulated scale
	size := chain.Apply(geometry.V3(0, n.Size.X, 0)).Sub(origin).Len()
	t.labels = append(t.labels, label{
		at:     s,
		height: size * t.cam.PixelsPerUnit(depth),
		text:   n.Text,
		color:  n.Material.Color,
	})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
