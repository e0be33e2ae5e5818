// Package scene composes a product instance into a tree of positioned,
// scaled shapes with materials. The tree is rebuilt every tick and handed
// to a renderer; nothing in it is shared with the next tick except the
// read-only fold-field grids.
package scene

import (
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
)

// Kind is the shape a node draws.
type Kind int

const (
	KindGroup    Kind = iota
	KindMesh          // Grid, a unit plane scaled by the transform
	KindBox           // Size is the full extent
	KindCylinder      // Size.X top radius, Size.Z bottom radius, Size.Y length along local Y
	KindSphere        // Size.X radius
	KindTorus         // Size.X ring radius, Size.Y tube radius, ring in local XY
	KindPlane         // Size.X by Size.Y in local XY, facing +Z
	KindLabel         // Text drawn facing the viewer, Size.X font height
	KindReticle       // flat ring on the floor, Size.X inner and Size.Y outer radius
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	case KindTorus:
		return "torus"
	case KindPlane:
		return "plane"
	case KindLabel:
		return "label"
	case KindReticle:
		return "reticle"
	}
	return "group"
}

// Node is one element of the tree.
type Node struct {
	Name      string
	Kind      Kind
	Grid      *geometry.Grid // KindMesh only; shared, never modified
	Size      geometry.Vec3
	Transform geometry.Transform
	Material  product.Material
	Text      string
	Children  []*Node
}

// Group returns an empty group at pos.
func Group(name string, pos geometry.Vec3, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindGroup, Transform: at(pos), Children: children}
}

// Mesh places a fold-field grid scaled to width by height.
func Mesh(name string, g *geometry.Grid, pos geometry.Vec3, width, height float64, m product.Material) *Node {
	t := at(pos)
	t.Scale = geometry.V3(width, height, 1)
	return &Node{Name: name, Kind: KindMesh, Grid: g, Transform: t, Material: m}
}

func Box(name string, size, pos geometry.Vec3, m product.Material) *Node {
	return &Node{Name: name, Kind: KindBox, Size: size, Transform: at(pos), Material: m}
}

// Cylinder returns a cylinder (or cone when the radii differ) along local
// Y. Rods lying along X pass a Z rotation of π/2.
func Cylinder(name string, top, bottom, length float64, pos geometry.Vec3, rot geometry.Euler, m product.Material) *Node {
	t := at(pos)
	t.Rotation = rot
	return &Node{Name: name, Kind: KindCylinder, Size: geometry.V3(top, length, bottom), Transform: t, Material: m}
}

func Sphere(name string, radius float64, pos geometry.Vec3, m product.Material) *Node {
	return &Node{Name: name, Kind: KindSphere, Size: geometry.V3(radius, radius, radius), Transform: at(pos), Material: m}
}

func Torus(name string, radius, tube float64, pos geometry.Vec3, rot geometry.Euler, m product.Material) *Node {
	t := at(pos)
	t.Rotation = rot
	return &Node{Name: name, Kind: KindTorus, Size: geometry.V3(radius, tube, 0), Transform: t, Material: m}
}

func Plane(name string, width, height float64, pos geometry.Vec3, m product.Material) *Node {
	return &Node{Name: name, Kind: KindPlane, Size: geometry.V3(width, height, 0), Transform: at(pos), Material: m}
}

// Label returns white text of the given font height.
func Label(name, text string, fontSize float64, pos geometry.Vec3) *Node {
	return &Node{
		Name:      name,
		Kind:      KindLabel,
		Text:      text,
		Size:      geometry.V3(fontSize, fontSize, 0),
		Transform: at(pos),
		Material:  product.Painted("#ffffff", 1),
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and its descendants depth first. chain holds the
// transforms from the root down to and including the visited node; it is
// reused between calls and must be copied to be kept.
func (n *Node) Walk(fn func(n *Node, chain geometry.Chain)) {
	n.walk(nil, fn)
}

func (n *Node) walk(chain geometry.Chain, fn func(*Node, geometry.Chain)) {
	chain = append(chain, n.Transform)
	fn(n, chain)
	for _, c := range n.Children {
		c.walk(chain, fn)
	}
}

// Find returns the first node with the given name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every node with the given name in walk order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ geometry.Chain) {
		if c.Name == name {
			out = append(out, c)
		}
	})
	return out
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

func at(pos geometry.Vec3) geometry.Transform {
	t := geometry.Identity
	t.Position = pos
	return t
}
