// Package geometry holds the small vector and mesh types shared by the
// fold fields, the layout engine and the preview renderer.
package geometry

import "math"

type Vec2 struct {
	X, Y float64
}

type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Mul multiplies component-wise.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns the unit vector of a, or the zero vector when a has no
// length.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// RotateX rotates a about the X axis by angle radians.
func (a Vec3) RotateX(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

// RotateY rotates a about the Y axis by angle radians.
func (a Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotateZ rotates a about the Z axis by angle radians.
func (a Vec3) RotateZ(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// Euler is an XYZ rotation in radians, applied X first.
type Euler struct {
	X, Y, Z float64
}

func (e Euler) Apply(v Vec3) Vec3 {
	return v.RotateX(e.X).RotateY(e.Y).RotateZ(e.Z)
}

// Transform is a translate-rotate-scale node transform.
type Transform struct {
	Position Vec3
	Rotation Euler
	Scale    Vec3
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: Vec3{1, 1, 1}}

// Apply maps a local point into the parent space: scale, then rotate, then
// translate.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.Rotation.Apply(v.Mul(t.Scale)).Add(t.Position)
}

// ApplyDir maps a direction (no translation, no scale) into the parent space.
func (t Transform) ApplyDir(v Vec3) Vec3 {
	return t.Rotation.Apply(v)
}

// Chain is a path of transforms from the root (first) to a node (last).
// Normals through ApplyDir ignore scale, so non-uniform scales only shade
// approximately.
type Chain []Transform

// Apply runs the chain innermost first.
func (c Chain) Apply(v Vec3) Vec3 {
	for i := len(c) - 1; i >= 0; i-- {
		v = c[i].Apply(v)
	}
	return v
}

func (c Chain) ApplyDir(v Vec3) Vec3 {
	for i := len(c) - 1; i >= 0; i-- {
		v = c[i].ApplyDir(v)
	}
	return v
}
