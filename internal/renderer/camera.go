package renderer

import (
	"image"
	"math"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
)

// Camera is a pinhole camera looking down -Z.
type Camera struct {
	Position      geometry.Vec3
	FOV           float64 // vertical, degrees
	Near          float64
	Width, Height int
}

// DefaultCamera frames the preview room the way the configurator does.
func DefaultCamera(width, height int) Camera {
	return Camera{
		Position: geometry.V3(0, 0, 6),
		FOV:      45,
		Near:     0.1,
		Width:    width,
		Height:   height,
	}
}

// focal is the focal length in pixels.
func (c Camera) focal() float64 {
	return float64(c.Height) / 2 / math.Tan(c.FOV*math.Pi/360)
}

// Project returns the screen position and view depth of a world point. ok is
// false for points in front of the near plane.
func (c Camera) Project(p geometry.Vec3) (screen geometry.Vec2, depth float64, ok bool) {
	v := p.Sub(c.Position)
	depth = -v.Z
	if depth < c.Near {
		return geometry.Vec2{}, depth, false
	}
	f := c.focal() / depth
	return geometry.Vec2{
		X: float64(c.Width)/2 + v.X*f,
		Y: float64(c.Height)/2 - v.Y*f,
	}, depth, true
}

// Unproject maps a screen point back onto the world plane at z.
func (c Camera) Unproject(x, y, z float64) geometry.Vec3 {
	k := (c.Position.Z - z) / c.focal()
	return geometry.V3(
		c.Position.X+(x-float64(c.Width)/2)*k,
		c.Position.Y-(y-float64(c.Height)/2)*k,
		z,
	)
}

// PixelsPerUnit is the screen size of one scene unit at the given depth.
func (c Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal() / depth
}

// FitWindow returns the transform that moves a product model, built around
// the room window at the origin, onto a window seen at rect in the frame.
func (c Camera) FitWindow(rect image.Rectangle) geometry.Transform {
	lo := c.Unproject(float64(rect.Min.X), float64(rect.Max.Y), 0)
	hi := c.Unproject(float64(rect.Max.X), float64(rect.Min.Y), 0)
	room := product.RoomReference.Scale(product.DefaultDimensions)
	k := math.Min((hi.X-lo.X)/room.Width, (hi.Y-lo.Y)/room.Height)

	t := geometry.Identity
	t.Position = geometry.V3((lo.X+hi.X)/2, (lo.Y+hi.Y)/2, 0)
	t.Scale = geometry.V3(k, k, k)
	return t
}
