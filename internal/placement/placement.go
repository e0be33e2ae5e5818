// Package placement tracks where an AR session shows the product: a preview
// that follows the hit-test pose until the user places it, then a frozen
// pose the user can rotate and scale.
package placement

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
)

const (
	PreviewScale = 0.3
	DefaultScale = 0.5
	MinScale     = 0.3
	MaxScale     = 2.0
	ScaleStep    = 0.1
	RotateStep   = math.Pi / 4

	// PreviewLift raises the preview above the reticle.
	PreviewLift = 0.5

	followFrequency = 12.0
	followDamping   = 1.0 // critically damped
)

// Mode is the placement state.
type Mode int

const (
	Unavailable Mode = iota // no AR capability: nothing is rendered
	Searching               // no hit pose yet
	Previewing
	Placed
)

func (m Mode) String() string {
	switch m {
	case Searching:
		return "searching"
	case Previewing:
		return "previewing"
	case Placed:
		return "placed"
	}
	return "unavailable"
}

// Pose is a point on a detected surface with a heading.
type Pose struct {
	Position geometry.Vec3
	Yaw      float64
}

// Controller owns the placement of one instance.
type Controller struct {
	available bool
	hasHit    bool
	placed    bool

	hit    Pose
	shown  Pose
	vel    [4]float64
	yaw    float64
	scale  float64
	spring harmonica.Spring
	dt     float64
}

// New returns a controller. With available false it stays Unavailable.
func New(available bool) *Controller {
	return &Controller{available: available, scale: DefaultScale}
}

func (c *Controller) Mode() Mode {
	switch {
	case !c.available:
		return Unavailable
	case c.placed:
		return Placed
	case c.hasHit:
		return Previewing
	}
	return Searching
}

// SetHitPose feeds the latest hit-test result. It is ignored once placed.
func (c *Controller) SetHitPose(p Pose) {
	if !c.available || c.placed {
		return
	}
	if !c.hasHit {
		c.shown = p
		c.vel = [4]float64{}
	}
	c.hit = p
	c.hasHit = true
}

// Step moves the preview towards the hit pose over dt seconds.
func (c *Controller) Step(dt float64) {
	if !(dt > 0) || c.Mode() != Previewing {
		return
	}
	if dt != c.dt {
		c.spring = harmonica.NewSpring(dt, followFrequency, followDamping)
		c.dt = dt
	}
	c.shown.Position.X, c.vel[0] = c.spring.Update(c.shown.Position.X, c.vel[0], c.hit.Position.X)
	c.shown.Position.Y, c.vel[1] = c.spring.Update(c.shown.Position.Y, c.vel[1], c.hit.Position.Y)
	c.shown.Position.Z, c.vel[2] = c.spring.Update(c.shown.Position.Z, c.vel[2], c.hit.Position.Z)
	c.shown.Yaw, c.vel[3] = c.spring.Update(c.shown.Yaw, c.vel[3], c.hit.Yaw)
}

// Place freezes the preview pose. It reports false when there is nothing to
// place.
func (c *Controller) Place() bool {
	if c.Mode() != Previewing {
		return false
	}
	c.placed = true
	c.yaw = c.shown.Yaw
	logging.Logger().Info("product placed",
		"x", c.shown.Position.X, "y", c.shown.Position.Y, "z", c.shown.Position.Z)
	return true
}

// Rotate turns a placed product by RotateStep.
func (c *Controller) Rotate() {
	if c.placed {
		c.yaw += RotateStep
	}
}

func (c *Controller) ScaleUp() {
	if c.placed {
		c.scale = math.Min(c.scale+ScaleStep, MaxScale)
	}
}

func (c *Controller) ScaleDown() {
	if c.placed {
		c.scale = math.Max(c.scale-ScaleStep, MinScale)
	}
}

// Reset returns to previewing at the default scale and heading.
func (c *Controller) Reset() {
	c.placed = false
	c.scale = DefaultScale
	c.yaw = 0
	c.vel = [4]float64{}
}

// Scale is the user scale of a placed product.
func (c *Controller) Scale() float64 { return c.scale }

// Transform returns the transform applied to the product group and whether
// anything should be rendered. The reticle sits at Reticle().
func (c *Controller) Transform() (geometry.Transform, bool) {
	switch c.Mode() {
	case Previewing:
		p := c.shown.Position
		p.Y += PreviewLift
		return geometry.Transform{
			Position: p,
			Rotation: geometry.Euler{Y: c.shown.Yaw},
			Scale:    geometry.V3(PreviewScale, PreviewScale, PreviewScale),
		}, true
	case Placed:
		return geometry.Transform{
			Position: c.shown.Position,
			Rotation: geometry.Euler{Y: c.yaw},
			Scale:    geometry.V3(c.scale, c.scale, c.scale),
		}, true
	}
	return geometry.Transform{}, false
}

// Reticle returns the surface pose under the preview.
func (c *Controller) Reticle() (Pose, bool) {
	if c.Mode() != Previewing {
		return Pose{}, false
	}
	return c.shown, true
}
