package scene

import (
	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/foldfield"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/placement"
	"github.com/ivlev/drapery/internal/product"
)

// Mode selects where the instance is shown.
type Mode int

const (
	// Preview shows the product in front of a wall with a window.
	Preview Mode = iota
	// AR shows the product alone at the placement pose.
	AR
)

func (m Mode) String() string {
	if m == AR {
		return "ar"
	}
	return "preview"
}

// ARPreviewOpacity scales fabric opacity while the product follows the
// hit-test pose.
const ARPreviewOpacity = 0.7

// Instance is the per-product animation state. It is not safe for
// concurrent use; drive it from one goroutine.
type Instance struct {
	style     product.Style
	open      animation.Openness
	sway      animation.Sway
	fields    foldfield.Cache
	weave     *geometry.Grid
	scale     product.SceneScale
	mode      Mode
	placement *placement.Controller
}

// NewInstance starts an instance at rest on p's openness.
func NewInstance(p config.Product) *Instance {
	in := &Instance{placement: placement.New(false)}
	in.reset(p)
	return in
}

// EnableAR switches to AR output. With available false nothing is
// rendered until AR is disabled again.
func (in *Instance) EnableAR(available bool) {
	in.mode = AR
	in.placement = placement.New(available)
}

func (in *Instance) DisableAR() { in.mode = Preview }

func (in *Instance) Mode() Mode                       { return in.mode }
func (in *Instance) Placement() *placement.Controller { return in.placement }
func (in *Instance) Style() product.Style             { return in.style }
func (in *Instance) Openness() animation.Openness     { return in.open }
func (in *Instance) Sway() float64                    { return in.sway.Value() }

// Scale is the scene size computed by the last Update.
func (in *Instance) Scale() product.SceneScale { return in.scale }

// CacheStats reports fold-field cache hits and misses.
func (in *Instance) CacheStats() (hits, misses int) { return in.fields.Stats() }

// Update advances the instance by dt seconds towards p and returns the
// tree to draw. It returns nil in AR mode when there is nothing placed or
// previewed.
//
// The tick runs dimension scaling, the fold-field cache check, openness
// interpolation, panel layout and sway, in that order. A change of family
// or style resets the instance first.
func (in *Instance) Update(p config.Product, dt float64) *Node {
	style := p.Style()
	if style != in.style {
		logging.Logger().Info("product switched", "from", in.style.String(), "to", style.String())
		in.reset(p)
	}

	if !p.Dimensions.Sane() {
		logging.Logger().Warn("dimensions clamped",
			"width", p.Dimensions.Width, "height", p.Dimensions.Height, "drop", p.Dimensions.Drop)
	}
	in.scale = p.MountType.Fit(product.ReferenceFor(style.Family()).Scale(p.Dimensions))

	field := in.fields.Get(style, in.open.Current())

	in.open.SetTarget(p.OpenAmount)
	in.open.Step(dt)
	in.sway.Step(in.open.Velocity(), dt)
	in.placement.Step(dt)

	if in.mode == Preview {
		b := in.builder(p, field)
		return Group("root", geometry.Vec3{}, Environment(), b.build())
	}
	return in.arTree(p, field)
}

func (in *Instance) reset(p config.Product) {
	in.style = p.Style()
	in.open = animation.NewOpenness(p.OpenAmount)
	in.sway.Reset()
	in.fields.Reset()
	in.weave = nil
}

func (in *Instance) arTree(p config.Product, field *foldfield.Field) *Node {
	tr, ok := in.placement.Transform()
	if !ok {
		return nil
	}
	root := Group("root", geometry.Vec3{})

	if reticle, ok := in.placement.Reticle(); ok {
		p.Opacity *= ARPreviewOpacity
		p.ShowMeasurements = false
		root.Add(Reticle(reticle))
		hint := Label("hint", "Tap to place", 0.1, reticle.Position.Add(geometry.V3(0, 1.5, 0)))
		hint.Material = product.Painted("#667eea", 1)
		root.Add(hint)
	}

	model := in.builder(p, field).build()
	model.Transform = tr
	if in.placement.Mode() == placement.Placed {
		done := Label("placed", "Placed! Use controls to adjust", 0.08, geometry.V3(0, -2, 0))
		done.Material = product.Painted("#4ade80", 1)
		model.Add(done)
	}
	return root.Add(model)
}

// Reticle is the placement ring on the detected surface.
func Reticle(pose placement.Pose) *Node {
	m := product.Painted("#667eea", 1)
	m.Opacity = 0.8
	n := &Node{
		Name:      "reticle",
		Kind:      KindReticle,
		Size:      geometry.V3(0.15, 0.2, 0),
		Transform: at(pose.Position.Add(geometry.V3(0, 0.01, 0))),
		Material:  m,
	}
	n.Transform.Rotation.Y = pose.Yaw
	return n
}

func (in *Instance) builder(p config.Product, field *foldfield.Field) builder {
	style := in.style
	return builder{
		p:      p,
		style:  style,
		scale:  in.scale,
		open:   in.open.Current(),
		sway:   &in.sway,
		field:  field,
		fabric: product.FabricMaterial(style, p.Color, p.Opacity, p.Texture),
		weave:  &in.weave,
	}
}
