package product

import "math"

// MinDimensionCm is the floor applied to non-positive or non-finite widths
// and heights before scaling.
const MinDimensionCm = 1.0

// Dimensions are real-world measurements in centimetres. Drop is the extra
// floor-ward length of curtains and drapes.
type Dimensions struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Drop   float64 `yaml:"drop"`
}

// DefaultDimensions matches the configurator's initial state.
var DefaultDimensions = Dimensions{Width: 150, Height: 200, Drop: 0}

// Sanitize clamps width and height to MinDimensionCm and drop to zero when
// they are non-positive or non-finite. Valid values pass through unchanged.
func (d Dimensions) Sanitize() Dimensions {
	return Dimensions{
		Width:  positiveOr(d.Width, MinDimensionCm),
		Height: positiveOr(d.Height, MinDimensionCm),
		Drop:   nonNegative(d.Drop),
	}
}

// Sane reports whether Sanitize would leave d unchanged.
func (d Dimensions) Sane() bool {
	return d == d.Sanitize()
}

// Area returns the covered area in square metres.
func (d Dimensions) Area() float64 {
	return d.Width * d.Height / 10000
}

// DropUnits converts the drop to scene units (1 unit per metre).
func (d Dimensions) DropUnits() float64 {
	return nonNegative(d.Drop) / 100
}

func positiveOr(v, min float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return min
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SceneScale is a size in scene units.
type SceneScale struct {
	Width  float64
	Height float64
}

// ScaleReference ties a reference size in centimetres to its size in scene
// units.
type ScaleReference struct {
	WidthCm     float64
	HeightCm    float64
	SceneWidth  float64
	SceneHeight float64
}

// RoomReference sizes the surrounding room of the preview environment.
var RoomReference = ScaleReference{WidthCm: 150, HeightCm: 200, SceneWidth: 3.8, SceneHeight: 2.8}

// ReferenceFor returns the scale reference of a family's model.
func ReferenceFor(f Family) ScaleReference {
	switch f {
	case Drape:
		return ScaleReference{WidthCm: 150, HeightCm: 200, SceneWidth: 2.4, SceneHeight: 3.2}
	default:
		return ScaleReference{WidthCm: 150, HeightCm: 200, SceneWidth: 2.4, SceneHeight: 3.0}
	}
}

// Scale maps dimensions to scene units. It sanitizes its input and never
// fails.
func (r ScaleReference) Scale(d Dimensions) SceneScale {
	d = d.Sanitize()
	return SceneScale{
		Width:  d.Width / r.WidthCm * r.SceneWidth,
		Height: d.Height / r.HeightCm * r.SceneHeight,
	}
}
