package layout

import (
	"math"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
)

// Slat tuning taken from the product models.
const (
	VenetianSlatsPerUnit   = 18
	VenetianBunchedSpacing = 0.008
	VenetianStackOpenness  = 0.05
	VerticalSlatsPerUnit   = 10
	VerticalBunchedSpacing = 0.02

	RomanSections       = 6
	RomanBunchedSection = 0.08
	RomanFoldOut        = 0.08

	// SlatDepth is the Z plane slats and blind fabric hang in.
	SlatDepth = 0.05
)

// Slat is one rigid blind slat, or the bottom rail when Rail is set.
type Slat struct {
	Index    int
	Position geometry.Vec3
	Rotation geometry.Euler
	Size     geometry.Vec3
	Rail     bool
}

// VenetianSlats returns the horizontal slats of a venetian blind followed by
// its bottom rail. Slats tilt about X by open·MaxSlatTilt; the rail never
// tilts. Below VenetianStackOpenness the slats stack under the headrail.
func VenetianSlats(s product.SceneScale, open float64) []Slat {
	open = animation.Clamp01(open)
	count := int(math.Floor(s.Height * VenetianSlatsPerUnit))
	if count <= 0 {
		return nil
	}
	spacing := s.Height / float64(count)
	active := animation.Lerp(VenetianBunchedSpacing, spacing, open)
	deployed := float64(count) * active
	tilt := open * product.MaxSlatTilt

	y := func(i int) float64 {
		if open <= VenetianStackOpenness {
			return s.Height/2 - float64(i)*VenetianBunchedSpacing - 0.02
		}
		return s.Height/2 - float64(i)*active - spacing/2 - (s.Height-deployed)*(1-open)
	}

	slats := make([]Slat, 0, count+1)
	for i := 0; i < count; i++ {
		slats = append(slats, Slat{
			Index:    i,
			Position: geometry.V3(0, y(i), SlatDepth),
			Rotation: geometry.Euler{X: tilt},
			Size:     geometry.V3(s.Width-0.05, 0.01, 0.08),
		})
	}
	slats = append(slats, Slat{
		Index:    count,
		Position: geometry.V3(0, y(count)-0.01, SlatDepth),
		Size:     geometry.V3(s.Width-0.03, 0.03, 0.09),
		Rail:     true,
	})
	return slats
}

// VerticalSlats returns the hanging slats of a vertical blind. Closed slats
// stack at the left edge turned by MaxSlatTilt; open slats spread across the
// width facing forward.
func VerticalSlats(s product.SceneScale, open float64) []Slat {
	open = animation.Clamp01(open)
	count := int(math.Floor(s.Width * VerticalSlatsPerUnit))
	if count <= 0 {
		return nil
	}
	spacing := s.Width / float64(count)
	start := -s.Width / 2
	rot := (1 - open) * product.MaxSlatTilt

	slats := make([]Slat, count)
	for i := range slats {
		stack := start + float64(i)*VerticalBunchedSpacing
		deploy := start + float64(i)*spacing + spacing/2
		slats[i] = Slat{
			Index:    i,
			Position: geometry.V3(animation.Lerp(stack, deploy, open), 0, SlatDepth),
			Rotation: geometry.Euler{Y: rot},
			Size:     geometry.V3(spacing*0.95, math.Max(s.Height-0.05, 0), 0.005),
		}
	}
	return slats
}

// Section is one folded section of a roman blind.
type Section struct {
	Index   int
	CenterY float64
	Height  float64
	Z       float64
}

// RomanSectionLayout stacks the sections from the headrail down. Raised
// sections shrink to RomanBunchedSection and fold out towards the room.
func RomanSectionLayout(s product.SceneScale, open float64) []Section {
	open = animation.Clamp01(open)
	full := s.Height / RomanSections
	h := animation.Lerp(RomanBunchedSection, full, open)
	z := SlatDepth + math.Sin((1-open)*math.Pi)*RomanFoldOut

	sections := make([]Section, RomanSections)
	for i := range sections {
		sections[i] = Section{
			Index:   i,
			CenterY: s.Height/2 - float64(i)*h - h/2,
			Height:  h,
			Z:       z,
		}
	}
	return sections
}
