package layout

import (
	"math"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/product"
)

// MinDropHeight keeps a fully raised drop visible as a sliver.
const MinDropHeight = 0.01

// Drop is the lowered fabric of a roller blind or shade hanging from the
// headrail, plus its roll.
type Drop struct {
	Height     float64 // deployed fabric height, at least MinDropHeight
	CenterY    float64
	BottomY    float64 // where the fabric ends; the bar or rail hangs here
	RollRadius float64
	Rows       int // bamboo weave rows, zero for other fabrics
}

// Rail is the bottom rail under a shade.
type Rail struct {
	Y     float64
	Color string
}

// RollerDrop lays out a roller blind.
func RollerDrop(s product.SceneScale, open float64) Drop {
	open = animation.Clamp01(open)
	d := drop(s, open)
	d.RollRadius = 0.02 + 0.03*(1-open)
	return d
}

// ShadeDrop lays out a shade of the given style.
func ShadeDrop(style product.ShadeStyle, s product.SceneScale, open float64) Drop {
	open = animation.Clamp01(open)
	d := drop(s, open)
	switch style {
	case product.Solar:
		d.RollRadius = 0.03 + 0.03*(1-open)
	case product.Bamboo:
		d.RollRadius = 0.02 + 0.04*(1-open)
		d.Rows = int(math.Floor(s.Height * open * 40))
	}
	return d
}

// ShadeRail returns the bottom rail of a shade. Bamboo shades end in a roll
// instead and report false.
func ShadeRail(style product.ShadeStyle, d Drop) (Rail, bool) {
	if style == product.Bamboo {
		return Rail{}, false
	}
	c := "#dddddd"
	if style == product.Solar {
		c = "#cccccc"
	}
	return Rail{Y: d.BottomY - 0.02, Color: c}, true
}

func drop(s product.SceneScale, open float64) Drop {
	deployed := s.Height * open
	return Drop{
		Height:  math.Max(deployed, MinDropHeight),
		CenterY: s.Height/2 - deployed/2,
		BottomY: s.Height/2 - deployed,
	}
}
