// Package layout places the moving parts of a product for a given openness:
// fabric panels on a rod, blind slats and sections, roller and shade drops.
//
// All functions are pure. Sizes are in scene units with the product centred
// on the origin.
package layout

import (
	"math"

	"github.com/ivlev/drapery/internal/animation"
)

const (
	PanelGap      = 0.002
	PanelZStagger = 0.005
)

// Panel is one hanging fabric panel.
type Panel struct {
	Index         int
	Width         float64
	WidthFraction float64 // Width over the full panel width
	OffsetX       float64
	ZStagger      float64
	Left          bool
	Center        bool // middle panel of an odd count
}

// Panels lays out count panels across totalWidth. Panels shrink to minBunch
// of their full width when closed and slide to their outer edge. Counts
// below one are treated as one.
//
// With an odd count the middle panel is centred on x=0 and marked Center.
func Panels(totalWidth float64, count int, minBunch, open float64) []Panel {
	count = max(count, 1)
	open = animation.Clamp01(open)
	minBunch = animation.Clamp01(minBunch)

	full := totalWidth / float64(count)
	fraction := minBunch + (1-minBunch)*open
	width := full * fraction
	leftCount := int(math.Ceil(float64(count) / 2))

	panels := make([]Panel, count)
	for i := range panels {
		p := Panel{
			Index:         i,
			Width:         width,
			WidthFraction: fraction,
			ZStagger:      float64(i) * PanelZStagger,
			Left:          i < leftCount,
			Center:        count%2 == 1 && i == count/2,
		}
		switch {
		case p.Center:
			p.Left = false
		case p.Left:
			p.OffsetX = -totalWidth/2 + (float64(i)+0.5)*width + float64(i)*PanelGap
		default:
			j := float64(count - 1 - i)
			p.OffsetX = totalWidth/2 - (j+0.5)*width - j*PanelGap
		}
		panels[i] = p
	}
	return panels
}

// SwaySign is +1 for left panels, -1 for right ones and 0 for a centred
// panel, which has no side to swing to.
func (p Panel) SwaySign() float64 {
	switch {
	case p.Center:
		return 0
	case p.Left:
		return 1
	}
	return -1
}
