package animation

import "github.com/ivlev/drapery/internal/product"

// Drag gains per viewport-normalized delta.
const (
	HorizontalDragGain = 2.0
	VerticalDragGain   = 2.5
)

// ApplyDrag returns the new target after a drag gesture. Hanging products
// open by dragging right; blinds and shades open by dragging up (negative dy).
func ApplyDrag(f product.Family, target, dx, dy float64) float64 {
	if f.Hanging() {
		return Clamp01(target + HorizontalDragGain*dx)
	}
	return Clamp01(target - VerticalDragGain*dy)
}

// Toggle flips the target between fully open and fully closed.
func Toggle(target float64) float64 {
	if target > 0.5 {
		return 0
	}
	return 1
}
