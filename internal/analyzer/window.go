package analyzer

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

var ErrNoWindow = errors.New("no window found")

// AnalysisWidth is the width pictures are reduced to before detection.
const AnalysisWidth = 320

// Window aspect ratios (width/height) considered plausible.
const (
	MinWindowAspect = 0.3
	MaxWindowAspect = 3.5
)

// FindWindow runs d on a reduced copy of img and returns the most likely
// window in img's coordinates. Candidates are scored by area times
// confidence; implausibly shaped ones and ones touching three or more
// picture edges are skipped.
func FindWindow(img image.Image, d Detector) (Block, error) {
	small, k := reduce(img, AnalysisWidth)
	blocks, err := d.Detect(small)
	if err != nil {
		return Block{}, fmt.Errorf("detect: %w", err)
	}

	best, bestScore := Block{}, 0.0
	for _, b := range blocks {
		if !plausible(b.Rect, small.Bounds()) {
			continue
		}
		score := float64(b.Rect.Dx()*b.Rect.Dy()) * b.Confidence
		if score > bestScore {
			best, bestScore = b, score
		}
	}
	if bestScore == 0 {
		return Block{}, ErrNoWindow
	}

	o := img.Bounds().Min
	best.Rect = image.Rect(
		o.X+int(float64(best.Rect.Min.X)*k), o.Y+int(float64(best.Rect.Min.Y)*k),
		o.X+int(float64(best.Rect.Max.X)*k), o.Y+int(float64(best.Rect.Max.Y)*k),
	).Intersect(img.Bounds())
	return best, nil
}

func plausible(r, frame image.Rectangle) bool {
	if r.Dy() == 0 {
		return false
	}
	aspect := float64(r.Dx()) / float64(r.Dy())
	if aspect < MinWindowAspect || aspect > MaxWindowAspect {
		return false
	}
	edges := 0
	for _, touches := range []bool{r.Min.X <= frame.Min.X, r.Min.Y <= frame.Min.Y, r.Max.X >= frame.Max.X, r.Max.Y >= frame.Max.Y} {
		if touches {
			edges++
		}
	}
	return edges < 3
}

// reduce scales img down to at most width pixels wide. It returns the copy
// and the factor mapping its coordinates back to img.
func reduce(img image.Image, width int) (*image.RGBA, float64) {
	b := img.Bounds()
	k := 1.0
	w, h := b.Dx(), b.Dy()
	if w > width {
		k = float64(w) / float64(width)
		w, h = width, max(int(float64(h)/k), 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, k
}
