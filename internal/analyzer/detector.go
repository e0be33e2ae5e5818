// Package analyzer finds the window in a backdrop picture so the product
// can be drawn over it.
package analyzer

import "image"

// Block is a detected region of a picture.
type Block struct {
	Rect       image.Rectangle
	Kind       string  // "window" or "region"
	Confidence float64 // 0.0-1.0
}

// Detector is one strategy for finding regions.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
