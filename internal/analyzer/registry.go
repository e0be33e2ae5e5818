package analyzer

import "fmt"

// NewDetector creates a detector by name.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "brightness", "":
		return NewBrightnessDetector(), nil
	case "contrast", "edges":
		return NewContrastDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
