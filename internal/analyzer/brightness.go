package analyzer

import (
	"image"
	"math"
)

// BrightnessDetector finds areas clearly brighter than the rest of the
// picture, which in a room photo is daylight through the glass.
type BrightnessDetector struct {
	MinBlockArea int
	Sigma        float64 // threshold above the mean, in standard deviations
	MinLuma      uint8   // the threshold never drops below this
}

func NewBrightnessDetector() *BrightnessDetector {
	return &BrightnessDetector{
		MinBlockArea: 400,
		Sigma:        1.0,
		MinLuma:      150,
	}
}

func (d *BrightnessDetector) Detect(img image.Image) ([]Block, error) {
	gray := toGrayscale(img)
	threshold := max(lumaThreshold(gray, d.Sigma), float64(d.MinLuma))

	mask := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if float64(v) >= threshold {
			mask.Pix[i] = 255
		}
	}
	// close the gaps muntins leave in the glass
	mask = erode(dilate(mask, 3, 1), 3, 1)

	var blocks []Block
	for _, c := range findComponents(mask) {
		if c.rect.Dx()*c.rect.Dy() < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{Rect: c.rect, Kind: "window", Confidence: c.fill()})
	}
	return blocks, nil
}

// lumaThreshold is mean + sigma*stddev of the picture's luma.
func lumaThreshold(gray *image.Gray, sigma float64) float64 {
	if len(gray.Pix) == 0 {
		return 255
	}
	var sum, sq float64
	for _, v := range gray.Pix {
		f := float64(v)
		sum += f
		sq += f * f
	}
	n := float64(len(gray.Pix))
	mean := sum / n
	std := math.Sqrt(math.Max(0, sq/n-mean*mean))
	return mean + sigma*std
}
