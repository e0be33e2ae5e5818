package analyzer

import (
	"image"
	"image/color"
	"math"
)

// ContrastDetector finds regions outlined by strong edges: a Sobel pass,
// a dilation that closes gaps and connected components of the result.
type ContrastDetector struct {
	MinBlockArea  int     // pixels
	EdgeThreshold float64 // gradient magnitude
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,
		EdgeThreshold: 30.0,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	gray := toGrayscale(img)
	edges := sobelEdgeDetection(gray, d.EdgeThreshold)
	dilated := dilate(edges, 5, 2)

	var blocks []Block
	for _, c := range findComponents(dilated) {
		if c.rect.Dx()*c.rect.Dy() >= d.MinBlockArea {
			blocks = append(blocks, Block{Rect: c.rect, Kind: "region", Confidence: 0.5})
		}
	}
	return blocks, nil
}

func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && len(g.Pix) == g.Rect.Dx()*g.Rect.Dy() {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

func sobelEdgeDetection(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	gx := [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	gy := [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += v * float64(gx[ky+1][kx+1])
					sumY += v * float64(gy[ky+1][kx+1])
				}
			}
			if math.Hypot(sumX, sumY) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate grows white areas by a square kernel.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)
	half := kernelSize / 2

	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y + half; y < bounds.Max.Y-half; y++ {
			for x := bounds.Min.X + half; x < bounds.Max.X-half; x++ {
				var maxVal uint8
				for ky := -half; ky <= half && maxVal < 255; ky++ {
					for kx := -half; kx <= half; kx++ {
						maxVal = max(maxVal, result.GrayAt(x+kx, y+ky).Y)
					}
				}
				temp.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = temp
	}
	return result
}

// erode shrinks white areas by a square kernel.
func erode(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := img
	half := kernelSize / 2

	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y + half; y < bounds.Max.Y-half; y++ {
			for x := bounds.Min.X + half; x < bounds.Max.X-half; x++ {
				minVal := uint8(255)
				for ky := -half; ky <= half && minVal > 0; ky++ {
					for kx := -half; kx <= half; kx++ {
						minVal = min(minVal, result.GrayAt(x+kx, y+ky).Y)
					}
				}
				temp.SetGray(x, y, color.Gray{Y: minVal})
			}
		}
		result = temp
	}
	return result
}

// component is a connected white area: its bounds and pixel count.
type component struct {
	rect   image.Rectangle
	pixels int
}

// fill is the share of the bounding box the component covers.
func (c component) fill() float64 {
	area := c.rect.Dx() * c.rect.Dy()
	if area == 0 {
		return 0
	}
	return float64(c.pixels) / float64(area)
}

// findComponents labels 4-connected pixels brighter than 128.
func findComponents(img *image.Gray) []component {
	bounds := img.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())
	idx := func(x, y int) int { return (y-bounds.Min.Y)*bounds.Dx() + x - bounds.Min.X }

	var out []component
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[idx(x, y)] {
				out = append(out, floodFill(img, visited, idx, x, y))
			}
		}
	}
	return out
}

func floodFill(img *image.Gray, visited []bool, idx func(x, y int) int, startX, startY int) component {
	bounds := img.Bounds()
	minX, minY, maxX, maxY := startX, startY, startX, startY
	pixels := 0

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.In(bounds) || visited[idx(p.X, p.Y)] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[idx(p.X, p.Y)] = true
		pixels++

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return component{rect: image.Rect(minX, minY, maxX+1, maxY+1), pixels: pixels}
}
