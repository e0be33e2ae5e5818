package analyzer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// room draws a dim wall with a bright window at win and a lamp-sized
// bright spot.
func room(w, h int, win image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 90, G: 80, B: 60, A: 255}
			if (image.Point{x, y}).In(win) {
				c = color.RGBA{R: 235, G: 245, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	// muntin across the glass
	for x := win.Min.X; x < win.Max.X; x++ {
		img.SetRGBA(x, (win.Min.Y+win.Max.Y)/2, color.RGBA{R: 60, G: 50, B: 40, A: 255})
	}
	for y := 10; y < 16; y++ {
		for x := 10; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 220, A: 255})
		}
	}
	return img
}

func TestContrastDetector(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("Expected at least one block, got none")
	}
	if b := blocks[0]; b.Rect.Dx() < 80 || b.Rect.Dy() < 80 {
		t.Errorf("Block too small: %v", b.Rect)
	}
	for i, b := range blocks {
		t.Logf("Block %d: %v (kind: %s, confidence: %.2f)", i, b.Rect, b.Kind, b.Confidence)
	}
}

func TestBrightnessDetector(t *testing.T) {
	win := image.Rect(60, 30, 140, 130)
	blocks, err := NewBrightnessDetector().Detect(room(200, 160, win))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected only the window (the lamp is too small), got %+v", blocks)
	}
	b := blocks[0]
	if b.Rect != win {
		t.Errorf("window %v, want %v", b.Rect, win)
	}
	if b.Confidence < 0.95 {
		t.Errorf("glass should fill its box, confidence %.2f", b.Confidence)
	}
}

func TestFindWindow(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		win  image.Rectangle
	}{
		{"small photo", 200, 160, image.Rect(60, 30, 140, 130)},
		{"large photo is reduced", 1280, 720, image.Rect(500, 150, 800, 550)},
		{"off center", 640, 480, image.Rect(40, 60, 260, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindWindow(room(tt.w, tt.h, tt.win), NewBrightnessDetector())
			if err != nil {
				t.Fatalf("FindWindow failed: %v", err)
			}
			tol := max(tt.w/AnalysisWidth*2, 2)
			if d := abs(got.Rect.Min.X-tt.win.Min.X) + abs(got.Rect.Min.Y-tt.win.Min.Y) +
				abs(got.Rect.Max.X-tt.win.Max.X) + abs(got.Rect.Max.Y-tt.win.Max.Y); d > 4*tol {
				t.Errorf("window %v, want about %v", got.Rect, tt.win)
			}
			t.Logf("found %v confidence %.2f", got.Rect, got.Confidence)
		})
	}
}

func TestFindWindowNone(t *testing.T) {
	flat := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for i := range flat.Pix {
		flat.Pix[i] = 120
	}
	if _, err := FindWindow(flat, NewBrightnessDetector()); !errors.Is(err, ErrNoWindow) {
		t.Errorf("expected ErrNoWindow, got %v", err)
	}
}

func TestPlausible(t *testing.T) {
	frame := image.Rect(0, 0, 100, 100)
	tests := []struct {
		r    image.Rectangle
		want bool
	}{
		{image.Rect(20, 20, 80, 80), true},
		{image.Rect(0, 10, 50, 60), true},
		{image.Rect(0, 0, 100, 60), false},  // sky across the top
		{image.Rect(10, 40, 100, 45), false}, // a thin strip
	}
	for _, tt := range tests {
		if got := plausible(tt.r, frame); got != tt.want {
			t.Errorf("plausible(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"brightness", false},
		{"contrast", false},
		{"edges", false},
		{"", false},
		{"ocr", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if detector == nil {
				t.Error("Expected detector, got nil")
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
