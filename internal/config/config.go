package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the options of one preview run.
type Config struct {
	OutputVideo      string
	StillPath        string // when set, render a single PNG instead of a video
	FramesDir        string // when set, every frame is also written as PNG
	Width            int
	Height           int
	FPS              int
	Workers          int
	MeshStep         int
	Duration         float64
	FadeDuration     float64
	ZoomPeak         float64
	Preset           string
	VideoEncoder     string
	Quality          int // 0 picks the encoder's default
	BackdropPath     string
	BackdropPage     int
	DPI              int
	FitWindow        bool // place the product over the window found in the backdrop
	Detector         string
	ScenarioIn       string
	ScenarioOut      string
	ScenarioMode     string // demo, tour or ar
	GenerateScenario bool   // write the scenario and stop
	ProductPath      string
	ShareBaseURL     string
	QRPath           string
	Caption          string
	ShowStats        bool
	Verbose          bool
	BuildVersion     string
}

// SegmentParams is what a post-processing effect needs to know about the
// encoded clip.
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	FadeDuration  float64
	ZoomPeak      float64 // slow push-in target, 1 or less disables it
	Caption       string
	Filter        string // ffmpeg -vf chain, filled in by an effect
}

const DefaultShareBaseURL = "https://drapery.app/ar"

// Generated scenario kinds.
const (
	ModeDemo = "demo"
	ModeTour = "tour"
	ModeAR   = "ar"
)

// Defaults returns the options used when no flag or environment variable
// overrides them.
func Defaults() Config {
	return Config{
		OutputVideo:  "output/preview.mp4",
		Width:        1280,
		Height:       720,
		FPS:          30,
		Workers:      4,
		MeshStep:     1,
		Duration:     6,
		FadeDuration: 0.5,
		VideoEncoder: "auto",
		DPI:          150,
		ScenarioMode: ModeDemo,
		ShareBaseURL: DefaultShareBaseURL,
	}
}

// ApplyPreset replaces the resolution with a named aspect preset: 16:9,
// 9:16 or 4:5. Unknown names leave it unchanged.
func (c *Config) ApplyPreset() {
	switch c.Preset {
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	case "1:1":
		c.Width, c.Height = 1080, 1080
	}
}

// ApplyEnv overrides worker count, frame rate and encoder from
// DRAPERY_WORKERS, DRAPERY_FPS and DRAPERY_ENCODER.
func (c *Config) ApplyEnv() {
	c.Workers = getEnvAsInt("DRAPERY_WORKERS", c.Workers)
	c.FPS = getEnvAsInt("DRAPERY_FPS", c.FPS)
	c.VideoEncoder = getEnv("DRAPERY_ENCODER", c.VideoEncoder)
}

// Segment describes the clip the run produces.
func (c Config) Segment() SegmentParams {
	return SegmentParams{
		Width:        c.Width,
		Height:       c.Height,
		FPS:          c.FPS,
		Duration:     c.Duration,
		FadeDuration: c.FadeDuration,
		ZoomPeak:     c.ZoomPeak,
		Caption:      c.Caption,
	}
}

// Validate rejects options the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Width%2 != 0 || c.Height%2 != 0:
		return fmt.Errorf("%w: resolution %dx%d must be even", ErrInvalidConfig, c.Width, c.Height)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d outside [1, 240]", ErrInvalidConfig, c.FPS)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.StillPath == "" && !(c.Duration > 0):
		return fmt.Errorf("%w: duration %.2f", ErrInvalidConfig, c.Duration)
	case c.MeshStep < 1:
		return fmt.Errorf("%w: mesh step %d", ErrInvalidConfig, c.MeshStep)
	case c.ScenarioMode != ModeDemo && c.ScenarioMode != ModeTour && c.ScenarioMode != ModeAR:
		return fmt.Errorf("%w: scenario mode %q", ErrInvalidConfig, c.ScenarioMode)
	case c.Quality < 0:
		return fmt.Errorf("%w: quality %d", ErrInvalidConfig, c.Quality)
	case c.FadeDuration < 0 || 2*c.FadeDuration > c.Duration && c.StillPath == "":
		return fmt.Errorf("%w: fade %.2f does not fit into %.2fs", ErrInvalidConfig, c.FadeDuration, c.Duration)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
