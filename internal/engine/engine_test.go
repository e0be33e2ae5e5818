package engine

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/system"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Width, cfg.Height = 64, 36
	cfg.FPS = 10
	cfg.Duration = 0.5
	cfg.Workers = 2
	cfg.MeshStep = 8
	cfg.OutputVideo = ""
	return &cfg
}

func closingScenario() *director.Scenario {
	return &director.Scenario{
		Version:  "1.0",
		Duration: 0.5,
		Product:  config.Default(),
		Events: []director.Event{
			{Time: 0, Kind: director.SetOpenness, Value: 0, Caption: "Closing"},
			{Time: 0.3, Kind: director.SetOpenness, Value: 1, Caption: "Opening"},
		},
	}
}

type fakeEncoder struct {
	frames int
	params config.SegmentParams
}

func (e *fakeEncoder) EncodeSegment(ctx context.Context, frames <-chan *image.RGBA, videoPath string, params config.SegmentParams, encoderName string, quality int) error {
	e.params = params
	for f := range frames {
		e.frames++
		system.PutImage(f)
	}
	return nil
}

func (e *fakeEncoder) EncodeSequence(ctx context.Context, framesDir string, videoPath string, params config.SegmentParams, encoderName string, quality int) error {
	return errors.New("not used")
}

type fixedEffect string

func (e fixedEffect) GenerateFilter(config.SegmentParams) string { return string(e) }

func TestFrameCount(t *testing.T) {
	tests := []struct {
		d    float64
		fps  int
		want int
	}{
		{6, 30, 180},
		{0.5, 10, 5},
		{0.01, 30, 1},
		{0, 30, 1},
		{1.04, 25, 26},
	}
	for _, tt := range tests {
		if got := frameCount(tt.d, tt.fps); got != tt.want {
			t.Errorf("frameCount(%v, %d) = %d, want %d", tt.d, tt.fps, got, tt.want)
		}
	}
}

func TestCaptionAt(t *testing.T) {
	captions := closingScenario().Captions()
	tests := []struct {
		now  float64
		want string
	}{
		{0, "Closing"},
		{0.29, "Closing"},
		{0.3, "Opening"},
		{0.49, "Opening"},
		{0.5, ""},
	}
	for _, tt := range tests {
		if got := captionAt(captions, tt.now); got != tt.want {
			t.Errorf("captionAt(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestSimulationOverBackdrop(t *testing.T) {
	fit := geometry.Identity
	sim := newSimulation(closingScenario(), 10, &fit)
	f := sim.next()
	if f.Root == nil || f.Root.Find("environment") != nil {
		t.Fatal("a fitted preview drops the room")
	}
	if f.Caption != "Closing" {
		t.Errorf("caption %q", f.Caption)
	}

	plain := newSimulation(closingScenario(), 10, nil).next()
	if plain.Root.Find("environment") == nil {
		t.Error("an unfitted preview keeps the room")
	}
}

func TestRunFrames(t *testing.T) {
	cfg := testConfig(t)
	cfg.FramesDir = filepath.Join(t.TempDir(), "frames")

	p := NewVideoProject(cfg, closingScenario(), nil, nil, nil)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries, err := os.ReadDir(cfg.FramesDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("wrote %d frames, want 5", len(entries))
	}
	if entries[0].Name() != "frame_00000.png" || entries[4].Name() != "frame_00004.png" {
		t.Errorf("unexpected names %s..%s", entries[0].Name(), entries[4].Name())
	}
	t.Logf("faces drawn: %d", p.stats.draw.Faces)
	if p.stats.frames != 5 || p.stats.draw.Faces == 0 {
		t.Errorf("unexpected stats %+v", p.stats)
	}
}

func TestRunNothingToWrite(t *testing.T) {
	p := NewVideoProject(testConfig(t), closingScenario(), nil, nil, nil)
	if err := p.Run(context.Background()); err == nil {
		t.Error("expected an error without any output")
	}
	if err := NewVideoProject(testConfig(t), nil, nil, nil, nil).Run(context.Background()); err == nil {
		t.Error("expected an error without a scenario")
	}
}

func TestRunStill(t *testing.T) {
	cfg := testConfig(t)
	cfg.StillPath = filepath.Join(t.TempDir(), "still.png")

	if err := NewVideoProject(cfg, closingScenario(), nil, nil, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	f, err := os.Open(cfg.StillPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 36 {
		t.Errorf("still is %v", img.Bounds())
	}
}

func TestRunVideo(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputVideo = filepath.Join(t.TempDir(), "out.mp4")
	cfg.VideoEncoder = "libx264"

	enc := &fakeEncoder{}
	p := NewVideoProject(cfg, closingScenario(), nil, enc, fixedEffect("null"))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if enc.frames != 5 {
		t.Errorf("encoder got %d frames, want 5", enc.frames)
	}
	if enc.params.Filter != "null" || enc.params.Width != 64 {
		t.Errorf("unexpected params %+v", enc.params)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputVideo = filepath.Join(t.TempDir(), "out.mp4")
	cfg.VideoEncoder = "libx264"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewVideoProject(cfg, closingScenario(), nil, &fakeEncoder{}, nil).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run on a cancelled context returned %v", err)
	}
}

func TestProductPathFor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"scenarios/tour.yaml", "scenarios/tour_product.yaml"},
		{"demo.yml", "demo_product.yaml"},
		{"noext", "noext_product.yaml"},
	}
	for _, tt := range tests {
		if got := ProductPathFor(tt.in); got != tt.want {
			t.Errorf("ProductPathFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepareScenario(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Duration = 8
	cfg.ScenarioMode = config.ModeTour
	cfg.ScenarioOut = filepath.Join(dir, "tour.yaml")

	sc, err := PrepareScenario(&cfg, config.Default())
	if err != nil {
		t.Fatalf("PrepareScenario failed: %v", err)
	}
	if len(sc.Events) == 0 {
		t.Fatal("generated scenario has no events")
	}
	if _, err := os.Stat(cfg.ScenarioOut); err != nil {
		t.Fatalf("scenario not saved: %v", err)
	}
	saved, err := config.LoadProduct(filepath.Join(dir, "tour_product.yaml"))
	if err != nil {
		t.Fatalf("product not saved next to the scenario: %v", err)
	}
	if saved.Style() != sc.Product.Style() || saved.Dimensions != sc.Product.Dimensions {
		t.Errorf("saved product %+v differs from %+v", saved, sc.Product)
	}

	in := config.Defaults()
	in.ScenarioIn = cfg.ScenarioOut
	read, err := PrepareScenario(&in, config.Default())
	if err != nil {
		t.Fatalf("reading back failed: %v", err)
	}
	if in.Duration != sc.Duration || len(read.Events) != len(sc.Events) {
		t.Errorf("read %d events over %.2fs, want %d over %.2fs", len(read.Events), in.Duration, len(sc.Events), sc.Duration)
	}

	bad := config.Defaults()
	bad.Duration = 0.5
	if _, err := PrepareScenario(&bad, config.Default()); err == nil {
		t.Error("a too short demo should fail")
	}
}
