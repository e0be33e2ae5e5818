package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
	"github.com/ivlev/drapery/internal/effects"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/renderer"
	"github.com/ivlev/drapery/internal/system"
	"github.com/ivlev/drapery/internal/video"
)

// framesPerWorker is how many frames each worker rasterizes per batch.
const framesPerWorker = 4

type VideoProject struct {
	Config   *config.Config
	Scenario *director.Scenario
	Renderer *renderer.Renderer
	Encoder  video.VideoEncoder // nil writes frames only
	Effect   effects.Effect
	Fit      *geometry.Transform // places the product over the backdrop window

	stats runStats
}

func NewVideoProject(cfg *config.Config, sc *director.Scenario, r *renderer.Renderer, ve video.VideoEncoder, eff effects.Effect) *VideoProject {
	return &VideoProject{
		Config:   cfg,
		Scenario: sc,
		Renderer: r,
		Encoder:  ve,
		Effect:   eff,
	}
}

// Run plays the scenario and writes a still, a clip or a frame sequence,
// depending on the configuration.
func (p *VideoProject) Run(ctx context.Context) error {
	if p.Scenario == nil {
		return errors.New("no scenario to play")
	}
	if p.Renderer == nil {
		p.Renderer = renderer.New(p.Config.Width, p.Config.Height)
		p.Renderer.MeshStep = p.Config.MeshStep
	}
	p.stats = runStats{start: time.Now()}

	fmt.Println("--- [PROJECT: DRAPERY PREVIEW] ---")
	fmt.Printf("[*] Product: %s\n", director.Describe(p.Scenario.Product))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Duration: %.2fs | Workers: %d\n",
		p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.Duration, p.Config.Workers)
	fmt.Println("-----------------------------")

	var err error
	switch {
	case p.Config.StillPath != "":
		err = p.runStill()
	case p.Config.OutputVideo == "" || p.Encoder == nil:
		err = p.runFrames(ctx)
	default:
		err = p.runVideo(ctx)
	}
	if err != nil {
		return err
	}

	p.stats.total = time.Since(p.stats.start)
	if p.Config.ShowStats {
		p.report()
	}
	return nil
}

// runStill plays the whole scenario and draws its last frame.
func (p *VideoProject) runStill() error {
	sim := newSimulation(p.Scenario, p.Config.FPS, p.Fit)
	n := frameCount(p.Config.Duration, p.Config.FPS)

	simStart := time.Now()
	var f renderer.Frame
	for i := 0; i < n; i++ {
		f = sim.next()
	}
	p.stats.simulate = time.Since(simStart)

	rasterStart := time.Now()
	img, st, err := p.Renderer.Render(f)
	if err != nil {
		return err
	}
	p.stats.raster = time.Since(rasterStart)
	p.stats.frames = 1
	p.stats.draw = st
	p.stats.cacheHits, p.stats.cacheMisses = sim.instance.CacheStats()

	if err := writePNG(p.Config.StillPath, img); err != nil {
		return err
	}
	fmt.Printf("[+++] Still written: %s\n", p.Config.StillPath)
	return nil
}

func (p *VideoProject) runFrames(ctx context.Context) error {
	if p.Config.FramesDir == "" {
		return errors.New("nothing to write: no video, still or frames directory")
	}
	sink := func(*image.RGBA) error { return nil }
	return p.produce(ctx, sink, system.PutImage)
}

func (p *VideoProject) runVideo(ctx context.Context) error {
	encoderName := p.Config.VideoEncoder
	if encoderName == "" || encoderName == "auto" {
		encoderName = system.GetBestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
		}
	}

	params := p.Config.Segment()
	if p.Effect != nil {
		params.Filter = p.Effect.GenerateFilter(params)
	}
	logging.Logger().Debug("filter chain", "vf", params.Filter)

	frames := make(chan *image.RGBA, p.Config.Workers)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		err := p.Encoder.EncodeSegment(gctx, frames, p.Config.OutputVideo, params, encoderName, p.Config.Quality)
		p.stats.encode = time.Since(start)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Config.OutputVideo, err)
		}
		return nil
	})
	g.Go(func() error {
		defer close(frames)
		sink := func(img *image.RGBA) error {
			select {
			case frames <- img:
				return nil
			case <-gctx.Done():
				system.PutImage(img)
				return gctx.Err()
			}
		}
		return p.produce(gctx, sink, nil)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("[+++] Success! Result: %s\n", p.Config.OutputVideo)
	return nil
}

// produce simulates the scenario one batch at a time and rasterizes each
// batch in parallel. Frames are handed to sink in order; release, when set,
// is called with every frame sink accepted.
func (p *VideoProject) produce(ctx context.Context, sink func(*image.RGBA) error, release func(*image.RGBA)) error {
	cfg := p.Config
	sim := newSimulation(p.Scenario, cfg.FPS, p.Fit)
	total := frameCount(cfg.Duration, cfg.FPS)
	if cfg.FramesDir != "" {
		if err := os.MkdirAll(cfg.FramesDir, 0755); err != nil {
			return fmt.Errorf("create frames dir: %w", err)
		}
	}

	batchSize := cfg.Workers * framesPerWorker
	batch := make([]renderer.Frame, 0, batchSize)
	images := make([]*image.RGBA, batchSize)
	stats := make([]renderer.Stats, batchSize)
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)

	for first := 0; first < total; first += batchSize {
		simStart := time.Now()
		batch = batch[:0]
		for i := first; i < total && len(batch) < batchSize; i++ {
			batch = append(batch, sim.next())
		}
		p.stats.simulate += time.Since(simStart)

		rasterStart := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for j := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img := system.GetImage(bounds)
				st, err := p.Renderer.RenderInto(img, batch[j])
				if err != nil {
					system.PutImage(img)
					return fmt.Errorf("frame %d: %w", first+j, err)
				}
				if cfg.FramesDir != "" {
					path := filepath.Join(cfg.FramesDir, fmt.Sprintf(video.FramePattern, first+j))
					if err := writePNG(path, img); err != nil {
						system.PutImage(img)
						return err
					}
				}
				images[j], stats[j] = img, st
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			for j := range batch {
				if images[j] != nil {
					system.PutImage(images[j])
					images[j] = nil
				}
			}
			return err
		}
		p.stats.raster += time.Since(rasterStart)

		for j := range batch {
			img := images[j]
			images[j] = nil
			p.stats.draw.Add(stats[j])
			if err := sink(img); err != nil {
				for _, rest := range images[j+1 : len(batch)] {
					system.PutImage(rest)
				}
				clear(images)
				return err
			}
			if release != nil {
				release(img)
			}
		}
		p.stats.frames += len(batch)
		fmt.Printf("[>] Rendered: %d/%d\n", p.stats.frames, total)
	}

	p.stats.cacheHits, p.stats.cacheMisses = sim.instance.CacheStats()
	return nil
}

// frameCount is the number of frames a clip of d seconds holds at fps.
func frameCount(d float64, fps int) int {
	return max(int(d*float64(fps)+0.5), 1)
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
