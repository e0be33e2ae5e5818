package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/ivlev/drapery/internal/renderer"
	"github.com/ivlev/drapery/internal/system"
)

// BenchmarkLog collects one line per run when stats are enabled.
const BenchmarkLog = "benchmark.log"

type runStats struct {
	start    time.Time
	total    time.Duration
	simulate time.Duration
	raster   time.Duration
	encode   time.Duration
	frames   int
	draw     renderer.Stats

	cacheHits, cacheMisses int
}

func (s runStats) fps() float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(s.frames) / s.total.Seconds()
}

func (p *VideoProject) report() {
	s := p.stats
	host, err := system.ReadHostStats()
	if err != nil {
		fmt.Printf("[!] Host stats incomplete: %v\n", err)
	}
	faces := 0
	if s.frames > 0 {
		faces = s.draw.Faces / s.frames
	}

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Simulation: %.2fs\n"+
			"Rasterizing (CPU): %.2fs\n"+
			"Encoding (GPU/CPU): %.2fs\n"+
			"Frames: %d | Faces/frame: %d | Culled: %d | Labels: %d\n"+
			"Fold cache: %d hits, %d misses\n"+
			"Effective FPS: %.2f\n"+
			"Memory: RSS %s, available %s of %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, s.total.Seconds(), s.simulate.Seconds(), s.raster.Seconds(), s.encode.Seconds(),
		s.frames, faces, s.draw.Culled, s.draw.Labels,
		s.cacheHits, s.cacheMisses,
		s.fps(),
		system.FormatBytes(host.ProcessRSS), system.FormatBytes(host.AvailableMemory), system.FormatBytes(host.TotalMemory),
	)

	entry := fmt.Sprintf("[%s] Build: %s | Product: %s | Frames: %d | Total: %.2fs | Raster: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Scenario.Product.Style(),
		s.frames,
		s.total.Seconds(),
		s.raster.Seconds(),
		s.encode.Seconds(),
		s.fps(),
	)
	f, err := os.OpenFile(BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Could not write %s: %v\n", BenchmarkLog, err)
		return
	}
	f.WriteString(entry)
	f.Close()
}
