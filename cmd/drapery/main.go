package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/drapery/internal/analyzer"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
	"github.com/ivlev/drapery/internal/effects"
	"github.com/ivlev/drapery/internal/engine"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/renderer"
	"github.com/ivlev/drapery/internal/share"
	"github.com/ivlev/drapery/internal/source"
	"github.com/ivlev/drapery/internal/system"
	"github.com/ivlev/drapery/internal/video"
)

const (
	productDir  = "input/products"
	backdropDir = "input/backdrops"
	outputDir   = "output"
)

var buildVersion = "dev"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	keyStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func main() {
	system.InitResourceLimits()

	for _, d := range []string{productDir, backdropDir, outputDir} {
		os.MkdirAll(d, 0755)
	}

	cfg := config.Defaults()
	cfg.Workers = runtime.NumCPU()
	cfg.BuildVersion = buildVersion

	flag.StringVar(&cfg.ProductPath, "product", "", "Product YAML (default: newest file in input/products/, else the default sheer curtain)")
	outputPtr := flag.String("output", "", "Video path (default: generated in output/)")
	flag.StringVar(&cfg.StillPath, "still", "", "Render the final frame to this PNG instead of a video")
	flag.StringVar(&cfg.FramesDir, "frames", "", "Also write every frame as PNG into this directory")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Height")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "FPS")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Rasterizer workers")
	flag.IntVar(&cfg.MeshStep, "mesh-step", cfg.MeshStep, "Grid cells merged per drawn quad (1 is full detail)")
	flag.Float64Var(&cfg.Duration, "duration", cfg.Duration, "Clip duration in seconds")
	flag.Float64Var(&cfg.FadeDuration, "fade", cfg.FadeDuration, "Fade in/out duration (s)")
	flag.Float64Var(&cfg.ZoomPeak, "zoom", cfg.ZoomPeak, "Slow push-in target, e.g. 1.1 (1 disables)")
	flag.StringVar(&cfg.Preset, "preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram), 1:1")
	flag.StringVar(&cfg.VideoEncoder, "encoder", "auto", "ffmpeg video encoder, auto picks the best H.264 one")
	flag.IntVar(&cfg.Quality, "quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	flag.StringVar(&cfg.BackdropPath, "backdrop", "", "Room photo or PDF drawn behind the product (default: newest file in input/backdrops/)")
	flag.IntVar(&cfg.BackdropPage, "backdrop-page", 0, "Page of a PDF backdrop")
	flag.IntVar(&cfg.DPI, "dpi", cfg.DPI, "DPI for PDF backdrops")
	flag.BoolVar(&cfg.FitWindow, "fit-window", false, "Place the product over the window found in the backdrop")
	flag.StringVar(&cfg.Detector, "detector", "brightness", "Window detector: brightness, contrast")
	flag.StringVar(&cfg.ScenarioIn, "scenario", "", "Scenario YAML to play ('latest' picks the newest in scenarios/)")
	flag.StringVar(&cfg.ScenarioOut, "scenario-out", "", "Save the played scenario to this path")
	flag.StringVar(&cfg.ScenarioMode, "mode", cfg.ScenarioMode, "Generated scenario: demo, tour, ar")
	flag.BoolVar(&cfg.GenerateScenario, "generate-scenario", false, "Only generate the scenario and save it")
	flag.StringVar(&cfg.ShareBaseURL, "share-url", cfg.ShareBaseURL, "Base URL of the AR handoff link")
	flag.StringVar(&cfg.QRPath, "qr", "", "Write a QR code of the AR link to this PNG")
	flag.StringVar(&cfg.Caption, "title", "", "Title drawn over the clip by ffmpeg")
	flag.BoolVar(&cfg.ShowStats, "stats", false, "Print a performance report and append it to benchmark.log")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Debug logging to stderr")

	flag.Parse()

	cfg.ApplyPreset()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	if cfg.Verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if host, err := system.ReadHostStats(); err == nil {
		if w := host.RecommendedWorkers(cfg.Workers, uint64(cfg.Width*cfg.Height*4)); w < cfg.Workers {
			fmt.Printf("[!] Workers reduced to %d to fit in %s of free memory\n", w, system.FormatBytes(host.AvailableMemory))
			cfg.Workers = w
		}
	}

	prod, err := loadProduct(&cfg)
	if err != nil {
		log.Fatalf("[-] Product error: %v", err)
	}

	sc, err := engine.PrepareScenario(&cfg, prod)
	if err != nil {
		log.Fatalf("[-] Scenario error: %v", err)
	}
	if cfg.GenerateScenario {
		return
	}
	// a scenario file may have changed the duration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	cfg.OutputVideo = *outputPtr
	if cfg.OutputVideo == "" {
		name := strings.ReplaceAll(strings.ToLower(sc.Product.Style().String()), " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join(outputDir, fmt.Sprintf("%s_%s.mp4", name, timestamp))
	}

	r := renderer.New(cfg.Width, cfg.Height)
	r.MeshStep = cfg.MeshStep
	project := engine.NewVideoProject(&cfg, sc, r, &video.FFmpegEncoder{Release: system.PutImage}, pickEffect(&cfg, sc))
	if err := setupBackdrop(&cfg, project); err != nil {
		log.Fatalf("[-] Backdrop error: %v", err)
	}

	link, err := share.NewLink(sc.Product).URL(cfg.ShareBaseURL)
	if err != nil {
		log.Fatalf("[-] Share link error: %v", err)
	}
	if cfg.QRPath != "" {
		if err := share.WriteQR(link, cfg.QRPath, share.DefaultQRSize); err != nil {
			log.Fatalf("[-] QR error: %v", err)
		}
	}
	printSummary(&cfg, sc, link)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := project.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatalf("[-] Interrupted")
		}
		log.Fatalf("[-] Project error: %v", err)
	}
}

func loadProduct(cfg *config.Config) (config.Product, error) {
	path := cfg.ProductPath
	if path == "" {
		latest, err := system.FindLatest(productDir, system.YAMLExtensions...)
		if err != nil {
			return config.Default(), nil
		}
		path = latest
		fmt.Printf("[*] Selected product: %s\n", path)
	}
	return config.LoadProduct(path)
}

func setupBackdrop(cfg *config.Config, project *engine.VideoProject) error {
	path := cfg.BackdropPath
	if path == "" {
		latest, err := system.FindLatest(backdropDir, system.BackdropExtensions...)
		if err != nil {
			return nil
		}
		path = latest
		fmt.Printf("[*] Selected backdrop: %s\n", path)
	}
	img, err := source.LoadBackdrop(path, cfg.BackdropPage, cfg.DPI)
	if err != nil {
		return err
	}
	project.Renderer.SetBackdrop(img)

	// without a fit the room would hide the photo
	fit := project.Renderer.Camera.FitWindow(project.Renderer.Backdrop().Bounds())
	if cfg.FitWindow {
		det, err := analyzer.NewDetector(cfg.Detector)
		if err != nil {
			return err
		}
		win, err := analyzer.FindWindow(project.Renderer.Backdrop(), det)
		switch {
		case errors.Is(err, analyzer.ErrNoWindow):
			fmt.Println("[!] No window found in the backdrop, using the whole frame")
		case err != nil:
			return err
		default:
			fmt.Printf("[*] Window found at %v (confidence %.2f)\n", win.Rect, win.Confidence)
			fit = project.Renderer.Camera.FitWindow(win.Rect)
		}
	}
	project.Fit = &fit
	return nil
}

// pickEffect breathes the zoom with the scenario's captions when there are
// any, and falls back to a single push-in.
func pickEffect(cfg *config.Config, sc *director.Scenario) effects.Effect {
	if cfg.ZoomPeak > 1 && len(sc.Captions()) > 1 {
		return effects.NewScenarioEffect(sc)
	}
	return &effects.DefaultEffect{}
}

func printSummary(cfg *config.Config, sc *director.Scenario, link string) {
	q := sc.Product.Quote()
	out := cfg.OutputVideo
	if cfg.StillPath != "" {
		out = cfg.StillPath
	}
	rows := [][2]string{
		{"Product", director.Describe(sc.Product)},
		{"Quote", fmt.Sprintf("%.2f m² · $%d", q.Area, q.Price)},
		{"Scenario", fmt.Sprintf("%d events over %.1fs", len(sc.Events), sc.Duration)},
		{"Output", out},
		{"AR link", link},
	}
	lines := []string{titleStyle.Render("Drapery preview " + cfg.BuildVersion)}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r[0]), valueStyle.Render(r[1])))
	}
	fmt.Println(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
