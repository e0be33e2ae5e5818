package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/drapery/internal/config"
)

// FramePattern names the PNG frames written next to a clip.
const FramePattern = "frame_%05d.png"

type VideoEncoder interface {
	// EncodeSegment streams frames into one clip until the channel closes.
	EncodeSegment(ctx context.Context, frames <-chan *image.RGBA, videoPath string, params config.SegmentParams, encoderName string, quality int) error
	// EncodeSequence encodes a directory of PNG frames named by FramePattern.
	EncodeSequence(ctx context.Context, framesDir string, videoPath string, params config.SegmentParams, encoderName string, quality int) error
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	Binary  string              // defaults to "ffmpeg"
	Release func(f *image.RGBA) // called with every frame once written
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

func (e *FFmpegEncoder) EncodeSegment(
	ctx context.Context,
	frames <-chan *image.RGBA,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) error {
	if err := os.MkdirAll(filepath.Dir(videoPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	input := []string{
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	args := e.buildFFmpegArgs(input, videoPath, params, encoderName, quality)

	cmd := exec.CommandContext(ctx, e.binary(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	var writeErr error
	for f := range frames {
		if writeErr == nil {
			writeErr = e.writeRawRGBA(stdin, f, params.Width, params.Height)
		}
		if e.Release != nil {
			e.Release(f)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w: %s", err, tail(stderr.String()))
	}
	if writeErr != nil {
		return fmt.Errorf("write raw error: %w", writeErr)
	}
	return nil
}

func (e *FFmpegEncoder) EncodeSequence(
	ctx context.Context,
	framesDir string,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) error {
	input := []string{
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", filepath.Join(framesDir, FramePattern),
	}
	args := e.buildFFmpegArgs(input, videoPath, params, encoderName, quality)

	cmd := exec.CommandContext(ctx, e.binary(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg sequence error: %v, output: %s", err, tail(string(out)))
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(
	input []string,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) []string {
	args := append([]string{"-y"}, input...)
	if params.Filter != "" {
		args = append(args, "-vf", params.Filter)
	}
	args = append(args,
		"-t", fmt.Sprintf("%f", params.Duration),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	)
	args = append(args, qualityArgs(encoderName, quality)...)
	return append(args, videoPath)
}

// qualityArgs maps one quality number onto each encoder's rate control.
func qualityArgs(encoderName string, quality int) []string {
	if quality <= 0 {
		quality = DefaultQuality(encoderName)
	}
	switch encoderName {
	case "h264_videotoolbox":
		// kbit/s: 75 gives 7.5 Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// DefaultQuality is the quality used when none is given.
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// writeRawRGBA writes one tightly packed frame. Frames of another size are
// scaled to fit.
func (e *FFmpegEncoder) writeRawRGBA(w io.Writer, img *image.RGBA, width, height int) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height || img.Stride != width*4 || b.Min != (image.Point{}) {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		img = dst
	}
	_, err := w.Write(img.Pix)
	return err
}

// tail keeps the last lines of ffmpeg's output for error messages.
func tail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
