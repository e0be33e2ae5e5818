// Package effects builds the ffmpeg post-filter chain applied while a
// preview clip is encoded.
package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
	"github.com/ivlev/drapery/internal/system"
)

type Effect interface {
	GenerateFilter(params config.SegmentParams) string
}

// DefaultEffect fades the clip in and out, optionally pushes in slowly to
// ZoomPeak and overlays the clip caption as a title.
type DefaultEffect struct {
	// HasDrawtext reports whether the title can be drawn; nil asks ffmpeg.
	HasDrawtext func() bool
}

func (e *DefaultEffect) GenerateFilter(p config.SegmentParams) string {
	var zoom animation.Track
	if p.ZoomPeak > 1 {
		end := max(p.Duration-p.FadeDuration, p.Duration/2)
		zoom = animation.NewTrack(
			animation.Keyframe{Time: 0, Value: 1},
			animation.Keyframe{Time: end, Value: p.ZoomPeak},
		)
	}
	filters := chain(p, zoom)
	if p.Caption != "" && drawtext(e.HasDrawtext) {
		filters = append(filters, titleFilter(p.Caption))
	}
	return strings.Join(filters, ",")
}

// ScenarioEffect breathes the zoom with the scenario's captions: it pushes
// in over one caption and eases back out over the next.
type ScenarioEffect struct {
	Captions []director.Caption
}

func NewScenarioEffect(sc *director.Scenario) *ScenarioEffect {
	return &ScenarioEffect{Captions: sc.Captions()}
}

func (e *ScenarioEffect) GenerateFilter(p config.SegmentParams) string {
	var zoom animation.Track
	if p.ZoomPeak > 1 && len(e.Captions) > 0 {
		keys := []animation.Keyframe{{Time: 0, Value: 1}}
		level := 1.0
		for _, c := range e.Captions {
			end := min(c.End, p.Duration)
			if end <= c.Start {
				continue
			}
			keys = append(keys, animation.Keyframe{Time: c.Start, Value: level})
			if level == 1 {
				level = p.ZoomPeak
			} else {
				level = 1
			}
			keys = append(keys, animation.Keyframe{Time: end, Value: level})
		}
		zoom = animation.NewTrack(keys...)
	}
	return strings.Join(chain(p, zoom), ",")
}

// chain is the fit, zoom and fade part shared by the effects.
func chain(p config.SegmentParams, zoom animation.Track) []string {
	w, h := p.Width, p.Height
	if len(zoom) > 0 {
		// zoom from a doubled frame to keep detail
		w, h = w*2, h*2
	}
	filters := []string{fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		w, h, w, h,
	)}
	if z := ZoomPanFilter(zoom, p.FPS, p.Width, p.Height); z != "" {
		filters = append(filters, z)
	}
	if f := p.FadeDuration; f > 0 && p.Duration > 2*f {
		filters = append(filters,
			fmt.Sprintf("fade=t=in:st=0:d=%.3f", f),
			fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", p.Duration-f, f),
		)
	}
	return filters
}

func drawtext(probe func() bool) bool {
	if probe == nil {
		return system.CheckFilterSupport("drawtext")
	}
	return probe()
}

func titleFilter(text string) string {
	return fmt.Sprintf("drawtext=text='%s':x=(w-text_w)/2:y=h*0.06:fontsize=h/22:fontcolor=white:box=1:boxcolor=black@0.45:boxborderw=10",
		escapeText(text))
}

// escapeText quotes characters drawtext treats specially inside '...'.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `'\''`, `:`, `\:`, `%`, `\%`)
	return r.Replace(s)
}
