package effects

import (
	"strings"
	"testing"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
)

func params() config.SegmentParams {
	return config.SegmentParams{Width: 1280, Height: 720, FPS: 30, Duration: 6, FadeDuration: 0.5}
}

func TestDefaultEffect(t *testing.T) {
	no := func() bool { return false }
	yes := func() bool { return true }

	tests := []struct {
		name    string
		mutate  func(p *config.SegmentParams)
		probe   func() bool
		want    []string
		notWant []string
	}{
		{"plain", func(p *config.SegmentParams) {}, no,
			[]string{"pad=1280:720", "fade=t=in:st=0:d=0.500", "fade=t=out:st=5.500:d=0.500"},
			[]string{"zoompan", "drawtext"}},
		{"zoom", func(p *config.SegmentParams) { p.ZoomPeak = 1.2 }, no,
			[]string{"pad=2560:1440", "zoompan=z='if(lte(on,165),1.000000+(on-0)/165*(1.200000-1.000000),1.200000)'", "s=1280x720"},
			nil},
		{"title", func(p *config.SegmentParams) { p.Caption = "Velvet: 150 cm" }, yes,
			[]string{`drawtext=text='Velvet\: 150 cm'`},
			nil},
		{"title without drawtext", func(p *config.SegmentParams) { p.Caption = "x" }, no,
			nil, []string{"drawtext"}},
		{"fade too long", func(p *config.SegmentParams) { p.FadeDuration = 4 }, no,
			nil, []string{"fade="}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params()
			tt.mutate(&p)
			got := (&DefaultEffect{HasDrawtext: tt.probe}).GenerateFilter(p)
			t.Logf("filter: %s", got)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("filter lacks %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("filter should not contain %q", w)
				}
			}
		})
	}
}

func TestScenarioEffect(t *testing.T) {
	e := &ScenarioEffect{Captions: []director.Caption{
		{Start: 0.5, End: 2, Text: "one"},
		{Start: 2, End: 6, Text: "two"},
	}}
	p := params()
	p.ZoomPeak = 1.5
	got := e.GenerateFilter(p)
	t.Logf("filter: %s", got)

	// in over the first caption (frames 15..60), out over the second (60..180)
	for _, w := range []string{"if(lte(on,60),1.000000+(on-15)/45*(1.500000-1.000000)", "if(lte(on,180),1.500000+(on-60)/120*(1.000000-1.500000)"} {
		if !strings.Contains(got, w) {
			t.Errorf("filter lacks %q", w)
		}
	}

	p.ZoomPeak = 0
	if got := e.GenerateFilter(p); strings.Contains(got, "zoompan") {
		t.Errorf("no zoom without a peak: %s", got)
	}
}

func TestBuildZoomExpression(t *testing.T) {
	tests := []struct {
		name string
		keys animation.Track
		want string
	}{
		{"single", animation.NewTrack(animation.Keyframe{Time: 1, Value: 1.3}), "1.300000"},
		{"flat segment skipped", animation.NewTrack(
			animation.Keyframe{Time: 0, Value: 1},
			animation.Keyframe{Time: 0, Value: 1.1},
			animation.Keyframe{Time: 1, Value: 1.2},
		), "if(lte(on,30),1.100000+(on-0)/30*(1.200000-1.100000),1.200000)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildZoomExpression(tt.keys, 30); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
	if ZoomPanFilter(nil, 30, 10, 10) != "" {
		t.Error("empty track should give no filter")
	}
}

func TestEscapeText(t *testing.T) {
	if got := escapeText(`it's 50%: ok`); got != `it'\''s 50\%\: ok` {
		t.Errorf("got %s", got)
	}
}
