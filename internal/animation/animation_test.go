package animation

import (
	"math"
	"testing"

	"github.com/ivlev/drapery/internal/product"
)

func TestOpennessConvergesMonotonically(t *testing.T) {
	tests := []struct {
		name         string
		from, to, dt float64
	}{
		{"opening at 60Hz", 0, 1, 1.0 / 60},
		{"closing at 60Hz", 1, 0, 1.0 / 60},
		{"partial at 30Hz", 0.2, 0.7, 1.0 / 30},
		{"long frames", 1, 0.3, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOpenness(tt.from)
			o.SetTarget(tt.to)
			dist := math.Abs(tt.to - tt.from)
			for i := 0; i < 600; i++ {
				o.Step(tt.dt)
				d := math.Abs(o.Target() - o.Current())
				if d > dist {
					t.Fatalf("step %d: distance grew from %f to %f", i, dist, d)
				}
				if (tt.to-tt.from)*(o.Target()-o.Current()) < 0 {
					t.Fatalf("step %d: overshoot, current %f target %f", i, o.Current(), o.Target())
				}
				dist = d
			}
			if !o.Settled() {
				t.Errorf("expected to settle, current %f target %f", o.Current(), o.Target())
			}
		})
	}
}

func TestOpennessFrameRateIndependent(t *testing.T) {
	slow := NewOpenness(0)
	fast := NewOpenness(0)
	slow.SetTarget(1)
	fast.SetTarget(1)

	// compare at every 30Hz frame over two seconds
	for frame := 1; frame <= 60; frame++ {
		slow.Step(1.0 / 30)
		for i := 0; i < 4; i++ {
			fast.Step(1.0 / 120)
		}
		if diff := math.Abs(slow.Current() - fast.Current()); diff > 1e-3 {
			t.Fatalf("frame %d: 30Hz=%f 120Hz=%f differ by %g", frame, slow.Current(), fast.Current(), diff)
		}
	}
}

func TestOpennessIgnoresBadInput(t *testing.T) {
	o := NewOpenness(0.5)
	o.SetTarget(1)
	o.Step(0)
	o.Step(-1)
	o.Step(math.NaN())
	if o.Current() != 0.5 {
		t.Errorf("non-positive dt must not move current, got %f", o.Current())
	}
	o.SetTarget(math.NaN())
	if o.Target() != 1 {
		t.Errorf("NaN target must be ignored, got %f", o.Target())
	}
	o.SetTarget(7)
	if o.Target() != 1 {
		t.Errorf("target must clamp to 1, got %f", o.Target())
	}
	o.SetTarget(-3)
	if o.Target() != 0 {
		t.Errorf("target must clamp to 0, got %f", o.Target())
	}
}

func TestOpennessCapHolds(t *testing.T) {
	raw := 1 - math.Pow(SmoothingBase, ReferenceStep)
	tests := []struct {
		name   string
		filter Filter
	}{
		{"openness", OpennessFilter},
		{"sway", SwayFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Logf("raw step %f gain %.2f cap %.3f", raw, tt.filter.Gain, tt.filter.Cap)
			if raw*tt.filter.Gain <= tt.filter.Cap {
				t.Fatalf("gained step %f never reaches the cap %f", raw*tt.filter.Gain, tt.filter.Cap)
			}
			if s := tt.filter.Step(); s != tt.filter.Cap {
				t.Errorf("step = %f, want the cap %f", s, tt.filter.Cap)
			}
		})
	}
	if r := OpennessFilter.Retention(ReferenceStep); math.Abs(r-(1-OpennessFilter.Step())) > 1e-15 {
		t.Errorf("one reference step should retain 1-step, got %f", r)
	}
}

func TestSwayBoundedAndDecays(t *testing.T) {
	var s Sway
	for i := 0; i < 200; i++ {
		s.Step(50, 1.0/60)
		if math.Abs(s.Value()) > SwayLimit {
			t.Fatalf("sway %f exceeds limit", s.Value())
		}
	}
	if s.Value() >= 0 {
		t.Errorf("opening velocity should swing panels negatively, got %f", s.Value())
	}
	for i := 0; i < 2000; i++ {
		s.Step(0, 1.0/60)
	}
	if math.Abs(s.Value()) > 1e-6 {
		t.Errorf("sway should die out at rest, got %g", s.Value())
	}
	s.Reset()
	if s.Value() != 0 {
		t.Error("reset should zero the sway")
	}
}

func TestApplyDrag(t *testing.T) {
	tests := []struct {
		name   string
		family product.Family
		target float64
		dx, dy float64
		want   float64
	}{
		{"curtain right opens", product.Curtain, 0.2, 0.1, 0, 0.4},
		{"drape left closes", product.Drape, 0.5, -0.1, 0.3, 0.3},
		{"blind up opens", product.Blind, 0.2, 0.5, -0.1, 0.45},
		{"shade down closes", product.Shade, 0.5, 0, 0.1, 0.25},
		{"clamped", product.Curtain, 0.9, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyDrag(tt.family, tt.target, tt.dx, tt.dy)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestTrack(t *testing.T) {
	track := NewTrack(
		Keyframe{Time: 2, Value: 1},
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 4, Value: 0.5},
	)
	tests := []struct {
		time, want float64
	}{
		{-1, 0},
		{0, 0},
		{1, 0.5},
		{2, 1},
		{3, 0.75},
		{5, 0.5},
	}
	for _, tt := range tests {
		if got := track.At(tt.time, -1); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%.1f) = %f, want %f", tt.time, got, tt.want)
		}
	}
	if got := Track(nil).At(1, 0.3); got != 0.3 {
		t.Errorf("empty track should return fallback, got %f", got)
	}
}

func TestOpennessSettlingTime(t *testing.T) {
	o := NewOpenness(0)
	o.SetTarget(1)
	o.Step(1.0 / 60)
	if math.Abs(o.Current()-OpennessCap) > 1e-12 {
		t.Errorf("one nominal frame should cover the capped step, current %f", o.Current())
	}
	ticks := 1
	for !o.Settled() && ticks < 1000 {
		o.Step(1.0 / 60)
		ticks++
	}
	t.Logf("settled after %d ticks at 60Hz", ticks)
	// (1-cap)^n < epsilon gives 43 ticks
	if ticks < 40 || ticks > 46 {
		t.Errorf("full open settled after %d ticks, want about 43", ticks)
	}
}

func TestOpennessGettersOnValue(t *testing.T) {
	state := func() Openness { return NewOpenness(0.3) }
	if state().Current() != 0.3 || state().Target() != 0.3 || state().Velocity() != 0 || !state().Settled() {
		t.Error("a fresh state should rest at its value")
	}
}
