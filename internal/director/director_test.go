package director

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/placement"
	"github.com/ivlev/drapery/internal/product"
	"github.com/ivlev/drapery/internal/scene"
)

// play runs a scenario at fps and returns the player and instance.
func play(t *testing.T, sc *Scenario, fps int) (*Player, *scene.Instance) {
	t.Helper()
	pl := NewPlayer(sc)
	in := scene.NewInstance(sc.Product)
	if sc.AR {
		in.EnableAR(true)
	}
	dt := 1 / float64(fps)
	frames := int(sc.Duration * float64(fps))
	for i := 0; i <= frames; i++ {
		now := float64(i) * dt
		in.Update(pl.Advance(now, in), dt)
	}
	return pl, in
}

func TestGenerateScenario(t *testing.T) {
	director := NewDirector()

	sc, err := director.GenerateScenario(config.Default(), 10)
	if err != nil {
		t.Fatalf("GenerateScenario failed: %v", err)
	}
	if sc.Version != ScenarioVersion {
		t.Errorf("Expected version %s, got %s", ScenarioVersion, sc.Version)
	}
	if len(sc.Events) != 6 {
		t.Fatalf("Expected close + 4 drags + toggle, got %d events", len(sc.Events))
	}
	if got := sc.Events[0].Caption; got != "Sheer curtain 150x200 cm, 150" {
		t.Errorf("unexpected caption %q", got)
	}
	for i, e := range sc.Events {
		t.Logf("Event %d: time=%.2fs kind=%s dx=%.3f dy=%.3f", i, e.Time, e.Kind, e.DX, e.DY)
	}

	// all four drags open the curtain fully before the toggle
	pl := NewPlayer(sc)
	in := scene.NewInstance(sc.Product)
	last := sc.Events[len(sc.Events)-1]
	p := pl.Advance(last.Time-0.01, in)
	if math.Abs(p.OpenAmount-1) > 1e-9 {
		t.Errorf("after the drags the target should be 1, got %f", p.OpenAmount)
	}
	if p = pl.Advance(last.Time, in); p.OpenAmount != 0 {
		t.Errorf("toggle should close, got %f", p.OpenAmount)
	}
}

func TestGenerateScenarioDragDirection(t *testing.T) {
	p := config.Default()
	p.SetStyle(product.Roller)
	sc, err := NewDirector().GenerateScenario(p, 8)
	if err != nil {
		t.Fatal(err)
	}
	drag := sc.Events[1]
	if drag.Kind != Drag || drag.DX != 0 || drag.DY >= 0 {
		t.Errorf("blinds open by dragging up, got %+v", drag)
	}
}

func TestGenerateScenarioTooShort(t *testing.T) {
	d := NewDirector()
	if _, err := d.GenerateScenario(config.Default(), 1); err == nil {
		t.Error("expected an error for a too short scenario")
	}
	if _, err := d.GenerateTour(config.Default(), 0); err == nil {
		t.Error("expected an error for a zero length tour")
	}
}

func TestGenerateTour(t *testing.T) {
	p := config.Default()
	p.SetStyle(product.Pleated)
	sc, err := NewDirector().GenerateTour(p, 12)
	if err != nil {
		t.Fatalf("GenerateTour failed: %v", err)
	}
	if len(sc.Events) != 12 {
		t.Fatalf("expected 3 events per style, got %d", len(sc.Events))
	}

	pl, in := play(t, sc, 30)
	if pl.Product().Style() != product.Bamboo || in.Style() != product.Bamboo {
		t.Errorf("tour should end on bamboo, got %v / %v", pl.Product().Style(), in.Style())
	}
	if !pl.Done() {
		t.Error("every event should have been applied")
	}
	if math.Abs(in.Openness().Current()-1) > 0.01 {
		t.Errorf("last style should be open, current %f", in.Openness().Current())
	}
}

func TestGenerateARScenario(t *testing.T) {
	sc, err := NewDirector().GenerateARScenario(config.Default(), 10)
	if err != nil {
		t.Fatalf("GenerateARScenario failed: %v", err)
	}
	_, in := play(t, sc, 30)
	c := in.Placement()
	if c.Mode() != placement.Placed {
		t.Fatalf("product should be placed, mode %v", c.Mode())
	}
	if math.Abs(c.Scale()-0.7) > 1e-9 {
		t.Errorf("two scale ups from 0.5 should give 0.7, got %f", c.Scale())
	}
	tr, _ := c.Transform()
	if math.Abs(tr.Rotation.Y-(0.2+placement.RotateStep)) > 1e-3 {
		t.Errorf("yaw %f, want %f", tr.Rotation.Y, 0.2+placement.RotateStep)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		wantErr error
	}{
		{"empty", nil, ErrNoEvents},
		{"unknown kind", []Event{{Kind: "wave"}}, ErrUnknownEvent},
		{"style of another family", []Event{{Kind: SwitchStyle, Style: "venetian"}}, product.ErrUnknownStyle},
		{"unknown family", []Event{{Kind: SwitchFamily, Family: "awning"}}, product.ErrUnknownFamily},
		{"style after family switch", []Event{
			{Time: 2, Kind: SwitchStyle, Style: "venetian"},
			{Time: 1, Kind: SwitchFamily, Family: "blind"},
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &Scenario{Product: config.Default(), Events: tt.events}
			err := sc.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := &Scenario{Product: config.Default(), Events: []Event{{Kind: Resize}, {Kind: HitPose}, {Kind: SetColor, Color: "plaid"}}}
	for i := range bad.Events {
		sc := &Scenario{Product: bad.Product, Events: bad.Events[i : i+1]}
		if err := sc.Validate(); err == nil {
			t.Errorf("event %+v should be rejected", bad.Events[i])
		}
	}
}

func TestPlayerRamp(t *testing.T) {
	p := config.Default()
	p.OpenAmount = 0
	sc := &Scenario{Duration: 4, Product: p, Events: []Event{
		{Time: 1, Kind: SetOpenness, Value: 1, Ramp: 2},
	}}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	pl := NewPlayer(sc)
	in := scene.NewInstance(p)

	if got := pl.Advance(0.5, in).OpenAmount; got != 0 {
		t.Errorf("before the ramp: %f", got)
	}
	if got := pl.Advance(2, in).OpenAmount; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ramp midpoint: %f, want 0.5", got)
	}
	if pl.Done() {
		t.Error("player is not done while ramping")
	}
	if got := pl.Advance(3, in).OpenAmount; got != 1 {
		t.Errorf("ramp end: %f", got)
	}
	if !pl.Done() {
		t.Error("player should be done")
	}
}

func TestPlayerDragCancelsRamp(t *testing.T) {
	p := config.Default()
	p.OpenAmount = 0
	sc := &Scenario{Duration: 4, Product: p, Events: []Event{
		{Time: 0, Kind: SetOpenness, Value: 1, Ramp: 4},
		{Time: 1, Kind: Drag, DX: -0.5},
	}}
	sc.Validate()
	pl := NewPlayer(sc)
	in := scene.NewInstance(p)
	pl.Advance(0.9, in)
	got := pl.Advance(1, in).OpenAmount
	if got != 0 {
		t.Errorf("drag should take over from the ramp, target %f", got)
	}
	if got := pl.Advance(2, in).OpenAmount; got != 0 {
		t.Errorf("cancelled ramp must not resume, target %f", got)
	}
}

func TestPlayerProductEvents(t *testing.T) {
	dims := product.Dimensions{Width: 300, Height: 120}
	sc := &Scenario{Duration: 3, Product: config.Default(), Events: []Event{
		{Time: 0, Kind: SwitchFamily, Family: "drape"},
		{Time: 1, Kind: Resize, Dimensions: &dims},
		{Time: 1, Kind: SetColor, Color: "Navy"},
		{Time: 2, Kind: SwitchStyle, Family: "shade", Style: "solar"},
	}}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	pl := NewPlayer(sc)
	in := scene.NewInstance(sc.Product)

	if p := pl.Advance(0, in); p.Style() != product.Classic {
		t.Errorf("family switch should select the remembered drape style, got %v", p.Style())
	}
	p := pl.Advance(2, in)
	if p.Dimensions != dims || p.Color != "#2c3e50" || p.Style() != product.Solar {
		t.Errorf("unexpected product %+v", p)
	}
}

func TestCaptions(t *testing.T) {
	sc := &Scenario{Duration: 10, Events: []Event{
		{Time: 0, Kind: Toggle, Caption: "one"},
		{Time: 2, Kind: Toggle},
		{Time: 4, Kind: Toggle, Caption: "two"},
	}}
	got := sc.Captions()
	want := []Caption{{0, 4, "one"}, {4, 10, "two"}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("caption %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScenarioWriteRead(t *testing.T) {
	sc, err := NewDirector().GenerateARScenario(config.Default(), 6)
	if err != nil {
		t.Fatal(err)
	}

	tmpFile := filepath.Join(t.TempDir(), "nested", "scenario.yaml")
	if err := WriteScenario(sc, tmpFile); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	read, err := ReadScenario(tmpFile)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}
	if read.Version != sc.Version || !read.AR || read.Product != sc.Product {
		t.Errorf("header mismatch: %+v", read)
	}
	if len(read.Events) != len(sc.Events) {
		t.Fatalf("Event count mismatch: expected %d, got %d", len(sc.Events), len(read.Events))
	}
	if *read.Events[1].Pose != *sc.Events[1].Pose {
		t.Errorf("pose mismatch: %+v vs %+v", read.Events[1].Pose, sc.Events[1].Pose)
	}
}
