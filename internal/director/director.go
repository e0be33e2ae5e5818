package director

import (
	"fmt"
	"strings"

	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/product"
)

// MinScenarioDuration is the shortest clip a generated scenario fits into.
const MinScenarioDuration = 2.0

// Director generates demo scenarios for a product.
type Director struct {
	MinDwell float64 // Minimum time per step (seconds)
	MaxDwell float64 // Maximum time per step (seconds)
	Intro    float64 // Still time before the first step
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwell: 0.8,
		MaxDwell: 3.0,
		Intro:    0.5,
	}
}

// GenerateScenario shows one product: it closes, is dragged open in four
// steps and is finally toggled closed.
func (d *Director) GenerateScenario(p config.Product, duration float64) (*Scenario, error) {
	if duration < MinScenarioDuration {
		return nil, fmt.Errorf("duration %.2fs is shorter than %.1fs", duration, MinScenarioDuration)
	}
	const drags = 4
	dwell := d.calculateDwellTime(duration, drags+2)

	// one drag opens a quarter, whichever way the family is dragged
	drag := Event{Kind: Drag}
	if p.Family.Hanging() {
		drag.DX = 0.25 / animation.HorizontalDragGain
	} else {
		drag.DY = -0.25 / animation.VerticalDragGain
	}

	t := d.Intro
	events := []Event{{Time: t, Kind: SetOpenness, Value: 0, Caption: Describe(p)}}
	for i := 0; i < drags; i++ {
		t += dwell
		e := drag
		e.Time = t
		if i == 0 {
			e.Caption = dragHint(p.Family)
		}
		events = append(events, e)
	}
	t += dwell
	events = append(events, Event{Time: t, Kind: Toggle, Caption: "Double tap to toggle"})

	sc := &Scenario{
		Version:  ScenarioVersion,
		Duration: duration,
		Product:  p,
		Events:   clip(events, duration),
	}
	sc.Product.OpenAmount = 1
	return sc, sc.Validate()
}

// GenerateTour walks through every style of the product's family, opening
// each one after the switch.
func (d *Director) GenerateTour(p config.Product, duration float64) (*Scenario, error) {
	if duration < MinScenarioDuration {
		return nil, fmt.Errorf("duration %.2fs is shorter than %.1fs", duration, MinScenarioDuration)
	}
	styles := p.Family.Styles()
	dwell := d.calculateDwellTime(duration, len(styles))

	var events []Event
	t := d.Intro
	for _, s := range styles {
		events = append(events,
			Event{Time: t, Kind: SwitchStyle, Family: s.Family().String(), Style: s.String()},
			Event{Time: t, Kind: SetOpenness, Value: 0},
			Event{Time: t + dwell*0.1, Kind: SetOpenness, Value: 1, Ramp: dwell * 0.6, Caption: Describe(withStyle(p, s))},
		)
		t += dwell
	}

	sc := &Scenario{
		Version:  ScenarioVersion,
		Duration: duration,
		Product:  p,
		Events:   clip(events, duration),
	}
	return sc, sc.Validate()
}

// GenerateARScenario scans a floor for a moment, places the product and
// adjusts it with the AR controls.
func (d *Director) GenerateARScenario(p config.Product, duration float64) (*Scenario, error) {
	if duration < MinScenarioDuration {
		return nil, fmt.Errorf("duration %.2fs is shorter than %.1fs", duration, MinScenarioDuration)
	}
	dwell := d.calculateDwellTime(duration, 5)
	t := d.Intro
	events := []Event{
		{Time: 0, Kind: HitPose, Pose: &Pose{X: -0.6, Y: -1.2, Z: -2.5}},
		{Time: t, Kind: HitPose, Pose: &Pose{X: 0, Y: -1.2, Z: -3, Yaw: 0.2}, Caption: "Point at the floor"},
		{Time: t + dwell, Kind: Place, Caption: "Placed"},
		{Time: t + 2*dwell, Kind: Rotate},
		{Time: t + 3*dwell, Kind: ScaleUp},
		{Time: t + 3*dwell + 0.2, Kind: ScaleUp},
		{Time: t + 4*dwell, Kind: Toggle},
	}
	sc := &Scenario{
		Version:  ScenarioVersion,
		Duration: duration,
		AR:       true,
		Product:  p,
		Events:   clip(events, duration),
	}
	return sc, sc.Validate()
}

// Describe is the caption line of a product: style, family, size and price.
func Describe(p config.Product) string {
	s := p.Style()
	d := p.Dimensions.Sanitize()
	name := s.String()
	return fmt.Sprintf("%s%s %s %.0fx%.0f cm, %d",
		strings.ToUpper(name[:1]), name[1:], s.Family(), d.Width, d.Height, p.Quote().Price)
}

func dragHint(f product.Family) string {
	if f.Hanging() {
		return "Drag sideways to open"
	}
	return "Drag up to open"
}

func withStyle(p config.Product, s product.Style) config.Product {
	p.SetStyle(s)
	return p
}

// calculateDwellTime determines how long each step lasts
func (d *Director) calculateDwellTime(totalDuration float64, steps int) float64 {
	available := totalDuration - d.Intro
	if available <= 0 {
		available = totalDuration
	}

	dwellTime := available / float64(steps)
	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}
	return dwellTime
}

// clip drops events that would fire after the clip ends.
func clip(events []Event, duration float64) []Event {
	out := events[:0]
	for _, e := range events {
		if e.Time < duration {
			out = append(out, e)
		}
	}
	return out
}
