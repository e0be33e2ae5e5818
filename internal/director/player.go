package director

import (
	"github.com/ivlev/drapery/internal/animation"
	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/placement"
	"github.com/ivlev/drapery/internal/product"
	"github.com/ivlev/drapery/internal/scene"
)

// Player replays a validated scenario. It owns the configurator state the
// way a UI would and writes openness only as a target.
type Player struct {
	events  []Event
	product config.Product
	next    int
	ramp    animation.Track
}

func NewPlayer(sc *Scenario) *Player {
	return &Player{events: sc.Events, product: sc.Product}
}

// Product is the configurator state after the last Advance.
func (pl *Player) Product() config.Product { return pl.product }

// Done reports whether every event has been applied.
func (pl *Player) Done() bool { return pl.next >= len(pl.events) && len(pl.ramp) == 0 }

// Advance applies the events due by now, in order, and returns the product
// state to push to the instance this tick. Placement events go straight to
// the instance's placement controller.
func (pl *Player) Advance(now float64, in *scene.Instance) config.Product {
	for pl.next < len(pl.events) && pl.events[pl.next].Time <= now {
		e := pl.events[pl.next]
		pl.apply(e, in)
		logging.Logger().Debug("event applied", "kind", string(e.Kind), "time", e.Time)
		pl.next++
	}
	if len(pl.ramp) > 0 {
		pl.product.OpenAmount = pl.ramp.At(now, pl.product.OpenAmount)
		if now >= pl.ramp[len(pl.ramp)-1].Time {
			pl.ramp = nil
		}
	}
	return pl.product
}

func (pl *Player) apply(e Event, in *scene.Instance) {
	p := &pl.product
	switch e.Kind {
	case SetOpenness:
		target := animation.Clamp01(e.Value)
		if e.Ramp > 0 {
			pl.ramp = animation.NewTrack(
				animation.Keyframe{Time: e.Time, Value: p.OpenAmount},
				animation.Keyframe{Time: e.Time + e.Ramp, Value: target},
			)
			return
		}
		pl.ramp = nil
		p.OpenAmount = target
	case Drag:
		pl.ramp = nil
		p.OpenAmount = animation.ApplyDrag(p.Family, p.OpenAmount, e.DX, e.DY)
	case Toggle:
		pl.ramp = nil
		p.OpenAmount = animation.Toggle(p.OpenAmount)
	case SwitchFamily:
		if f, err := product.ParseFamily(e.Family); err == nil {
			p.Family = f
		}
	case SwitchStyle:
		f := p.Family
		if e.Family != "" {
			f, _ = product.ParseFamily(e.Family)
		}
		if s, err := product.ParseStyle(f, e.Style); err == nil {
			p.SetStyle(s)
		}
	case Resize:
		if e.Dimensions != nil {
			p.Dimensions = *e.Dimensions
		}
	case SetColor:
		p.Color = product.PresetColor(e.Color)
	case HitPose:
		if e.Pose != nil {
			in.Placement().SetHitPose(placement.Pose{
				Position: geometry.V3(e.Pose.X, e.Pose.Y, e.Pose.Z),
				Yaw:      e.Pose.Yaw,
			})
		}
	case Place:
		if !in.Placement().Place() {
			logging.Logger().Warn("place ignored", "mode", in.Placement().Mode().String())
		}
	case Rotate:
		in.Placement().Rotate()
	case ScaleUp:
		in.Placement().ScaleUp()
	case ScaleDown:
		in.Placement().ScaleDown()
	case ResetPlacement:
		in.Placement().Reset()
	}
}

// Caption is a text shown over a time window of the clip.
type Caption struct {
	Start, End float64
	Text       string
}

// Captions lists the scenario's captions. Each lasts until the next one or
// the end of the scenario.
func (s *Scenario) Captions() []Caption {
	var out []Caption
	for _, e := range s.Events {
		if e.Caption == "" {
			continue
		}
		if n := len(out); n > 0 {
			out[n-1].End = e.Time
		}
		out = append(out, Caption{Start: e.Time, End: s.Duration, Text: e.Caption})
	}
	return out
}
