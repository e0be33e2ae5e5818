package director

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/product"
)

const ScenarioVersion = "1.0"

var (
	ErrNoEvents     = errors.New("scenario has no events")
	ErrUnknownEvent = errors.New("unknown scenario event")
)

// Scenario is a scripted configurator session: a starting product and the
// input events applied to it over time.
type Scenario struct {
	Version  string         `yaml:"version"`
	Duration float64        `yaml:"duration"` // seconds
	AR       bool           `yaml:"ar,omitempty"`
	Product  config.Product `yaml:"product"`
	Events   []Event        `yaml:"events"`
}

// EventKind names an input event.
type EventKind string

const (
	SetOpenness    EventKind = "set_openness"
	Drag           EventKind = "drag"
	Toggle         EventKind = "toggle"
	SwitchStyle    EventKind = "switch_style"
	SwitchFamily   EventKind = "switch_family"
	Resize         EventKind = "resize"
	SetColor       EventKind = "set_color"
	HitPose        EventKind = "hit_pose"
	Place          EventKind = "place"
	Rotate         EventKind = "rotate"
	ScaleUp        EventKind = "scale_up"
	ScaleDown      EventKind = "scale_down"
	ResetPlacement EventKind = "reset_placement"
)

var eventKinds = []EventKind{
	SetOpenness, Drag, Toggle, SwitchStyle, SwitchFamily, Resize, SetColor,
	HitPose, Place, Rotate, ScaleUp, ScaleDown, ResetPlacement,
}

// Event is one input at a point in time. Only the fields of its kind are
// read.
type Event struct {
	Time       float64             `yaml:"time"`
	Kind       EventKind           `yaml:"kind"`
	Value      float64             `yaml:"value,omitempty"` // set_openness target
	Ramp       float64             `yaml:"ramp,omitempty"`  // set_openness: seconds to reach Value
	DX         float64             `yaml:"dx,omitempty"`    // drag, viewport-normalized
	DY         float64             `yaml:"dy,omitempty"`
	Family     string              `yaml:"family,omitempty"`
	Style      string              `yaml:"style,omitempty"`
	Color      string              `yaml:"color,omitempty"` // #rrggbb or a preset name
	Dimensions *product.Dimensions `yaml:"dimensions,omitempty"`
	Pose       *Pose               `yaml:"pose,omitempty"`
	Caption    string              `yaml:"caption,omitempty"`
}

// Pose is a hit-test result in scene units.
type Pose struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

// Validate sorts the events by time, keeping the file order of simultaneous
// events, and checks their kinds and arguments. Styles are checked against
// the family active when the event fires.
func (s *Scenario) Validate() error {
	if len(s.Events) == 0 {
		return ErrNoEvents
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Time < s.Events[j].Time })

	family := s.Product.Family
	for i, e := range s.Events {
		if err := e.validate(family); err != nil {
			return fmt.Errorf("event %d at %.2fs: %w", i, e.Time, err)
		}
		if e.Kind == SwitchFamily || e.Kind == SwitchStyle && e.Family != "" {
			family, _ = product.ParseFamily(e.Family)
		}
	}
	return nil
}

func (e Event) validate(family product.Family) error {
	known := false
	for _, k := range eventKinds {
		known = known || e.Kind == k
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Kind)
	}
	if e.Time < 0 {
		return fmt.Errorf("negative time")
	}

	switch e.Kind {
	case SwitchFamily:
		_, err := product.ParseFamily(e.Family)
		return err
	case SwitchStyle:
		f := family
		if e.Family != "" {
			var err error
			if f, err = product.ParseFamily(e.Family); err != nil {
				return err
			}
		}
		_, err := product.ParseStyle(f, e.Style)
		return err
	case Resize:
		if e.Dimensions == nil {
			return fmt.Errorf("resize without dimensions")
		}
	case HitPose:
		if e.Pose == nil {
			return fmt.Errorf("hit_pose without pose")
		}
	case SetColor:
		if c := product.PresetColor(e.Color); !product.ValidColor(c) {
			return fmt.Errorf("invalid color %q", e.Color)
		}
	}
	return nil
}
