// Package product describes the closed catalogue of window coverings:
// families, their styles, the per-style constant tables that drive the
// geometry, dimensions and pricing.
package product

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFamily = errors.New("unknown product family")
	ErrUnknownStyle  = errors.New("unknown product style")
)

// Family is the product family a style belongs to.
type Family int

const (
	Curtain Family = iota
	Blind
	Shade
	Drape
)

// Families lists every family in catalogue order.
var Families = []Family{Curtain, Blind, Shade, Drape}

func (f Family) String() string {
	switch f {
	case Curtain:
		return "curtain"
	case Blind:
		return "blind"
	case Shade:
		return "shade"
	case Drape:
		return "drape"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	return f >= Curtain && f <= Drape
}

// Hanging reports whether the family hangs from a rod and gathers
// sideways (curtains, drapes) rather than rolling or lowering.
func (f Family) Hanging() bool {
	return f == Curtain || f == Drape
}

// DefaultStyle returns the first style of the family, used whenever a
// style value falls outside the closed set.
func (f Family) DefaultStyle() Style {
	switch f {
	case Blind:
		return Roller
	case Shade:
		return Honeycomb
	case Drape:
		return Classic
	}
	return Sheer
}

// Styles lists the styles of the family in catalogue order.
func (f Family) Styles() []Style {
	switch f {
	case Blind:
		return []Style{Roller, Venetian, Vertical, Roman}
	case Shade:
		return []Style{Honeycomb, Pleated, Solar, Bamboo}
	case Drape:
		return []Style{Classic, Modern, Luxury, Minimal}
	}
	return []Style{Sheer, Blackout, Velvet, Linen}
}

// ParseFamily maps a family name to its Family.
func ParseFamily(name string) (Family, error) {
	for _, f := range Families {
		if strings.EqualFold(strings.TrimSpace(name), f.String()) {
			return f, nil
		}
	}
	return Curtain, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Style is the tagged union over the four style enums. The set of
// implementations is closed to this package.
type Style interface {
	Family() Family
	String() string
	// Valid reports whether the value is one of the named variants.
	Valid() bool
	isStyle()
}

// ParseStyle maps a style name within a family to its Style.
func ParseStyle(f Family, name string) (Style, error) {
	for _, s := range f.Styles() {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, nil
		}
	}
	return f.DefaultStyle(), fmt.Errorf("%w: %q for %s", ErrUnknownStyle, name, f)
}

// Canonical returns s unchanged when it is valid and the family default
// otherwise. A nil style resolves to the curtain default.
func Canonical(s Style) Style {
	if s == nil {
		return Curtain.DefaultStyle()
	}
	if !s.Valid() {
		return s.Family().DefaultStyle()
	}
	return s
}

type CurtainStyle int

const (
	Sheer CurtainStyle = iota
	Blackout
	Velvet
	Linen
)

func (CurtainStyle) Family() Family { return Curtain }
func (CurtainStyle) isStyle()       {}
func (s CurtainStyle) Valid() bool  { return s >= Sheer && s <= Linen }

func (s CurtainStyle) String() string {
	switch s {
	case Sheer:
		return "sheer"
	case Blackout:
		return "blackout"
	case Velvet:
		return "velvet"
	case Linen:
		return "linen"
	}
	return fmt.Sprintf("curtain(%d)", int(s))
}

type BlindStyle int

const (
	Roller BlindStyle = iota
	Venetian
	Vertical
	Roman
)

func (BlindStyle) Family() Family { return Blind }
func (BlindStyle) isStyle()       {}
func (s BlindStyle) Valid() bool  { return s >= Roller && s <= Roman }

func (s BlindStyle) String() string {
	switch s {
	case Roller:
		return "roller"
	case Venetian:
		return "venetian"
	case Vertical:
		return "vertical"
	case Roman:
		return "roman"
	}
	return fmt.Sprintf("blind(%d)", int(s))
}

type ShadeStyle int

const (
	Honeycomb ShadeStyle = iota
	Pleated
	Solar
	Bamboo
)

func (ShadeStyle) Family() Family { return Shade }
func (ShadeStyle) isStyle()       {}
func (s ShadeStyle) Valid() bool  { return s >= Honeycomb && s <= Bamboo }

func (s ShadeStyle) String() string {
	switch s {
	case Honeycomb:
		return "honeycomb"
	case Pleated:
		return "pleated"
	case Solar:
		return "solar"
	case Bamboo:
		return "bamboo"
	}
	return fmt.Sprintf("shade(%d)", int(s))
}

type DrapeStyle int

const (
	Classic DrapeStyle = iota
	Modern
	Luxury
	Minimal
)

func (DrapeStyle) Family() Family { return Drape }
func (DrapeStyle) isStyle()       {}
func (s DrapeStyle) Valid() bool  { return s >= Classic && s <= Minimal }

func (s DrapeStyle) String() string {
	switch s {
	case Classic:
		return "classic"
	case Modern:
		return "modern"
	case Luxury:
		return "luxury"
	case Minimal:
		return "minimal"
	}
	return fmt.Sprintf("drape(%d)", int(s))
}
