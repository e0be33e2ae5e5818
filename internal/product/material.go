package product

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/gogpu/gg"
)

// Texture is the surface finish of blinds and shades.
type Texture int

const (
	Fabric Texture = iota
	Smooth
	Woven
)

func (t Texture) String() string {
	switch t {
	case Smooth:
		return "smooth"
	case Woven:
		return "woven"
	}
	return "fabric"
}

// ParseTexture maps a texture name to its Texture; unknown names are fabric.
func ParseTexture(name string) Texture {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "smooth":
		return Smooth
	case "woven":
		return Woven
	}
	return Fabric
}

// MountType says whether the product sits inside or outside the window
// frame.
type MountType int

const (
	OutsideMount MountType = iota
	InsideMount
)

func (m MountType) String() string {
	if m == InsideMount {
		return "inside"
	}
	return "outside"
}

func ParseMountType(name string) MountType {
	if strings.EqualFold(strings.TrimSpace(name), "inside") {
		return InsideMount
	}
	return OutsideMount
}

// InsideMountInset is the fraction trimmed from each side of an inside
// mounted product.
const InsideMountInset = 0.02

// Fit returns the scene scale after applying the mount inset.
func (m MountType) Fit(s SceneScale) SceneScale {
	if m != InsideMount {
		return s
	}
	k := 1 - 2*InsideMountInset
	return SceneScale{Width: s.Width * k, Height: s.Height * k}
}

// Material is a renderer-agnostic surface description.
type Material struct {
	Color        gg.RGBA
	Opacity      float64
	Roughness    float64
	Metalness    float64
	Sheen        float64
	Transmission float64
	Clearcoat    float64
	DoubleSided  bool
	DepthWrite   bool
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1 || m.Transmission > 0
}

// FabricMaterial is the surface of the moving part of a product: curtain or
// drape panels, blind slats and shade fabric.
func FabricMaterial(s Style, color string, opacity float64, tex Texture) Material {
	c := ParseColor(color)
	opacity = clamp01(opacity)
	m := Material{Color: c, Opacity: 1, DoubleSided: true, DepthWrite: true}

	switch s := Canonical(s).(type) {
	case CurtainStyle:
		switch s {
		case Sheer:
			m.Opacity = math.Min(opacity*0.7, 0.8)
			m.Roughness, m.Transmission, m.Sheen = 0.25, 0.9, 0.3
			m.DoubleSided, m.DepthWrite = false, false
		case Blackout:
			m.Roughness, m.Sheen, m.Clearcoat = 0.92, 0.2, 0.05
		case Velvet:
			m.Roughness, m.Sheen, m.Clearcoat = 0.85, 1, 0.1
		default:
			m.Opacity = math.Min(opacity, 0.98)
			m.Roughness, m.Sheen = 0.9, 0.4
		}
	case DrapeStyle:
		m.Opacity = opacity
		switch s {
		case Luxury:
			m.Roughness, m.Sheen, m.Clearcoat = 0.6, 1, 0.2
		case Modern, Minimal:
			m.Roughness = 0.9
		default:
			m.Roughness, m.Sheen = 0.8, 0.4
		}
	case BlindStyle:
		m.Roughness, m.Metalness, m.Clearcoat = blindFinish(tex)
		switch s {
		case Roller:
			m.Transmission, m.Opacity = 0.2, 0.95
		case Vertical:
			m.Transmission, m.Opacity = 0.1, 0.9
		case Roman:
			m.Transmission, m.Opacity = 0.2, 0.98
		}
	case ShadeStyle:
		m.Roughness, m.Metalness = shadeFinish(tex)
		switch s {
		case Honeycomb:
			m.Transmission, m.Opacity = 0.2, 0.9
		case Pleated:
			m.Transmission = 0.4
		case Solar:
			m.Transmission, m.Opacity = 0.7, 0.8
		case Bamboo:
			m.Transmission, m.Opacity, m.Roughness = 0.1, 0.95, 0.9
		}
	}
	return m
}

func blindFinish(t Texture) (roughness, metalness, clearcoat float64) {
	switch t {
	case Smooth:
		return 0.3, 0.2, 0.5
	case Woven:
		return 0.9, 0, 0
	}
	return 0.7, 0, 0
}

func shadeFinish(t Texture) (roughness, metalness float64) {
	switch t {
	case Smooth:
		return 0.4, 0.1
	case Woven:
		return 0.9, 0
	}
	return 0.8, 0
}

// Metal returns an opaque hardware material.
func Metal(hex string, metalness, roughness float64) Material {
	return Material{
		Color:      ParseColor(hex),
		Opacity:    1,
		Metalness:  metalness,
		Roughness:  roughness,
		DepthWrite: true,
	}
}

// Painted returns an opaque non-metallic material.
func Painted(hex string, roughness float64) Material {
	return Material{Color: ParseColor(hex), Opacity: 1, Roughness: roughness, DepthWrite: true}
}

// Glass is the window pane behind every product.
var Glass = Material{
	Color:        gg.Hex("#cce6ff"),
	Opacity:      0.4,
	Roughness:    0.1,
	Transmission: 0.9,
	DoubleSided:  true,
}

// Gold and black rod finishes of drapes.
const (
	GoldHex  = "#d4af37"
	BlackHex = "#222222"
)

// RodFinish returns the rod and finial material of a drape style.
func RodFinish(s DrapeStyle) Material {
	if s == Classic || s == Luxury {
		m := Metal(GoldHex, 1, 0.2)
		m.Clearcoat = 1
		return m
	}
	return Metal(BlackHex, 0.8, 0.4)
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether s is a #rrggbb color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// ParseColor decodes a #rrggbb color; anything else is white.
func ParseColor(s string) gg.RGBA {
	if !ValidColor(s) {
		return gg.Hex(DefaultColor)
	}
	return gg.Hex(s)
}

// HexString formats c as #rrggbb.
func HexString(c gg.RGBA) string {
	b := func(v float64) int { return int(math.Round(clamp01(v) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
