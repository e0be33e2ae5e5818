// Package foldfield synthesizes the deformed unit meshes of fabric products.
//
// Every generator works on the unit square [-0.5,0.5]² with u = x+0.5 and
// v = y+0.5 (v = 0 at the hem, 1 at the rod) and displaces depth (Z) and,
// for drape puddling, height (Y). Results are cached per Key.
package foldfield

import (
	"math"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
)

// OpennessSteps is the quantization of openness used in cache keys.
const OpennessSteps = 128

// Segments is the tessellation of a generated mesh.
type Segments struct {
	Cols, Rows int
}

// Generator is implemented once per deformation family.
type Generator interface {
	Segments() Segments
	// DependsOnOpenness reports whether Generate reads its argument.
	DependsOnOpenness() bool
	// Generate builds a fresh mesh for openness in [0,1].
	Generate(open float64) *geometry.Grid
	// Bound is the largest absolute depth Generate can produce.
	Bound() float64
}

// For returns the generator of a style. Rigid slat styles have no fold
// field and report false.
func For(s product.Style) (Generator, bool) {
	p := product.ParamsFor(s)
	switch s := product.Canonical(s).(type) {
	case product.CurtainStyle:
		return curtain{p: p}, true
	case product.DrapeStyle:
		return drape{p: p}, true
	case product.BlindStyle:
		switch s {
		case product.Roman:
			return roman{p: p}, true
		case product.Roller:
			return flat{}, true
		}
	case product.ShadeStyle:
		switch s {
		case product.Pleated, product.Honeycomb:
			return zigzag{p: p}, true
		default:
			return flat{}, true
		}
	}
	return nil, false
}

// Quantize snaps openness to the cache grid, clamping to [0,1].
func Quantize(open float64) float64 {
	open = clamp01(open)
	return math.Round(open*OpennessSteps) / OpennessSteps
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

// deform builds a plane and lets fn rewrite each vertex from its (u, v).
func deform(seg Segments, fn func(u, v float64, p geometry.Vec3) geometry.Vec3) *geometry.Grid {
	g := geometry.NewPlane(seg.Cols, seg.Rows)
	for r := 0; r <= g.Rows; r++ {
		for c := 0; c <= g.Cols; c++ {
			p := g.At(r, c)
			g.Set(r, c, fn(p.X+0.5, p.Y+0.5, p))
		}
	}
	g.ComputeNormals()
	return g
}

// curtain: vertical folds held flat at the rod, deepening towards the hem.
type curtain struct{ p product.Params }

func (curtain) Segments() Segments      { return Segments{Cols: 80, Rows: 100} }
func (curtain) DependsOnOpenness() bool { return true }

func (c curtain) Bound() float64 {
	// wave+secondary peak below 1.25, gather 1.6, hem weight 0.3+0.7·fw.
	return 1.25 * 1.6 * (0.3 + 0.7*c.p.FabricWeight) * c.p.FoldDepth
}

func (c curtain) Generate(open float64) *geometry.Grid {
	open = clamp01(open)
	gather := 1.6 - 0.8*open
	return deform(c.Segments(), func(u, v float64, p geometry.Vec3) geometry.Vec3 {
		phase := u * math.Pi * c.p.FoldCount
		wave := math.Sin(phase)
		secondary := 0.25 * math.Sin(phase*2.1)

		top := 1.0
		if v > 0.9 {
			top = math.Pow((1-v)*10, 2)
		}
		pleat := 0.0
		if c.p.PinchPleat {
			pleat = math.Abs(math.Sin(phase*1.5)) * 0.4 * (1 - top)
		}
		weight := 0.3 + 0.7*math.Pow(1-v, 0.8)*c.p.FabricWeight

		p.Z = (wave + secondary + pleat) * c.p.FoldDepth * gather * top * weight
		return p
	})
}

// drape: heavy folds that deepen as the panel gathers, puddling on the floor.
type drape struct{ p product.Params }

func (drape) Segments() Segments      { return Segments{Cols: 64, Rows: 32} }
func (drape) DependsOnOpenness() bool { return true }

func (d drape) Bound() float64 {
	return 2.5*d.p.FoldDepth + d.p.PuddleAmount
}

func (d drape) Generate(open float64) *geometry.Grid {
	open = clamp01(open)
	intensity := 1 + 1.5*(1-open)
	return deform(d.Segments(), func(u, v float64, p geometry.Vec3) geometry.Vec3 {
		wave := math.Sin(u*math.Pi*d.p.FoldCount) * d.p.FoldDepth * intensity
		p.Z = wave * (0.2 + 0.8*(1-v))
		if v < 0.1 && d.p.PuddleAmount > 0 {
			k := (0.1 - v) * 10
			p.Z += math.Sin(k*math.Pi) * d.p.PuddleAmount
			p.Y += k * d.p.PuddleAmount * 0.5
		}
		return p
	})
}

// roman: one section of a roman blind, folding out as it is raised.
type roman struct{ p product.Params }

func (roman) Segments() Segments      { return Segments{Cols: 32, Rows: 16} }
func (roman) DependsOnOpenness() bool { return true }
func (r roman) Bound() float64        { return r.p.FoldDepth * 1.1 }

func (r roman) Generate(open float64) *geometry.Grid {
	open = clamp01(open)
	return deform(r.Segments(), func(_, v float64, p geometry.Vec3) geometry.Vec3 {
		p.Z = math.Sin(v*r.p.FoldCount*math.Pi) * r.p.FoldDepth * (1.1 - open)
		return p
	})
}

// zigzag: pleated and honeycomb shades, alternating fold rows compressed as
// the shade opens.
type zigzag struct{ p product.Params }

func (z zigzag) Segments() Segments    { return Segments{Cols: 1, Rows: int(z.p.FoldCount)} }
func (zigzag) DependsOnOpenness() bool { return true }
func (z zigzag) Bound() float64        { return z.p.FoldDepth }

func (z zigzag) Generate(open float64) *geometry.Grid {
	open = clamp01(open)
	seg := z.Segments()
	compression := 1 - 0.5*open
	g := geometry.NewPlane(seg.Cols, seg.Rows)
	for r := 0; r <= g.Rows; r++ {
		// fold index counted from the bottom rail
		k := g.Rows - r
		depth := -z.p.FoldDepth
		if k%2 == 0 {
			depth = z.p.FoldDepth
		}
		for c := 0; c <= g.Cols; c++ {
			p := g.At(r, c)
			p.Z = depth * compression
			g.Set(r, c, p)
		}
	}
	g.ComputeNormals()
	return g
}

// flat: roller, solar and bamboo fabric.
type flat struct{}

func (flat) Segments() Segments              { return Segments{Cols: 1, Rows: 1} }
func (flat) DependsOnOpenness() bool         { return false }
func (flat) Bound() float64                  { return 0 }
func (flat) Generate(float64) *geometry.Grid { return geometry.NewPlane(1, 1) }
