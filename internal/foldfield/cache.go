package foldfield

import (
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/logging"
	"github.com/ivlev/drapery/internal/product"
)

// Key identifies a generated field. Openness is the quantized value for
// openness-dependent generators and zero otherwise.
type Key struct {
	Style    product.Style
	Segments Segments
	Openness float64
}

// KeyFor builds the cache key of a style at an openness.
func KeyFor(s product.Style, open float64) (Key, Generator, bool) {
	s = product.Canonical(s)
	gen, ok := For(s)
	if !ok {
		return Key{Style: s}, nil, false
	}
	k := Key{Style: s, Segments: gen.Segments()}
	if gen.DependsOnOpenness() {
		k.Openness = Quantize(open)
	}
	return k, gen, true
}

// Field is an immutable generated mesh. Callers must not modify the grid.
type Field struct {
	key   Key
	grid  *geometry.Grid
	bound float64
}

func (f *Field) Key() Key             { return f.key }
func (f *Field) Grid() *geometry.Grid { return f.grid }
func (f *Field) Bound() float64       { return f.bound }

// Cache holds the last field of one instance.
type Cache struct {
	field  *Field
	hits   int
	misses int
}

// Get returns the field for s at open, regenerating only when the key
// changes. It returns nil for styles without a field.
func (c *Cache) Get(s product.Style, open float64) *Field {
	key, gen, ok := KeyFor(s, open)
	if !ok {
		c.field = nil
		return nil
	}
	if c.field != nil && c.field.key == key {
		c.hits++
		return c.field
	}

	c.misses++
	c.field = &Field{key: key, grid: gen.Generate(key.Openness), bound: gen.Bound()}
	logging.Logger().Debug("fold field recomputed",
		"style", key.Style.String(),
		"segments", key.Segments,
		"openness", key.Openness)
	return c.field
}

// Reset drops the cached field.
func (c *Cache) Reset() {
	c.field = nil
}

// Stats returns the cache hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
