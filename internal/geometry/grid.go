package geometry

// Grid is a rectangular vertex arena indexed by (row, col). Row 0 is the top
// edge (y = +0.5) of the unit plane and col 0 the left edge (x = -0.5).
type Grid struct {
	Cols, Rows int // segment counts; vertices are (Cols+1)*(Rows+1)
	Pos        []Vec3
	Normals    []Vec3
}

// NewPlane returns a flat unit plane in the XY plane facing +Z. Segment
// counts below one are raised to one.
func NewPlane(cols, rows int) *Grid {
	cols = max(cols, 1)
	rows = max(rows, 1)
	g := &Grid{
		Cols:    cols,
		Rows:    rows,
		Pos:     make([]Vec3, (cols+1)*(rows+1)),
		Normals: make([]Vec3, (cols+1)*(rows+1)),
	}
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			i := g.Index(r, c)
			g.Pos[i] = Vec3{X: float64(c)/float64(cols) - 0.5, Y: 0.5 - float64(r)/float64(rows)}
			g.Normals[i] = Vec3{Z: 1}
		}
	}
	return g
}

func (g *Grid) Index(row, col int) int {
	return row*(g.Cols+1) + col
}

func (g *Grid) At(row, col int) Vec3 {
	return g.Pos[g.Index(row, col)]
}

func (g *Grid) Set(row, col int, v Vec3) {
	g.Pos[g.Index(row, col)] = v
}

// Quad is one cell of the grid given by its four corner indices in
// clockwise order from the top-left.
type Quad [4]int

// Quads calls fn for every cell, top row first.
func (g *Grid) Quads(fn func(q Quad)) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			fn(Quad{g.Index(r, c), g.Index(r, c+1), g.Index(r+1, c+1), g.Index(r+1, c)})
		}
	}
}

// Triangles returns the index list of the grid, two triangles per cell.
func (g *Grid) Triangles() [][3]int {
	tris := make([][3]int, 0, g.Rows*g.Cols*2)
	g.Quads(func(q Quad) {
		tris = append(tris, [3]int{q[0], q[3], q[1]}, [3]int{q[3], q[2], q[1]})
	})
	return tris
}

// ComputeNormals recomputes smooth vertex normals by accumulating the
// unnormalized face normals around each vertex.
func (g *Grid) ComputeNormals() {
	for i := range g.Normals {
		g.Normals[i] = Vec3{}
	}
	for _, t := range g.Triangles() {
		v0, v1, v2 := g.Pos[t[0]], g.Pos[t[1]], g.Pos[t[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		g.Normals[t[0]] = g.Normals[t[0]].Add(n)
		g.Normals[t[1]] = g.Normals[t[1]].Add(n)
		g.Normals[t[2]] = g.Normals[t[2]].Add(n)
	}
	for i := range g.Normals {
		g.Normals[i] = g.Normals[i].Normalize()
	}
}

// Bounds returns the axis-aligned box around all vertices.
func (g *Grid) Bounds() (lo, hi Vec3) {
	if len(g.Pos) == 0 {
		return
	}
	lo, hi = g.Pos[0], g.Pos[0]
	for _, p := range g.Pos[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}
