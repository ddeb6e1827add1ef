package grid

import (
	"math"
)

// Definition describes a uniform, georeferenced single-band raster in a
// projected (UTM) coordinate system. Cell ids are row-major, 0-based.
type Definition struct {
	Xul, Yul float64 // upper-left corner of the upper-left cell
	Cs       float64 // cell width (m)
	Nr, Nc   int     // rows, columns
	Nodata   float64 // no-data sentinel
	Zone     int     // UTM zone number
	North    bool    // northern hemisphere
}

// Ncells total cell count
func (gd *Definition) Ncells() int { return gd.Nr * gd.Nc }

// CellArea cell area (m²)
func (gd *Definition) CellArea() float64 { return gd.Cs * gd.Cs }

// CellID row/col to cell id; -1 if out of range
func (gd *Definition) CellID(r, c int) int {
	if r < 0 || r >= gd.Nr || c < 0 || c >= gd.Nc {
		return -1
	}
	return r*gd.Nc + c
}

// RowCol cell id to row/col
func (gd *Definition) RowCol(cid int) (int, int) { return cid / gd.Nc, cid % gd.Nc }

// CellCentroid projected coordinate of a cell centre
func (gd *Definition) CellCentroid(cid int) (x, y float64) {
	r, c := gd.RowCol(cid)
	x = gd.Xul + (float64(c)+.5)*gd.Cs
	y = gd.Yul - (float64(r)+.5)*gd.Cs
	return
}

// CellCorner projected coordinate of a cell's upper-left corner
func (gd *Definition) CellCorner(r, c int) (x, y float64) {
	return gd.Xul + float64(c)*gd.Cs, gd.Yul - float64(r)*gd.Cs
}

// PointToCell projected coordinate to cell id; -1 if outside the grid
func (gd *Definition) PointToCell(x, y float64) int {
	c := int(math.Floor((x - gd.Xul) / gd.Cs))
	r := int(math.Floor((gd.Yul - y) / gd.Cs))
	return gd.CellID(r, c)
}

// Real a single-band floating-point raster
type Real struct {
	GD *Definition
	A  []float64 // row-major cell values
}

// NewReal builds a raster over gd filled with v
func NewReal(gd *Definition, v float64) *Real {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = v
	}
	return &Real{GD: gd, A: a}
}

// Null builds a raster filled with the no-data sentinel
func Null(gd *Definition) *Real { return NewReal(gd, gd.Nodata) }

// IsNodata reports whether cell i holds no valid value
func (g *Real) IsNodata(i int) bool {
	return g.A[i] == g.GD.Nodata || math.IsNaN(g.A[i])
}

// Nvalid count of valid (non-no-data) cells
func (g *Real) Nvalid() int {
	n := 0
	for i := range g.A {
		if !g.IsNodata(i) {
			n++
		}
	}
	return n
}

// Valid collects the values of all valid cells
func (g *Real) Valid() []float64 {
	o := make([]float64, 0, len(g.A))
	for i, v := range g.A {
		if !g.IsNodata(i) {
			o = append(o, v)
		}
	}
	return o
}

// Clone deep copy
func (g *Real) Clone() *Real {
	a := make([]float64, len(g.A))
	copy(a, g.A)
	return &Real{GD: g.GD, A: a}
}
