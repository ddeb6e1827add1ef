package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDef() *Definition {
	return &Definition{
		Xul:    500000.,
		Yul:    4000000.,
		Cs:     30.,
		Nr:     4,
		Nc:     5,
		Nodata: -9999.,
		Zone:   43,
		North:  true,
	}
}

func TestCellIndexing(t *testing.T) {
	gd := testDef()

	assert.Equal(t, 20, gd.Ncells())
	assert.Equal(t, 900., gd.CellArea())

	for r := 0; r < gd.Nr; r++ {
		for c := 0; c < gd.Nc; c++ {
			cid := gd.CellID(r, c)
			rr, cc := gd.RowCol(cid)
			assert.Equal(t, r, rr)
			assert.Equal(t, c, cc)
		}
	}

	assert.Equal(t, -1, gd.CellID(-1, 0))
	assert.Equal(t, -1, gd.CellID(0, -1))
	assert.Equal(t, -1, gd.CellID(gd.Nr, 0))
	assert.Equal(t, -1, gd.CellID(0, gd.Nc))
}

func TestPointToCell(t *testing.T) {
	gd := testDef()

	for cid := 0; cid < gd.Ncells(); cid++ {
		x, y := gd.CellCentroid(cid)
		assert.Equal(t, cid, gd.PointToCell(x, y))
	}

	assert.Equal(t, -1, gd.PointToCell(gd.Xul-1., gd.Yul-1.))
	assert.Equal(t, -1, gd.PointToCell(gd.Xul+1., gd.Yul+1.))
	assert.Equal(t, -1, gd.PointToCell(gd.Xul+float64(gd.Nc)*gd.Cs+1., gd.Yul-1.))
}

func TestCellCorner(t *testing.T) {
	gd := testDef()
	x, y := gd.CellCorner(0, 0)
	assert.Equal(t, gd.Xul, x)
	assert.Equal(t, gd.Yul, y)
	x, y = gd.CellCorner(gd.Nr, gd.Nc)
	assert.Equal(t, gd.Xul+float64(gd.Nc)*gd.Cs, x)
	assert.Equal(t, gd.Yul-float64(gd.Nr)*gd.Cs, y)
}

func TestRealValidity(t *testing.T) {
	gd := testDef()
	g := NewReal(gd, 2.5)
	g.A[3] = gd.Nodata
	g.A[7] = gd.Nodata

	assert.Equal(t, 18, g.Nvalid())
	assert.Len(t, g.Valid(), 18)
	assert.True(t, g.IsNodata(3))
	assert.False(t, g.IsNodata(0))

	cl := g.Clone()
	cl.A[0] = 99.
	assert.Equal(t, 2.5, g.A[0])
}

func TestAscRoundTrip(t *testing.T) {
	gd := testDef()
	g := NewReal(gd, 0.)
	for i := range g.A {
		g.A[i] = float64(i) * 1.5
	}
	g.A[6] = gd.Nodata

	fp := filepath.Join(t.TempDir(), "z.asc")
	require.NoError(t, g.WriteAsc(fp))

	g2, err := ReadAsc(fp, 43, true)
	require.NoError(t, err)

	assert.Equal(t, gd.Nr, g2.GD.Nr)
	assert.Equal(t, gd.Nc, g2.GD.Nc)
	assert.Equal(t, gd.Cs, g2.GD.Cs)
	assert.InDelta(t, gd.Xul, g2.GD.Xul, 1e-6)
	assert.InDelta(t, gd.Yul, g2.GD.Yul, 1e-6)
	assert.Equal(t, gd.Nodata, g2.GD.Nodata)
	assert.Equal(t, 43, g2.GD.Zone)
	assert.True(t, g2.GD.North)

	require.Len(t, g2.A, len(g.A))
	for i := range g.A {
		assert.InDelta(t, g.A[i], g2.A[i], 1e-9)
	}
	assert.True(t, g2.IsNodata(6))
}

func TestReadAscMissing(t *testing.T) {
	_, err := ReadAsc(filepath.Join(t.TempDir(), "nope.asc"), 43, true)
	assert.Error(t, err)
}

func TestReadAscTruncated(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "bad.asc")
	require.NoError(t, os.WriteFile(fp, []byte("ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 30\nNODATA_value -9999\n1 2 3\n"), 0644))
	_, err := ReadAsc(fp, 43, true)
	assert.Error(t, err)
}

func TestGobRoundTrip(t *testing.T) {
	gd := testDef()
	g := NewReal(gd, 7.)
	g.A[1] = gd.Nodata

	fp := filepath.Join(t.TempDir(), "z.gob")
	require.NoError(t, g.SaveGob(fp))

	g2, err := LoadGobReal(fp)
	require.NoError(t, err)
	assert.Equal(t, g.GD, g2.GD)
	assert.Equal(t, g.A, g2.A)
}
