package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// cone builds a 10x10 surface draining everywhere to the edge cell (9,0),
// elevation = chebyshev distance from that cell.
func cone() *grid.Real {
	gd := &grid.Definition{Xul: 500000., Yul: 4000000., Cs: 30., Nr: 10, Nc: 10, Nodata: -9999., Zone: 43, North: true}
	g := grid.NewReal(gd, 0.)
	for r := 0; r < gd.Nr; r++ {
		for c := 0; c < gd.Nc; c++ {
			z := gd.Nr - 1 - r
			if c > z {
				z = c
			}
			g.A[r*gd.Nc+c] = float64(z)
		}
	}
	return g
}

func TestD8TieBreak(t *testing.T) {
	// centre cell with every neighbour at the same lower elevation: the
	// tie resolves clockwise from east, deterministically
	gd := &grid.Definition{Xul: 500000., Yul: 4000000., Cs: 30., Nr: 3, Nc: 3, Nodata: -9999., Zone: 43, North: true}
	g := grid.NewReal(gd, 0.)
	g.A[4] = 1.

	ds, code := D8(g)
	assert.Equal(t, gd.CellID(1, 2), ds[4]) // east
	assert.Equal(t, Code(0), code[4])
	assert.Equal(t, uint8(1), code[4])
}

func TestD8Sentinels(t *testing.T) {
	g := cone()
	g.A[55] = g.GD.Nodata

	ds, code := D8(g)
	assert.Equal(t, Nodata, ds[55])
	assert.Equal(t, uint8(0), code[55])

	// the apex ring drains inward, only the true low point leaves the grid
	outlet := g.GD.CellID(9, 0)
	nout := 0
	for i, d := range ds {
		if d == Outlet {
			nout++
			assert.Equal(t, outlet, i)
		}
	}
	assert.Equal(t, 1, nout)
}

func TestAccumulateCone(t *testing.T) {
	g := cone()
	ds, _ := D8(g)
	cids, acc, err := Accumulate(ds)
	require.NoError(t, err)

	n := g.Nvalid()
	require.Len(t, cids, n)

	// every unit of flow reaches the single outlet
	imax, amax := MaxAcc(acc, ds)
	assert.Equal(t, g.GD.CellID(9, 0), imax)
	assert.Equal(t, n, amax)
	assert.Equal(t, n, OutletSum(acc, ds))

	// accumulation grows strictly downslope
	for i, d := range ds {
		if d >= 0 {
			assert.GreaterOrEqual(t, acc[d], acc[i]+1)
		}
	}

	// cids is topologically safe: every contributor ahead of its target
	pos := make([]int, len(ds))
	for k, c := range cids {
		pos[c] = k
	}
	for i, d := range ds {
		if d >= 0 {
			assert.Less(t, pos[i], pos[d])
		}
	}
}

func TestAccumulateNodataCarriesNoFlow(t *testing.T) {
	g := cone()
	g.A[33] = g.GD.Nodata
	ds, _ := D8(g)
	_, acc, err := Accumulate(ds)
	require.NoError(t, err)
	assert.Equal(t, 0, acc[33])
	assert.Equal(t, g.Nvalid(), OutletSum(acc, ds))
}

func TestAccumulateCycle(t *testing.T) {
	ds := []int{1, 0, Outlet}
	_, _, err := Accumulate(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestMaxAccEmpty(t *testing.T) {
	ds := []int{Nodata, Nodata}
	imax, amax := MaxAcc([]int{0, 0}, ds)
	assert.Equal(t, -1, imax)
	assert.Equal(t, 0, amax)
}

func TestUpslopes(t *testing.T) {
	ds := []int{2, 2, 3, Outlet, Nodata}
	us := Upslopes(ds)
	assert.ElementsMatch(t, []int{0, 1}, us[2])
	assert.ElementsMatch(t, []int{2}, us[3])
	assert.Empty(t, us[0])
	assert.Empty(t, us[4])
}

func TestCatchmentAreaKm2(t *testing.T) {
	assert.InDelta(t, .09, CatchmentAreaKm2(100, 30.), 1e-12)
}
