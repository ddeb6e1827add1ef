package drainage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// cone builds a 10x10 surface draining everywhere to the edge cell (9,0),
// elevation = chebyshev distance from that cell. Flow concentrates along
// the anti-diagonal trunk with accumulation (k+1)^2 at trunk cell k.
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

func writeControl(t *testing.T, dir string, kv map[string]string) string {
	fp := filepath.Join(dir, "test.dra")
	s := ""
	for k, v := range kv {
		s += fmt.Sprintf("%s %s\n", k, v)
	}
	require.NoError(t, os.WriteFile(fp, []byte(s), 0644))
	return fp
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	fp := writeControl(t, dir, map[string]string{
		"prfx":    dir + "/out_",
		"demfp":   dir + "/dem.asc",
		"utmzone": "43",
	})

	cfg, err := LoadConfig(fp)
	require.NoError(t, err)
	assert.Equal(t, 43, cfg.Zone)
	assert.True(t, cfg.North)
	assert.Equal(t, "accum", cfg.OrderPolicy)
	assert.Equal(t, 3, cfg.MinOrder)
	assert.Equal(t, 100, cfg.MinWshedCells)
	assert.Equal(t, 9e4, cfg.MinWshedAreaM2)
	assert.Equal(t, "utm43n", cfg.suffix())
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	fp := writeControl(t, dir, map[string]string{
		"prfx":          dir + "/out_",
		"demfp":         dir + "/dem.asc",
		"utmzone":       "36",
		"hemi":          "s",
		"orderpolicy":   "strahler",
		"minorder":      "2",
		"smoothtol":     "10",
		"minwshedcells": "25",
		"minwshedarea":  "5000",
	})

	cfg, err := LoadConfig(fp)
	require.NoError(t, err)
	assert.False(t, cfg.North)
	assert.Equal(t, "strahler", cfg.OrderPolicy)
	assert.Equal(t, 2, cfg.MinOrder)
	assert.Equal(t, 10., cfg.SmoothTol)
	assert.Equal(t, 25, cfg.MinWshedCells)
	assert.Equal(t, 5000., cfg.MinWshedAreaM2)
	assert.Equal(t, "utm36s", cfg.suffix())
}

func TestLoadConfigMissingKey(t *testing.T) {
	dir := t.TempDir()
	fp := writeControl(t, dir, map[string]string{"prfx": dir + "/out_"})
	_, err := LoadConfig(fp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demfp")
}

func TestLoadConfigBadPolicy(t *testing.T) {
	dir := t.TempDir()
	fp := writeControl(t, dir, map[string]string{
		"prfx":        dir + "/out_",
		"demfp":       dir + "/dem.asc",
		"utmzone":     "43",
		"orderpolicy": "shreve",
	})
	_, err := LoadConfig(fp)
	assert.Error(t, err)
}

func TestBuildStructureMissingDEM(t *testing.T) {
	cfg := &Config{Prfx: t.TempDir() + "/out_", DemFP: "nowhere.asc", Zone: 43, North: true}
	_, err := cfg.buildStructure()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere.asc")
}

func TestBuildStructureBowl(t *testing.T) {
	dir := t.TempDir()
	g := cone()
	for _, i := range []int{44, 45, 54, 55} {
		g.A[i] = -5. // carved depression mid-slope
	}
	demFP := filepath.Join(dir, "dem.asc")
	require.NoError(t, g.WriteAsc(demFP))

	cfg := &Config{Prfx: dir + "/out_", DemFP: demFP, Zone: 43, North: true}
	strc, err := cfg.buildStructure()
	require.NoError(t, err)

	// conditioning re-routes the depression; all 100 cells still reach
	// the single outlet
	assert.Equal(t, 100, strc.Nc)
	imax, amax := strc.MaxAcc()
	assert.Equal(t, strc.GD.CellID(9, 0), imax)
	assert.Equal(t, 100, amax)
	assert.Equal(t, 100, flow.OutletSum(strc.Acc, strc.Ds))
}

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	demFP := filepath.Join(dir, "dem.asc")
	require.NoError(t, cone().WriteAsc(demFP))

	prfx := dir + "/out/dausa_"
	require.NoError(t, os.MkdirAll(dir+"/out", 0755))
	fp := writeControl(t, dir, map[string]string{
		"prfx":          prfx,
		"demfp":         demFP,
		"utmzone":       "43",
		"minorder":      "1",
		"minwshedcells": "5",
		"minwshedarea":  "1000",
	})

	require.NoError(t, Build(fp))

	// stage artifacts and rasters
	for _, fn := range []string{
		"structure.gob",
		"streams.gob",
		"dem_filled_utm43n.asc",
		"flow_dir_utm43n.asc",
		"flow_acc_utm43n.asc",
		"twi_utm43n.asc",
		"composite_risk_utm43n.asc",
	} {
		_, err := os.Stat(prfx + fn)
		assert.NoErrorf(t, err, "missing %s", fn)
	}
	for _, fn := range []string{"structure.aid.asc", "structure.d8.asc", "streams.order.asc", "risk.class.asc"} {
		_, err := os.Stat(dir + "/out/check/" + fn)
		assert.NoErrorf(t, err, "missing check/%s", fn)
	}

	// the persisted structure reloads intact
	strc, err := LoadGobStructure(prfx + "structure.gob")
	require.NoError(t, err)
	assert.Equal(t, 100, strc.Nc)
	_, amax := strc.MaxAcc()
	assert.Equal(t, 100, amax)

	net, err := LoadGobStreamNet(prfx + "streams.gob")
	require.NoError(t, err)
	assert.Equal(t, "accum", net.Policy)
	assert.Len(t, net.Segs, 2)
	assert.Len(t, net.PourPoints, 2)

	// accumulation raster carries the peak, no-data kept explicit
	acc, err := grid.ReadAsc(prfx+"flow_acc_utm43n.asc", 43, true)
	require.NoError(t, err)
	peak := 0.
	for i := range acc.A {
		if !acc.IsNodata(i) && acc.A[i] > peak {
			peak = acc.A[i]
		}
	}
	assert.Equal(t, 100., peak)

	// two trunk segments: the order-1 reach and the order-2 reach holding
	// the outlet
	fc, err := vec.ReadFeatureCollection(prfx + "streams_order1plus_utm43n.geojson")
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	orders := map[float64]bool{}
	for _, f := range fc.Features {
		orders[f.Properties["stream_order"].(float64)] = true
	}
	assert.True(t, orders[1])
	assert.True(t, orders[2])

	// both pour points trace watersheds; the outlet's covers the grid
	wfc, err := vec.ReadFeatureCollection(prfx + "watersheds_utm43n.geojson")
	require.NoError(t, err)
	require.Len(t, wfc.Features, 2)
	kmax := 0.
	for _, f := range wfc.Features {
		if a := f.Properties["area_km2"].(float64); a > kmax {
			kmax = a
		}
	}
	assert.InDelta(t, .09, kmax, 1e-9)

	// display layers reproject alongside
	_, err = os.Stat(prfx + "streams_order1plus_wgs84.geojson")
	assert.NoError(t, err)
	_, err = os.Stat(prfx + "flood_risk_wgs84.geojson")
	assert.NoError(t, err)
}
