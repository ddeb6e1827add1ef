// Package drainage derives a drainage master-plan layer set from a
// single-region DEM: conditioned surface, D8 flow fields, an ordered
// stream network, watersheds, and composite flood-risk zones, written as
// dual-projection vector layers, no-data-aware rasters, and a per-region
// summary table.
package drainage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Config is the parsed control file. One control file drives one run.
type Config struct {
	Prfx  string // output prefix (directories are created as needed)
	DemFP string // raw elevation raster (.asc)
	Zone  int    // UTM zone of the analysis projection
	North bool

	BndFP string // region boundary polygons, WGS84 (optional)
	SarFP string // flood-evidence polygons, analysis projection (optional)
	WbFP  string // water-body polygons (optional)
	HydFP string // reference river network (optional)

	OrderPolicy    string  // "accum" (default) or "strahler"; never mixed in a run
	MinOrder       int     // minimum stream order retained
	SmoothTol      float64 // Douglas-Peucker tolerance (m); ≤0 → half a cell
	MinWshedCells  int
	MinWshedAreaM2 float64
}

// LoadConfig reads a .dra control file: one "keyword value" per line.
func LoadConfig(controlFP string) (*Config, error) {
	if _, ok := mmio.FileExists(controlFP); !ok {
		return nil, fmt.Errorf("drainage.LoadConfig: control file not found: %s", controlFP)
	}
	ins := mmio.NewInstruct(controlFP)
	cfg := &Config{
		North:          true,
		OrderPolicy:    "accum",
		MinOrder:       3,
		MinWshedCells:  100,
		MinWshedAreaM2: 9e4, // 100 cells at 30 m
	}

	req := func(k string) (string, error) {
		if v, ok := ins.Param[k]; ok && len(v) > 0 {
			return v[0], nil
		}
		return "", fmt.Errorf("drainage.LoadConfig: control file missing required key %q", k)
	}
	opt := func(k string) string {
		if v, ok := ins.Param[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var err error
	if cfg.Prfx, err = req("prfx"); err != nil {
		return nil, err
	}
	if cfg.DemFP, err = req("demfp"); err != nil {
		return nil, err
	}
	zs, err := req("utmzone")
	if err != nil {
		return nil, err
	}
	if cfg.Zone, err = strconv.Atoi(zs); err != nil {
		return nil, fmt.Errorf("drainage.LoadConfig: utmzone: %v", err)
	}
	if strings.EqualFold(opt("hemi"), "s") {
		cfg.North = false
	}

	cfg.BndFP = opt("bndfp")
	cfg.SarFP = opt("sarfp")
	cfg.WbFP = opt("wbfp")
	cfg.HydFP = opt("hydfp")

	if v := opt("orderpolicy"); v != "" {
		switch v {
		case "accum", "strahler":
			cfg.OrderPolicy = v
		default:
			return nil, fmt.Errorf("drainage.LoadConfig: unknown orderpolicy %q (accum or strahler)", v)
		}
	}
	if v := opt("minorder"); v != "" {
		if cfg.MinOrder, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("drainage.LoadConfig: minorder: %v", err)
		}
	}
	if v := opt("smoothtol"); v != "" {
		if cfg.SmoothTol, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("drainage.LoadConfig: smoothtol: %v", err)
		}
	}
	if v := opt("minwshedcells"); v != "" {
		if cfg.MinWshedCells, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("drainage.LoadConfig: minwshedcells: %v", err)
		}
	}
	if v := opt("minwshedarea"); v != "" {
		if cfg.MinWshedAreaM2, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("drainage.LoadConfig: minwshedarea: %v", err)
		}
	}
	return cfg, nil
}

// suffix filename tag for the analysis projection, e.g. "utm43n"
func (cfg *Config) suffix() string {
	h := "n"
	if !cfg.North {
		h = "s"
	}
	return fmt.Sprintf("utm%d%s", cfg.Zone, h)
}

// Build runs the whole pipeline from a control file.
func Build(controlFP string) error {
	println("load .dra control file")
	cfg, err := LoadConfig(controlFP)
	if err != nil {
		return err
	}

	tt := mmio.NewTimer()
	chkdir := mmio.GetFileDir(cfg.Prfx) + "/check/"
	mmio.MakeDir(chkdir)

	println("building..")
	strc, err := cfg.buildStructure()
	if err != nil {
		return err
	}
	strc.Checkandprint(chkdir)
	if err := strc.SaveGob(cfg.Prfx + "structure.gob"); err != nil {
		return err
	}
	tt.Lap("structure build complete")

	net, err := cfg.buildStreams(strc)
	if err != nil {
		return err
	}
	writeIntsAsc(strc.GD, chkdir+"streams.order.asc", net.Order)
	if err := net.SaveGob(cfg.Prfx + "streams.gob"); err != nil {
		return err
	}
	tt.Lap("stream classification complete")

	wsheds := cfg.buildWatersheds(strc, net)
	tt.Lap("watershed delineation complete")

	rsk, err := cfg.buildRisk(strc)
	if err != nil {
		return err
	}
	tt.Lap("flood-risk analysis complete")

	if err := cfg.writeVectors(net, wsheds, rsk.Zones); err != nil {
		return err
	}
	if err := cfg.buildSummary(net, wsheds, rsk.Zones); err != nil {
		return err
	}
	tt.Lap("layer outputs written")
	println()
	return nil
}
