package drainage

import (
	"fmt"

	"github.com/maseology/mmio"

	"github.com/Samoppakiks/uit-drainage/dem"
	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
)

// buildStructure conditions the raw DEM and routes flow over it.
func (cfg *Config) buildStructure() (*Structure, error) {

	///////////////////////////////////////////////////////
	println(" > step 1: load elevation raster")
	if _, ok := mmio.FileExists(cfg.DemFP); !ok {
		return nil, fmt.Errorf("drainage.buildStructure: elevation raster not found: %s (produced by the acquisition stage)", cfg.DemFP)
	}
	z, err := grid.ReadAsc(cfg.DemFP, cfg.Zone, cfg.North)
	if err != nil {
		return nil, err
	}
	nvalid := z.Nvalid()
	fmt.Printf("   %d x %d cells at %.0f m, %s valid (%.1f km²)\n",
		z.GD.Nr, z.GD.Nc, z.GD.Cs, mmio.Thousands(int64(nvalid)), flow.CatchmentAreaKm2(nvalid, z.GD.Cs))
	if nvalid == 0 {
		return nil, fmt.Errorf("drainage.buildStructure: %s holds no valid cells", cfg.DemFP)
	}

	///////////////////////////////////////////////////////
	println(" > step 2: condition surface (policy: priority-flood fill)")
	zf, nfill := dem.FillDepressions(z)
	zf, npit := dem.FillPits(zf)
	fmt.Printf("   %d cells raised filling depressions, %d spurious pits removed\n", nfill, npit)
	if err := zf.WriteAsc(cfg.Prfx + "dem_filled_" + cfg.suffix() + ".asc"); err != nil {
		return nil, err
	}

	///////////////////////////////////////////////////////
	println(" > step 3: D8 flow direction (ties clockwise from east)")
	ds, code := flow.D8(zf)

	///////////////////////////////////////////////////////
	println(" > step 4: flow accumulation (topological order)")
	cids, acc, err := flow.Accumulate(ds)
	if err != nil {
		return nil, err // a cycle is a conditioning defect; fatal for the run
	}
	imax, amax := flow.MaxAcc(acc, ds)
	fmt.Printf("   maximum accumulation: %s cells (%.1f km²) at cell %d\n",
		mmio.Thousands(int64(amax)), flow.CatchmentAreaKm2(amax, zf.GD.Cs), imax)

	strc := &Structure{
		GD:   zf.GD,
		Z:    zf.A,
		Ds:   ds,
		Dir:  code,
		Cids: cids,
		Acc:  acc,
		Nc:   len(cids),
	}

	// flow rasters, no-data kept explicit
	dir, accOut := make([]int, len(code)), make([]int, len(acc))
	for i := range code {
		if ds[i] == flow.Nodata {
			dir[i], accOut[i] = -9999, -9999
			continue
		}
		dir[i], accOut[i] = int(code[i]), acc[i]
	}
	writeIntsAsc(strc.GD, cfg.Prfx+"flow_dir_"+cfg.suffix()+".asc", dir)
	writeIntsAsc(strc.GD, cfg.Prfx+"flow_acc_"+cfg.suffix()+".asc", accOut)

	return strc, nil
}
