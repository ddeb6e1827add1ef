package drainage

import (
	"fmt"

	"github.com/maseology/mmio"

	"github.com/Samoppakiks/uit-drainage/dem"
	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
	"github.com/Samoppakiks/uit-drainage/risk"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// RiskResult carries the wetness/risk stage outputs.
type RiskResult struct {
	TWI       *grid.Real
	Composite *grid.Real
	Zones     []vec.RiskZone
}

// buildRisk computes TWI, the ponding mask and the weighted composite,
// classifies it by global percentiles and vectorizes the upper tiers.
func (cfg *Config) buildRisk(strc *Structure) (*RiskResult, error) {

	///////////////////////////////////////////////////////
	println(" > step 10: topographic wetness index")
	zg := strc.Zgrid()
	slope := dem.Slope(zg)
	twi := risk.TWI(slope, strc.Acc, strc.Ds)
	if err := twi.WriteAsc(cfg.Prfx + "twi_" + cfg.suffix() + ".asc"); err != nil {
		return nil, err
	}

	///////////////////////////////////////////////////////
	println(" > step 11: ponding zones (lowest decile ∧ slope < 1°)")
	pond, zcut := risk.Ponding(zg, slope)
	writeFloatsAsc(strc.GD, mmio.GetFileDir(cfg.Prfx)+"/check/risk.pond.asc", pond.A)
	npond := 0
	for i := range pond.A {
		if !pond.IsNodata(i) && pond.A[i] == 1 {
			npond++
		}
	}
	fmt.Printf("   low-elevation cut: %.1f m; ponding area: %.1f km²\n",
		zcut, flow.CatchmentAreaKm2(npond, strc.GD.Cs))

	///////////////////////////////////////////////////////
	println(" > step 12: flood evidence layer")
	evid, err := cfg.loadEvidence(strc.GD)
	if err != nil {
		return nil, err
	}

	///////////////////////////////////////////////////////
	fmt.Printf(" > step 13: composite risk (weights %.1f/%.1f/%.1f)\n",
		risk.Weights[0], risk.Weights[1], risk.Weights[2])
	comp := risk.Composite(risk.Normalize(twi), pond, risk.Normalize(evid))
	if err := comp.WriteAsc(cfg.Prfx + "composite_risk_" + cfg.suffix() + ".asc"); err != nil {
		return nil, err
	}

	cls, cmed, chigh := risk.Classify(comp)
	writeIntsAsc(strc.GD, mmio.GetFileDir(cfg.Prfx)+"/check/risk.class.asc", cls)
	nlow, nmed, nhigh := 0, 0, 0
	for _, c := range cls {
		switch c {
		case risk.ClassLow:
			nlow++
		case risk.ClassMedium:
			nmed++
		case risk.ClassHigh:
			nhigh++
		}
	}
	ca := strc.GD.Cs * strc.GD.Cs / 1e6
	fmt.Printf("   cut points: medium ≥ %.3f, high ≥ %.3f (70th/85th percentile)\n", cmed, chigh)
	fmt.Printf("   low %.1f km², medium %.1f km², high %.1f km²\n",
		float64(nlow)*ca, float64(nmed)*ca, float64(nhigh)*ca)

	///////////////////////////////////////////////////////
	println(" > step 14: vectorize risk zones (medium/high only)")
	zones := risk.VectorizeZones(strc.GD, cls)
	fmt.Printf("   %d zones ≥ %.1f ha\n", len(zones), risk.MinZoneAreaM2/1e4)

	return &RiskResult{TWI: twi, Composite: comp, Zones: zones}, nil
}

// loadEvidence rasterizes the optional flood-evidence polygons. A missing
// or empty layer degrades to a zero field over the flow domain, never an
// error.
func (cfg *Config) loadEvidence(gd *grid.Definition) (*grid.Real, error) {
	o := grid.NewReal(gd, 0)
	if cfg.SarFP == "" {
		println("   no flood-evidence layer configured; zero contribution")
		return o, nil
	}
	if _, ok := mmio.FileExists(cfg.SarFP); !ok {
		fmt.Printf("   WARNING flood-evidence layer not found (optional): %s\n", cfg.SarFP)
		return o, nil
	}
	fc, err := vec.ReadFeatureCollection(cfg.SarFP)
	if err != nil {
		return nil, err
	}
	polys, nskip := vec.Polygons(fc)
	if nskip > 0 {
		fmt.Printf("   %d degenerate evidence features skipped\n", nskip)
	}
	if len(polys) == 0 {
		println("   flood-evidence layer is empty; zero contribution")
		return o, nil
	}
	o.A = vec.Rasterize(gd, polys)
	n := 0
	for _, v := range o.A {
		if v > 0 {
			n++
		}
	}
	fmt.Printf("   %d evidence polygons burned (%.1f km²)\n", len(polys), flow.CatchmentAreaKm2(n, gd.Cs))
	return o, nil
}
