package drainage

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
)

// Structure is the routed model domain: the conditioned surface plus the
// flow fields every later stage reads. All arrays are cell-indexed and
// immutable once built.
type Structure struct {
	GD   *grid.Definition
	Z    []float64 // conditioned elevations
	Ds   []int     // downslope cell index (flow.Outlet, flow.Nodata)
	Dir  []uint8   // D8 codes, 0 where undefined
	Cids []int     // topologically safe ordering of valid cells
	Acc  []int     // upslope cell count (contributors + self)
	Nc   int       // number of valid cells
}

// Zgrid the conditioned surface as a raster
func (s *Structure) Zgrid() *grid.Real { return &grid.Real{GD: s.GD, A: s.Z} }

// MaxAcc peak accumulation cell and count
func (s *Structure) MaxAcc() (int, int) { return flow.MaxAcc(s.Acc, s.Ds) }

// Checkandprint dumps per-cell diagnostics under the check directory.
func (s *Structure) Checkandprint(chkdirprfx string) {
	aid := make([]int, s.GD.Ncells())
	for i := range aid {
		aid[i] = -9999
	}
	for k, c := range s.Cids {
		aid[c] = k
	}
	writeIntsAsc(s.GD, chkdirprfx+"structure.aid.asc", aid)     // topological order index
	writeIntsAsc(s.GD, chkdirprfx+"structure.ads.asc", s.Ds)    // downslope cell index
	writeIntsAsc(s.GD, chkdirprfx+"structure.upcnt.asc", s.Acc) // upslope cell count
	dir := make([]int, len(s.Dir))
	for i, d := range s.Dir {
		dir[i] = int(d)
	}
	writeIntsAsc(s.GD, chkdirprfx+"structure.d8.asc", dir) // D8 direction code
	if err := writeFloats(chkdirprfx+"structure.z.f32", s.Z); err != nil {
		fmt.Printf("    WARNING %v\n", err)
	}
}

// SaveGob persists the structure as a stage artifact.
func (s *Structure) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" structure.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf(" structure.SaveGob %v", err)
	}
	return nil
}

// LoadGobStructure reloads a structure stage artifact.
func LoadGobStructure(fp string) (*Structure, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var strc Structure
	if err := gob.NewDecoder(f).Decode(&strc); err != nil {
		return nil, err
	}
	return &strc, nil
}
