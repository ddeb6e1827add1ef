package drainage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// writeFloats raw little-endian float32 dump, for quick binary inspection
func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// writeIntsAsc integer check raster; write failures only warn, check
// rasters are diagnostics and never gate the run
func writeIntsAsc(gd *grid.Definition, fp string, a []int) {
	g := grid.Null(gd)
	for i, v := range a {
		g.A[i] = float64(v)
	}
	if err := g.WriteAsc(fp); err != nil {
		fmt.Printf("    WARNING %v\n", err)
	}
}

// writeFloatsAsc float check raster
func writeFloatsAsc(gd *grid.Definition, fp string, a []float64) {
	g := &grid.Real{GD: gd, A: a}
	if err := g.WriteAsc(fp); err != nil {
		fmt.Printf("    WARNING %v\n", err)
	}
}
