package grid

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadAsc imports an ESRI ASCII grid. The analysis projection is not
// carried by the format, so the UTM zone is supplied by the caller.
func ReadAsc(fp string, zone int, north bool) (*Real, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("grid.ReadAsc: %v", err)
	}
	defer f.Close()

	scn := bufio.NewScanner(f)
	scn.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	hdr, stErr := map[string]float64{}, []string{}
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("     failed to read '%v': %v", v, err))
	}
	for len(hdr) < 6 && scn.Scan() {
		flds := strings.Fields(scn.Text())
		if len(flds) != 2 {
			return nil, fmt.Errorf("grid.ReadAsc %s: malformed header line %q", fp, scn.Text())
		}
		k := strings.ToLower(flds[0])
		v, err := strconv.ParseFloat(flds[1], 64)
		if err != nil {
			errfunc(k, err)
		}
		hdr[k] = v
	}
	if len(stErr) > 0 {
		return nil, fmt.Errorf("grid.ReadAsc %s:\n%s", fp, strings.Join(stErr, "\n"))
	}
	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"} {
		if _, ok := hdr[k]; !ok {
			return nil, fmt.Errorf("grid.ReadAsc %s: header missing %s", fp, k)
		}
	}

	gd := &Definition{
		Nc:     int(hdr["ncols"]),
		Nr:     int(hdr["nrows"]),
		Cs:     hdr["cellsize"],
		Nodata: hdr["nodata_value"],
		Zone:   zone,
		North:  north,
	}
	gd.Xul = hdr["xllcorner"]
	gd.Yul = hdr["yllcorner"] + float64(gd.Nr)*gd.Cs

	a, n := make([]float64, gd.Ncells()), 0
	for scn.Scan() {
		for _, s := range strings.Fields(scn.Text()) {
			if n >= len(a) {
				return nil, fmt.Errorf("grid.ReadAsc %s: more values than %d cells", fp, len(a))
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("grid.ReadAsc %s: cell %d: %v", fp, n, err)
			}
			a[n] = v
			n++
		}
	}
	if err := scn.Err(); err != nil {
		return nil, fmt.Errorf("grid.ReadAsc %s: %v", fp, err)
	}
	if n != len(a) {
		return nil, fmt.Errorf("grid.ReadAsc %s: read %d of %d cells", fp, n, len(a))
	}
	return &Real{GD: gd, A: a}, nil
}

// WriteAsc exports the raster as an ESRI ASCII grid
func (g *Real) WriteAsc(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("grid.WriteAsc: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	gd := g.GD
	fmt.Fprintf(w, "ncols %d\n", gd.Nc)
	fmt.Fprintf(w, "nrows %d\n", gd.Nr)
	fmt.Fprintf(w, "xllcorner %f\n", gd.Xul)
	fmt.Fprintf(w, "yllcorner %f\n", gd.Yul-float64(gd.Nr)*gd.Cs)
	fmt.Fprintf(w, "cellsize %f\n", gd.Cs)
	fmt.Fprintf(w, "NODATA_value %g\n", gd.Nodata)
	for r := 0; r < gd.Nr; r++ {
		for c := 0; c < gd.Nc; c++ {
			if c > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%g", g.A[r*gd.Nc+c])
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("grid.WriteAsc: %v", err)
	}
	return nil
}

// SaveGob persists the raster as a stage artifact
func (g *Real) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("grid.Real.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf("grid.Real.SaveGob %v", err)
	}
	return nil
}

// LoadGobReal reloads a raster stage artifact
func LoadGobReal(fp string) (*Real, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var g Real
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}
