package drainage

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/Samoppakiks/uit-drainage/vec"
	"github.com/Samoppakiks/uit-drainage/watershed"
)

// buildWatersheds traces the contributing area of every pour point.
// Traces run concurrently over the immutable direction field; a failed
// pour point is skipped and counted, never aborting the batch.
func (cfg *Config) buildWatersheds(strc *Structure, net *StreamNet) []vec.Watershed {
	fmt.Printf(" > step 9: watershed delineation (%d pour points, ≥%d cells)\n",
		len(net.PourPoints), cfg.MinWshedCells)
	if len(net.PourPoints) == 0 {
		return nil
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(net.PourPoints)).AppendCompleted().PrependElapsed()
	wsheds, nskip := watershed.Delineate(strc.GD, strc.Ds, net.PourPoints,
		cfg.MinWshedCells, cfg.MinWshedAreaM2, func() { bar.Incr() })
	uiprogress.Stop()

	tot := 0.
	for _, w := range wsheds {
		tot += w.AreaM2
	}
	fmt.Printf("   %d watersheds delineated (%.1f km² total), %d candidates discarded\n",
		len(wsheds), tot/1e6, nskip)
	return wsheds
}
