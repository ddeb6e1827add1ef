package drainage

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/Samoppakiks/uit-drainage/stream"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// StreamNet is the classified, vectorized stream network.
type StreamNet struct {
	Policy     string
	Tiers      stream.Tiers
	Order      []int // per-cell order raster (0 = not a stream)
	Segs       []vec.StreamSegment
	PourPoints []vec.PourPoint
}

// SaveGob persists the network as a stage artifact.
func (net *StreamNet) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" streamnet.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(net); err != nil {
		return fmt.Errorf(" streamnet.SaveGob %v", err)
	}
	return nil
}

// LoadGobStreamNet reloads a stream network stage artifact.
func LoadGobStreamNet(fp string) (*StreamNet, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var net StreamNet
	if err := gob.NewDecoder(f).Decode(&net); err != nil {
		return nil, err
	}
	return &net, nil
}
