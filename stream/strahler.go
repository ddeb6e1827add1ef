package stream

// OrderStrahler assigns true Strahler order over the stream cells (acc
// above the order-1 tier threshold): a headwater stream cell is order 1;
// order increases by one only where two contributors of equal order
// merge; a lower-order tributary never raises the receiving stream.
//
// cids must be in topological (upslope-to-downslope) order, as produced
// by flow.Accumulate, so every contributor is settled before its target.
func OrderStrahler(cids, ds, acc []int, t Tiers) []int {
	o := make([]int, len(ds))
	maxo := make([]int, len(ds)) // greatest contributor order seen
	nmax := make([]int, len(ds)) // contributors at that order
	for _, i := range cids {
		if acc[i] <= t.T[0] {
			continue // not a stream cell
		}
		if maxo[i] == 0 {
			o[i] = 1 // headwater
		} else if nmax[i] >= 2 {
			o[i] = maxo[i] + 1
		} else {
			o[i] = maxo[i]
		}
		if d := ds[i]; d >= 0 && acc[d] > t.T[0] {
			switch {
			case o[i] > maxo[d]:
				maxo[d], nmax[d] = o[i], 1
			case o[i] == maxo[d]:
				nmax[d]++
			}
		}
	}
	return o
}
