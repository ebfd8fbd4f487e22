package benchmark

import "fmt"

type Comparison struct {
	Params     Params
	SerialDiff float64 // Percentage change
	SIMDDiff   float64 // Percentage change
	RatioDiff  float64 // Percentage change of SIMD/serial
	Prev       Record
	Curr       Record
}

// Compare matches records of two runs by parameter combination.
// Combinations missing from either run are left out.
func Compare(prev, curr Table) []Comparison {
	prevMap := make(map[Params]Record)
	for _, r := range prev {
		prevMap[r.Params()] = r
	}

	var comparisons []Comparison
	for _, c := range curr {
		p, ok := prevMap[c.Params()]
		if !ok {
			continue
		}
		comp := Comparison{
			Params: c.Params(),
			Prev:   p,
			Curr:   c,
		}
		if p.TimeSerial > 0 {
			comp.SerialDiff = (c.TimeSerial - p.TimeSerial) / p.TimeSerial * 100
		}
		if p.TimeSIMD > 0 {
			comp.SIMDDiff = (c.TimeSIMD - p.TimeSIMD) / p.TimeSIMD * 100
		}
		if pr := p.Ratio(); pr > 0 {
			comp.RatioDiff = (c.Ratio() - pr) / pr * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: serial %+.2f%%, simd %+.2f%%", c.Params, c.SerialDiff, c.SIMDDiff)
}
