package benchmark

import (
	"math"

	"casebench/internal/config"
)

// GeomSpace returns n integers spaced evenly on a log scale from min to max
// inclusive. Intermediate values are truncated toward zero, so neighbouring
// values may repeat for narrow ranges.
func GeomSpace(min, max, n int) []int {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []int{min}
	}

	out := make([]int, n)
	logMin := math.Log(float64(min))
	step := (math.Log(float64(max)) - logMin) / float64(n-1)
	for i := range out {
		out[i] = int(math.Exp(logMin + step*float64(i)))
	}
	// Endpoints are exact regardless of rounding in Exp/Log.
	out[0] = min
	out[n-1] = max
	return out
}

// IntRange returns start, start+step, ... up to but excluding stop.
func IntRange(start, stop, step int) []int {
	if step <= 0 {
		return nil
	}
	var out []int
	for v := start; v < stop; v += step {
		out = append(out, v)
	}
	return out
}

// Space is the cross product swept by the harness.
type Space struct {
	Alphas []int
	Aligns []int
	Sizes  []int
}

// SpaceFromConfig builds the sweep space described by cfg.
func SpaceFromConfig(cfg *config.Config) Space {
	return Space{
		Alphas: IntRange(cfg.Alphas.Start, cfg.Alphas.Stop, cfg.Alphas.Step),
		Aligns: append([]int(nil), cfg.Aligns...),
		Sizes:  GeomSpace(cfg.Sizes.Min, cfg.Sizes.Max, cfg.Sizes.Steps),
	}
}

// Len is the number of combinations in the space.
func (s Space) Len() int {
	return len(s.Alphas) * len(s.Aligns) * len(s.Sizes)
}

// Each calls fn for every combination in alpha, align, size order and stops
// at the first error.
func (s Space) Each(fn func(Params) error) error {
	for _, alpha := range s.Alphas {
		for _, align := range s.Aligns {
			for _, size := range s.Sizes {
				if err := fn(Params{Size: size, Align: align, Alpha: alpha}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Enumerate returns every combination in sweep order.
func (s Space) Enumerate() []Params {
	out := make([]Params, 0, s.Len())
	_ = s.Each(func(p Params) error {
		out = append(out, p)
		return nil
	})
	return out
}
