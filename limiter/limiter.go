package limiter

import (
	"math"

	"github.com/astro-friedel/mirgecom/dg"
)

// Options configures the positivity-preserving linear scaling limiter.
type Options struct {
	// Min is the lower bound to enforce (0 for densities).
	Min float64
	// Max, when EnforceMax is set, is an upper bound (1 for mass
	// fractions).
	Max        float64
	EnforceMax bool
	// ModifyAverage clips the cell average itself into the bounds
	// before scaling, trading strict conservation for robustness when
	// the average is already out of bounds.
	ModifyAverage bool
}

// BoundPreserving applies the Zhang-Shu linear scaling limiter: nodal
// values are contracted toward the cell average just enough to satisfy
// the bounds, preserving the average (and hence conservation) whenever
// the average itself is in bounds.
func BoundPreserving(disc dg.Discretization, field []float64, opt Options) (limited []float64) {
	var (
		avgs = disc.ElementAverage(field)
	)
	limited = make([]float64, len(field))
	copy(limited, field)
	for k := 0; k < disc.NumElements(); k++ {
		var (
			lo, hi = disc.NodesOfElement(k)
			avg    = avgs[k]
		)
		if opt.ModifyAverage {
			if avg < opt.Min {
				avg = opt.Min
			}
			if opt.EnforceMax && avg > opt.Max {
				avg = opt.Max
			}
		}
		var (
			mmin = field[lo]
			mmax = field[lo]
		)
		for i := lo + 1; i < hi; i++ {
			mmin = math.Min(mmin, field[i])
			mmax = math.Max(mmax, field[i])
		}
		theta := 1.
		if mmin < opt.Min && avg > mmin {
			theta = math.Min(theta, (avg-opt.Min)/(avg-mmin))
		}
		if opt.EnforceMax && mmax > opt.Max && mmax > avg {
			theta = math.Min(theta, (opt.Max-avg)/(mmax-avg))
		}
		if theta < 0 {
			theta = 0
		}
		for i := lo; i < hi; i++ {
			limited[i] = theta*(field[i]-avg) + avg
		}
	}
	return
}
