package flux

import (
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// CentralGradientFlux is the vector-valued numerical flux feeding the
// weak gradient operator: 0.5 (q- + q+) n_hat for every conserved
// field. The result is laid out like a gradient, [dir][node] per field.
func CentralGradientFlux(pair gas.StatePair, normal [][]float64) (g fluid.GradCV) {
	var (
		cvI = pair.Int.CV
		cvE = pair.Ext.CV
		dim = cvI.Dim()
		n   = cvI.Len()
	)
	g = fluid.NewGradCV(dim, cvI.NumSpecies(), n)
	for d := 0; d < dim; d++ {
		for i := 0; i < n; i++ {
			nd := normal[d][i]
			g.Mass[d][i] = 0.5 * (cvI.Mass[i] + cvE.Mass[i]) * nd
			g.Energy[d][i] = 0.5 * (cvI.Energy[i] + cvE.Energy[i]) * nd
			for c := 0; c < dim; c++ {
				g.Momentum[c][d][i] = 0.5 * (cvI.Momentum[c][i] + cvE.Momentum[c][i]) * nd
			}
			for alpha := range cvI.Species {
				g.Species[alpha][d][i] = 0.5 * (cvI.Species[alpha][i] + cvE.Species[alpha][i]) * nd
			}
		}
	}
	return
}

// CentralScalarGradientFlux is the same central treatment for a single
// scalar field, used for the temperature gradient.
func CentralScalarGradientFlux(uInt, uExt []float64, normal [][]float64) (g [][]float64) {
	dim := len(normal)
	g = make([][]float64, dim)
	for d := 0; d < dim; d++ {
		g[d] = make([]float64, len(uInt))
		for i := range uInt {
			g[d][i] = 0.5 * (uInt[i] + uExt[i]) * normal[d][i]
		}
	}
	return
}
