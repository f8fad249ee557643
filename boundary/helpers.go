package boundary

import (
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// reflectedMomentum returns m - 2 (m.n) n per node: normal component
// reflected, tangential component preserved.
func reflectedMomentum(momentum, normal [][]float64) (r [][]float64) {
	var (
		dim = len(normal)
		n   = len(momentum[0])
	)
	r = make([][]float64, dim)
	for d := range r {
		r[d] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		var mn float64
		for d := 0; d < dim; d++ {
			mn += momentum[d][i] * normal[d][i]
		}
		for d := 0; d < dim; d++ {
			r[d][i] = momentum[d][i] - 2.*mn*normal[d][i]
		}
	}
	return
}

// negatedMomentum returns -m per node.
func negatedMomentum(momentum [][]float64) (r [][]float64) {
	r = make([][]float64, len(momentum))
	for d := range momentum {
		r[d] = make([]float64, len(momentum[d]))
		for i, m := range momentum[d] {
			r[d][i] = -m
		}
	}
	return
}

// tangentialProjection removes the normal component of a vector field:
// g - (g.n) n per node.
func tangentialProjection(g, normal [][]float64) (r [][]float64) {
	var (
		dim = len(normal)
		n   = len(g[0])
	)
	r = make([][]float64, dim)
	for d := range r {
		r[d] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		var gn float64
		for d := 0; d < dim; d++ {
			gn += g[d][i] * normal[d][i]
		}
		for d := 0; d < dim; d++ {
			r[d][i] = g[d][i] - gn*normal[d][i]
		}
	}
	return
}

// stripSpeciesNormalGradients copies gradInt with the normal component
// of every species gradient removed. Wall boundaries use this to impose
// zero species diffusion through the wall.
func stripSpeciesNormalGradients(gradInt fluid.GradCV, normal [][]float64) (g fluid.GradCV) {
	g = gradInt
	if gradInt.NumSpecies() == 0 {
		return
	}
	g.Species = make([][][]float64, gradInt.NumSpecies())
	for alpha := range gradInt.Species {
		g.Species[alpha] = tangentialProjection(gradInt.Species[alpha], normal)
	}
	return
}

// exteriorState assembles a FluidState for a modified conserved state,
// seeding the temperature solve with the interior temperature and
// carrying the interior smoothness through.
func exteriorState(gm gas.Model, interior *gas.FluidState, cv fluid.ConservedVars) *gas.FluidState {
	return gas.MakeFluidStateWithSmoothness(cv, gm, interior.Temperature, interior.Smoothness)
}
