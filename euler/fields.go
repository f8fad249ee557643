package euler

import (
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/flux"
	"github.com/astro-friedel/mirgecom/gas"
)

// Equation ordering used throughout the operators: mass, momentum
// components, energy, then species. Matches the two-point flux output
// layout.
func numEquations(dim, nspecies int) int { return 2 + dim + nspecies }

// packCV exposes the conserved fields as [eq][node] slices sharing the
// underlying storage, no copies.
func packCV(cv fluid.ConservedVars) (eq [][]float64) {
	var (
		dim = cv.Dim()
	)
	eq = make([][]float64, numEquations(dim, cv.NumSpecies()))
	eq[0] = cv.Mass
	for d := 0; d < dim; d++ {
		eq[1+d] = cv.Momentum[d]
	}
	eq[1+dim] = cv.Energy
	for alpha := range cv.Species {
		eq[2+dim+alpha] = cv.Species[alpha]
	}
	return
}

// unpackEq reassembles [eq][node] slices into a ConservedVars of the
// given shape, sharing storage.
func unpackEq(dim, nspecies int, eq [][]float64) fluid.ConservedVars {
	var (
		mom     = make([][]float64, dim)
		species [][]float64
	)
	for d := 0; d < dim; d++ {
		mom[d] = eq[1+d]
	}
	if nspecies > 0 {
		species = make([][]float64, nspecies)
		for alpha := range species {
			species[alpha] = eq[2+dim+alpha]
		}
	}
	return fluid.MakeConserved(dim, eq[0], eq[1+dim], mom, species)
}

// physicalVolumeFlux evaluates the Euler flux tensor at every volume
// node, repacked as [eq][dir][node].
func physicalVolumeFlux(s *gas.FluidState) (F [][][]float64) {
	var (
		dim = s.Dim()
		neq = numEquations(dim, s.NumSpecies())
		T   = flux.InviscidFluxTensor(s)
	)
	F = make([][][]float64, neq)
	for eq := range F {
		F[eq] = make([][]float64, dim)
	}
	for d := 0; d < dim; d++ {
		packed := packCV(T[d])
		for eq := 0; eq < neq; eq++ {
			F[eq][d] = packed[eq]
		}
	}
	return
}
