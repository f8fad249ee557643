package gas

import (
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
)

// ConservativeToEntropyVars maps (rho, rho v, E) to the entropy
// variables of the physical entropy s = log(p / rho^gamma):
//
//	v_mass   = (gamma - s)/(gamma - 1) - rho |u|^2 / (2 p)
//	v_mom_i  = rho u_i / p
//	v_energy = -rho / p
//
// Species densities ride along scaled by rho/p, consistent with the
// mixture extension used in flux differencing.
func ConservativeToEntropyVars(gamma float64, cv fluid.ConservedVars, pressure []float64) (ev fluid.ConservedVars) {
	var (
		dim = cv.Dim()
		n   = cv.Len()
	)
	ev = fluid.NewConserved(dim, cv.NumSpecies(), n)
	for i, rho := range cv.Mass {
		var (
			p    = pressure[i]
			rhoP = rho / p
			usq  float64
		)
		for d := 0; d < dim; d++ {
			u := cv.Momentum[d][i] / rho
			usq += u * u
			ev.Momentum[d][i] = rhoP * u
		}
		s := math.Log(p) - gamma*math.Log(rho)
		ev.Mass[i] = (gamma-s)/(gamma-1.) - 0.5*rhoP*usq
		ev.Energy[i] = -rhoP
	}
	for alpha := range cv.Species {
		for i := range cv.Species[alpha] {
			ev.Species[alpha][i] = cv.Species[alpha][i] / pressure[i]
		}
	}
	return
}

// EntropyToConservativeVars inverts ConservativeToEntropyVars. The pair
// is used to project entropy variables onto the quadrature grid and
// evaluate the flux-differencing kernel on a thermodynamically
// consistent state.
func EntropyToConservativeVars(gamma float64, ev fluid.ConservedVars) (cv fluid.ConservedVars) {
	var (
		dim    = ev.Dim()
		n      = ev.Len()
		invGm1 = 1. / (gamma - 1.)
	)
	cv = fluid.NewConserved(dim, ev.NumSpecies(), n)
	for i := range ev.Mass {
		var (
			vMass = ev.Mass[i] * (gamma - 1.)
			vEner = ev.Energy[i] * (gamma - 1.)
			vsq   float64
		)
		vMom := make([]float64, dim)
		for d := 0; d < dim; d++ {
			vMom[d] = ev.Momentum[d][i] * (gamma - 1.)
			vsq += vMom[d] * vMom[d]
		}
		s := gamma - vMass + 0.5*vsq/vEner
		rhoIota := math.Pow((gamma-1.)/math.Pow(-vEner, gamma), invGm1) *
			math.Exp(-s*invGm1)
		cv.Mass[i] = -rhoIota * vEner
		for d := 0; d < dim; d++ {
			cv.Momentum[d][i] = rhoIota * vMom[d]
		}
		cv.Energy[i] = rhoIota * (1. - 0.5*vsq/vEner)
	}
	if ev.NumSpecies() > 0 {
		// Recover rho_alpha from the pressure implied by the inverted
		// state: p = rho (gamma-1) e_int, and v_species = rho_alpha/p.
		for i, rho := range cv.Mass {
			var msq float64
			for d := 0; d < dim; d++ {
				msq += cv.Momentum[d][i] * cv.Momentum[d][i]
			}
			p := (gamma - 1.) * (cv.Energy[i] - 0.5*msq/rho)
			for alpha := range ev.Species {
				cv.Species[alpha][i] = ev.Species[alpha][i] * p
			}
		}
	}
	return
}
