package flux

import (
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// InviscidNormalFlux evaluates the physical Euler flux dotted with the
// outward unit normal at every node:
//
//	mass:     m . n
//	momentum: m_i (v . n) + p n_i
//	energy:   (E + p) (v . n)
//	species:  rho_alpha (v . n)
func InviscidNormalFlux(s *gas.FluidState, normal [][]float64) (f fluid.ConservedVars) {
	var (
		cv  = s.CV
		dim = cv.Dim()
	)
	f = fluid.NewConserved(dim, cv.NumSpecies(), cv.Len())
	for i, rho := range cv.Mass {
		var vn float64
		for d := 0; d < dim; d++ {
			vn += cv.Momentum[d][i] / rho * normal[d][i]
		}
		f.Mass[i] = rho * vn
		f.Energy[i] = (cv.Energy[i] + s.Pressure[i]) * vn
		for d := 0; d < dim; d++ {
			f.Momentum[d][i] = cv.Momentum[d][i]*vn + s.Pressure[i]*normal[d][i]
		}
		for alpha := range cv.Species {
			f.Species[alpha][i] = cv.Species[alpha][i] * vn
		}
	}
	return
}

// RusanovFlux is the local Lax-Friedrichs numerical flux:
//
//	F* = 0.5 (F- + F+) . n - 0.5 lambda (q+ - q-)
//
// with lambda the max of |v.n| + c over the two traces, per node.
func RusanovFlux(pair gas.StatePair, normal [][]float64) (f fluid.ConservedVars) {
	var (
		fInt = InviscidNormalFlux(pair.Int, normal)
		fExt = InviscidNormalFlux(pair.Ext, normal)
		wsI  = pair.Int.WaveSpeed(normal)
		wsE  = pair.Ext.WaveSpeed(normal)
		dim  = pair.Int.Dim()
	)
	f = fluid.NewConserved(dim, pair.Int.NumSpecies(), pair.Int.Len())
	for i := range f.Mass {
		lam := math.Max(wsI[i], wsE[i])
		f.Mass[i] = 0.5*(fInt.Mass[i]+fExt.Mass[i]) -
			0.5*lam*(pair.Ext.CV.Mass[i]-pair.Int.CV.Mass[i])
		f.Energy[i] = 0.5*(fInt.Energy[i]+fExt.Energy[i]) -
			0.5*lam*(pair.Ext.CV.Energy[i]-pair.Int.CV.Energy[i])
		for d := 0; d < dim; d++ {
			f.Momentum[d][i] = 0.5*(fInt.Momentum[d][i]+fExt.Momentum[d][i]) -
				0.5*lam*(pair.Ext.CV.Momentum[d][i]-pair.Int.CV.Momentum[d][i])
		}
		for alpha := range f.Species {
			f.Species[alpha][i] = 0.5*(fInt.Species[alpha][i]+fExt.Species[alpha][i]) -
				0.5*lam*(pair.Ext.CV.Species[alpha][i]-pair.Int.CV.Species[alpha][i])
		}
	}
	return
}

// CentralFlux is the arithmetic mean of the two physical normal fluxes,
// with no dissipation. Used for gradient-consistency checks and as a
// building block for boundary flux strategies.
func CentralFlux(pair gas.StatePair, normal [][]float64) (f fluid.ConservedVars) {
	var (
		fInt = InviscidNormalFlux(pair.Int, normal)
		fExt = InviscidNormalFlux(pair.Ext, normal)
		dim  = pair.Int.Dim()
	)
	f = fluid.NewConserved(dim, pair.Int.NumSpecies(), pair.Int.Len())
	for i := range f.Mass {
		f.Mass[i] = 0.5 * (fInt.Mass[i] + fExt.Mass[i])
		f.Energy[i] = 0.5 * (fInt.Energy[i] + fExt.Energy[i])
		for d := 0; d < dim; d++ {
			f.Momentum[d][i] = 0.5 * (fInt.Momentum[d][i] + fExt.Momentum[d][i])
		}
		for alpha := range f.Species {
			f.Species[alpha][i] = 0.5 * (fInt.Species[alpha][i] + fExt.Species[alpha][i])
		}
	}
	return
}
