package flux

import (
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// InviscidFluxTensor evaluates the full Euler flux tensor at every
// node, one ConservedVars per coordinate direction.
func InviscidFluxTensor(s *gas.FluidState) (F []fluid.ConservedVars) {
	var (
		cv  = s.CV
		dim = cv.Dim()
		n   = cv.Len()
	)
	F = make([]fluid.ConservedVars, dim)
	for d := range F {
		F[d] = fluid.NewConserved(dim, cv.NumSpecies(), n)
	}
	for i, rho := range cv.Mass {
		for d := 0; d < dim; d++ {
			vd := cv.Momentum[d][i] / rho
			F[d].Mass[i] = cv.Momentum[d][i]
			for c := 0; c < dim; c++ {
				F[d].Momentum[c][i] = cv.Momentum[c][i] * vd
			}
			F[d].Momentum[d][i] += s.Pressure[i]
			F[d].Energy[i] = (cv.Energy[i] + s.Pressure[i]) * vd
			for alpha := range cv.Species {
				F[d].Species[alpha][i] = cv.Species[alpha][i] * vd
			}
		}
	}
	return
}

// ViscousFluxTensor evaluates the full viscous flux tensor at every
// node: stress, heat conduction, and species diffusion per direction.
func ViscousFluxTensor(s *gas.FluidState, grad fluid.GradCV, gradT [][]float64) (F []fluid.ConservedVars) {
	var (
		dim = s.Dim()
		n   = s.Len()
		tau = viscousStress(s, grad)
		v   = s.Velocity()
	)
	F = make([]fluid.ConservedVars, dim)
	for d := range F {
		F[d] = fluid.NewConserved(dim, s.NumSpecies(), n)
	}
	for d := 0; d < dim; d++ {
		for p := 0; p < n; p++ {
			var work float64
			for i := 0; i < dim; i++ {
				F[d].Momentum[i][p] = tau[i][d][p]
				work += tau[i][d][p] * v[i][p]
			}
			F[d].Energy[p] = work + s.ThermalConductivity[p]*gradT[d][p]
		}
	}
	if s.NumSpecies() > 0 {
		gradY := fluid.SpeciesMassFractionGradient(s.CV, grad)
		for alpha := 0; alpha < s.NumSpecies(); alpha++ {
			for d := 0; d < dim; d++ {
				for p := 0; p < n; p++ {
					F[d].Species[alpha][p] = s.CV.Mass[p] * s.SpeciesDiffusivity[alpha][p] * gradY[alpha][d][p]
				}
			}
		}
	}
	return
}
