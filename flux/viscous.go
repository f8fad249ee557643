package flux

import (
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// viscousStress returns tau = mu (grad v + grad v^T - 2/3 div(v) I)
// as [i][j][node].
func viscousStress(s *gas.FluidState, grad fluid.GradCV) (tau [][][]float64) {
	var (
		dim   = s.Dim()
		n     = s.Len()
		gradV = fluid.VelocityGradient(s.CV, grad)
	)
	divV := make([]float64, n)
	for d := 0; d < dim; d++ {
		for p := 0; p < n; p++ {
			divV[p] += gradV[d][d][p]
		}
	}
	tau = make([][][]float64, dim)
	for i := 0; i < dim; i++ {
		tau[i] = make([][]float64, dim)
		for j := 0; j < dim; j++ {
			tau[i][j] = make([]float64, n)
			for p := 0; p < n; p++ {
				t := gradV[i][j][p] + gradV[j][i][p]
				if i == j {
					t -= 2. / 3. * divV[p]
				}
				tau[i][j][p] = s.Viscosity[p] * t
			}
		}
	}
	return
}

// ViscousNormalFlux evaluates the physical viscous flux dotted with the
// outward unit normal:
//
//	momentum: tau . n
//	energy:   (tau . v) . n + kappa grad(T) . n
//	species:  rho D_alpha grad(Y_alpha) . n
//
// The sign convention matches the divergence form d_t q + div(F_inv) =
// div(F_v): this is the flux that appears on the right-hand side.
func ViscousNormalFlux(s *gas.FluidState, grad fluid.GradCV, gradT, normal [][]float64) (f fluid.ConservedVars) {
	var (
		dim = s.Dim()
		n   = s.Len()
		tau = viscousStress(s, grad)
		v   = s.Velocity()
	)
	f = fluid.NewConserved(dim, s.NumSpecies(), n)
	for p := 0; p < n; p++ {
		for i := 0; i < dim; i++ {
			var tn float64
			for j := 0; j < dim; j++ {
				tn += tau[i][j][p] * normal[j][p]
			}
			f.Momentum[i][p] = tn
			f.Energy[p] += tn * v[i][p]
		}
		for j := 0; j < dim; j++ {
			f.Energy[p] += s.ThermalConductivity[p] * gradT[j][p] * normal[j][p]
		}
	}
	if s.NumSpecies() > 0 {
		gradY := fluid.SpeciesMassFractionGradient(s.CV, grad)
		for alpha := 0; alpha < s.NumSpecies(); alpha++ {
			for p := 0; p < n; p++ {
				var jn float64
				for j := 0; j < dim; j++ {
					jn += gradY[alpha][j][p] * normal[j][p]
				}
				f.Species[alpha][p] = s.CV.Mass[p] * s.SpeciesDiffusivity[alpha][p] * jn
			}
		}
	}
	return
}

// CentralViscousFlux is the arithmetic mean of the two physical viscous
// normal fluxes, the standard interior-face treatment for the viscous
// divergence.
func CentralViscousFlux(pair gas.StatePair, gradInt, gradExt fluid.GradCV,
	gradTInt, gradTExt, normal [][]float64) (f fluid.ConservedVars) {
	var (
		fInt = ViscousNormalFlux(pair.Int, gradInt, gradTInt, normal)
		fExt = ViscousNormalFlux(pair.Ext, gradExt, gradTExt, normal)
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
