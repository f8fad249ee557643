package flux

import (
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// LogMean is the logarithmic mean (y-x)/(log y - log x), evaluated with
// the Winters series expansion near x == y to avoid 0/0.
func LogMean(x, y float64) float64 {
	const eps = 1.e-4
	var (
		f = (y - x) / (y + x)
		u = f * f
	)
	if u < eps {
		return 0.5 * (x + y) / (1. + u*(1./3.+u*(1./5.+u*(1./7.))))
	}
	return 0.5 * (x + y) * 2. * f / math.Log(y/x)
}

// chandrashekarPoint evaluates the Chandrashekar entropy-conserving
// two-point flux in coordinate direction dir between left and right
// node states. out receives mass, dim momenta, energy, then species,
// in that order.
func chandrashekarPoint(gamma float64, dim int,
	rhoL, pL float64, uL []float64, yL []float64,
	rhoR, pR float64, uR []float64, yR []float64,
	dir int, out []float64) {

	var (
		betaL    = 0.5 * rhoL / pL
		betaR    = 0.5 * rhoR / pR
		rhoAvg   = 0.5 * (rhoL + rhoR)
		rhoMean  = LogMean(rhoL, rhoR)
		betaAvg  = 0.5 * (betaL + betaR)
		betaMean = LogMean(betaL, betaR)
		pMean    = 0.5 * rhoAvg / betaAvg
		kinSum   float64
	)
	uAvg := make([]float64, dim)
	for d := 0; d < dim; d++ {
		uAvg[d] = 0.5 * (uL[d] + uR[d])
		kinSum += 0.5 * (uL[d]*uL[d] + uR[d]*uR[d])
	}
	massFlux := rhoMean * uAvg[dir]
	out[0] = massFlux
	var momDotU float64
	for d := 0; d < dim; d++ {
		mf := massFlux * uAvg[d]
		if d == dir {
			mf += pMean
		}
		out[1+d] = mf
		momDotU += mf * uAvg[d]
	}
	out[1+dim] = massFlux*(0.5/((gamma-1.)*betaMean)-0.5*kinSum) + momDotU
	for alpha := range yL {
		out[2+dim+alpha] = massFlux * 0.5 * (yL[alpha] + yR[alpha])
	}
}

// ChandrashekarVolume evaluates the entropy-conserving two-point flux
// between node i of state a and node j of state b, in direction dir.
// This is the kernel consumed by volume flux differencing. out must
// have 2 + dim + nspecies entries.
func ChandrashekarVolume(gamma float64, a, b *gas.FluidState, i, j, dir int, out []float64) {
	var (
		dim = a.Dim()
		uL  = make([]float64, dim)
		uR  = make([]float64, dim)
	)
	rhoL, rhoR := a.CV.Mass[i], b.CV.Mass[j]
	for d := 0; d < dim; d++ {
		uL[d] = a.CV.Momentum[d][i] / rhoL
		uR[d] = b.CV.Momentum[d][j] / rhoR
	}
	var yL, yR []float64
	if ns := a.NumSpecies(); ns > 0 {
		yL = make([]float64, ns)
		yR = make([]float64, ns)
		for alpha := 0; alpha < ns; alpha++ {
			yL[alpha] = a.CV.Species[alpha][i] / rhoL
			yR[alpha] = b.CV.Species[alpha][j] / rhoR
		}
	}
	chandrashekarPoint(gamma, dim,
		rhoL, a.Pressure[i], uL, yL,
		rhoR, b.Pressure[j], uR, yR,
		dir, out)
}

// ChandrashekarFlux is the entropy-conserving facial flux: the
// two-point EC flux contracted with the outward unit normal.
func ChandrashekarFlux(gamma float64, pair gas.StatePair, normal [][]float64) (f fluid.ConservedVars) {
	var (
		dim = pair.Int.Dim()
		ns  = pair.Int.NumSpecies()
		n   = pair.Int.Len()
		neq = 2 + dim + ns
		fd  = make([]float64, neq)
	)
	f = fluid.NewConserved(dim, ns, n)
	for i := 0; i < n; i++ {
		for d := 0; d < dim; d++ {
			ChandrashekarVolume(gamma, pair.Int, pair.Ext, i, i, d, fd)
			nd := normal[d][i]
			f.Mass[i] += fd[0] * nd
			for c := 0; c < dim; c++ {
				f.Momentum[c][i] += fd[1+c] * nd
			}
			f.Energy[i] += fd[1+dim] * nd
			for alpha := 0; alpha < ns; alpha++ {
				f.Species[alpha][i] += fd[2+dim+alpha] * nd
			}
		}
	}
	return
}

// EntropyStableRusanovFlux augments the entropy-conserving facial flux
// with a Rusanov penalty on the conserved-variable jump, yielding an
// entropy-stable interface flux.
func EntropyStableRusanovFlux(gamma float64, pair gas.StatePair, normal [][]float64) (f fluid.ConservedVars) {
	var (
		wsI = pair.Int.WaveSpeed(normal)
		wsE = pair.Ext.WaveSpeed(normal)
		dim = pair.Int.Dim()
	)
	f = ChandrashekarFlux(gamma, pair, normal)
	for i := range f.Mass {
		lam := 0.5 * math.Max(wsI[i], wsE[i])
		f.Mass[i] -= lam * (pair.Ext.CV.Mass[i] - pair.Int.CV.Mass[i])
		f.Energy[i] -= lam * (pair.Ext.CV.Energy[i] - pair.Int.CV.Energy[i])
		for d := 0; d < dim; d++ {
			f.Momentum[d][i] -= lam * (pair.Ext.CV.Momentum[d][i] - pair.Int.CV.Momentum[d][i])
		}
		for alpha := range f.Species {
			f.Species[alpha][i] -= lam * (pair.Ext.CV.Species[alpha][i] - pair.Int.CV.Species[alpha][i])
		}
	}
	return
}
