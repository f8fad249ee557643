package gas

import (
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
)

// Transport supplies the viscous transport coefficients. Methods take
// the EOS because temperature-dependent models need mixture heat
// capacities to convert viscosity into conductivity.
type Transport interface {
	Viscosity(eos EOS, cv fluid.ConservedVars, temperature []float64) []float64
	ThermalConductivity(eos EOS, cv fluid.ConservedVars, temperature []float64) []float64
	// SpeciesDiffusivity returns one diffusivity field per species;
	// nil when the state carries no species.
	SpeciesDiffusivity(eos EOS, cv fluid.ConservedVars, temperature []float64) [][]float64
}

// SimpleTransport uses constant transport coefficients.
type SimpleTransport struct {
	Mu          float64
	Kappa       float64
	SpeciesDiff []float64 // one entry per species, may be nil
}

func constantField(val float64, n int) (f []float64) {
	f = make([]float64, n)
	for i := range f {
		f[i] = val
	}
	return
}

func (t SimpleTransport) Viscosity(eos EOS, cv fluid.ConservedVars, temperature []float64) []float64 {
	return constantField(t.Mu, cv.Len())
}

func (t SimpleTransport) ThermalConductivity(eos EOS, cv fluid.ConservedVars, temperature []float64) []float64 {
	return constantField(t.Kappa, cv.Len())
}

func (t SimpleTransport) SpeciesDiffusivity(eos EOS, cv fluid.ConservedVars, temperature []float64) (d [][]float64) {
	if cv.NumSpecies() == 0 {
		return nil
	}
	d = make([][]float64, cv.NumSpecies())
	for alpha := range d {
		d[alpha] = constantField(t.SpeciesDiff[alpha], cv.Len())
	}
	return
}

// PowerLawTransport models viscosity as mu = Beta * T^Exponent, with
// conductivity tied to viscosity through a constant Prandtl number:
// kappa = mu * cp / Pr.
type PowerLawTransport struct {
	Beta        float64
	Exponent    float64
	Prandtl     float64
	SpeciesDiff []float64 // constant per-species diffusivities, may be nil
}

func (t PowerLawTransport) Viscosity(eos EOS, cv fluid.ConservedVars, temperature []float64) (mu []float64) {
	mu = make([]float64, cv.Len())
	for i, T := range temperature {
		mu[i] = t.Beta * math.Pow(T, t.Exponent)
	}
	return
}

func (t PowerLawTransport) ThermalConductivity(eos EOS, cv fluid.ConservedVars, temperature []float64) (kappa []float64) {
	var (
		mu    = t.Viscosity(eos, cv, temperature)
		gamma = eos.Gamma(cv, temperature)
		p     = eos.Pressure(cv, temperature)
	)
	kappa = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		// cp = gamma/(gamma-1) * R_mix, with R_mix = p/(rho T)
		cp := gamma[i] / (gamma[i] - 1.) * p[i] / (rho * temperature[i])
		kappa[i] = mu[i] * cp / t.Prandtl
	}
	return
}

func (t PowerLawTransport) SpeciesDiffusivity(eos EOS, cv fluid.ConservedVars, temperature []float64) (d [][]float64) {
	if cv.NumSpecies() == 0 {
		return nil
	}
	d = make([][]float64, cv.NumSpecies())
	for alpha := range d {
		d[alpha] = constantField(t.SpeciesDiff[alpha], cv.Len())
	}
	return
}
