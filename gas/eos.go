package gas

import (
	"fmt"
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
)

// EOS is the equation-of-state capability consumed by the flux and
// boundary machinery. All methods are per-node vectorized and pure.
type EOS interface {
	Pressure(cv fluid.ConservedVars, temperature []float64) []float64
	// Temperature resolves T from the conserved state. seed is an
	// optional starting guess for iterative (mixture) solves; it is a
	// performance hint, not part of the state, and may be nil.
	Temperature(cv fluid.ConservedVars, seed []float64) []float64
	SoundSpeed(cv fluid.ConservedVars, temperature []float64) []float64
	Gamma(cv fluid.ConservedVars, temperature []float64) []float64
	// InternalEnergy is the specific internal energy e(T, Y).
	InternalEnergy(temperature []float64, massFractions [][]float64) []float64
	Density(pressure, temperature []float64, massFractions [][]float64) []float64
	KineticEnergy(cv fluid.ConservedVars) []float64
}

func kineticEnergy(cv fluid.ConservedVars) (ke []float64) {
	ke = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		var msq float64
		for d := 0; d < cv.Dim(); d++ {
			msq += cv.Momentum[d][i] * cv.Momentum[d][i]
		}
		ke[i] = 0.5 * msq / rho
	}
	return
}

// IdealGas is a calorically perfect single-species gas with constant
// ratio of specific heats and gas constant.
type IdealGas struct {
	Gam float64 // ratio of specific heats
	R   float64 // specific gas constant
}

func NewIdealGas(gamma, gasConstant float64) IdealGas {
	return IdealGas{Gam: gamma, R: gasConstant}
}

func (g IdealGas) KineticEnergy(cv fluid.ConservedVars) []float64 {
	return kineticEnergy(cv)
}

func (g IdealGas) Pressure(cv fluid.ConservedVars, temperature []float64) (p []float64) {
	_ = temperature // closed form for a perfect gas
	ke := kineticEnergy(cv)
	p = make([]float64, cv.Len())
	for i := range p {
		p[i] = (g.Gam - 1.) * (cv.Energy[i] - ke[i])
	}
	return
}

func (g IdealGas) Temperature(cv fluid.ConservedVars, seed []float64) (T []float64) {
	_ = seed // direct solve, no iteration needed
	ke := kineticEnergy(cv)
	T = make([]float64, cv.Len())
	cvHeat := g.R / (g.Gam - 1.)
	for i, rho := range cv.Mass {
		T[i] = (cv.Energy[i] - ke[i]) / (rho * cvHeat)
	}
	return
}

func (g IdealGas) SoundSpeed(cv fluid.ConservedVars, temperature []float64) (c []float64) {
	p := g.Pressure(cv, temperature)
	c = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		c[i] = math.Sqrt(g.Gam * p[i] / rho)
	}
	return
}

func (g IdealGas) Gamma(cv fluid.ConservedVars, temperature []float64) (gamma []float64) {
	gamma = make([]float64, cv.Len())
	for i := range gamma {
		gamma[i] = g.Gam
	}
	return
}

func (g IdealGas) InternalEnergy(temperature []float64, massFractions [][]float64) (e []float64) {
	_ = massFractions
	e = make([]float64, len(temperature))
	cvHeat := g.R / (g.Gam - 1.)
	for i, T := range temperature {
		e[i] = cvHeat * T
	}
	return
}

func (g IdealGas) Density(pressure, temperature []float64, massFractions [][]float64) (rho []float64) {
	_ = massFractions
	rho = make([]float64, len(pressure))
	for i := range rho {
		rho[i] = pressure[i] / (g.R * temperature[i])
	}
	return
}

// SpeciesData holds the per-species thermodynamic fit for PerfectMixture:
// cv_k(T) = CvA + CvB*T, so e_k(T) = CvA*T + CvB*T^2/2.
type SpeciesData struct {
	Name string
	R    float64 // species gas constant
	CvA  float64
	CvB  float64
}

// PerfectMixture is a multi-species gas whose specific heats vary
// linearly with temperature, making the temperature inversion a Newton
// solve seeded by the caller-provided guess.
type PerfectMixture struct {
	Species []SpeciesData
}

func NewPerfectMixture(species []SpeciesData) (*PerfectMixture, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("PerfectMixture requires at least one species")
	}
	return &PerfectMixture{Species: species}, nil
}

func (m *PerfectMixture) NumSpecies() int { return len(m.Species) }

func (m *PerfectMixture) mixtureR(y [][]float64, i int) (r float64) {
	for alpha := range m.Species {
		r += y[alpha][i] * m.Species[alpha].R
	}
	return
}

func (m *PerfectMixture) mixtureCv(y [][]float64, i int, T float64) (cvh float64) {
	for alpha := range m.Species {
		cvh += y[alpha][i] * (m.Species[alpha].CvA + m.Species[alpha].CvB*T)
	}
	return
}

func (m *PerfectMixture) mixtureE(y [][]float64, i int, T float64) (e float64) {
	for alpha := range m.Species {
		e += y[alpha][i] * (m.Species[alpha].CvA*T + 0.5*m.Species[alpha].CvB*T*T)
	}
	return
}

func (m *PerfectMixture) KineticEnergy(cv fluid.ConservedVars) []float64 {
	return kineticEnergy(cv)
}

const (
	temperatureNewtonTol   = 1.e-10
	temperatureNewtonIters = 50
	temperatureDefaultSeed = 300.
)

func (m *PerfectMixture) Temperature(cv fluid.ConservedVars, seed []float64) (T []float64) {
	var (
		ke = kineticEnergy(cv)
		y  = cv.SpeciesMassFractions()
	)
	T = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		e := (cv.Energy[i] - ke[i]) / rho // target specific internal energy
		t := temperatureDefaultSeed
		if seed != nil {
			t = seed[i]
		}
		for iter := 0; iter < temperatureNewtonIters; iter++ {
			f := m.mixtureE(y, i, t) - e
			dt := f / m.mixtureCv(y, i, t)
			t -= dt
			if math.Abs(dt) < temperatureNewtonTol*t {
				break
			}
		}
		T[i] = t
	}
	return
}

func (m *PerfectMixture) Pressure(cv fluid.ConservedVars, temperature []float64) (p []float64) {
	y := cv.SpeciesMassFractions()
	p = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		p[i] = rho * m.mixtureR(y, i) * temperature[i]
	}
	return
}

func (m *PerfectMixture) Gamma(cv fluid.ConservedVars, temperature []float64) (gamma []float64) {
	y := cv.SpeciesMassFractions()
	gamma = make([]float64, cv.Len())
	for i := range gamma {
		cvh := m.mixtureCv(y, i, temperature[i])
		gamma[i] = (cvh + m.mixtureR(y, i)) / cvh
	}
	return
}

func (m *PerfectMixture) SoundSpeed(cv fluid.ConservedVars, temperature []float64) (c []float64) {
	var (
		gamma = m.Gamma(cv, temperature)
		p     = m.Pressure(cv, temperature)
	)
	c = make([]float64, cv.Len())
	for i, rho := range cv.Mass {
		c[i] = math.Sqrt(gamma[i] * p[i] / rho)
	}
	return
}

func (m *PerfectMixture) InternalEnergy(temperature []float64, massFractions [][]float64) (e []float64) {
	e = make([]float64, len(temperature))
	for i, T := range temperature {
		e[i] = m.mixtureE(massFractions, i, T)
	}
	return
}

func (m *PerfectMixture) Density(pressure, temperature []float64, massFractions [][]float64) (rho []float64) {
	rho = make([]float64, len(pressure))
	for i := range rho {
		rho[i] = pressure[i] / (m.mixtureR(massFractions, i) * temperature[i])
	}
	return
}
