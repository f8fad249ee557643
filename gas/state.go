package gas

import (
	"fmt"
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
)

// Model bundles the equation of state with an optional transport model.
// A nil Transport means the gas is treated as inviscid.
type Model struct {
	EOS       EOS
	Transport Transport
}

func (gm Model) IsViscous() bool { return gm.Transport != nil }

// FluidState is a conserved state with its dependent thermodynamic
// quantities resolved once. Everything downstream (fluxes, boundary
// exterior-state construction) reads from here instead of re-deriving.
type FluidState struct {
	CV          fluid.ConservedVars
	Temperature []float64
	Pressure    []float64
	SoundSpeed  []float64

	// Transport fields, nil for an inviscid model.
	Viscosity           []float64
	ThermalConductivity []float64
	SpeciesDiffusivity  [][]float64

	// Smoothness drives artificial viscosity; nil when AV is off.
	Smoothness []float64
}

func (s *FluidState) Dim() int        { return s.CV.Dim() }
func (s *FluidState) Len() int        { return s.CV.Len() }
func (s *FluidState) NumSpecies() int { return s.CV.NumSpecies() }
func (s *FluidState) IsMixture() bool { return s.CV.NumSpecies() > 0 }
func (s *FluidState) IsViscous() bool { return s.Viscosity != nil }
func (s *FluidState) HasSmoothness() bool {
	return s.Smoothness != nil
}

func (s *FluidState) Velocity() [][]float64 { return s.CV.Velocity() }

// WaveSpeed is |v.n| + c per node for the given outward unit normal,
// the scalar used by Rusanov-type penalties.
func (s *FluidState) WaveSpeed(normal [][]float64) (ws []float64) {
	ws = make([]float64, s.Len())
	for i, rho := range s.CV.Mass {
		var vn float64
		for d := 0; d < s.Dim(); d++ {
			vn += s.CV.Momentum[d][i] / rho * normal[d][i]
		}
		ws[i] = math.Abs(vn) + s.SoundSpeed[i]
	}
	return
}

// MakeFluidState resolves the dependent quantities for cv under gm.
// temperatureSeed is the optional starting guess for mixture EOS
// temperature solves and may be nil.
func MakeFluidState(cv fluid.ConservedVars, gm Model, temperatureSeed []float64) *FluidState {
	return MakeFluidStateWithSmoothness(cv, gm, temperatureSeed, nil)
}

// MakeFluidStateWithSmoothness additionally attaches a smoothness field
// for artificial-viscosity runs. The field must match the state length.
func MakeFluidStateWithSmoothness(cv fluid.ConservedVars, gm Model, temperatureSeed, smoothness []float64) *FluidState {
	if temperatureSeed != nil && len(temperatureSeed) != cv.Len() {
		panic(fmt.Errorf("temperature seed length %d, state length %d", len(temperatureSeed), cv.Len()))
	}
	if smoothness != nil && len(smoothness) != cv.Len() {
		panic(fmt.Errorf("smoothness length %d, state length %d", len(smoothness), cv.Len()))
	}
	T := gm.EOS.Temperature(cv, temperatureSeed)
	s := &FluidState{
		CV:          cv,
		Temperature: T,
		Pressure:    gm.EOS.Pressure(cv, T),
		SoundSpeed:  gm.EOS.SoundSpeed(cv, T),
		Smoothness:  smoothness,
	}
	if gm.IsViscous() {
		s.Viscosity = gm.Transport.Viscosity(gm.EOS, cv, T)
		s.ThermalConductivity = gm.Transport.ThermalConductivity(gm.EOS, cv, T)
		s.SpeciesDiffusivity = gm.Transport.SpeciesDiffusivity(gm.EOS, cv, T)
	}
	return s
}

// StatePair is the resolved minus/plus pair of fluid states on a set of
// shared face nodes.
type StatePair struct {
	Int *FluidState // interior (minus) trace
	Ext *FluidState // exterior (plus) trace
}
