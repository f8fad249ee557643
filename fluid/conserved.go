package fluid

import "fmt"

// ConservedVars holds the evolved state densities at a set of nodes:
// mass, momentum (one slice per spatial dimension), total energy, and
// species partial densities (empty for a single gas). Values are
// node-major []float64 fields. ConservedVars is treated as immutable:
// any change produces a new value via MakeConserved.
type ConservedVars struct {
	Mass     []float64
	Energy   []float64
	Momentum [][]float64 // [dim][node]
	Species  [][]float64 // [nspecies][node]
}

func MakeConserved(dim int, mass, energy []float64, momentum, species [][]float64) (cv ConservedVars) {
	if len(momentum) != dim {
		panic(fmt.Errorf("momentum has %d components, want %d", len(momentum), dim))
	}
	n := len(mass)
	if len(energy) != n {
		panic(fmt.Errorf("energy field length %d, want %d", len(energy), n))
	}
	for _, m := range momentum {
		if len(m) != n {
			panic(fmt.Errorf("momentum field length %d, want %d", len(m), n))
		}
	}
	for _, s := range species {
		if len(s) != n {
			panic(fmt.Errorf("species field length %d, want %d", len(s), n))
		}
	}
	cv = ConservedVars{Mass: mass, Energy: energy, Momentum: momentum, Species: species}
	return
}

// NewConserved allocates a zeroed state of the given shape.
func NewConserved(dim, nspecies, n int) (cv ConservedVars) {
	mom := make([][]float64, dim)
	for d := range mom {
		mom[d] = make([]float64, n)
	}
	var sp [][]float64
	if nspecies > 0 {
		sp = make([][]float64, nspecies)
		for alpha := range sp {
			sp[alpha] = make([]float64, n)
		}
	}
	cv = ConservedVars{
		Mass:     make([]float64, n),
		Energy:   make([]float64, n),
		Momentum: mom,
		Species:  sp,
	}
	return
}

func (cv ConservedVars) Dim() int        { return len(cv.Momentum) }
func (cv ConservedVars) NumSpecies() int { return len(cv.Species) }
func (cv ConservedVars) Len() int        { return len(cv.Mass) }

func (cv ConservedVars) Copy() (R ConservedVars) {
	R = NewConserved(cv.Dim(), cv.NumSpecies(), cv.Len())
	copy(R.Mass, cv.Mass)
	copy(R.Energy, cv.Energy)
	for d := range cv.Momentum {
		copy(R.Momentum[d], cv.Momentum[d])
	}
	for alpha := range cv.Species {
		copy(R.Species[alpha], cv.Species[alpha])
	}
	return
}

// LinearCombine returns a*x + b*y field-by-field. Shapes must agree.
func LinearCombine(a float64, x ConservedVars, b float64, y ConservedVars) (R ConservedVars) {
	R = NewConserved(x.Dim(), x.NumSpecies(), x.Len())
	for i := range x.Mass {
		R.Mass[i] = a*x.Mass[i] + b*y.Mass[i]
		R.Energy[i] = a*x.Energy[i] + b*y.Energy[i]
	}
	for d := range x.Momentum {
		for i := range x.Momentum[d] {
			R.Momentum[d][i] = a*x.Momentum[d][i] + b*y.Momentum[d][i]
		}
	}
	for alpha := range x.Species {
		for i := range x.Species[alpha] {
			R.Species[alpha][i] = a*x.Species[alpha][i] + b*y.Species[alpha][i]
		}
	}
	return
}

// Velocity returns momentum/mass per node.
func (cv ConservedVars) Velocity() (v [][]float64) {
	v = make([][]float64, cv.Dim())
	for d := range v {
		v[d] = make([]float64, cv.Len())
		for i, rho := range cv.Mass {
			v[d][i] = cv.Momentum[d][i] / rho
		}
	}
	return
}

// SpeciesMassFractions returns Y_alpha = rho_alpha/rho per node.
func (cv ConservedVars) SpeciesMassFractions() (y [][]float64) {
	y = make([][]float64, cv.NumSpecies())
	for alpha := range y {
		y[alpha] = make([]float64, cv.Len())
		for i, rho := range cv.Mass {
			y[alpha][i] = cv.Species[alpha][i] / rho
		}
	}
	return
}
