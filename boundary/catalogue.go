package boundary

import (
	"fmt"
	"math"

	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/flux"
	"github.com/astro-friedel/mirgecom/gas"
)

// NewDummy is the identity boundary: exterior equals interior. Useful
// for testing operator plumbing; NewCondition logs a warning because an
// unconfigured boundary resolves to exactly this.
func NewDummy() *Condition {
	return NewCondition(Config{Name: "Dummy"})
}

// NewAdiabaticSlip is the inviscid slip wall / symmetry boundary: the
// normal momentum component is reflected, the tangential component and
// all thermodynamics are preserved.
func NewAdiabaticSlip() *Condition {
	return NewCondition(Config{
		Name: "AdiabaticSlip",
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			cv := fluid.MakeConserved(interior.Dim(),
				interior.CV.Mass, interior.CV.Energy,
				reflectedMomentum(interior.CV.Momentum, face.Normal),
				interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
		BoundaryTemperature: interiorTemperature,
		BoundaryGradAV:      reflectNegateGradAV,
	})
}

// NewAdiabaticNoslipMoving enforces zero relative velocity against a
// wall moving at wallVelocity: m+ = 2 rho v_wall - m-. A wall velocity
// of the wrong dimension is a configuration error.
func NewAdiabaticNoslipMoving(dim int, wallVelocity []float64) (*Condition, error) {
	if len(wallVelocity) != dim {
		return nil, fmt.Errorf("wall velocity has %d components, want %d", len(wallVelocity), dim)
	}
	return NewCondition(Config{
		Name: "AdiabaticNoslipMoving",
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			mom := make([][]float64, dim)
			for d := 0; d < dim; d++ {
				mom[d] = make([]float64, interior.Len())
				for i, rho := range interior.CV.Mass {
					mom[d][i] = 2.*rho*wallVelocity[d] - interior.CV.Momentum[d][i]
				}
			}
			cv := fluid.MakeConserved(dim,
				interior.CV.Mass, interior.CV.Energy, mom, interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
		BoundaryTemperature: interiorTemperature,
		BoundaryGradAV: func(face Face, gradAVInt [][]float64) [][]float64 {
			return negatedMomentum(gradAVInt)
		},
	}), nil
}

// NewIsothermalNoslip is the inviscid-form isothermal no-slip wall:
// momentum mirrored, temperature linearly extrapolated through the wall
// value so a centered flux lands exactly on wallTemperature, energy
// rebuilt from that temperature.
func NewIsothermalNoslip(wallTemperature float64) *Condition {
	tempBC := func(face Face, gm gas.Model, interior *gas.FluidState) []float64 {
		t := make([]float64, interior.Len())
		for i, tm := range interior.Temperature {
			t[i] = 2.*wallTemperature - tm
		}
		return t
	}
	return NewCondition(Config{
		Name:                "IsothermalNoslip",
		BoundaryTemperature: tempBC,
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			var (
				tBC = tempBC(face, gm, interior)
				e   = gm.EOS.InternalEnergy(tBC, interior.CV.SpeciesMassFractions())
				ke  = gm.EOS.KineticEnergy(interior.CV)
			)
			energy := make([]float64, interior.Len())
			for i, rho := range interior.CV.Mass {
				energy[i] = rho*e[i] + ke[i]
			}
			cv := fluid.MakeConserved(interior.Dim(),
				interior.CV.Mass, energy,
				negatedMomentum(interior.CV.Momentum),
				interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
	})
}

// NewFarfield prescribes a fixed free-stream state; the interior trace
// contributes only its shape. Vector-shape and species-table mismatches
// are configuration errors.
func NewFarfield(dim, numSpecies int, velocity []float64, pressure, temperature float64,
	massFractions []float64) (*Condition, error) {
	if len(velocity) != dim {
		return nil, fmt.Errorf("free-stream velocity has %d components, want %d", len(velocity), dim)
	}
	if len(massFractions) != numSpecies {
		return nil, fmt.Errorf("free-stream mass fractions table has %d entries, gas has %d species",
			len(massFractions), numSpecies)
	}
	return NewCondition(Config{
		Name: "Farfield",
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			n := interior.Len()
			if ns := interior.NumSpecies(); ns > 0 && len(massFractions) != ns {
				panic(fmt.Errorf("farfield mass fractions: %d entries, state has %d species",
					len(massFractions), ns))
			}
			var (
				pField = constField(pressure, n)
				tField = constField(temperature, n)
				yField [][]float64
			)
			if ns := interior.NumSpecies(); ns > 0 {
				yField = make([][]float64, ns)
				for alpha := range yField {
					yField[alpha] = constField(massFractions[alpha], n)
				}
			}
			var (
				rho = gm.EOS.Density(pField, tField, yField)
				e   = gm.EOS.InternalEnergy(tField, yField)
				vsq float64
			)
			for d := 0; d < dim; d++ {
				vsq += velocity[d] * velocity[d]
			}
			var (
				energy = make([]float64, n)
				mom    = make([][]float64, dim)
			)
			for d := range mom {
				mom[d] = make([]float64, n)
			}
			for i := range rho {
				energy[i] = rho[i]*e[i] + 0.5*rho[i]*vsq
				for d := 0; d < dim; d++ {
					mom[d][i] = rho[i] * velocity[d]
				}
			}
			var species [][]float64
			if yField != nil {
				species = make([][]float64, len(yField))
				for alpha := range species {
					species[alpha] = make([]float64, n)
					for i := range rho {
						species[alpha][i] = rho[i] * yField[alpha][i]
					}
				}
			}
			cv := fluid.MakeConserved(dim, rho, energy, mom, species)
			return exteriorState(gm, interior, cv)
		},
		BoundaryTemperature: func(face Face, gm gas.Model, interior *gas.FluidState) []float64 {
			return constField(temperature, interior.Len())
		},
	}), nil
}

// NewOutflow is the partially non-reflecting pressure outflow. Mass,
// momentum and species copy from the interior; energy switches per node
// on the boundary-normal Mach number: supersonic exits keep the
// interior energy, subsonic exits rebuild it from the characteristic
// pressure extrapolation 2 P_b - P-.
func NewOutflow(boundaryPressure float64) *Condition {
	return NewCondition(Config{
		Name: "Outflow",
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			var (
				dim   = interior.Dim()
				gamma = gm.EOS.Gamma(interior.CV, interior.Temperature)
				ke    = gm.EOS.KineticEnergy(interior.CV)
			)
			energy := make([]float64, interior.Len())
			for i, rho := range interior.CV.Mass {
				var vn float64
				for d := 0; d < dim; d++ {
					vn += interior.CV.Momentum[d][i] / rho * face.Normal[d][i]
				}
				// Both branches are evaluated, then selected per node.
				var (
					eSuper = interior.CV.Energy[i]
					eSub   = (2.*boundaryPressure-interior.Pressure[i])/(gamma[i]-1.) + ke[i]
				)
				if math.Abs(vn) >= interior.SoundSpeed[i] {
					energy[i] = eSuper
				} else {
					energy[i] = eSub
				}
			}
			cv := fluid.MakeConserved(dim,
				interior.CV.Mass, energy, interior.CV.Momentum, interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
		BoundaryTemperature: interiorTemperature,
	})
}

// NewInflow is the characteristic inflow: outgoing and incoming Riemann
// invariants are blended along the boundary normal, with per-node
// supersonic selection, and the boundary density and pressure are
// rebuilt through the isentropic relation. Vector-shape and
// species-table mismatches are configuration errors.
func NewInflow(dim, numSpecies int, velocity []float64, pressure, temperature float64,
	massFractions []float64) (*Condition, error) {
	if len(velocity) != dim {
		return nil, fmt.Errorf("free-stream velocity has %d components, want %d", len(velocity), dim)
	}
	if len(massFractions) != numSpecies {
		return nil, fmt.Errorf("free-stream mass fractions table has %d entries, gas has %d species",
			len(massFractions), numSpecies)
	}
	return NewCondition(Config{
		Name: "Inflow",
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			var (
				n      = interior.Len()
				pField = constField(pressure, n)
				tField = constField(temperature, n)
				yField [][]float64
			)
			if ns := interior.NumSpecies(); ns > 0 {
				if len(massFractions) != ns {
					panic(fmt.Errorf("inflow mass fractions: %d entries, state has %d species",
						len(massFractions), ns))
				}
				yField = make([][]float64, ns)
				for alpha := range yField {
					yField[alpha] = constField(massFractions[alpha], n)
				}
			}
			var (
				rhoPlus = gm.EOS.Density(pField, tField, yField)
				gamma   = gm.EOS.Gamma(interior.CV, interior.Temperature)
				cv      = fluid.NewConserved(dim, interior.NumSpecies(), n)
			)
			for i := 0; i < n; i++ {
				var (
					gm1    = gamma[i] - 1.
					cPlus  = math.Sqrt(gamma[i] * pressure / rhoPlus[i])
					cMinus = interior.SoundSpeed[i]
					vPlus  float64
					vMinus float64
				)
				for d := 0; d < dim; d++ {
					vPlus += velocity[d] * face.Normal[d][i]
					vMinus += interior.CV.Momentum[d][i] / interior.CV.Mass[i] * face.Normal[d][i]
				}
				// Outgoing invariant from the interior, incoming from
				// the free stream; a supersonic interior overrides the
				// incoming one. Both are computed, then selected.
				var (
					rMinus     = vMinus + 2.*cMinus/gm1
					rPlusSub   = vPlus - 2.*cPlus/gm1
					rPlusSuper = vMinus - 2.*cMinus/gm1
					rPlus      = rPlusSub
				)
				if vMinus > cMinus {
					rPlus = rPlusSuper
				}
				var (
					vBnd = 0.5 * (rMinus + rPlus)
					cBnd = 0.25 * gm1 * (rMinus - rPlus)
					c2   = cBnd * cBnd
					// Isentropic reconstruction through the free-stream
					// entropy function.
					entPlus = cPlus * cPlus / (gamma[i] * math.Pow(rhoPlus[i], gm1))
					rhoBnd  = math.Pow(c2/(gamma[i]*entPlus), 1./gm1)
					pBnd    = rhoBnd * c2 / gamma[i]
					vsq     float64
				)
				for d := 0; d < dim; d++ {
					vd := velocity[d] + (vBnd-vPlus)*face.Normal[d][i]
					cv.Momentum[d][i] = rhoBnd * vd
					vsq += vd * vd
				}
				cv.Mass[i] = rhoBnd
				cv.Energy[i] = pBnd/gm1 + 0.5*rhoBnd*vsq
				for alpha := range cv.Species {
					cv.Species[alpha][i] = rhoBnd * massFractions[alpha]
				}
			}
			return exteriorState(gm, interior, cv)
		},
		// Exterior temperature follows from the reconstructed boundary
		// state through the equation of state (the default strategy).
	}), nil
}

// NewIsothermalWall is the viscous isothermal no-slip wall. The
// advective flux sees a mirrored-momentum state for correct wave
// speeds; the viscous flux is evaluated physically at a zero-velocity
// wall state rather than by a numerical blend.
func NewIsothermalWall(wallTemperature float64) *Condition {
	tempBC := func(face Face, gm gas.Model, interior *gas.FluidState) []float64 {
		t := make([]float64, interior.Len())
		for i, tm := range interior.Temperature {
			t[i] = 2.*wallTemperature - tm
		}
		return t
	}
	wallState := func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
		var (
			tBC = tempBC(face, gm, interior)
			e   = gm.EOS.InternalEnergy(tBC, interior.CV.SpeciesMassFractions())
			dim = interior.Dim()
			n   = interior.Len()
		)
		mom := make([][]float64, dim)
		for d := range mom {
			mom[d] = make([]float64, n)
		}
		energy := make([]float64, n)
		for i, rho := range interior.CV.Mass {
			energy[i] = rho * e[i]
		}
		cv := fluid.MakeConserved(dim, interior.CV.Mass, energy, mom, interior.CV.Species)
		return exteriorState(gm, interior, cv)
	}
	return NewCondition(Config{
		Name:                "IsothermalWall",
		BoundaryTemperature: tempBC,
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			var (
				tBC = tempBC(face, gm, interior)
				e   = gm.EOS.InternalEnergy(tBC, interior.CV.SpeciesMassFractions())
				ke  = gm.EOS.KineticEnergy(interior.CV)
			)
			energy := make([]float64, interior.Len())
			for i, rho := range interior.CV.Mass {
				energy[i] = rho*e[i] + ke[i]
			}
			cv := fluid.MakeConserved(interior.Dim(),
				interior.CV.Mass, energy,
				negatedMomentum(interior.CV.Momentum),
				interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
		CVGradientFlux: func(face Face, gm gas.Model, interior *gas.FluidState) (fluid.GradCV, error) {
			// The gradient operator sees the zero-velocity wall state so
			// the velocity gradient lands on the no-slip profile.
			pair := gas.StatePair{Int: interior, Ext: wallState(face, gm, interior)}
			return flux.CentralGradientFlux(pair, face.Normal), nil
		},
		ViscousFlux: func(face Face, gm gas.Model, interior *gas.FluidState,
			gradInt fluid.GradCV, gradTInt [][]float64,
			numFlux ViscousNumFlux) (fluid.ConservedVars, error) {
			if !interior.IsViscous() {
				return fluid.ConservedVars{}, fmt.Errorf(
					"isothermal wall: viscous flux requested for a state with no transport model")
			}
			var (
				ws     = wallState(face, gm, interior)
				gradBC = stripSpeciesNormalGradients(gradInt, face.Normal)
			)
			return flux.ViscousNormalFlux(ws, gradBC, gradTInt, face.Normal), nil
		},
	})
}

// NewAdiabaticNoslipWall is the viscous adiabatic no-slip wall: no-slip
// velocity, zero normal heat flux.
func NewAdiabaticNoslipWall() *Condition {
	wallState := func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
		var (
			dim = interior.Dim()
			n   = interior.Len()
			ke  = gm.EOS.KineticEnergy(interior.CV)
		)
		mom := make([][]float64, dim)
		for d := range mom {
			mom[d] = make([]float64, n)
		}
		energy := make([]float64, n)
		for i := range interior.CV.Mass {
			energy[i] = interior.CV.Energy[i] - ke[i]
		}
		cv := fluid.MakeConserved(dim, interior.CV.Mass, energy, mom, interior.CV.Species)
		return exteriorState(gm, interior, cv)
	}
	return NewCondition(Config{
		Name:                "AdiabaticNoslipWall",
		BoundaryTemperature: interiorTemperature,
		BoundaryState: func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
			cv := fluid.MakeConserved(interior.Dim(),
				interior.CV.Mass, interior.CV.Energy,
				negatedMomentum(interior.CV.Momentum),
				interior.CV.Species)
			return exteriorState(gm, interior, cv)
		},
		CVGradientFlux: func(face Face, gm gas.Model, interior *gas.FluidState) (fluid.GradCV, error) {
			pair := gas.StatePair{Int: interior, Ext: wallState(face, gm, interior)}
			return flux.CentralGradientFlux(pair, face.Normal), nil
		},
		ViscousFlux: func(face Face, gm gas.Model, interior *gas.FluidState,
			gradInt fluid.GradCV, gradTInt [][]float64,
			numFlux ViscousNumFlux) (fluid.ConservedVars, error) {
			if !interior.IsViscous() {
				return fluid.ConservedVars{}, fmt.Errorf(
					"adiabatic wall: viscous flux requested for a state with no transport model")
			}
			var (
				ws      = wallState(face, gm, interior)
				gradBC  = stripSpeciesNormalGradients(gradInt, face.Normal)
				gradTBC = tangentialProjection(gradTInt, face.Normal)
			)
			return flux.ViscousNormalFlux(ws, gradBC, gradTBC, face.Normal), nil
		},
		BoundaryGradAV: reflectNegateGradAV,
	})
}

// NewSymmetry is the viscous symmetry plane: mirrored normal velocity,
// zero shear stress, zero normal heat and species flux.
func NewSymmetry() *Condition {
	reflectedState := func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
		cv := fluid.MakeConserved(interior.Dim(),
			interior.CV.Mass, interior.CV.Energy,
			reflectedMomentum(interior.CV.Momentum, face.Normal),
			interior.CV.Species)
		return exteriorState(gm, interior, cv)
	}
	return NewCondition(Config{
		Name:                "Symmetry",
		BoundaryState:       reflectedState,
		BoundaryTemperature: interiorTemperature,
		ViscousFlux: func(face Face, gm gas.Model, interior *gas.FluidState,
			gradInt fluid.GradCV, gradTInt [][]float64,
			numFlux ViscousNumFlux) (fluid.ConservedVars, error) {
			if !interior.IsViscous() {
				return fluid.ConservedVars{}, fmt.Errorf(
					"symmetry: viscous flux requested for a state with no transport model")
			}
			// Tangential projection of every gradient kills the normal
			// derivatives, which is the zero-shear, zero-normal-flux
			// condition at a symmetry plane.
			gradBC := gradInt
			gradBC.Mass = tangentialProjection(gradInt.Mass, face.Normal)
			gradBC.Energy = tangentialProjection(gradInt.Energy, face.Normal)
			gradBC.Momentum = make([][][]float64, interior.Dim())
			for d := range gradBC.Momentum {
				gradBC.Momentum[d] = tangentialProjection(gradInt.Momentum[d], face.Normal)
			}
			gradBC = stripSpeciesNormalGradients(gradBC, face.Normal)
			gradTBC := tangentialProjection(gradTInt, face.Normal)
			return flux.ViscousNormalFlux(reflectedState(face, gm, interior),
				gradBC, gradTBC, face.Normal), nil
		},
		BoundaryGradAV: reflectNegateGradAV,
	})
}

func interiorTemperature(face Face, gm gas.Model, interior *gas.FluidState) []float64 {
	return interior.Temperature
}

// reflectNegateGradAV gives the exterior smoothness gradient at slip
// and symmetry surfaces: reflect across the plane, then flip sign. The
// centered flux then keeps only the normal component of the interior
// gradient; the no-slip treatment negates outright for a zero flux.
func reflectNegateGradAV(face Face, gradAVInt [][]float64) [][]float64 {
	return negatedMomentum(reflectedMomentum(gradAVInt, face.Normal))
}

func constField(val float64, n int) (f []float64) {
	f = make([]float64, n)
	for i := range f {
		f[i] = val
	}
	return
}
