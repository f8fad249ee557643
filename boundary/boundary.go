package boundary

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/flux"
	"github.com/astro-friedel/mirgecom/gas"
)

// Face identifies one tagged boundary surface at flux-evaluation time:
// the tag naming it and the outward unit normal on its face grid.
type Face struct {
	Btag   string
	Normal [][]float64 // [dim][node]
}

// Numerical flux combinators, selected by the caller per operation.
type (
	InviscidNumFlux func(pair gas.StatePair, normal [][]float64) fluid.ConservedVars
	ViscousNumFlux  func(pair gas.StatePair, gradInt, gradExt fluid.GradCV,
		gradTInt, gradTExt, normal [][]float64) fluid.ConservedVars
	GradientNumFlux func(pair gas.StatePair, normal [][]float64) fluid.GradCV
)

// Sub-strategy function types. A Config supplies some subset of these;
// NewCondition fills the rest with documented defaults.
type (
	// StateFunc builds the exterior (plus) fluid state from the
	// interior (minus) trace.
	StateFunc func(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState

	// TemperatureFunc supplies the exterior temperature used by the
	// temperature-gradient flux.
	TemperatureFunc func(face Face, gm gas.Model, interior *gas.FluidState) []float64

	// GradCVFunc supplies the exterior conserved-variable gradients for
	// viscous flux evaluation.
	GradCVFunc func(face Face, gm gas.Model, exterior *gas.FluidState,
		gradInt fluid.GradCV) fluid.GradCV

	// GradTemperatureFunc supplies the exterior temperature gradient.
	GradTemperatureFunc func(face Face, interior *gas.FluidState,
		gradTInt [][]float64) [][]float64

	// GradAVFunc supplies the exterior gradient of the artificial
	// viscosity quantity for the AV diffusion flux.
	GradAVFunc func(face Face, gradAVInt [][]float64) [][]float64

	// InviscidFluxFunc overrides the whole inviscid boundary flux.
	InviscidFluxFunc func(face Face, gm gas.Model, interior *gas.FluidState,
		numFlux InviscidNumFlux) (fluid.ConservedVars, error)

	// ViscousFluxFunc overrides the whole viscous boundary flux.
	ViscousFluxFunc func(face Face, gm gas.Model, interior *gas.FluidState,
		gradInt fluid.GradCV, gradTInt [][]float64,
		numFlux ViscousNumFlux) (fluid.ConservedVars, error)

	// CVGradientFluxFunc overrides the boundary term of the
	// gradient-of-CV operator.
	CVGradientFluxFunc func(face Face, gm gas.Model,
		interior *gas.FluidState) (fluid.GradCV, error)

	// TemperatureGradientFluxFunc overrides the boundary term of the
	// gradient-of-temperature operator.
	TemperatureGradientFluxFunc func(face Face, gm gas.Model,
		interior *gas.FluidState) ([][]float64, error)
)

// Config collects the optional sub-strategies for one boundary
// treatment. Concrete boundary kinds are factory functions that fill a
// subset of these fields; NewCondition resolves the rest.
type Config struct {
	Name string

	BoundaryState           StateFunc
	BoundaryTemperature     TemperatureFunc
	BoundaryGradCV          GradCVFunc
	BoundaryGradTemperature GradTemperatureFunc
	BoundaryGradAV          GradAVFunc

	InviscidFlux            InviscidFluxFunc
	ViscousFlux             ViscousFluxFunc
	CVGradientFlux          CVGradientFluxFunc
	TemperatureGradientFlux TemperatureGradientFluxFunc
	GradientNumFlux         GradientNumFlux
}

// Condition is a fully resolved boundary treatment: every strategy slot
// is populated, either from the Config or with a default. Immutable
// after construction and safe for concurrent use.
type Condition struct {
	name string

	boundaryState     StateFunc
	boundaryTemp      TemperatureFunc
	boundaryGradCV    GradCVFunc
	boundaryGradTemp  GradTemperatureFunc
	boundaryGradAV    GradAVFunc
	inviscidFlux      InviscidFluxFunc
	viscousFlux       ViscousFluxFunc
	cvGradFlux        CVGradientFluxFunc
	tempGradFlux      TemperatureGradientFluxFunc
	gradientNumFlux   GradientNumFlux
}

// NewCondition resolves a Config into an immutable Condition. Leaving
// the exterior-state strategy unset yields an identity (dummy) boundary
// and logs a warning, since that is rarely what a simulation intends.
// Construction never fails for missing strategies; strategy-resolution
// problems surface as errors at first use.
func NewCondition(cfg Config) *Condition {
	b := &Condition{
		name:             cfg.Name,
		boundaryState:    cfg.BoundaryState,
		boundaryTemp:     cfg.BoundaryTemperature,
		boundaryGradCV:   cfg.BoundaryGradCV,
		boundaryGradTemp: cfg.BoundaryGradTemperature,
		boundaryGradAV:   cfg.BoundaryGradAV,
		inviscidFlux:     cfg.InviscidFlux,
		viscousFlux:      cfg.ViscousFlux,
		cvGradFlux:       cfg.CVGradientFlux,
		tempGradFlux:     cfg.TemperatureGradientFlux,
		gradientNumFlux:  cfg.GradientNumFlux,
	}
	if b.boundaryState == nil {
		log.WithField("boundary", b.name).Warn(
			"no exterior-state strategy supplied; defaulting to identity (dummy boundary)")
		b.boundaryState = identityState
	}
	if b.boundaryTemp == nil {
		// Exterior temperature derives from the exterior state.
		b.boundaryTemp = func(face Face, gm gas.Model, interior *gas.FluidState) []float64 {
			return b.boundaryState(face, gm, interior).Temperature
		}
	}
	if b.boundaryGradCV == nil {
		b.boundaryGradCV = func(face Face, gm gas.Model, exterior *gas.FluidState,
			gradInt fluid.GradCV) fluid.GradCV {
			return gradInt
		}
	}
	if b.boundaryGradTemp == nil {
		b.boundaryGradTemp = func(face Face, interior *gas.FluidState,
			gradTInt [][]float64) [][]float64 {
			return gradTInt
		}
	}
	if b.boundaryGradAV == nil {
		b.boundaryGradAV = func(face Face, gradAVInt [][]float64) [][]float64 {
			return gradAVInt
		}
	}
	if b.gradientNumFlux == nil {
		b.gradientNumFlux = flux.CentralGradientFlux
	}
	if b.inviscidFlux == nil {
		b.inviscidFlux = b.defaultInviscidFlux
	}
	if b.viscousFlux == nil {
		b.viscousFlux = b.defaultViscousFlux
	}
	if b.cvGradFlux == nil {
		b.cvGradFlux = b.defaultCVGradientFlux
	}
	if b.tempGradFlux == nil {
		b.tempGradFlux = b.defaultTemperatureGradientFlux
	}
	return b
}

func (b *Condition) Name() string { return b.name }

// BoundaryState resolves the exterior fluid state for the face. The
// euler operator uses it directly for the entropy-stable path.
func (b *Condition) BoundaryState(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
	return b.boundaryState(face, gm, interior)
}

// InviscidDivergenceFlux returns the conservative boundary flux for the
// inviscid divergence operator.
func (b *Condition) InviscidDivergenceFlux(face Face, gm gas.Model,
	interior *gas.FluidState, numFlux InviscidNumFlux) (fluid.ConservedVars, error) {
	return b.inviscidFlux(face, gm, interior, numFlux)
}

// ViscousDivergenceFlux returns the conservative boundary flux for the
// viscous divergence operator.
func (b *Condition) ViscousDivergenceFlux(face Face, gm gas.Model,
	interior *gas.FluidState, gradInt fluid.GradCV, gradTInt [][]float64,
	numFlux ViscousNumFlux) (fluid.ConservedVars, error) {
	return b.viscousFlux(face, gm, interior, gradInt, gradTInt, numFlux)
}

// CVGradientFlux returns the boundary term for the gradient-of-CV
// operator.
func (b *Condition) CVGradientFlux(face Face, gm gas.Model,
	interior *gas.FluidState) (fluid.GradCV, error) {
	return b.cvGradFlux(face, gm, interior)
}

// TemperatureGradientFlux returns the boundary term for the
// gradient-of-temperature operator.
func (b *Condition) TemperatureGradientFlux(face Face, gm gas.Model,
	interior *gas.FluidState) ([][]float64, error) {
	return b.tempGradFlux(face, gm, interior)
}

// AVFlux returns the boundary normal flux for the artificial-viscosity
// diffusion operator: the centered average of interior and exterior
// smoothness gradients dotted with the outward normal.
func (b *Condition) AVFlux(face Face, gradAVInt [][]float64) (f []float64, err error) {
	var (
		gradAVExt = b.boundaryGradAV(face, gradAVInt)
		dim       = len(face.Normal)
	)
	if len(gradAVInt) != dim {
		return nil, fmt.Errorf("boundary %s: AV gradient has %d components, face has %d",
			b.name, len(gradAVInt), dim)
	}
	f = make([]float64, len(gradAVInt[0]))
	for d := 0; d < dim; d++ {
		for i := range f {
			f[i] += 0.5 * (gradAVInt[d][i] + gradAVExt[d][i]) * face.Normal[d][i]
		}
	}
	return
}

func identityState(face Face, gm gas.Model, interior *gas.FluidState) *gas.FluidState {
	return interior
}

// Default inviscid flux: resolve the exterior state, then hand the
// minus/plus pair to the caller-selected Riemann flux.
func (b *Condition) defaultInviscidFlux(face Face, gm gas.Model,
	interior *gas.FluidState, numFlux InviscidNumFlux) (fluid.ConservedVars, error) {
	if numFlux == nil {
		return fluid.ConservedVars{}, fmt.Errorf(
			"boundary %s: inviscid flux requested with no numerical flux function", b.name)
	}
	pair := gas.StatePair{Int: interior, Ext: b.boundaryState(face, gm, interior)}
	return numFlux(pair, face.Normal), nil
}

// Default viscous flux: resolve exterior state and exterior gradients,
// then hand both pairs to the caller-selected viscous flux.
func (b *Condition) defaultViscousFlux(face Face, gm gas.Model,
	interior *gas.FluidState, gradInt fluid.GradCV, gradTInt [][]float64,
	numFlux ViscousNumFlux) (fluid.ConservedVars, error) {
	if numFlux == nil {
		return fluid.ConservedVars{}, fmt.Errorf(
			"boundary %s: viscous flux requested with no numerical flux function", b.name)
	}
	if !interior.IsViscous() {
		return fluid.ConservedVars{}, fmt.Errorf(
			"boundary %s: viscous flux requested for a state with no transport model", b.name)
	}
	exterior := b.boundaryState(face, gm, interior)
	pair := gas.StatePair{Int: interior, Ext: exterior}
	var (
		gradExt  = b.boundaryGradCV(face, gm, exterior, gradInt)
		gradTExt = b.boundaryGradTemp(face, interior, gradTInt)
	)
	return numFlux(pair, gradInt, gradExt, gradTInt, gradTExt, face.Normal), nil
}

// Default CV-gradient flux: centered combination of the interior state
// and the resolved exterior state.
func (b *Condition) defaultCVGradientFlux(face Face, gm gas.Model,
	interior *gas.FluidState) (fluid.GradCV, error) {
	pair := gas.StatePair{Int: interior, Ext: b.boundaryState(face, gm, interior)}
	return b.gradientNumFlux(pair, face.Normal), nil
}

// Default temperature-gradient flux: centered combination of the
// interior temperature and the boundary temperature.
func (b *Condition) defaultTemperatureGradientFlux(face Face, gm gas.Model,
	interior *gas.FluidState) ([][]float64, error) {
	tBC := b.boundaryTemp(face, gm, interior)
	if len(tBC) != interior.Len() {
		return nil, fmt.Errorf("boundary %s: boundary temperature length %d, face has %d nodes",
			b.name, len(tBC), interior.Len())
	}
	return flux.CentralScalarGradientFlux(interior.Temperature, tBC, face.Normal), nil
}
