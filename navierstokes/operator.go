package navierstokes

import (
	"fmt"

	"github.com/astro-friedel/mirgecom/boundary"
	"github.com/astro-friedel/mirgecom/dg"
	"github.com/astro-friedel/mirgecom/euler"
	"github.com/astro-friedel/mirgecom/flux"
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

// Operator assembles the compressible Navier-Stokes right-hand side:
// the inviscid divergence (delegated to the euler operator) plus the
// viscous divergence built from conserved-variable and temperature
// gradients. The gradients themselves are DG operators whose boundary
// terms come from the registered boundary conditions.
type Operator struct {
	Disc       dg.Discretization
	GasModel   gas.Model
	Boundaries map[string]*boundary.Condition

	InviscidNumFlux boundary.InviscidNumFlux
	ViscousNumFlux  boundary.ViscousNumFlux

	inviscid *euler.Operator
}

func NewOperator(disc dg.Discretization, gm gas.Model,
	boundaries map[string]*boundary.Condition,
	inviscidFlux boundary.InviscidNumFlux, viscousFlux boundary.ViscousNumFlux,
	parallelDegree int) (*Operator, error) {
	if !gm.IsViscous() {
		return nil, fmt.Errorf("gas model carries no transport model")
	}
	if viscousFlux == nil {
		viscousFlux = flux.CentralViscousFlux
	}
	inv, err := euler.NewOperator(disc, gm, boundaries, inviscidFlux, parallelDegree)
	if err != nil {
		return nil, err
	}
	return &Operator{
		Disc:            disc,
		GasModel:        gm,
		Boundaries:      boundaries,
		InviscidNumFlux: inviscidFlux,
		ViscousNumFlux:  viscousFlux,
		inviscid:        inv,
	}, nil
}

// RHS evaluates d(q)/dt = -div F_inv + div F_visc.
func (op *Operator) RHS(q fluid.ConservedVars, temperatureSeed []float64) (fluid.ConservedVars, error) {
	state := gas.MakeFluidState(q, op.GasModel, temperatureSeed)

	gradCV, err := op.GradCV(state)
	if err != nil {
		return fluid.ConservedVars{}, err
	}
	gradT, err := op.GradTemperature(state)
	if err != nil {
		return fluid.ConservedVars{}, err
	}

	rhs, err := op.inviscid.RHS(q, temperatureSeed)
	if err != nil {
		return fluid.ConservedVars{}, err
	}

	if err := op.addViscousDivergence(rhs, state, gradCV, gradT); err != nil {
		return fluid.ConservedVars{}, err
	}
	return rhs, nil
}

// GradCV computes the DG gradient of every conserved field, with
// interior faces centered and boundary faces resolved through the
// conditions' gradient flux.
func (op *Operator) GradCV(state *gas.FluidState) (g fluid.GradCV, err error) {
	var (
		disc = op.Disc
		dim  = disc.Dim()
		ns   = state.NumSpecies()
		nf   = disc.NumFaceNodes()
	)
	// Vector-valued face fluxes per field.
	alloc := func() [][]float64 {
		f := make([][]float64, dim)
		for d := range f {
			f[d] = make([]float64, nf)
		}
		return f
	}
	var (
		fMass   = alloc()
		fEnergy = alloc()
		fMom    = make([][][]float64, dim)
		fSpec   = make([][][]float64, ns)
	)
	for c := range fMom {
		fMom[c] = alloc()
	}
	for alpha := range fSpec {
		fSpec[alpha] = alloc()
	}

	// Interior faces: centered scalar flux times the normal.
	op.centeredFaceFlux(state.CV.Mass, fMass)
	op.centeredFaceFlux(state.CV.Energy, fEnergy)
	for c := 0; c < dim; c++ {
		op.centeredFaceFlux(state.CV.Momentum[c], fMom[c])
	}
	for alpha := 0; alpha < ns; alpha++ {
		op.centeredFaceFlux(state.CV.Species[alpha], fSpec[alpha])
	}

	// Boundary faces through the registered conditions.
	for _, btag := range disc.BoundaryTags() {
		faces := disc.BoundaryFaceNodes(btag)
		if len(faces) == 0 {
			continue
		}
		var (
			interior = op.gatherBoundaryState(state, faces)
			face     = boundary.Face{Btag: btag, Normal: op.gatherNormals(faces)}
		)
		bg, err := op.Boundaries[btag].CVGradientFlux(face, op.GasModel, interior)
		if err != nil {
			return fluid.GradCV{}, err
		}
		for idx, fn := range faces {
			for d := 0; d < dim; d++ {
				fMass[d][fn] = bg.Mass[d][idx]
				fEnergy[d][fn] = bg.Energy[d][idx]
				for c := 0; c < dim; c++ {
					fMom[c][d][fn] = bg.Momentum[c][d][idx]
				}
				for alpha := 0; alpha < ns; alpha++ {
					fSpec[alpha][d][fn] = bg.Species[alpha][d][idx]
				}
			}
		}
	}

	g = fluid.GradCV{
		Mass:   disc.Gradient(state.CV.Mass, fMass),
		Energy: disc.Gradient(state.CV.Energy, fEnergy),
	}
	g.Momentum = make([][][]float64, dim)
	for c := 0; c < dim; c++ {
		g.Momentum[c] = disc.Gradient(state.CV.Momentum[c], fMom[c])
	}
	if ns > 0 {
		g.Species = make([][][]float64, ns)
		for alpha := 0; alpha < ns; alpha++ {
			g.Species[alpha] = disc.Gradient(state.CV.Species[alpha], fSpec[alpha])
		}
	}
	return g, nil
}

// GradTemperature computes the DG gradient of the temperature field.
func (op *Operator) GradTemperature(state *gas.FluidState) ([][]float64, error) {
	var (
		disc = op.Disc
		dim  = disc.Dim()
		nf   = disc.NumFaceNodes()
	)
	fT := make([][]float64, dim)
	for d := range fT {
		fT[d] = make([]float64, nf)
	}
	op.centeredFaceFlux(state.Temperature, fT)

	for _, btag := range disc.BoundaryTags() {
		faces := disc.BoundaryFaceNodes(btag)
		if len(faces) == 0 {
			continue
		}
		var (
			interior = op.gatherBoundaryState(state, faces)
			face     = boundary.Face{Btag: btag, Normal: op.gatherNormals(faces)}
		)
		bg, err := op.Boundaries[btag].TemperatureGradientFlux(face, op.GasModel, interior)
		if err != nil {
			return nil, err
		}
		for idx, fn := range faces {
			for d := 0; d < dim; d++ {
				fT[d][fn] = bg[d][idx]
			}
		}
	}
	return disc.Gradient(state.Temperature, fT), nil
}

// addViscousDivergence accumulates +div F_visc into rhs in place.
func (op *Operator) addViscousDivergence(rhs fluid.ConservedVars, state *gas.FluidState,
	gradCV fluid.GradCV, gradT [][]float64) error {
	var (
		disc = op.Disc
		dim  = disc.Dim()
		ns   = state.NumSpecies()
		nf   = disc.NumFaceNodes()
	)
	neq := 2 + dim + ns
	faceFlux := make([][]float64, neq)
	for eq := range faceFlux {
		faceFlux[eq] = make([]float64, nf)
	}

	// Interior faces: central viscous flux of the two trace states.
	intFaces := disc.InteriorFaceNodes()
	if len(intFaces) > 0 {
		var (
			pair           = op.gatherStatePair(state, intFaces)
			gradI, gradE   = op.gatherGradPair(gradCV, intFaces)
			gradTI, gradTE = op.gatherScalarGradPair(gradT, intFaces)
			normals        = op.gatherNormals(intFaces)
		)
		f := op.ViscousNumFlux(pair, gradI, gradE, gradTI, gradTE, normals)
		scatterEq(faceFlux, f, intFaces)
	}

	// Boundary faces through the registered conditions.
	for _, btag := range disc.BoundaryTags() {
		faces := disc.BoundaryFaceNodes(btag)
		if len(faces) == 0 {
			continue
		}
		var (
			interior  = op.gatherBoundaryState(state, faces)
			gradI, _  = op.gatherGradPair(gradCV, faces)
			gradTI, _ = op.gatherScalarGradPair(gradT, faces)
			face      = boundary.Face{Btag: btag, Normal: op.gatherNormals(faces)}
		)
		f, err := op.Boundaries[btag].ViscousDivergenceFlux(face, op.GasModel,
			interior, gradI, gradTI, op.ViscousNumFlux)
		if err != nil {
			return err
		}
		scatterEq(faceFlux, f, faces)
	}

	FT := flux.ViscousFluxTensor(state, gradCV, gradT)
	addDiv := func(eqIdx int, volByDir func(d int) []float64, dst []float64) {
		vol := make([][]float64, dim)
		for d := 0; d < dim; d++ {
			vol[d] = volByDir(d)
		}
		div := disc.DivergenceStrong(vol, faceFlux[eqIdx])
		for i := range dst {
			dst[i] += div[i]
		}
	}
	addDiv(0, func(d int) []float64 { return FT[d].Mass }, rhs.Mass)
	for c := 0; c < dim; c++ {
		c := c
		addDiv(1+c, func(d int) []float64 { return FT[d].Momentum[c] }, rhs.Momentum[c])
	}
	addDiv(1+dim, func(d int) []float64 { return FT[d].Energy }, rhs.Energy)
	for alpha := 0; alpha < ns; alpha++ {
		alpha := alpha
		addDiv(2+dim+alpha, func(d int) []float64 { return FT[d].Species[alpha] }, rhs.Species[alpha])
	}
	return nil
}

// centeredFaceFlux fills the interior face entries of a vector flux
// with 0.5 (u- + u+) n_d; boundary entries are left for the boundary
// conditions.
func (op *Operator) centeredFaceFlux(field []float64, out [][]float64) {
	var (
		disc    = op.Disc
		vmapM   = disc.FaceToVolume()
		vmapP   = disc.FaceNeighbor()
		normals = disc.FaceNormals()
	)
	for _, fn := range disc.InteriorFaceNodes() {
		avg := 0.5 * (field[vmapM[fn]] + field[vmapP[fn]])
		for d := range out {
			out[d][fn] = avg * normals[d][fn]
		}
	}
}

func (op *Operator) gatherNormals(faces []int) (g [][]float64) {
	normals := op.Disc.FaceNormals()
	g = make([][]float64, len(normals))
	for d := range normals {
		g[d] = make([]float64, len(faces))
		for idx, fn := range faces {
			g[d][idx] = normals[d][fn]
		}
	}
	return
}

func (op *Operator) gatherCV(cv fluid.ConservedVars, nodes []int) fluid.ConservedVars {
	var (
		dim = cv.Dim()
		ns  = cv.NumSpecies()
		out = fluid.NewConserved(dim, ns, len(nodes))
	)
	for idx, vm := range nodes {
		out.Mass[idx] = cv.Mass[vm]
		out.Energy[idx] = cv.Energy[vm]
		for d := 0; d < dim; d++ {
			out.Momentum[d][idx] = cv.Momentum[d][vm]
		}
		for alpha := 0; alpha < ns; alpha++ {
			out.Species[alpha][idx] = cv.Species[alpha][vm]
		}
	}
	return out
}

func (op *Operator) gatherBoundaryState(state *gas.FluidState, faces []int) *gas.FluidState {
	var (
		vmapM = op.Disc.FaceToVolume()
		nodes = make([]int, len(faces))
		seed  = make([]float64, len(faces))
	)
	for idx, fn := range faces {
		nodes[idx] = vmapM[fn]
		seed[idx] = state.Temperature[vmapM[fn]]
	}
	var smoothness []float64
	if state.Smoothness != nil {
		smoothness = make([]float64, len(faces))
		for idx, vm := range nodes {
			smoothness[idx] = state.Smoothness[vm]
		}
	}
	return gas.MakeFluidStateWithSmoothness(op.gatherCV(state.CV, nodes), op.GasModel, seed, smoothness)
}

func (op *Operator) gatherStatePair(state *gas.FluidState, faces []int) gas.StatePair {
	var (
		vmapM = op.Disc.FaceToVolume()
		vmapP = op.Disc.FaceNeighbor()
		nI    = make([]int, len(faces))
		nE    = make([]int, len(faces))
		sI    = make([]float64, len(faces))
		sE    = make([]float64, len(faces))
	)
	for idx, fn := range faces {
		nI[idx], nE[idx] = vmapM[fn], vmapP[fn]
		sI[idx], sE[idx] = state.Temperature[nI[idx]], state.Temperature[nE[idx]]
	}
	return gas.StatePair{
		Int: gas.MakeFluidState(op.gatherCV(state.CV, nI), op.GasModel, sI),
		Ext: gas.MakeFluidState(op.gatherCV(state.CV, nE), op.GasModel, sE),
	}
}

func (op *Operator) gatherGradPair(g fluid.GradCV, faces []int) (gi, ge fluid.GradCV) {
	var (
		vmapM = op.Disc.FaceToVolume()
		vmapP = op.Disc.FaceNeighbor()
	)
	gatherOne := func(nodes []int) fluid.GradCV {
		var (
			dim = g.Dim()
			out = fluid.NewGradCV(dim, g.NumSpecies(), len(nodes))
		)
		for idx, vm := range nodes {
			for d := 0; d < dim; d++ {
				out.Mass[d][idx] = g.Mass[d][vm]
				out.Energy[d][idx] = g.Energy[d][vm]
				for c := 0; c < dim; c++ {
					out.Momentum[c][d][idx] = g.Momentum[c][d][vm]
				}
				for alpha := 0; alpha < g.NumSpecies(); alpha++ {
					out.Species[alpha][d][idx] = g.Species[alpha][d][vm]
				}
			}
		}
		return out
	}
	var (
		nI = make([]int, len(faces))
		nE = make([]int, len(faces))
	)
	for idx, fn := range faces {
		nI[idx], nE[idx] = vmapM[fn], vmapP[fn]
	}
	return gatherOne(nI), gatherOne(nE)
}

func (op *Operator) gatherScalarGradPair(g [][]float64, faces []int) (gi, ge [][]float64) {
	var (
		vmapM = op.Disc.FaceToVolume()
		vmapP = op.Disc.FaceNeighbor()
		dim   = len(g)
	)
	gi = make([][]float64, dim)
	ge = make([][]float64, dim)
	for d := 0; d < dim; d++ {
		gi[d] = make([]float64, len(faces))
		ge[d] = make([]float64, len(faces))
		for idx, fn := range faces {
			gi[d][idx] = g[d][vmapM[fn]]
			ge[d][idx] = g[d][vmapP[fn]]
		}
	}
	return
}

func scatterEq(faceFlux [][]float64, f fluid.ConservedVars, faces []int) {
	dim := f.Dim()
	for idx, fn := range faces {
		faceFlux[0][fn] = f.Mass[idx]
		for d := 0; d < dim; d++ {
			faceFlux[1+d][fn] = f.Momentum[d][idx]
		}
		faceFlux[1+dim][fn] = f.Energy[idx]
		for alpha := range f.Species {
			faceFlux[2+dim+alpha][fn] = f.Species[alpha][idx]
		}
	}
}
