package euler

import (
	"fmt"
	"sync"

	"github.com/astro-friedel/mirgecom/boundary"
	"github.com/astro-friedel/mirgecom/dg"
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
	"github.com/astro-friedel/mirgecom/utils"
)

// Operator assembles the inviscid divergence right-hand side: interior
// interface fluxes via a Riemann-type numerical flux, domain boundary
// fluxes via the registered boundary conditions, combined with the
// volume flux through the strong-form DG divergence.
//
// An Operator is immutable after construction and safe for concurrent
// RHS evaluations.
type Operator struct {
	Disc       dg.Discretization
	GasModel   gas.Model
	Boundaries map[string]*boundary.Condition
	NumFlux    boundary.InviscidNumFlux

	np int
	pm *utils.PartitionMap
}

// NewOperator validates the boundary registry against the mesh: every
// tagged boundary must have a condition. A missing mapping is a fatal
// configuration error, reported here and never defaulted.
func NewOperator(disc dg.Discretization, gm gas.Model,
	boundaries map[string]*boundary.Condition,
	numFlux boundary.InviscidNumFlux, parallelDegree int) (*Operator, error) {
	if numFlux == nil {
		return nil, fmt.Errorf("no interface numerical flux supplied")
	}
	for _, btag := range disc.BoundaryTags() {
		if _, ok := boundaries[btag]; !ok {
			return nil, fmt.Errorf("mesh boundary tag %q has no registered boundary condition", btag)
		}
	}
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	if parallelDegree > disc.NumElements() {
		parallelDegree = disc.NumElements()
	}
	return &Operator{
		Disc:       disc,
		GasModel:   gm,
		Boundaries: boundaries,
		NumFlux:    numFlux,
		np:         parallelDegree,
		pm:         utils.NewPartitionMap(parallelDegree, disc.NumElements()),
	}, nil
}

// RHS evaluates d(q)/dt = -div F. temperatureSeed optionally seeds the
// dependent-variable solve for mixtures and may be nil.
func (op *Operator) RHS(q fluid.ConservedVars, temperatureSeed []float64) (fluid.ConservedVars, error) {
	state := gas.MakeFluidState(q, op.GasModel, temperatureSeed)
	faceFlux, err := op.assembleFaceFluxes(state, op.NumFlux, op.boundaryFlux)
	if err != nil {
		return fluid.ConservedVars{}, err
	}
	return op.divergenceRHS(state, faceFlux), nil
}

// boundaryFlux is the standard boundary treatment: delegate to the
// condition's inviscid divergence flux with the operator's numerical
// flux.
func (op *Operator) boundaryFlux(bc *boundary.Condition, face boundary.Face,
	interior *gas.FluidState, numFlux boundary.InviscidNumFlux) (fluid.ConservedVars, error) {
	return bc.InviscidDivergenceFlux(face, op.GasModel, interior, numFlux)
}

type boundaryFluxFunc func(bc *boundary.Condition, face boundary.Face,
	interior *gas.FluidState, numFlux boundary.InviscidNumFlux) (fluid.ConservedVars, error)

// haloMsg carries one face node's trace state to the worker owning the
// other side of a partition-internal interface.
type haloMsg struct {
	face         int // destination face node
	mass, energy float64
	temp         float64
	mom          [3]float64
	species      []float64
}

// assembleFaceFluxes fills the global face-node flux arrays, one per
// equation. Work is sharded over elements; each worker first posts the
// trace states its neighbors need, then drains its own mailbox, then
// evaluates all fluxes for its faces. The shared solution is read-only
// throughout and output face nodes are owned by exactly one worker, so
// no write races exist and the summation order per node is fixed.
func (op *Operator) assembleFaceFluxes(state *gas.FluidState,
	numFlux boundary.InviscidNumFlux, bFlux boundaryFluxFunc) ([][]float64, error) {
	var (
		disc    = op.Disc
		dim     = disc.Dim()
		ns      = state.NumSpecies()
		neq     = numEquations(dim, ns)
		vmapM   = disc.FaceToVolume()
		vmapP   = disc.FaceNeighbor()
		normals = disc.FaceNormals()
		mb      = utils.NewMailBox[haloMsg](op.np)

		wg   sync.WaitGroup
		mu   sync.Mutex
		wErr error
	)
	faceFlux := make([][]float64, neq)
	for eq := range faceFlux {
		faceFlux[eq] = make([]float64, disc.NumFaceNodes())
	}

	for w := 0; w < op.np; w++ {
		wg.Add(1)
		go func(myWorker int) {
			defer wg.Done()
			var (
				kMin, kMax = op.pm.GetBucketRange(myWorker)
				myFaces    []int
				haloFaces  = make(map[int]bool)
				senders    = make(map[int]bool)
			)
			// Post every trace a remote neighbor needs, note which of
			// my faces must wait for remote data.
			for k := kMin; k < kMax; k++ {
				for _, fn := range facesOfElement(disc, k) {
					myFaces = append(myFaces, fn)
					ne := disc.NeighborElement(fn)
					if ne < 0 {
						continue
					}
					bn, _, _ := op.pm.GetBucket(ne)
					if bn == myWorker {
						continue
					}
					haloFaces[fn] = true
					senders[bn] = true
					vm := vmapM[fn]
					msg := haloMsg{
						face:   disc.OppositeFace(fn),
						mass:   state.CV.Mass[vm],
						energy: state.CV.Energy[vm],
						temp:   state.Temperature[vm],
					}
					for d := 0; d < dim; d++ {
						msg.mom[d] = state.CV.Momentum[d][vm]
					}
					if ns > 0 {
						msg.species = make([]float64, ns)
						for alpha := 0; alpha < ns; alpha++ {
							msg.species[alpha] = state.CV.Species[alpha][vm]
						}
					}
					mb.PostMessage(myWorker, bn, msg)
				}
			}
			mb.DeliverMyMessages(myWorker)
			halo := make(map[int]haloMsg)
			for _, msg := range mb.ReceiveMyMessages(myWorker, len(senders)) {
				halo[msg.face] = msg
			}

			// Split my faces into interior and per-tag boundary sets.
			var interiorFaces []int
			btagFaces := make(map[string][]int)
			for _, fn := range myFaces {
				if disc.NeighborElement(fn) >= 0 {
					interiorFaces = append(interiorFaces, fn)
					continue
				}
				btag, ok := tagOfFace(disc, fn)
				if !ok {
					mu.Lock()
					if wErr == nil {
						wErr = fmt.Errorf("boundary face %d carries no tag", fn)
					}
					mu.Unlock()
					return
				}
				btagFaces[btag] = append(btagFaces[btag], fn)
			}

			// Interior interfaces: batched minus/plus states, one
			// numerical flux call.
			if len(interiorFaces) > 0 {
				var (
					nf          = len(interiorFaces)
					cvI         = fluid.NewConserved(dim, ns, nf)
					cvE         = fluid.NewConserved(dim, ns, nf)
					tI          = make([]float64, nf)
					tE          = make([]float64, nf)
					faceNormals = gatherNormals(normals, interiorFaces)
				)
				for idx, fn := range interiorFaces {
					vm := vmapM[fn]
					cvI.Mass[idx] = state.CV.Mass[vm]
					cvI.Energy[idx] = state.CV.Energy[vm]
					tI[idx] = state.Temperature[vm]
					for d := 0; d < dim; d++ {
						cvI.Momentum[d][idx] = state.CV.Momentum[d][vm]
					}
					for alpha := 0; alpha < ns; alpha++ {
						cvI.Species[alpha][idx] = state.CV.Species[alpha][vm]
					}
					if haloFaces[fn] {
						h := halo[fn]
						cvE.Mass[idx] = h.mass
						cvE.Energy[idx] = h.energy
						tE[idx] = h.temp
						for d := 0; d < dim; d++ {
							cvE.Momentum[d][idx] = h.mom[d]
						}
						for alpha := 0; alpha < ns; alpha++ {
							cvE.Species[alpha][idx] = h.species[alpha]
						}
					} else {
						vp := vmapP[fn]
						cvE.Mass[idx] = state.CV.Mass[vp]
						cvE.Energy[idx] = state.CV.Energy[vp]
						tE[idx] = state.Temperature[vp]
						for d := 0; d < dim; d++ {
							cvE.Momentum[d][idx] = state.CV.Momentum[d][vp]
						}
						for alpha := 0; alpha < ns; alpha++ {
							cvE.Species[alpha][idx] = state.CV.Species[alpha][vp]
						}
					}
				}
				pair := gas.StatePair{
					Int: gas.MakeFluidState(cvI, op.GasModel, tI),
					Ext: gas.MakeFluidState(cvE, op.GasModel, tE),
				}
				scatterFlux(faceFlux, numFlux(pair, faceNormals), interiorFaces)
			}

			// Domain boundaries: per tag, resolved through the
			// registered condition.
			for btag, faces := range btagFaces {
				bc := op.Boundaries[btag]
				var (
					nf          = len(faces)
					cvI         = fluid.NewConserved(dim, ns, nf)
					tI          = make([]float64, nf)
					faceNormals = gatherNormals(normals, faces)
				)
				for idx, fn := range faces {
					vm := vmapM[fn]
					cvI.Mass[idx] = state.CV.Mass[vm]
					cvI.Energy[idx] = state.CV.Energy[vm]
					tI[idx] = state.Temperature[vm]
					for d := 0; d < dim; d++ {
						cvI.Momentum[d][idx] = state.CV.Momentum[d][vm]
					}
					for alpha := 0; alpha < ns; alpha++ {
						cvI.Species[alpha][idx] = state.CV.Species[alpha][vm]
					}
				}
				var (
					interior = gas.MakeFluidStateWithSmoothness(cvI, op.GasModel, tI,
						gatherSmoothness(state, vmapM, faces))
					face = boundary.Face{Btag: btag, Normal: faceNormals}
				)
				bf, err := bFlux(bc, face, interior, numFlux)
				if err != nil {
					mu.Lock()
					if wErr == nil {
						wErr = err
					}
					mu.Unlock()
					return
				}
				scatterFlux(faceFlux, bf, faces)
			}
		}(w)
	}
	wg.Wait()
	if wErr != nil {
		return nil, wErr
	}
	return faceFlux, nil
}

// divergenceRHS combines the volume flux with the assembled face fluxes
// and negates: dq/dt = -div F.
func (op *Operator) divergenceRHS(state *gas.FluidState, faceFlux [][]float64) fluid.ConservedVars {
	var (
		dim = state.Dim()
		ns  = state.NumSpecies()
		neq = numEquations(dim, ns)
		F   = physicalVolumeFlux(state)
		rhs = make([][]float64, neq)
	)
	for eq := 0; eq < neq; eq++ {
		div := op.Disc.DivergenceStrong(F[eq], faceFlux[eq])
		for i := range div {
			div[i] = -div[i]
		}
		rhs[eq] = div
	}
	return unpackEq(dim, ns, rhs)
}

func facesOfElement(disc dg.Discretization, k int) []int {
	// Face nodes are element-major with a fixed per-element count.
	nPerElem := disc.NumFaceNodes() / disc.NumElements()
	faces := make([]int, nPerElem)
	for f := range faces {
		faces[f] = k*nPerElem + f
	}
	return faces
}

func tagOfFace(disc dg.Discretization, fn int) (string, bool) {
	for _, btag := range disc.BoundaryTags() {
		for _, f := range disc.BoundaryFaceNodes(btag) {
			if f == fn {
				return btag, true
			}
		}
	}
	return "", false
}

func gatherNormals(normals [][]float64, faces []int) (g [][]float64) {
	g = make([][]float64, len(normals))
	for d := range normals {
		g[d] = make([]float64, len(faces))
		for idx, fn := range faces {
			g[d][idx] = normals[d][fn]
		}
	}
	return
}

func gatherSmoothness(state *gas.FluidState, vmapM []int, faces []int) []float64 {
	if state.Smoothness == nil {
		return nil
	}
	s := make([]float64, len(faces))
	for idx, fn := range faces {
		s[idx] = state.Smoothness[vmapM[fn]]
	}
	return s
}

// scatterFlux writes a batched flux back to the global face arrays.
func scatterFlux(faceFlux [][]float64, f fluid.ConservedVars, faces []int) {
	var (
		dim = f.Dim()
	)
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
