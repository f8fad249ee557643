package dg

import (
	"fmt"

	"github.com/astro-friedel/mirgecom/utils"
)

// TwoPointFlux evaluates a symmetric two-point volume flux between
// global node i and global node j in coordinate direction dir, writing
// one value per equation into out.
type TwoPointFlux func(i, j, dir int, out []float64)

// Discretization is the contract the divergence and gradient operators
// consume. Volume fields are node-major slices (node = element*Np +
// local); face fields are face-node-major (faceNode = element*NFaces +
// face).
type Discretization interface {
	Dim() int
	NumElements() int
	NumNodes() int
	NumFaceNodes() int

	// FaceToVolume maps a face node to its own volume node; FaceNeighbor
	// maps it to the volume node on the far side of the face. For a
	// boundary face node both are the same node.
	FaceToVolume() []int
	FaceNeighbor() []int
	// NeighborElement returns the element on the far side of a face
	// node, or -1 for a domain boundary face.
	NeighborElement(faceNode int) int
	// OppositeFace returns the face node on the far side of the same
	// physical face, or -1 for a domain boundary face.
	OppositeFace(faceNode int) int
	ElementOfFace(faceNode int) int
	FaceNormals() [][]float64 // [dim][faceNode], outward unit normals

	BoundaryTags() []string
	BoundaryFaceNodes(btag string) []int
	InteriorFaceNodes() []int

	// DivergenceStrong computes the strong-form DG divergence of the
	// flux with the face normal flux replaced by faceFlux.
	DivergenceStrong(volFlux [][]float64, faceFlux []float64) []float64
	// Gradient computes the strong-form DG gradient of a scalar field
	// with the boundary term taken from the vector-valued faceFlux.
	Gradient(field []float64, faceFlux [][]float64) [][]float64
	// FluxDifferencingVolume computes the SBP volume term
	// sum_j 2 D_ij f_s(q_i, q_j) per equation.
	FluxDifferencingVolume(neq int, f TwoPointFlux) [][]float64
	// LiftSurface applies the lift operator to a face-node field,
	// scaled by the surface Jacobian ratio.
	LiftSurface(faceDelta []float64) []float64

	// ElementAverage and ElementScatter support cell-average based
	// limiting.
	ElementAverage(field []float64) []float64
	NodesOfElement(k int) (lo, hi int)
}

// Line1D is a one-dimensional nodal DG discretization on a uniform
// line mesh: Legendre-Gauss-Lobatto nodes, strong-form operators.
type Line1D struct {
	N, Np, K int
	Xmin, H  float64

	Dr, LIFT utils.Matrix
	V        utils.Matrix
	R        utils.Vector
	X        []float64 // node coordinates, node-major

	rx, fscale float64

	// Global lift operator, assembled sparse and frozen to CSR.
	liftGlobal utils.CSR

	vmapM, vmapP []int
	normals      [][]float64
	periodic     bool

	btags     []string
	btagFaces map[string][]int
	intFaces  []int
}

// NewLine1D builds an order-n discretization of [xmin, xmax] with k
// uniform elements. With periodic true the endpoints are identified and
// no boundary tags exist; otherwise the domain boundary faces carry
// leftTag and rightTag.
func NewLine1D(n int, xmin, xmax float64, k int, periodic bool, leftTag, rightTag string) (*Line1D, error) {
	if k < 1 || n < 1 {
		return nil, fmt.Errorf("need at least one element and order 1, have K=%d N=%d", k, n)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("empty domain [%g,%g]", xmin, xmax)
	}
	var (
		np = n + 1
		el = &Line1D{
			N: n, Np: np, K: k,
			Xmin:     xmin,
			H:        (xmax - xmin) / float64(k),
			periodic: periodic,
		}
	)
	el.R = JacobiGL(0, 0, n)
	el.V = Vandermonde1D(n, el.R)
	Vr := GradVandermonde1D(n, el.R)
	el.Dr = Dmatrix1D(n, el.R, el.V, Vr)
	el.LIFT = Lift1D(el.V, np, 2, 1)

	el.rx = 2. / el.H
	el.fscale = 2. / el.H

	el.X = make([]float64, np*k)
	for e := 0; e < k; e++ {
		x0 := xmin + float64(e)*el.H
		for i := 0; i < np; i++ {
			el.X[e*np+i] = x0 + 0.5*(el.R.AtVec(i)+1.)*el.H
		}
	}

	el.connect(leftTag, rightTag)
	el.assembleLift()
	return el, nil
}

// assembleLift scatters the per-element LIFT blocks into one global
// sparse operator mapping face-node fields to volume fields.
func (el *Line1D) assembleLift() {
	dok := utils.NewDOK(el.NumNodes(), el.NumFaceNodes())
	for e := 0; e < el.K; e++ {
		base := e * el.Np
		for i := 0; i < el.Np; i++ {
			for f := 0; f < 2; f++ {
				v := el.LIFT.DataP[f+i*2] * el.fscale
				if v != 0 {
					dok.Set(base+i, 2*e+f, v)
				}
			}
		}
	}
	el.liftGlobal = dok.ToCSR()
}

// connect builds the face maps: vmapM is each face node's own volume
// node, vmapP the neighbor's. Boundary faces self-connect.
func (el *Line1D) connect(leftTag, rightTag string) {
	var (
		nf = 2 * el.K
	)
	el.vmapM = make([]int, nf)
	el.vmapP = make([]int, nf)
	el.normals = [][]float64{make([]float64, nf)}
	el.btagFaces = make(map[string][]int)
	for e := 0; e < el.K; e++ {
		var (
			left  = 2 * e
			right = 2*e + 1
		)
		el.vmapM[left] = e * el.Np
		el.vmapM[right] = e*el.Np + el.Np - 1
		el.normals[0][left] = -1.
		el.normals[0][right] = 1.
		el.vmapP[left] = (e-1)*el.Np + el.Np - 1
		el.vmapP[right] = (e + 1) * el.Np
	}
	// Endpoints: periodic wrap or tagged boundary.
	if el.periodic {
		el.vmapP[0] = (el.K-1)*el.Np + el.Np - 1
		el.vmapP[2*el.K-1] = 0
	} else {
		el.vmapP[0] = el.vmapM[0]
		el.vmapP[2*el.K-1] = el.vmapM[2*el.K-1]
		el.btags = []string{leftTag, rightTag}
		el.btagFaces[leftTag] = []int{0}
		el.btagFaces[rightTag] = []int{2*el.K - 1}
	}
	isBoundary := func(f int) bool {
		if el.periodic {
			return false
		}
		return f == 0 || f == 2*el.K-1
	}
	for f := 0; f < nf; f++ {
		if !isBoundary(f) {
			el.intFaces = append(el.intFaces, f)
		}
	}
}

func (el *Line1D) Dim() int            { return 1 }
func (el *Line1D) NumElements() int    { return el.K }
func (el *Line1D) NumNodes() int       { return el.Np * el.K }
func (el *Line1D) NumFaceNodes() int   { return 2 * el.K }
func (el *Line1D) FaceToVolume() []int { return el.vmapM }
func (el *Line1D) FaceNeighbor() []int { return el.vmapP }

func (el *Line1D) ElementOfFace(faceNode int) int { return faceNode / 2 }

func (el *Line1D) NeighborElement(faceNode int) int {
	var (
		e = faceNode / 2
		f = faceNode % 2
	)
	if f == 0 {
		if e == 0 {
			if el.periodic {
				return el.K - 1
			}
			return -1
		}
		return e - 1
	}
	if e == el.K-1 {
		if el.periodic {
			return 0
		}
		return -1
	}
	return e + 1
}

func (el *Line1D) OppositeFace(faceNode int) int {
	var (
		e = faceNode / 2
		f = faceNode % 2
	)
	if f == 0 {
		if e == 0 {
			if el.periodic {
				return 2*el.K - 1
			}
			return -1
		}
		return 2*(e-1) + 1
	}
	if e == el.K-1 {
		if el.periodic {
			return 0
		}
		return -1
	}
	return 2 * (e + 1)
}

func (el *Line1D) FaceNormals() [][]float64 { return el.normals }

func (el *Line1D) BoundaryTags() []string { return el.btags }

func (el *Line1D) BoundaryFaceNodes(btag string) []int { return el.btagFaces[btag] }

func (el *Line1D) InteriorFaceNodes() []int { return el.intFaces }

func (el *Line1D) NodesOfElement(k int) (lo, hi int) { return k * el.Np, (k + 1) * el.Np }

// DivergenceStrong is rx*(Dr F) plus the lifted difference between the
// physical normal flux at the face and the supplied numerical flux:
//
//	div = rx Dr F - LIFT (fscale (n.F - f*))
func (el *Line1D) DivergenceStrong(volFlux [][]float64, faceFlux []float64) (div []float64) {
	div = el.applyDr(volFlux[0])
	delta := make([]float64, el.NumFaceNodes())
	for f := range delta {
		delta[f] = el.normals[0][f]*volFlux[0][el.vmapM[f]] - faceFlux[f]
	}
	surf := el.LiftSurface(delta)
	for i := range div {
		div[i] -= surf[i]
	}
	return
}

// Gradient is the strong-form DG gradient of a scalar field, with the
// face term taken from the supplied vector-valued numerical flux:
//
//	grad_d = rx Dr u - LIFT (fscale (u n_d - f*_d))
func (el *Line1D) Gradient(field []float64, faceFlux [][]float64) (grad [][]float64) {
	grad = make([][]float64, 1)
	grad[0] = el.applyDr(field)
	delta := make([]float64, el.NumFaceNodes())
	for f := range delta {
		delta[f] = el.normals[0][f]*field[el.vmapM[f]] - faceFlux[0][f]
	}
	surf := el.LiftSurface(delta)
	for i := range grad[0] {
		grad[0][i] -= surf[i]
	}
	return
}

// FluxDifferencingVolume is the SBP split-form volume term: for every
// element, sum_j 2 D_ij f_s(q_i, q_j), with D = rx Dr. Row sums of D
// vanish, so a central f_s collapses this to the standard divergence.
func (el *Line1D) FluxDifferencingVolume(neq int, f TwoPointFlux) (vol [][]float64) {
	var (
		n  = el.NumNodes()
		fd = make([]float64, neq)
	)
	vol = make([][]float64, neq)
	for eq := range vol {
		vol[eq] = make([]float64, n)
	}
	for e := 0; e < el.K; e++ {
		base := e * el.Np
		for i := 0; i < el.Np; i++ {
			for j := 0; j < el.Np; j++ {
				d := el.rx * el.Dr.DataP[j+i*el.Np]
				if d == 0 {
					continue
				}
				f(base+i, base+j, 0, fd)
				for eq := 0; eq < neq; eq++ {
					vol[eq][base+i] += 2. * d * fd[eq]
				}
			}
		}
	}
	return
}

// applyDr differentiates a volume field: rx * (Dr field) per element.
func (el *Line1D) applyDr(field []float64) (out []float64) {
	out = make([]float64, el.NumNodes())
	for e := 0; e < el.K; e++ {
		base := e * el.Np
		for i := 0; i < el.Np; i++ {
			var acc float64
			for j := 0; j < el.Np; j++ {
				acc += el.Dr.DataP[j+i*el.Np] * field[base+j]
			}
			out[base+i] = el.rx * acc
		}
	}
	return
}

// LiftSurface applies LIFT to a face-node field scaled by fscale,
// returning a volume field.
func (el *Line1D) LiftSurface(faceDelta []float64) (out []float64) {
	out = make([]float64, el.NumNodes())
	el.liftGlobal.MulVec(faceDelta, out)
	return
}

// ElementAverage returns the cell average of a nodal field per element,
// using the exactness of LGL quadrature on the mass matrix: the average
// is the first modal coefficient scaled by 1/sqrt(2).
func (el *Line1D) ElementAverage(field []float64) (avg []float64) {
	// Modal projection row 0 of V^{-1} integrates against the constant
	// mode; cheaper here is the quadrature weight view w_i = (M 1)_i.
	w := el.massWeights()
	avg = make([]float64, el.K)
	for e := 0; e < el.K; e++ {
		var num float64
		base := e * el.Np
		for i := 0; i < el.Np; i++ {
			num += w[i] * field[base+i]
		}
		avg[e] = num / 2. // reference element length
	}
	return
}

// massWeights returns the reference-element mass matrix row sums, the
// LGL quadrature weights.
func (el *Line1D) massWeights() (w []float64) {
	var (
		Vinv, err = el.V.Inverse()
	)
	if err != nil {
		panic(err)
	}
	M := Vinv.Transpose().Mul(Vinv)
	w = make([]float64, el.Np)
	for i := 0; i < el.Np; i++ {
		for j := 0; j < el.Np; j++ {
			w[i] += M.DataP[j+i*el.Np]
		}
	}
	return
}
