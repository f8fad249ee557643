package dg

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/astro-friedel/mirgecom/utils"
)

// JacobiGQ computes the N'th order Gauss quadrature points and weights
// for the Jacobi polynomial of type (alpha, beta).
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	var (
		x, w []float64
		fac  float64
	)
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{2.}
		return utils.NewVector(1, x), utils.NewVector(1, w)
	}

	// Symmetric tridiagonal Jacobi matrix
	var (
		n    = N + 1
		d    = jacobiDiag(alpha, beta, N)
		e    = jacobiOffDiag(alpha, beta, N)
		data = make([]float64, n*n)
	)
	for i := 0; i < n; i++ {
		data[i*n+i] = d[i]
		if i < n-1 {
			data[i*n+i+1] = e[i]
			data[(i+1)*n+i] = e[i]
		}
	}
	JJ := mat.NewSymDense(n, data)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(x)

	VVr := mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	W = utils.NewVector(len(x), VVr.RawRowView(0)).Copy()

	gamma0 := math.Pow(2, alpha+beta+1) / (alpha + beta + 1)
	gamma0 *= gammaF(alpha+1) * gammaF(beta+1) / gammaF(alpha+beta+1)
	fac = gamma0
	w = W.DataP
	for i := range w {
		w[i] = w[i] * w[i] * fac
	}
	return utils.NewVector(len(x), x), W
}

func jacobiDiag(alpha, beta float64, N int) (d []float64) {
	d = make([]float64, N+1)
	for i := 0; i <= N; i++ {
		h1 := 2.*float64(i) + alpha + beta
		if i == 0 && alpha+beta == 0 {
			d[i] = 0
			continue
		}
		d[i] = -(alpha*alpha - beta*beta) / ((h1 + 2.) * h1)
	}
	return
}

func jacobiOffDiag(alpha, beta float64, N int) (e []float64) {
	e = make([]float64, N)
	for i := 1; i <= N; i++ {
		var (
			fi = float64(i)
			h1 = 2.*(fi-1.) + alpha + beta
		)
		e[i-1] = 2. / (h1 + 2.) * math.Sqrt(fi*(fi+alpha+beta)*(fi+alpha)*(fi+beta)/((h1+1.)*(h1+3.)))
	}
	return
}

// JacobiGL computes the N'th order Gauss-Lobatto quadrature points for
// the Jacobi polynomial of type (alpha, beta), including the endpoints.
func JacobiGL(alpha, beta float64, N int) (R utils.Vector) {
	x := make([]float64, N+1)
	x[0], x[N] = -1., 1.
	if N > 1 {
		xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
		copy(x[1:N], xint.DataP)
	}
	return utils.NewVector(N+1, x)
}

// JacobiP evaluates the normalized Jacobi polynomial of order N at the
// points r.
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = r.Len()
	)
	rg := 1. / math.Sqrt(gamma0(alpha, beta))
	if N == 0 {
		p = utils.ConstArray(rg, Nc)
		return
	}
	Np1 := N + 1
	pl := make([]float64, Np1*Nc)
	var iter int
	for i := 0; i < Nc; i++ {
		pl[i+iter] = rg
	}

	iter += Nc // increment to next row
	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	for i := 0; i < Nc; i++ {
		pl[i+iter] = rg1 * ((ab+2.0)*r.AtVec(i)/2.0 + (alpha-beta)/2.0)
	}

	if N == 1 {
		p = pl[iter : iter+Nc]
		return
	}

	a1 := alpha + 1.
	b1 := beta + 1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	PL := mat.NewDense(Np1, Nc, pl)
	var xrow []float64
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ab2ip1 := 2.*ip1 + ab
		h1 := ab2ip1
		anew := 2.0 / (h1 + 2.0) * math.Sqrt((ip1+1.0)*(ip1+1.0+ab)*(ip1+1.0+alpha)*(ip1+1.0+beta)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		x_bnew := utils.NewVector(r.Len(), nil)
		x_bnew.V.AddScaledVec(r.V, -bnew, onesVec(r.Len()))
		x_bnew.V.ScaleVec(1./anew, x_bnew.V)
		xrow = make([]float64, Nc)
		for j := 0; j < Nc; j++ {
			xrow[j] = -aold*PL.At(i, j) + x_bnew.AtVec(j)*PL.At(i+1, j)
		}
		PL.SetRow(i+2, xrow)
		aold = anew
	}
	p = PL.RawRowView(N)
	return
}

// GradJacobiP evaluates the derivative of the normalized Jacobi
// polynomial of order N at the points r.
func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, r.Len())
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1.))
	for i := range p {
		p[i] *= fac
	}
	return
}

// Vandermonde1D initializes the 1D Vandermonde matrix V_ij =
// phi_j(r_i) in the normalized Jacobi basis.
func Vandermonde1D(N int, r utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(r.Len(), N+1)
	for j := 0; j <= N; j++ {
		V.SetCol(j, JacobiP(r, 0, 0, j))
	}
	return
}

// GradVandermonde1D is the derivative Vandermonde, Vr_ij =
// dphi_j/dr(r_i).
func GradVandermonde1D(N int, r utils.Vector) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(r.Len(), N+1)
	for j := 0; j <= N; j++ {
		Vr.SetCol(j, GradJacobiP(r, 0, 0, j))
	}
	return
}

// Dmatrix1D returns the differentiation matrix Dr = Vr V^{-1} on the
// reference element.
func Dmatrix1D(N int, r utils.Vector, V, Vr utils.Matrix) (Dr utils.Matrix) {
	Vinv, err := V.Inverse()
	if err != nil {
		panic(err)
	}
	Dr = Vr.Mul(Vinv)
	return
}

// Lift1D computes the surface-integral lift operator LIFT = V V^T Emat,
// where Emat extracts the two endpoint nodes.
func Lift1D(V utils.Matrix, Np, NFaces, Nfp int) (LIFT utils.Matrix) {
	Emat := utils.NewMatrix(Np, NFaces*Nfp)
	Emat.Set(0, 0, 1.)
	Emat.Set(Np-1, 1, 1.)
	LIFT = V.Mul(V.Transpose()).Mul(Emat)
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return gammaF(a1) * gammaF(b1) * math.Pow(2, ab1) / ab1 / gammaF(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

func gammaF(x float64) float64 {
	g, _ := math.Lgamma(x)
	return math.Exp(g)
}

func onesVec(n int) *mat.VecDense {
	return mat.NewVecDense(n, utils.ConstArray(1., n))
}
