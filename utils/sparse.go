package utils

import (
	"github.com/james-bowman/sparse"
)

// DOK is the assembly form for sparse operators (face scatter, lift).
// Assemble with Set, then freeze with ToCSR for repeated application.
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }

func (m DOK) Set(i, j int, val float64) {
	m.M.Set(i, j, val)
}

func (m DOK) ToCSR() CSR {
	return CSR{m.M.ToCSR()}
}

// CSR is the frozen application form.
type CSR struct {
	M *sparse.CSR
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }

// MulVec computes y = A*x. y must be pre-sized to the row count and is
// zeroed here, so it can be re-used across applications.
func (m CSR) MulVec(x, y []float64) {
	nr, nc := m.M.Dims()
	if len(x) != nc || len(y) != nr {
		panic("CSR.MulVec: dimension mismatch")
	}
	for i := range y {
		y[i] = 0
	}
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
}
