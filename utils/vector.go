package utils

import (
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64
}

func NewVector(n int, dataO ...[]float64) (V Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	V = Vector{v, v.RawVector().Data}
	return
}

func (v Vector) Len() int            { return v.V.Len() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }

func (v Vector) Copy() (R Vector) {
	data := make([]float64, v.Len())
	copy(data, v.DataP)
	R = NewVector(v.Len(), data)
	return
}

// ConstArray allocates a slice of n copies of val.
func ConstArray(val float64, n int) (f []float64) {
	f = make([]float64, n)
	for i := range f {
		f[i] = val
	}
	return
}
