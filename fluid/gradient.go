package fluid

// GradCV carries the spatial gradient of every conserved field at a set
// of nodes. It lives only for the duration of one viscous right-hand
// side evaluation; the caller owns it.
type GradCV struct {
	Mass     [][]float64   // [dir][node]
	Energy   [][]float64   // [dir][node]
	Momentum [][][]float64 // [component][dir][node]
	Species  [][][]float64 // [alpha][dir][node]
}

func NewGradCV(dim, nspecies, n int) (g GradCV) {
	alloc := func() [][]float64 {
		f := make([][]float64, dim)
		for d := range f {
			f[d] = make([]float64, n)
		}
		return f
	}
	g.Mass = alloc()
	g.Energy = alloc()
	g.Momentum = make([][][]float64, dim)
	for i := range g.Momentum {
		g.Momentum[i] = alloc()
	}
	if nspecies > 0 {
		g.Species = make([][][]float64, nspecies)
		for alpha := range g.Species {
			g.Species[alpha] = alloc()
		}
	}
	return
}

func (g GradCV) Dim() int        { return len(g.Mass) }
func (g GradCV) NumSpecies() int { return len(g.Species) }
func (g GradCV) Len() int {
	if g.Dim() == 0 {
		return 0
	}
	return len(g.Mass[0])
}

// VelocityGradient computes grad(v) from grad(CV) via the product rule:
// grad(v_i) = (grad(rho v_i) - v_i grad(rho)) / rho.
func VelocityGradient(cv ConservedVars, gradCV GradCV) (gradV [][][]float64) {
	var (
		dim = cv.Dim()
		n   = cv.Len()
	)
	gradV = make([][][]float64, dim)
	for i := 0; i < dim; i++ {
		gradV[i] = make([][]float64, dim)
		for d := 0; d < dim; d++ {
			gradV[i][d] = make([]float64, n)
			for p := 0; p < n; p++ {
				rho := cv.Mass[p]
				vi := cv.Momentum[i][p] / rho
				gradV[i][d][p] = (gradCV.Momentum[i][d][p] - vi*gradCV.Mass[d][p]) / rho
			}
		}
	}
	return
}

// SpeciesMassFractionGradient computes grad(Y_alpha) from grad(CV):
// grad(Y_alpha) = (grad(rho Y_alpha) - Y_alpha grad(rho)) / rho.
func SpeciesMassFractionGradient(cv ConservedVars, gradCV GradCV) (gradY [][][]float64) {
	var (
		dim = cv.Dim()
		n   = cv.Len()
	)
	gradY = make([][][]float64, cv.NumSpecies())
	for alpha := range gradY {
		gradY[alpha] = make([][]float64, dim)
		for d := 0; d < dim; d++ {
			gradY[alpha][d] = make([]float64, n)
			for p := 0; p < n; p++ {
				rho := cv.Mass[p]
				y := cv.Species[alpha][p] / rho
				gradY[alpha][d][p] = (gradCV.Species[alpha][d][p] - y*gradCV.Mass[d][p]) / rho
			}
		}
	}
	return
}
