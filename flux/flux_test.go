package flux

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
)

func state1D(gm gas.Model, rho, u, p float64) *gas.FluidState {
	q := fluid.NewConserved(1, 0, 1)
	q.Mass[0] = rho
	q.Momentum[0][0] = rho * u
	q.Energy[0] = p/0.4 + 0.5*rho*u*u
	return gas.MakeFluidState(q, gm, nil)
}

func TestLogMean(t *testing.T) {
	assert.Equal(t, 2.5, LogMean(2.5, 2.5))
	assert.InDelta(t, LogMean(1.0, 3.0), LogMean(3.0, 1.0), 1.e-14)

	// Separated arguments follow the exact definition.
	exact := (3.0 - 1.0) / math.Log(3.0)
	assert.InDelta(t, exact, LogMean(1.0, 3.0), 1.e-12)

	// The series branch stays continuous across the switch point.
	x, y := 1.0, 1.02
	exact = (y - x) / math.Log(y/x)
	assert.InDelta(t, exact, LogMean(x, y), 1.e-12)
}

func TestRusanovConsistency(t *testing.T) {
	var (
		gm     = gas.Model{EOS: gas.NewIdealGas(1.4, 287.)}
		s      = state1D(gm, 1.3, 75., 101325.)
		normal = [][]float64{{1.}}
		phys   = InviscidNormalFlux(s, normal)
		num    = RusanovFlux(gas.StatePair{Int: s, Ext: s}, normal)
	)
	assert.Equal(t, phys.Mass[0], num.Mass[0])
	assert.Equal(t, phys.Momentum[0][0], num.Momentum[0][0])
	assert.Equal(t, phys.Energy[0], num.Energy[0])
}

func TestChandrashekarConsistency(t *testing.T) {
	var (
		gm     = gas.Model{EOS: gas.NewIdealGas(1.4, 287.)}
		s      = state1D(gm, 1.3, 75., 101325.)
		normal = [][]float64{{1.}}
		phys   = InviscidNormalFlux(s, normal)
		ec     = ChandrashekarFlux(1.4, gas.StatePair{Int: s, Ext: s}, normal)
	)
	assert.InDelta(t, phys.Mass[0], ec.Mass[0], 1.e-10)
	assert.InDelta(t, phys.Momentum[0][0], ec.Momentum[0][0], 1.e-6)
	assert.InDelta(t, phys.Energy[0], ec.Energy[0], 1.e-4)
}

func TestEntropyStablePenaltyVanishesOnEqualStates(t *testing.T) {
	var (
		gm     = gas.Model{EOS: gas.NewIdealGas(1.4, 287.)}
		s      = state1D(gm, 0.8, -40., 80000.)
		normal = [][]float64{{-1.}}
		pair   = gas.StatePair{Int: s, Ext: s}
		ec     = ChandrashekarFlux(1.4, pair, normal)
		es     = EntropyStableRusanovFlux(1.4, pair, normal)
	)
	assert.Equal(t, ec.Mass[0], es.Mass[0])
	assert.Equal(t, ec.Energy[0], es.Energy[0])
}

func TestRusanovDissipatesJumps(t *testing.T) {
	var (
		gm     = gas.Model{EOS: gas.NewIdealGas(1.4, 287.)}
		sL     = state1D(gm, 1.0, 0., 100000.)
		sR     = state1D(gm, 0.5, 0., 100000.)
		normal = [][]float64{{1.}}
		cen    = CentralFlux(gas.StatePair{Int: sL, Ext: sR}, normal)
		num    = RusanovFlux(gas.StatePair{Int: sL, Ext: sR}, normal)
	)
	// The penalty acts against the density jump: rho+ < rho- pushes the
	// mass flux above the central value.
	assert.Greater(t, num.Mass[0], cen.Mass[0])
}

func TestCentralGradientFluxAverages(t *testing.T) {
	var (
		gm     = gas.Model{EOS: gas.NewIdealGas(1.4, 287.)}
		sL     = state1D(gm, 1.0, 10., 100000.)
		sR     = state1D(gm, 3.0, 10., 100000.)
		normal = [][]float64{{-1.}}
		g      = CentralGradientFlux(gas.StatePair{Int: sL, Ext: sR}, normal)
	)
	assert.InDelta(t, -2.0, g.Mass[0][0], 1.e-14)
	assert.InDelta(t, -0.5*(10.+30.), g.Momentum[0][0][0], 1.e-12)
}

func TestViscousNormalFluxShearLayer(t *testing.T) {
	var (
		gm = gas.Model{
			EOS:       gas.NewIdealGas(1.4, 287.),
			Transport: gas.SimpleTransport{Mu: 0.1, Kappa: 0.02},
		}
		s      = state1D(gm, 1.0, 2.0, 100000.)
		grad   = fluid.NewGradCV(1, 0, 1)
		gradT  = [][]float64{{5.}}
		normal = [][]float64{{1.}}
	)
	grad.Momentum[0][0][0] = 3. // d(rho u)/dx with flat density

	f := ViscousNormalFlux(s, grad, gradT, normal)
	// tau_xx = mu (2 - 2/3) du/dx = 4/3 * 0.1 * 3
	assert.InDelta(t, 0.4, f.Momentum[0][0], 1.e-12)
	// energy carries tau.v plus conductive kappa dT/dx
	assert.InDelta(t, 0.4*2.0+0.02*5., f.Energy[0], 1.e-12)
	assert.Zero(t, f.Mass[0])
}
