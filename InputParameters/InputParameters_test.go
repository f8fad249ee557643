package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sodInput = []byte(`
Title: sod shock tube
CFL: 0.4
FinalTime: 0.25
PolynomialOrder: 3
ElementCount: 64
XMin: 0.0
XMax: 1.0
FluxType: entropy-stable
BCs:
  left:
    Type: Farfield
    Pressure: 1.0
    Temperature: 0.0034843205574912894
    Velocity: [0.0]
  right:
    Type: Outflow
    Pressure: 0.1
`)

func TestParseFillsDefaults(t *testing.T) {
	ip := &InputParameters{}
	require.NoError(t, ip.Parse(sodInput))

	assert.Equal(t, "sod shock tube", ip.Title)
	assert.Equal(t, 3, ip.PolynomialOrder)
	assert.Equal(t, 64, ip.ElementCount)
	assert.Equal(t, "entropy-stable", ip.FluxType)
	assert.Equal(t, 1.4, ip.Gamma)
	assert.Equal(t, 287., ip.GasConstant)
	assert.Len(t, ip.BCs, 2)
}

func TestParseRejectsBadConfigs(t *testing.T) {
	assert.Error(t, (&InputParameters{}).Parse([]byte("PolynomialOrder: 0\nElementCount: 4\n")))
	assert.Error(t, (&InputParameters{}).Parse([]byte("PolynomialOrder: 2\nElementCount: 0\n")))
	assert.Error(t, (&InputParameters{}).Parse([]byte(
		"PolynomialOrder: 2\nElementCount: 4\nFluxType: hllc\n")))
	assert.Error(t, (&InputParameters{}).Parse([]byte(":::")))
}

func TestBuildBoundaries(t *testing.T) {
	ip := &InputParameters{}
	require.NoError(t, ip.Parse(sodInput))

	bcs, err := ip.BuildBoundaries(1, 0)
	require.NoError(t, err)
	assert.Contains(t, bcs, "left")
	assert.Contains(t, bcs, "right")
}

func TestBuildBoundariesRejectsUnknownType(t *testing.T) {
	ip := &InputParameters{
		PolynomialOrder: 2, ElementCount: 4,
		BCs: map[string]BCParameters{"left": {Type: "Teleport"}},
	}
	_, err := ip.BuildBoundaries(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left")
}

func TestBuildBoundariesSkipsPeriodic(t *testing.T) {
	ip := &InputParameters{
		BCs: map[string]BCParameters{"left": {Type: "Periodic"}},
	}
	bcs, err := ip.BuildBoundaries(1, 0)
	require.NoError(t, err)
	assert.Empty(t, bcs)
}

func TestBuildBoundariesPropagatesDimensionErrors(t *testing.T) {
	ip := &InputParameters{
		BCs: map[string]BCParameters{
			"top": {Type: "Farfield", Pressure: 101325., Temperature: 300.,
				Velocity: []float64{1., 2., 3.}},
		},
	}
	_, err := ip.BuildBoundaries(2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top")
}
