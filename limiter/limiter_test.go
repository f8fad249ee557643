package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-friedel/mirgecom/dg"
)

func singleElement(t *testing.T) *dg.Line1D {
	disc, err := dg.NewLine1D(1, 0., 1., 1, true, "", "")
	require.NoError(t, err)
	return disc
}

func TestBoundPreservingClipsUndershoot(t *testing.T) {
	var (
		disc    = singleElement(t)
		field   = []float64{-0.1, 0.5}
		limited = BoundPreserving(disc, field, Options{Min: 0})
	)
	assert.InDelta(t, 0.0, limited[0], 1.e-14)
	assert.InDelta(t, 0.4, limited[1], 1.e-14)

	// The cell average survives the scaling.
	assert.InDelta(t, disc.ElementAverage(field)[0],
		disc.ElementAverage(limited)[0], 1.e-14)
}

func TestBoundPreservingEnforcesUpperBound(t *testing.T) {
	var (
		disc    = singleElement(t)
		field   = []float64{0.2, 1.2}
		limited = BoundPreserving(disc, field, Options{Min: 0, Max: 1, EnforceMax: true})
	)
	assert.InDelta(t, 0.4, limited[0], 1.e-14)
	assert.InDelta(t, 1.0, limited[1], 1.e-14)
}

func TestBoundPreservingLeavesAdmissibleFieldsAlone(t *testing.T) {
	var (
		disc    = singleElement(t)
		field   = []float64{0.3, 0.7}
		limited = BoundPreserving(disc, field, Options{Min: 0, Max: 1, EnforceMax: true})
	)
	assert.Equal(t, field, limited)
}

func TestModifyAverageRescuesOutOfBoundsCell(t *testing.T) {
	var (
		disc    = singleElement(t)
		field   = []float64{-0.4, -0.2}
		limited = BoundPreserving(disc, field, Options{Min: 0, ModifyAverage: true})
	)
	// Average below the floor collapses the cell onto the clipped value.
	assert.InDelta(t, 0.0, limited[0], 1.e-14)
	assert.InDelta(t, 0.0, limited[1], 1.e-14)
}

func TestLimiterActsPerElement(t *testing.T) {
	disc, err := dg.NewLine1D(1, 0., 2., 2, true, "", "")
	require.NoError(t, err)

	// Only the first element violates the bound.
	field := []float64{-0.1, 0.5, 0.3, 0.7}
	limited := BoundPreserving(disc, field, Options{Min: 0})
	assert.InDelta(t, 0.0, limited[0], 1.e-14)
	assert.InDelta(t, 0.4, limited[1], 1.e-14)
	assert.Equal(t, field[2:], limited[2:])
}
