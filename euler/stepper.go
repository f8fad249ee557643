package euler

import (
	"github.com/astro-friedel/mirgecom/fluid"
)

// RHSFunc is the time-stepper facing contract: a pure right-hand side
// closing over a fixed boundary map and gas model.
type RHSFunc func(q fluid.ConservedVars, temperatureSeed []float64) (fluid.ConservedVars, error)

// SSPRK3Step advances q by one step of the third-order strong
// stability preserving Runge-Kutta scheme of Shu and Osher.
func SSPRK3Step(rhs RHSFunc, q fluid.ConservedVars, temperatureSeed []float64, dt float64) (fluid.ConservedVars, error) {
	r, err := rhs(q, temperatureSeed)
	if err != nil {
		return fluid.ConservedVars{}, err
	}
	q1 := fluid.LinearCombine(1, q, dt, r)

	if r, err = rhs(q1, temperatureSeed); err != nil {
		return fluid.ConservedVars{}, err
	}
	q2 := fluid.LinearCombine(0.75, q, 0.25, fluid.LinearCombine(1, q1, dt, r))

	if r, err = rhs(q2, temperatureSeed); err != nil {
		return fluid.ConservedVars{}, err
	}
	return fluid.LinearCombine(1./3., q, 2./3., fluid.LinearCombine(1, q2, dt, r)), nil
}
