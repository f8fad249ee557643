package utils

import (
	"fmt"
	"strings"
)

// BCType enumerates the boundary treatments the flux assembly knows how
// to build. The mapping from mesh tag names to BCType is fixed at setup
// time; an unknown name is a configuration error, never a silent default.
type BCType uint16

const (
	BCNone BCType = iota

	BCDummy            // copies the interior solution (testing only)
	BCAdiabaticSlip    // reflective inviscid slip wall / symmetry
	BCAdiabaticNoslip  // no-slip moving wall, adiabatic
	BCIsothermalNoslip // no-slip wall at fixed temperature
	BCFarfield         // fixed free-stream state
	BCInflow           // characteristic (Riemann invariant) inflow
	BCOutflow          // partially non-reflecting pressure outflow
	BCIsothermalWall   // viscous isothermal wall
	BCAdiabaticWall    // viscous adiabatic no-slip wall
	BCSymmetry         // viscous symmetry plane
	BCPeriodic         // handled by mesh connectivity, no flux override
)

func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:             "None",
		BCDummy:            "Dummy",
		BCAdiabaticSlip:    "AdiabaticSlip",
		BCAdiabaticNoslip:  "AdiabaticNoslip",
		BCIsothermalNoslip: "IsothermalNoslip",
		BCFarfield:         "Farfield",
		BCInflow:           "Inflow",
		BCOutflow:          "Outflow",
		BCIsothermalWall:   "IsothermalWall",
		BCAdiabaticWall:    "AdiabaticWall",
		BCSymmetry:         "Symmetry",
		BCPeriodic:         "Periodic",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap maps mesh/config boundary names to BCType. Keys are
// lowercase for case-insensitive matching.
var BCNameMap = map[string]BCType{
	"dummy":             BCDummy,
	"slip":              BCAdiabaticSlip,
	"slip_wall":         BCAdiabaticSlip,
	"inviscid_wall":     BCAdiabaticSlip,
	"noslip":            BCAdiabaticNoslip,
	"no_slip":           BCAdiabaticNoslip,
	"moving_wall":       BCAdiabaticNoslip,
	"isothermal_noslip": BCIsothermalNoslip,
	"farfield":          BCFarfield,
	"far_field":         BCFarfield,
	"freestream":        BCFarfield,
	"inflow":            BCInflow,
	"inlet":             BCInflow,
	"outflow":           BCOutflow,
	"outlet":            BCOutflow,
	"exit":              BCOutflow,
	"isothermal_wall":   BCIsothermalWall,
	"adiabatic_wall":    BCAdiabaticWall,
	"symmetry":          BCSymmetry,
	"symmetric":         BCSymmetry,
	"periodic":          BCPeriodic,
}

// ParseBCName converts a boundary name string to its BCType. Unknown
// names are an error; a misnamed boundary must never silently become a
// wall.
func ParseBCName(name string) (BCType, error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType, nil
	}
	return BCNone, fmt.Errorf("unknown boundary condition name %q", name)
}
