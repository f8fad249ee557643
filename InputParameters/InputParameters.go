package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/astro-friedel/mirgecom/boundary"
	"github.com/astro-friedel/mirgecom/utils"
)

// InputParameters is the YAML-facing run configuration.
type InputParameters struct {
	Title           string  `json:"Title"`
	CFL             float64 `json:"CFL"`
	FinalTime       float64 `json:"FinalTime"`
	PolynomialOrder int     `json:"PolynomialOrder"`
	ElementCount    int     `json:"ElementCount"`
	XMin            float64 `json:"XMin"`
	XMax            float64 `json:"XMax"`
	Periodic        bool    `json:"Periodic"`

	Gamma       float64 `json:"Gamma"`
	GasConstant float64 `json:"GasConstant"`

	// FluxType selects the interface flux: "rusanov" or
	// "entropy-stable".
	FluxType string `json:"FluxType"`

	Viscous bool    `json:"Viscous"`
	Mu      float64 `json:"Mu"`
	Kappa   float64 `json:"Kappa"`

	Limiter bool `json:"Limiter"`

	ParallelDegree int `json:"ParallelDegree"`

	// BCs maps boundary tag names to their treatment.
	BCs map[string]BCParameters `json:"BCs"`
}

// BCParameters configures one tagged boundary.
type BCParameters struct {
	Type            string    `json:"Type"`
	WallTemperature float64   `json:"WallTemperature"`
	WallVelocity    []float64 `json:"WallVelocity"`
	Pressure        float64   `json:"Pressure"`
	Temperature     float64   `json:"Temperature"`
	Velocity        []float64 `json:"Velocity"`
	MassFractions   []float64 `json:"MassFractions"`
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("unable to parse input parameters: %w", err)
	}
	if ip.PolynomialOrder < 1 {
		return fmt.Errorf("polynomial order must be at least 1, have %d", ip.PolynomialOrder)
	}
	if ip.ElementCount < 1 {
		return fmt.Errorf("element count must be at least 1, have %d", ip.ElementCount)
	}
	if ip.Gamma == 0 {
		ip.Gamma = 1.4
	}
	if ip.GasConstant == 0 {
		ip.GasConstant = 287.
	}
	switch ip.FluxType {
	case "", "rusanov", "entropy-stable":
	default:
		return fmt.Errorf("unknown flux type %q", ip.FluxType)
	}
	return nil
}

// BuildBoundaries resolves the configured BC table into conditions for
// a gas with numSpecies species. An unknown type name or malformed
// parameter set is a fatal configuration error.
func (ip *InputParameters) BuildBoundaries(dim, numSpecies int) (map[string]*boundary.Condition, error) {
	bcs := make(map[string]*boundary.Condition, len(ip.BCs))
	for btag, params := range ip.BCs {
		bcType, err := utils.ParseBCName(params.Type)
		if err != nil {
			return nil, fmt.Errorf("boundary %q: %w", btag, err)
		}
		var bc *boundary.Condition
		switch bcType {
		case utils.BCDummy:
			bc = boundary.NewDummy()
		case utils.BCAdiabaticSlip:
			bc = boundary.NewAdiabaticSlip()
		case utils.BCAdiabaticNoslip:
			if bc, err = boundary.NewAdiabaticNoslipMoving(dim, params.WallVelocity); err != nil {
				return nil, fmt.Errorf("boundary %q: %w", btag, err)
			}
		case utils.BCIsothermalNoslip:
			bc = boundary.NewIsothermalNoslip(params.WallTemperature)
		case utils.BCFarfield:
			if bc, err = boundary.NewFarfield(dim, numSpecies, params.Velocity, params.Pressure,
				params.Temperature, params.MassFractions); err != nil {
				return nil, fmt.Errorf("boundary %q: %w", btag, err)
			}
		case utils.BCInflow:
			if bc, err = boundary.NewInflow(dim, numSpecies, params.Velocity, params.Pressure,
				params.Temperature, params.MassFractions); err != nil {
				return nil, fmt.Errorf("boundary %q: %w", btag, err)
			}
		case utils.BCOutflow:
			bc = boundary.NewOutflow(params.Pressure)
		case utils.BCIsothermalWall:
			bc = boundary.NewIsothermalWall(params.WallTemperature)
		case utils.BCAdiabaticWall:
			bc = boundary.NewAdiabaticNoslipWall()
		case utils.BCSymmetry:
			bc = boundary.NewSymmetry()
		case utils.BCPeriodic:
			// Handled by mesh connectivity; nothing to register.
			continue
		default:
			return nil, fmt.Errorf("boundary %q: type %s not usable as a flux boundary",
				btag, bcType)
		}
		bcs[btag] = bc
	}
	return bcs, nil
}
