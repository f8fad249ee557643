package cmd

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-friedel/mirgecom/InputParameters"
	"github.com/astro-friedel/mirgecom/boundary"
	"github.com/astro-friedel/mirgecom/dg"
	"github.com/astro-friedel/mirgecom/euler"
	"github.com/astro-friedel/mirgecom/flux"
	"github.com/astro-friedel/mirgecom/fluid"
	"github.com/astro-friedel/mirgecom/gas"
	"github.com/astro-friedel/mirgecom/limiter"
	"github.com/astro-friedel/mirgecom/navierstokes"
)

func init() {
	runCmd.Flags().StringP("input", "I", "", "YAML input file defining the run")
	runCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a one-dimensional shock tube simulation",
	Long: `run advances a 1D compressible flow problem (Sod shock tube by
default) to the configured final time, with boundary conditions taken
from the input file's BCs table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")
		if inputFile == "" {
			return fmt.Errorf("an input file is required, use --input")
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return err
		}
		ip := &InputParameters.InputParameters{CFL: 0.5, FinalTime: 0.2}
		if err := ip.Parse(data); err != nil {
			return err
		}
		return runSimulation(ip)
	},
}

func runSimulation(ip *InputParameters.InputParameters) error {
	disc, err := dg.NewLine1D(ip.PolynomialOrder, ip.XMin, ip.XMax, ip.ElementCount,
		ip.Periodic, "left", "right")
	if err != nil {
		return err
	}
	bcs, err := ip.BuildBoundaries(disc.Dim(), 0)
	if err != nil {
		return err
	}
	gm := gas.Model{EOS: gas.NewIdealGas(ip.Gamma, ip.GasConstant)}
	if ip.Viscous {
		gm.Transport = gas.SimpleTransport{Mu: ip.Mu, Kappa: ip.Kappa}
	}

	np := ip.ParallelDegree
	if np < 1 {
		np = runtime.NumCPU()
	}

	rhs, err := buildRHS(ip, disc, gm, bcs, np)
	if err != nil {
		return err
	}

	q := sodInitialState(disc, ip.Gamma)
	log.WithFields(log.Fields{
		"title":    ip.Title,
		"elements": ip.ElementCount,
		"order":    ip.PolynomialOrder,
		"flux":     ip.FluxType,
		"workers":  np,
	}).Info("starting run")

	var (
		t    float64
		step int
	)
	for t < ip.FinalTime {
		dt := ip.CFL * disc.H / maxWaveSpeed(q, gm)
		if t+dt > ip.FinalTime {
			dt = ip.FinalTime - t
		}
		if q, err = euler.SSPRK3Step(rhs, q, nil, dt); err != nil {
			return err
		}
		if ip.Limiter {
			q.Mass = limiter.BoundPreserving(disc, q.Mass, limiter.Options{ModifyAverage: true})
			for alpha := range q.Species {
				q.Species[alpha] = limiter.BoundPreserving(disc, q.Species[alpha],
					limiter.Options{ModifyAverage: true})
			}
		}
		t += dt
		step++
		if step%100 == 0 {
			log.WithFields(log.Fields{
				"step": step,
				"time": fmt.Sprintf("%.5f", t),
				"dt":   fmt.Sprintf("%.3e", dt),
			}).Info("advanced")
		}
	}

	state := gas.MakeFluidState(q, gm, nil)
	var rhoMin, rhoMax = q.Mass[0], q.Mass[0]
	for _, r := range q.Mass {
		rhoMin = math.Min(rhoMin, r)
		rhoMax = math.Max(rhoMax, r)
	}
	log.WithFields(log.Fields{
		"steps":   step,
		"rho_min": fmt.Sprintf("%.5f", rhoMin),
		"rho_max": fmt.Sprintf("%.5f", rhoMax),
		"p_min":   fmt.Sprintf("%.5f", minOf(state.Pressure)),
	}).Info("run complete")
	return nil
}

func buildRHS(ip *InputParameters.InputParameters, disc *dg.Line1D, gm gas.Model,
	bcs map[string]*boundary.Condition, np int) (euler.RHSFunc, error) {
	if ip.Viscous {
		op, err := navierstokes.NewOperator(disc, gm, bcs, flux.RusanovFlux,
			flux.CentralViscousFlux, np)
		if err != nil {
			return nil, err
		}
		return op.RHS, nil
	}
	if ip.FluxType == "entropy-stable" {
		op, err := euler.NewEntropyStableOperator(disc, gm, bcs, ip.Gamma, np)
		if err != nil {
			return nil, err
		}
		return op.RHS, nil
	}
	op, err := euler.NewOperator(disc, gm, bcs, flux.RusanovFlux, np)
	if err != nil {
		return nil, err
	}
	return op.RHS, nil
}

// sodInitialState is the classic Sod shock tube: a pressure and density
// jump at the domain midpoint, fluid at rest.
func sodInitialState(disc *dg.Line1D, gamma float64) fluid.ConservedVars {
	var (
		n   = disc.NumNodes()
		q   = fluid.NewConserved(1, 0, n)
		mid = disc.Xmin + 0.5*disc.H*float64(disc.K)
	)
	for i := 0; i < n; i++ {
		rho, p := 1., 1.
		if disc.X[i] >= mid {
			rho, p = 0.125, 0.1
		}
		q.Mass[i] = rho
		q.Energy[i] = p / (gamma - 1.)
	}
	return q
}

func maxWaveSpeed(q fluid.ConservedVars, gm gas.Model) (ws float64) {
	state := gas.MakeFluidState(q, gm, nil)
	for i, rho := range q.Mass {
		var vsq float64
		for d := 0; d < q.Dim(); d++ {
			v := q.Momentum[d][i] / rho
			vsq += v * v
		}
		ws = math.Max(ws, math.Sqrt(vsq)+state.SoundSpeed[i])
	}
	return
}

func minOf(f []float64) (m float64) {
	m = f[0]
	for _, v := range f {
		m = math.Min(m, v)
	}
	return
}
