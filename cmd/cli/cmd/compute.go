// Package cmd - compute command
package cmd

import (
	"github.com/spf13/cobra"

	"landed-cost/core/output"
)

var (
	computeFlags paramFlags
	showFlows    bool
	showTariffs  bool
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute landed cost for every SKU at one assembly site",
	Long: `Compute the landed cost breakdown and margin of every SKU for one
tariff scenario and assembly site.

Parameters start from the earliest scenario and the first assembly site,
are then layered with the scenario file (--scenario), and finally with
explicit flags. SKUs that cannot be computed are listed with the reason;
they never stop the others.

Examples:
  landed-cost compute --data ./data
  landed-cost compute --date 2025-04-01 --site PLANT_MX_NL --fees
  landed-cost compute --scenario shock.hcl --format json`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeFlags.register(computeCmd, true)
	computeCmd.Flags().BoolVar(&showFlows, "flows", false, "list per-flow cost shares")
	computeCmd.Flags().BoolVar(&showTariffs, "tariffs", false, "list the tariff resolution of every BOM line")
}

func runCompute(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	p, err := computeFlags.params(cmd, e.Store())
	if err != nil {
		return err
	}

	res, err := e.Recompute(p)
	if err != nil {
		return err
	}

	report := &output.Report{
		Kind:    output.KindCompute,
		Result:  res,
		Options: output.Options{ShowFlows: showFlows, ShowTariffs: showTariffs},
	}
	return render(cmd.OutOrStdout(), e, report)
}
