// Package cmd - compare command
package cmd

import (
	"github.com/spf13/cobra"

	"landed-cost/core/output"
)

var compareFlags paramFlags

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare landed cost of every SKU across all assembly sites",
	Long: `Compare landed cost across every assembly site in the dataset.

The same parameters are evaluated once per site. A SKU that cannot be
assembled at a site is shown as not available there, never as zero cost,
and the cheapest site per SKU is marked.

Examples:
  landed-cost compare --date 2025-04-01
  landed-cost compare --scenario shock.hcl --format markdown`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	compareFlags.register(compareCmd, false)
}

func runCompare(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	p, err := compareFlags.params(cmd, e.Store())
	if err != nil {
		return err
	}

	comparison, err := e.CompareSites(p)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), e, &output.Report{Kind: output.KindCompare, Comparison: comparison})
}
