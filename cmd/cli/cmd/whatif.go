// Package cmd - whatif command
package cmd

import (
	"github.com/spf13/cobra"

	"landed-cost/adapters/scenario"
	"landed-cost/core/output"
	"landed-cost/internal/errors"
)

var (
	baseScenario    string
	variantScenario string
)

// whatifCmd represents the whatif command
var whatifCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Show how landed cost moves between two scenario files",
	Long: `Evaluate a base and a variant scenario file and report, per SKU, how
landed cost, margin, tariffs, logistics and lead time change.

Both files are applied on top of the default parameters (earliest
scenario, first assembly site). Omitting --base compares the defaults
against the variant.

Examples:
  landed-cost whatif --variant mexico_shock.hcl
  landed-cost whatif --base baseline_us.hcl --variant mexico_shock.hcl --format json`,
	Args: cobra.NoArgs,
	RunE: runWhatIf,
}

func init() {
	whatifCmd.Flags().StringVar(&baseScenario, "base", "", "base scenario file (default: default parameters)")
	whatifCmd.Flags().StringVar(&variantScenario, "variant", "", "variant scenario file (required)")
}

func runWhatIf(cmd *cobra.Command, args []string) error {
	if variantScenario == "" {
		return errors.Input("--variant is required")
	}

	e, err := loadEngine()
	if err != nil {
		return err
	}

	defaults := defaultParams(e.Store())
	base := defaults
	if baseScenario != "" {
		file, err := scenario.ParseFile(baseScenario)
		if err != nil {
			return err
		}
		base = file.Apply(defaults)
	}

	file, err := scenario.ParseFile(variantScenario)
	if err != nil {
		return err
	}
	variant := file.Apply(defaults)

	result, err := e.WhatIf(base, variant)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), e, &output.Report{Kind: output.KindWhatIf, WhatIf: result})
}
