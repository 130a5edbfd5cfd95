// Package cmd - config command
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"landed-cost/internal/config"
	"landed-cost/internal/errors"
)

var forceInit bool

// configCmd groups configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the landed-cost configuration file",
}

// configInitCmd writes the default configuration
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default settings",
	Long: `Write the default configuration, with any LANDED_COST_* environment
overrides applied, to a JSON or YAML file chosen by extension.

Examples:
  landed-cost config init
  landed-cost config init ./config/landed-cost.json --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "landed-cost.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	return writeDefaultConfig(path, forceInit)
}

// writeDefaultConfig saves defaults plus environment overrides to path
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Input(path + " already exists (use --force to overwrite)")
	}

	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return errors.Config("write "+path, err)
	}
	return nil
}
