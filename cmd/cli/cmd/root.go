// Package cmd provides the CLI commands for landed-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"landed-cost/internal/config"
	"landed-cost/internal/logging"
)

var (
	cfgFile    string
	envFile    string
	verbose    bool
	dataPath   string
	dataFormat string
	outFormat  string
	noColor    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "landed-cost",
	Short: "Compute landed cost and margin per SKU",
	Long: `landed-cost computes the per-unit landed cost of finished products:
material, logistics, tariffs and conversion, and the resulting margin
against list price, for a chosen tariff scenario and assembly site.

Examples:
  landed-cost scenarios --data ./data
  landed-cost compute --data ./data --date 2025-04-01 --site PLANT_MX_NL
  landed-cost compute --scenario shock.hcl --format markdown
  landed-cost compare --data ./data --fees
  landed-cost whatif --base baseline.hcl --variant shock.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	logging.Sync()
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or YAML (default landed-cost.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with LANDED_COST_* variables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset directory (csv) or document (json/hjson)")
	rootCmd.PersistentFlags().StringVar(&dataFormat, "data-format", "", "dataset format (csv, json); detected from --data when empty")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "", "output format (cli, json, markdown)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(whatifCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
		os.Exit(1)
	}

	path := cfgFile
	if path == "" {
		path = "landed-cost.yaml"
	} else if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying environment: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// Version is set at build time
var Version = "0.1.0"

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "landed-cost version %s\n", Version)
	},
}
