package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"landed-cost/adapters/dataset"
	"landed-cost/adapters/scenario"
	"landed-cost/core/catalog"
	"landed-cost/core/cost"
	"landed-cost/core/engine"
	"landed-cost/core/output"
	"landed-cost/core/tariff"
	"landed-cost/core/types"
	"landed-cost/internal/config"
	"landed-cost/internal/errors"
)

// paramFlags are the parameter flags shared by compute and compare
type paramFlags struct {
	scenarioFile string
	date         string
	site         string
	fees         bool
	preset       bool
	skus         []string
}

func (f *paramFlags) register(cmd *cobra.Command, withSite bool) {
	cmd.Flags().StringVarP(&f.scenarioFile, "scenario", "s", "", "HCL scenario file with parameters, routes and overrides")
	cmd.Flags().StringVar(&f.date, "date", "", "tariff scenario date (default: earliest scenario)")
	if withSite {
		cmd.Flags().StringVar(&f.site, "site", "", "assembly site ID (default: first assembly site)")
	}
	cmd.Flags().BoolVar(&f.fees, "fees", false, "amortize fixed shipment fees per unit")
	cmd.Flags().BoolVar(&f.preset, "preset-overrides", false, "start from the user rates preset in the override template")
	cmd.Flags().StringSliceVar(&f.skus, "sku", nil, "limit to these SKUs (repeatable)")
}

// params builds the parameter set: defaults, then the scenario file, then flags
func (f *paramFlags) params(cmd *cobra.Command, store *catalog.Store) (types.ParameterSet, error) {
	p := defaultParams(store)
	if f.preset {
		p.Overrides = store.TemplateOverrides()
	}

	if f.scenarioFile != "" {
		file, err := scenario.ParseFile(f.scenarioFile)
		if err != nil {
			return p, err
		}
		p = file.Apply(p)
	}

	if f.date != "" {
		p.ScenarioDate = types.ScenarioDate(f.date)
	}
	if f.site != "" {
		p.AssemblySite = types.SiteID(f.site)
	}
	if cmd.Flags().Changed("fees") {
		p.IncludeFixedFees = f.fees
	}
	if len(f.skus) > 0 {
		p.SKUs = make([]types.SKU, 0, len(f.skus))
		for _, s := range f.skus {
			p.SKUs = append(p.SKUs, types.SKU(s))
		}
	}
	return p, nil
}

// defaultParams selects the earliest scenario and the first assembly site, with no overrides
func defaultParams(store *catalog.Store) types.ParameterSet {
	p := types.ParameterSet{Overrides: make(types.Overrides)}
	if scenarios := store.Scenarios(); len(scenarios) > 0 {
		p.ScenarioDate = scenarios[0].Date
	}
	if sites := store.AssemblySites(); len(sites) > 0 {
		p.AssemblySite = sites[0]
	}
	return p
}

// dataSource resolves the dataset path and format from flags and config
func dataSource(cfg *config.Config) (string, dataset.Format) {
	if dataPath != "" {
		return dataPath, dataset.Format(dataFormat)
	}
	format := dataFormat
	if format == "" {
		format = cfg.Data.Format
	}
	return cfg.Data.Dir, dataset.Format(format)
}

// loadEngine reads the dataset and configures an engine from the config
func loadEngine() (*engine.Engine, error) {
	cfg := config.Get()

	base, err := cost.ParseCustomsBase(cfg.Engine.CustomsBase)
	if err != nil {
		return nil, errors.Config("engine.customs_base", err)
	}

	path, format := dataSource(cfg)
	store, err := dataset.Load(path, format)
	if err != nil {
		return nil, err
	}

	return engine.New(store, engine.Options{
		Currency:           cfg.Engine.Currency,
		ReferenceBatchSize: cfg.Engine.ReferenceBatchSize,
		CustomsBase:        base,
		DefaultDestination: cfg.Engine.DefaultDestination,
		TariffPolicy:       tariff.Policy{UseTemplateDefaults: cfg.Engine.UseTemplateDefaults},
	}), nil
}

// render writes a report in the requested or configured format
func render(w io.Writer, e *engine.Engine, report *output.Report) error {
	cfg := config.Get()

	name := outFormat
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}

	path, _ := dataSource(cfg)
	report.Options.ShowFlows = report.Options.ShowFlows || cfg.Output.ShowFlows
	report.Options.ShowTariffs = report.Options.ShowTariffs || cfg.Output.ShowTariffs
	report.Metadata = output.Metadata{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     Version,
		DataSource:  path,
		Currency:    e.Options().Currency,
		CustomsBase: string(e.Options().CustomsBase),
	}

	if err := output.DefaultRegistry(noColor).Render(w, format, report); err != nil {
		return fmt.Errorf("render %s output: %w", format, err)
	}
	return nil
}
