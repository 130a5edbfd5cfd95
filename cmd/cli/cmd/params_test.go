package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landed-cost/core/catalog"
	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/types"
	"landed-cost/internal/config"
)

func newParamCommand(t *testing.T, args ...string) (*cobra.Command, *paramFlags) {
	t.Helper()
	f := &paramFlags{}
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd, true)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func TestDefaultParams(t *testing.T) {
	p := defaultParams(catalogtest.DemoStore())

	assert.Equal(t, catalogtest.Baseline, p.ScenarioDate)
	assert.Equal(t, catalogtest.PlantCH, p.AssemblySite)
	assert.Empty(t, p.Overrides)
	assert.False(t, p.IncludeFixedFees)
	require.NoError(t, p.Validate())
}

func TestParams_FlagsOverrideScenarioFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "shock.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`
scenario_date      = "2025-04-01"
assembly_site      = "PLANT_US_MI"
include_fixed_fees = true

override "Motor" "China" {
  rate_pct = 5
}
`), 0644))

	cmd, f := newParamCommand(t, "--scenario", file, "--site", "PLANT_MX_NL", "--fees=false", "--sku", "ACTUATOR_AX100")
	p, err := f.params(cmd, catalogtest.DemoStore())
	require.NoError(t, err)

	assert.Equal(t, catalogtest.TariffShock, p.ScenarioDate)
	assert.Equal(t, catalogtest.PlantMX, p.AssemblySite)
	assert.False(t, p.IncludeFixedFees)
	assert.Equal(t, []types.SKU{catalogtest.AX100}, p.SKUs)

	rate, ok := p.Overrides.Get("Motor", catalogtest.China)
	require.True(t, ok)
	assert.True(t, rate.Equal(catalogtest.D("5")))
}

func TestParams_FeesUnchangedKeepsScenarioValue(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fees.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`include_fixed_fees = true`), 0644))

	cmd, f := newParamCommand(t, "--scenario", file)
	p, err := f.params(cmd, catalogtest.DemoStore())
	require.NoError(t, err)
	assert.True(t, p.IncludeFixedFees)
}

func TestParams_PresetOverrides(t *testing.T) {
	tables := catalogtest.DemoTables()
	tables.TariffOverridesTemplate[2].UserRatePct = catalogtest.P("5")
	store := catalog.NewStore(tables)

	cmd, f := newParamCommand(t, "--preset-overrides")
	p, err := f.params(cmd, store)
	require.NoError(t, err)

	assert.Len(t, p.Overrides, 1)
	rate, ok := p.Overrides.Get("Housing", catalogtest.Serbia)
	require.True(t, ok)
	assert.True(t, rate.Equal(catalogtest.D("5")))

	cmd, f = newParamCommand(t)
	p, err = f.params(cmd, store)
	require.NoError(t, err)
	assert.Empty(t, p.Overrides)
}

func TestParams_MissingScenarioFile(t *testing.T) {
	cmd, f := newParamCommand(t, "--scenario", filepath.Join(t.TempDir(), "missing.hcl"))
	_, err := f.params(cmd, catalogtest.DemoStore())
	require.Error(t, err)
}

func TestDataSource(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = "data"
	cfg.Data.Format = "csv"

	t.Cleanup(func() { dataPath, dataFormat = "", "" })

	path, format := dataSource(cfg)
	assert.Equal(t, "data", path)
	assert.Equal(t, "csv", string(format))

	dataPath = "demo.hjson"
	path, format = dataSource(cfg)
	assert.Equal(t, "demo.hjson", path)
	assert.Empty(t, string(format))

	dataFormat = "json"
	_, format = dataSource(cfg)
	assert.Equal(t, "json", string(format))
}
