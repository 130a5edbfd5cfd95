package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landed-cost/adapters/scenario"
	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

func TestParseFile(t *testing.T) {
	f, err := scenario.ParseFile("testdata/mexico_shock.hcl")
	require.NoError(t, err)

	assert.Equal(t, catalogtest.TariffShock, f.ScenarioDate)
	assert.Equal(t, catalogtest.PlantMX, f.AssemblySite)
	require.NotNil(t, f.IncludeFixedFees)
	assert.True(t, *f.IncludeFixedFees)
	assert.Equal(t, []types.SKU{catalogtest.AX100}, f.SKUs)
	assert.Equal(t, catalogtest.SupplierDE, f.Routing["MOTOR_01"])

	rate, ok := f.Overrides.Get("Motor", catalogtest.Germany)
	require.True(t, ok)
	assert.True(t, rate.Equal(catalogtest.D("5")))

	rate, ok = f.Overrides.Get("Electronics", catalogtest.Serbia)
	require.True(t, ok)
	assert.Equal(t, "0.25", rate.String())
}

func TestApply_LayersOverBase(t *testing.T) {
	f, err := scenario.Parse([]byte(`
override "Gearbox" "Germany" {
  rate_pct = 1.5
}
`), "partial.hcl")
	require.NoError(t, err)
	assert.Nil(t, f.IncludeFixedFees)

	base := types.ParameterSet{
		ScenarioDate:     catalogtest.Baseline,
		AssemblySite:     catalogtest.PlantCH,
		IncludeFixedFees: true,
		Overrides:        types.Overrides{{Class: "Motor", Origin: catalogtest.China}: catalogtest.D("9")},
	}
	p := f.Apply(base)

	assert.Equal(t, catalogtest.Baseline, p.ScenarioDate)
	assert.Equal(t, catalogtest.PlantCH, p.AssemblySite)
	assert.True(t, p.IncludeFixedFees)
	assert.Len(t, p.Overrides, 2)
	assert.Len(t, base.Overrides, 1, "base is not mutated")
	assert.Nil(t, p.Routing)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `scenario_date = `},
		{"unknown attribute", `scenario = "2025-01-01"`},
		{"wrong type", `include_fixed_fees = "maybe"`},
		{"route without origin", `route "MOTOR_01" {}`},
		{"override needs two labels", `override "Motor" { rate_pct = 1 }`},
		{"negative override", "override \"Motor\" \"China\" {\n  rate_pct = -2\n}"},
		{"non numeric override", "override \"Motor\" \"China\" {\n  rate_pct = \"lots\"\n}"},
		{"duplicate override", "override \"Motor\" \"China\" {\n  rate_pct = 1\n}\noverride \"Motor\" \"China\" {\n  rate_pct = 2\n}"},
		{"duplicate route", "route \"M\" {\n  origin_site = \"A\"\n}\nroute \"M\" {\n  origin_site = \"B\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeParsing), "got %v", err)
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := scenario.ParseFile("testdata/nope.hcl")
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestScenarioDrivesEngine(t *testing.T) {
	f, err := scenario.ParseFile("testdata/baseline_us.hcl")
	require.NoError(t, err)

	p := f.Apply(types.ParameterSet{})
	res, err := engine.New(catalogtest.DemoStore(), engine.DefaultOptions()).Recompute(p)
	require.NoError(t, err)

	r, ok := res.Find(catalogtest.AX100)
	require.True(t, ok)
	assert.True(t, r.Breakdown.ComponentTariffs.Equal(catalogtest.D("1")))
	assert.True(t, r.Breakdown.Total.Equal(catalogtest.D("98.25")))
}
