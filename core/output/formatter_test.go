package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/engine"
	"landed-cost/core/output"
	"landed-cost/core/types"
)

var d = catalogtest.D

func computeReport(t *testing.T, site types.SiteID, opts output.Options) *output.Report {
	t.Helper()
	e := engine.New(catalogtest.DemoStore(), engine.DefaultOptions())
	p := types.ParameterSet{
		ScenarioDate: catalogtest.Baseline,
		AssemblySite: site,
		Overrides:    types.Overrides{{Class: "Motor", Origin: catalogtest.China}: d("5")},
	}
	res, err := e.Recompute(p)
	require.NoError(t, err)
	return &output.Report{
		Kind:     output.KindCompute,
		Result:   res,
		Options:  opts,
		Metadata: output.Metadata{Currency: types.CurrencyUSD, Version: "test"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"", output.FormatCLI, false},
		{"cli", output.FormatCLI, false},
		{"JSON", output.FormatJSON, false},
		{"md", output.FormatMarkdown, false},
		{"markdown", output.FormatMarkdown, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"98.25", "USD 98.25"},
		{"0", "USD 0.00"},
		{"0.5", "USD 0.50"},
		{"1234567.891", "USD 1,234,567.89"},
		{"-24.7", "USD -24.70"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, output.Money(d(tt.in), types.CurrencyUSD))
		})
	}
	assert.Equal(t, "+CHF 1.00", output.SignedMoney(d("1"), types.CurrencyCHF))
	assert.Equal(t, "1 day", output.Days(d("1")))
	assert.Equal(t, "43 days", output.Days(d("43")))
}

func TestRegistry(t *testing.T) {
	r := output.DefaultRegistry(true)
	require.Len(t, r.All(), 3)
	assert.Equal(t, output.FormatCLI, r.All()[0].Format())

	assert.Error(t, r.Register(&output.JSONFormatter{}))

	_, ok := r.Get(output.FormatMarkdown)
	assert.True(t, ok)

	var buf bytes.Buffer
	err := r.Render(&buf, output.FormatJSON, &output.Report{Kind: output.KindCompare})
	assert.Error(t, err, "report without payload")

	err = r.Render(&buf, "html", computeReport(t, catalogtest.PlantUS, output.Options{}))
	assert.Error(t, err)
}

func TestCLIFormatter_Compute(t *testing.T) {
	report := computeReport(t, catalogtest.PlantUS, output.Options{ShowTariffs: true, ShowFlows: true})

	var buf bytes.Buffer
	require.NoError(t, (&output.CLIFormatter{NoColor: true}).Render(&buf, report))
	out := buf.String()

	for _, want := range []string{
		"PLANT_US_MI",
		"ACTUATOR_AX100",
		"USD 98.25",
		"USD 21.75",
		"18.1%",
		"43 days",
		"override",
		"domestic",
		"MOTOR_01",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\033[")
}

func TestCLIFormatter_ReportsFailuresAndGaps(t *testing.T) {
	e := engine.New(catalogtest.DemoStore(), engine.DefaultOptions())
	res, err := e.Recompute(types.ParameterSet{ScenarioDate: catalogtest.Baseline, AssemblySite: catalogtest.PlantMX})
	require.NoError(t, err)

	var buf bytes.Buffer
	report := &output.Report{Kind: output.KindCompute, Result: res, Metadata: output.Metadata{Currency: types.CurrencyUSD}}
	require.NoError(t, (&output.CLIFormatter{NoColor: true}).Render(&buf, report))

	assert.Contains(t, buf.String(), "ACTUATOR_AX200: [NO_ASSEMBLY_OPTION]")
	assert.Contains(t, buf.String(), "Landed cost:")
	assert.Contains(t, buf.String(), "1 SKUs could not be computed")
}

func TestJSONFormatter(t *testing.T) {
	report := computeReport(t, catalogtest.PlantUS, output.Options{})

	var buf bytes.Buffer
	require.NoError(t, (&output.JSONFormatter{Indent: "  "}).Render(&buf, report))

	var doc struct {
		Kind   string `json:"kind"`
		Result struct {
			Fingerprint string `json:"fingerprint"`
			Results     []struct {
				SKU       string `json:"sku"`
				Breakdown struct {
					Total     string `json:"total"`
					MarginPct string `json:"margin_pct"`
				} `json:"breakdown"`
			} `json:"results"`
		} `json:"result"`
		Metadata struct {
			Currency string `json:"currency"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "compute", doc.Kind)
	assert.Equal(t, report.Result.Fingerprint, doc.Result.Fingerprint)
	assert.Equal(t, "USD", doc.Metadata.Currency)
	require.NotEmpty(t, doc.Result.Results)
	assert.Equal(t, "ACTUATOR_AX100", doc.Result.Results[0].SKU)
	assert.Equal(t, "98.25", doc.Result.Results[0].Breakdown.Total)
	assert.Equal(t, "0.18125", doc.Result.Results[0].Breakdown.MarginPct)
}

func TestMarkdownFormatter_Compute(t *testing.T) {
	report := computeReport(t, catalogtest.PlantUS, output.Options{ShowTariffs: true})

	var buf bytes.Buffer
	require.NoError(t, (&output.MarkdownFormatter{}).Render(&buf, report))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "## Landed cost at PLANT_US_MI (2025-01-01)"))
	assert.Contains(t, out, "| ACTUATOR_AX100 | USD 50.00 | USD 2.25 | USD 1.00 | USD 45.00 | **USD 98.25** | USD 21.75 | 18.1% |")
	assert.Contains(t, out, "### Tariffs")
	assert.Contains(t, out, "_Generated by landed-cost test")
}

func TestFormatters_CompareAndWhatIf(t *testing.T) {
	e := engine.New(catalogtest.DemoStore(), engine.DefaultOptions())
	base := types.ParameterSet{ScenarioDate: catalogtest.Baseline, AssemblySite: catalogtest.PlantMX}

	cmp, err := e.CompareSites(base)
	require.NoError(t, err)

	variant := base.Clone()
	variant.ScenarioDate = catalogtest.TariffShock
	w, err := e.WhatIf(base, variant)
	require.NoError(t, err)

	meta := output.Metadata{Currency: types.CurrencyUSD}
	reports := []*output.Report{
		{Kind: output.KindCompare, Comparison: cmp, Metadata: meta},
		{Kind: output.KindWhatIf, WhatIf: w, Metadata: meta},
	}

	for _, f := range output.DefaultRegistry(true).All() {
		for _, report := range reports {
			t.Run(string(f.Format())+"/"+string(report.Kind), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, f.Render(&buf, report))
				out := buf.String()
				switch report.Kind {
				case output.KindCompare:
					assert.Contains(t, out, "PLANT_MX_NL")
					if f.Format() != output.FormatJSON {
						assert.Contains(t, out, "n/a (NO_ASSEMBLY_OPTION)")
						assert.Contains(t, out, "USD 74.60")
					}
				case output.KindWhatIf:
					assert.Contains(t, out, "ACTUATOR_AX100")
					if f.Format() != output.FormatJSON {
						assert.Contains(t, out, "24.78")
					}
				}
			})
		}
	}
}
