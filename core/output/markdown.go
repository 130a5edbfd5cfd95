package output

import (
	"fmt"
	"io"
	"strings"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// MarkdownFormatter renders GitHub-flavored markdown tables
type MarkdownFormatter struct{}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var sb strings.Builder
	currency := report.Metadata.Currency

	switch report.Kind {
	case KindCompute:
		renderResultMarkdown(&sb, report.Result, currency, report.Options)
	case KindCompare:
		renderComparisonMarkdown(&sb, report.Comparison, currency)
	case KindWhatIf:
		renderWhatIfMarkdown(&sb, report.WhatIf, currency)
	}

	if report.Metadata.Version != "" || report.Metadata.Timestamp != "" {
		fmt.Fprintf(&sb, "\n_Generated by landed-cost %s %s_\n", report.Metadata.Version, report.Metadata.Timestamp)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func mdRow(sb *strings.Builder, cells ...string) {
	sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func mdHeader(sb *strings.Builder, headers ...string) {
	mdRow(sb, headers...)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
		if i > 0 {
			sep[i] = "---:"
		}
	}
	mdRow(sb, sep...)
}

func renderResultMarkdown(sb *strings.Builder, res *engine.Result, currency types.Currency, opts Options) {
	fmt.Fprintf(sb, "## Landed cost at %s (%s)\n\n", res.Params.AssemblySite, res.Params.ScenarioDate)
	if res.Params.IncludeFixedFees {
		sb.WriteString("Fixed shipment fees are amortized per unit.\n\n")
	}

	if len(res.Results) > 0 {
		mdHeader(sb, "SKU", "Material", "Logistics", "Tariffs", "Conversion", "Landed", "Margin", "Margin %")
		for _, r := range res.Results {
			b := r.Breakdown
			mdRow(sb,
				string(r.SKU),
				Money(b.Material, currency),
				Money(b.Logistics, currency),
				Money(b.Tariffs, currency),
				Money(b.Conversion, currency),
				"**"+Money(b.Total, currency)+"**",
				Money(b.MarginAbs, currency),
				b.MarginPct.String(),
			)
		}
	}

	if opts.ShowTariffs && len(res.Results) > 0 {
		sb.WriteString("\n### Tariffs\n\n")
		mdHeader(sb, "SKU", "Component", "Origin", "Rate", "Source")
		for _, r := range res.Results {
			for _, t := range r.Tariffs {
				mdRow(sb, string(r.SKU), string(t.ComponentID), string(t.Origin), Rate(t.RatePct), string(t.Source))
			}
			fa := r.FinalAssembly
			mdRow(sb, string(r.SKU), "final assembly", string(fa.Origin), Rate(fa.RatePct), string(fa.Source))
		}
	}

	if opts.ShowFlows && len(res.Results) > 0 {
		sb.WriteString("\n### Flows\n\n")
		mdHeader(sb, "SKU", "Flow", "From", "To", "Value", "Share")
		for _, r := range res.Results {
			for _, fl := range r.Flows {
				mdRow(sb, string(r.SKU), fl.Label, string(fl.FromSite), string(fl.ToSite), Money(fl.CostValue, currency), fl.CostShare.String())
			}
		}
	}

	if len(res.DataGaps) > 0 {
		sb.WriteString("\n### Data gaps\n\n")
		for _, gap := range res.DataGaps {
			fmt.Fprintf(sb, "- %s: no %s rate from %s, priced at 0%%\n", gapSubject(gap), gap.Class, gap.Origin)
		}
	}

	if len(res.Failures) > 0 {
		sb.WriteString("\n### Not computed\n\n")
		for _, fail := range res.Failures {
			fmt.Fprintf(sb, "- `%s` %s: %v\n", fail.SKU, errors.TypeOf(fail.Err), fail.Err)
		}
	}
}

func renderComparisonMarkdown(sb *strings.Builder, cmp *engine.Comparison, currency types.Currency) {
	sb.WriteString("## Assembly site comparison\n\n")
	headers := []string{"SKU"}
	for _, s := range cmp.Sites {
		headers = append(headers, string(s.Site))
	}
	mdHeader(sb, append(headers, "Best")...)

	for _, sku := range comparisonSKUs(cmp) {
		row := []string{string(sku)}
		for _, s := range cmp.Sites {
			row = append(row, siteCell(s.Result, sku, currency))
		}
		best := "n/a"
		if site, ok := cmp.Best[sku]; ok {
			best = string(site)
		}
		mdRow(sb, append(row, best)...)
	}
}

func renderWhatIfMarkdown(sb *strings.Builder, w *engine.WhatIfResult, currency types.Currency) {
	sb.WriteString("## What-if\n\n")
	mdHeader(sb, "SKU", "Change", "Before", "After", "Δ Landed", "Δ Tariffs", "Δ Logistics", "Δ Lead time")
	for _, d := range w.Deltas {
		before, after := "n/a", "n/a"
		if d.Before != nil {
			before = Money(d.Before.Total, currency)
		}
		if d.After != nil {
			after = Money(d.After.Total, currency)
		}
		mdRow(sb,
			string(d.SKU),
			d.Change.String(),
			before,
			after,
			SignedMoney(d.Total, currency),
			SignedMoney(d.Tariffs, currency),
			SignedMoney(d.Logistics, currency),
			d.LeadTime.String(),
		)
	}
	fmt.Fprintf(sb, "\n**Total change:** %s\n", SignedMoney(w.TotalDelta, currency))
}
