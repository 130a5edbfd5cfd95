package output

import (
	"fmt"
	"io"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/core/ui"
	"landed-cost/internal/errors"
)

// CLIFormatter renders colored terminal tables
type CLIFormatter struct {
	NoColor bool
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report as terminal tables
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	uw := ui.NewWriter(w, f.NoColor)
	currency := report.Metadata.Currency

	switch report.Kind {
	case KindCompute:
		f.renderResult(uw, report.Result, currency, report.Options)
	case KindCompare:
		f.renderComparison(uw, report.Comparison, currency)
	case KindWhatIf:
		f.renderWhatIf(uw, report.WhatIf, currency)
	}
	return nil
}

func (f *CLIFormatter) renderResult(uw *ui.Writer, res *engine.Result, currency types.Currency, opts Options) {
	uw.Header(fmt.Sprintf("Landed Cost · %s · %s", res.Params.AssemblySite, res.Params.ScenarioDate))
	if res.Params.IncludeFixedFees {
		uw.Info("Fixed shipment fees amortized per unit")
	}

	table := uw.NewTable("SKU", "Material", "Logistics", "Tariffs", "Conversion", "Landed", "List", "Margin", "Margin %", "Lead time")
	for _, r := range res.Results {
		b := r.Breakdown
		table.AddRow(
			string(r.SKU),
			Money(b.Material, currency),
			Money(b.Logistics, currency),
			Money(b.Tariffs, currency),
			Money(b.Conversion, currency),
			Money(b.Total, currency),
			Money(b.ListPrice, currency),
			Money(b.MarginAbs, currency),
			b.MarginPct.String(),
			Days(b.LeadTimeDays),
		)
	}
	if table.Len() > 0 {
		table.Render()
	}

	if len(res.Results) == 1 {
		b := res.Results[0].Breakdown
		summary := uw.NewSummary(string(b.SKU))
		summary.Total = Money(b.Total, currency)
		summary.Margin = Money(b.MarginAbs, currency)
		summary.MarginPct = b.MarginPct.String()
		summary.LeadTime = Days(b.LeadTimeDays)
		summary.Negative = b.MarginAbs.IsNegative()
		summary.DataGaps = len(res.DataGaps)
		summary.Failures = len(res.Failures)
		uw.Println("")
		summary.Render()
	}

	if opts.ShowTariffs && len(res.Results) > 0 {
		uw.Println("")
		uw.SubHeader("Tariffs")
		tt := uw.NewTable("SKU", "Component", "Class", "Origin", "Rate", "Source")
		for _, r := range res.Results {
			for _, t := range r.Tariffs {
				tt.AddRow(string(r.SKU), string(t.ComponentID), string(t.Class), string(t.Origin), Rate(t.RatePct), string(t.Source))
			}
			fa := r.FinalAssembly
			tt.AddRow(string(r.SKU), "(final assembly)", string(fa.Class), string(fa.Origin), Rate(fa.RatePct), string(fa.Source))
		}
		tt.Render()
	}

	if opts.ShowFlows && len(res.Results) > 0 {
		uw.Println("")
		uw.SubHeader("Flows")
		ft := uw.NewTable("SKU", "Flow", "From", "To", "Value", "Share")
		for _, r := range res.Results {
			for _, fl := range r.Flows {
				ft.AddRow(string(r.SKU), fl.Label, string(fl.FromSite), string(fl.ToSite), Money(fl.CostValue, currency), fl.CostShare.String())
			}
		}
		ft.Render()
	}

	if len(res.DataGaps) > 0 {
		uw.Println("")
		for _, gap := range res.DataGaps {
			uw.Warning("no %s rate for %s from %s on %s, priced at 0%%", gap.Class, gapSubject(gap), gap.Origin, gap.ScenarioDate)
		}
	}
	if len(res.Failures) > 0 {
		uw.Println("")
		for _, fail := range res.Failures {
			uw.Error("%s: [%s] %v", fail.SKU, errors.TypeOf(fail.Err), fail.Err)
		}
	}
}

func (f *CLIFormatter) renderComparison(uw *ui.Writer, cmp *engine.Comparison, currency types.Currency) {
	uw.Header("Assembly Site Comparison")

	headers := []string{"SKU"}
	for _, s := range cmp.Sites {
		headers = append(headers, string(s.Site))
	}
	headers = append(headers, "Best")
	table := uw.NewTable(headers...)

	for _, sku := range comparisonSKUs(cmp) {
		row := []string{string(sku)}
		for _, s := range cmp.Sites {
			row = append(row, siteCell(s.Result, sku, currency))
		}
		best := "n/a"
		if site, ok := cmp.Best[sku]; ok {
			best = string(site)
		}
		table.AddRow(append(row, best)...)
	}
	table.Render()
}

func (f *CLIFormatter) renderWhatIf(uw *ui.Writer, w *engine.WhatIfResult, currency types.Currency) {
	list := uw.NewDeltaList()
	for _, d := range w.Deltas {
		switch d.Change {
		case engine.ChangeAdded:
			list.Added = append(list.Added, ui.DeltaItem{Name: string(d.SKU), NewCost: Money(d.After.Total, currency)})
		case engine.ChangeRemoved:
			list.Removed = append(list.Removed, ui.DeltaItem{Name: string(d.SKU), OldCost: Money(d.Before.Total, currency)})
		case engine.ChangeModified:
			list.Changed = append(list.Changed, ui.DeltaItem{
				Name:       string(d.SKU),
				OldCost:    Money(d.Before.Total, currency),
				NewCost:    Money(d.After.Total, currency),
				Change:     Money(d.Total, currency),
				IsIncrease: d.Total.IsPositive(),
			})
		}
	}
	list.TotalChange = Money(w.TotalDelta, currency)
	list.IsIncrease = w.TotalDelta.IsPositive()
	list.Render()

	if w.ChangedCount == 0 {
		uw.Success("No SKU changed")
	}
}
