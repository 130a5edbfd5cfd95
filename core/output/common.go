package output

import (
	"landed-cost/core/determinism"
	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// comparisonSKUs lists every SKU seen at any site, in SKU order
func comparisonSKUs(cmp *engine.Comparison) []types.SKU {
	var skus []types.SKU
	for _, s := range cmp.Sites {
		for _, r := range s.Result.Results {
			skus = append(skus, r.SKU)
		}
		for _, f := range s.Result.Failures {
			skus = append(skus, f.SKU)
		}
	}
	return determinism.Dedupe(skus)
}

// siteCell is the landed cost of a SKU at a site, or why there is none
func siteCell(res *engine.Result, sku types.SKU, currency types.Currency) string {
	if r, ok := res.Find(sku); ok {
		return Money(r.Breakdown.Total, currency)
	}
	if err, failed := res.Failure(sku); failed {
		return "n/a (" + string(errors.TypeOf(err)) + ")"
	}
	return "n/a"
}

func gapSubject(t types.TariffResolution) string {
	if t.ComponentID == "" {
		return "final assembly"
	}
	return string(t.ComponentID)
}
