package engine

import (
	"github.com/shopspring/decimal"

	"landed-cost/core/determinism"
	"landed-cost/core/types"
)

// ChangeType classifies how a SKU moved between two runs
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // computable only in the variant
	ChangeRemoved                     // computable only in the base
	ChangeModified                    // landed cost or margin moved
	ChangeUnchanged                   // identical figures
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText renders the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// SKUDelta describes how one SKU changed
type SKUDelta struct {
	SKU    types.SKU  `json:"sku"`
	Change ChangeType `json:"change"`

	Before *types.CostBreakdown `json:"before,omitempty"`
	After  *types.CostBreakdown `json:"after,omitempty"`

	// Deltas are After - Before; zero when either side is missing
	Total     decimal.Decimal `json:"total"`
	Material  decimal.Decimal `json:"material"`
	Logistics decimal.Decimal `json:"logistics"`
	Tariffs   decimal.Decimal `json:"tariffs"`
	Margin    decimal.Decimal `json:"margin"`
	LeadTime  decimal.Decimal `json:"lead_time_days"`
}

// WhatIfResult compares a base and a variant parameter set
type WhatIfResult struct {
	Base    *Result    `json:"base"`
	Variant *Result    `json:"variant"`
	Deltas  []SKUDelta `json:"deltas"`

	// TotalDelta sums the landed cost deltas of SKUs computable in both runs
	TotalDelta decimal.Decimal `json:"total_delta"`

	ChangedCount int `json:"changed_count"`
}

// WhatIf recomputes two parameter sets and diffs them SKU by SKU
func (e *Engine) WhatIf(base, variant types.ParameterSet) (*WhatIfResult, error) {
	before, err := e.Recompute(base)
	if err != nil {
		return nil, err
	}
	after, err := e.Recompute(variant)
	if err != nil {
		return nil, err
	}
	return Diff(before, after), nil
}

// Diff compares two results SKU by SKU, in SKU order
func Diff(before, after *Result) *WhatIfResult {
	out := &WhatIfResult{
		Base:       before,
		Variant:    after,
		TotalDelta: decimal.Zero,
	}

	beforeMap := make(map[types.SKU]*types.CostBreakdown)
	for i := range before.Results {
		beforeMap[before.Results[i].SKU] = &before.Results[i].Breakdown
	}
	afterMap := make(map[types.SKU]*types.CostBreakdown)
	for i := range after.Results {
		afterMap[after.Results[i].SKU] = &after.Results[i].Breakdown
	}

	var skus []types.SKU
	for sku := range beforeMap {
		skus = append(skus, sku)
	}
	for sku := range afterMap {
		skus = append(skus, sku)
	}

	for _, sku := range determinism.Dedupe(skus) {
		b, a := beforeMap[sku], afterMap[sku]
		delta := SKUDelta{
			SKU:       sku,
			Before:    b,
			After:     a,
			Total:     decimal.Zero,
			Material:  decimal.Zero,
			Logistics: decimal.Zero,
			Tariffs:   decimal.Zero,
			Margin:    decimal.Zero,
			LeadTime:  decimal.Zero,
		}

		switch {
		case b == nil:
			delta.Change = ChangeAdded
		case a == nil:
			delta.Change = ChangeRemoved
		default:
			delta.Total = a.Total.Sub(b.Total)
			delta.Material = a.Material.Sub(b.Material)
			delta.Logistics = a.Logistics.Sub(b.Logistics)
			delta.Tariffs = a.Tariffs.Sub(b.Tariffs)
			delta.Margin = a.MarginAbs.Sub(b.MarginAbs)
			delta.LeadTime = a.LeadTimeDays.Sub(b.LeadTimeDays)
			out.TotalDelta = out.TotalDelta.Add(delta.Total)

			delta.Change = ChangeUnchanged
			if delta.changed() {
				delta.Change = ChangeModified
			}
		}

		if delta.Change != ChangeUnchanged {
			out.ChangedCount++
		}
		out.Deltas = append(out.Deltas, delta)
	}
	return out
}

// changed reports whether any component of the breakdown moved, including
// shifts that cancel out in the total
func (d SKUDelta) changed() bool {
	for _, v := range []decimal.Decimal{d.Total, d.Material, d.Logistics, d.Tariffs, d.Margin, d.LeadTime} {
		if !v.IsZero() {
			return true
		}
	}
	return false
}
