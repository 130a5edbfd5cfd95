// Package guards - Runtime invariant checks on computed results
// A breakdown whose parts do not add up is never returned to a caller.
package guards

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Invariant is one named identity a cost breakdown must satisfy
type Invariant struct {
	Name  string
	Check func(b types.CostBreakdown) bool
}

// BreakdownInvariants returns the identities every breakdown satisfies
func BreakdownInvariants() []Invariant {
	return []Invariant{
		{
			Name: "logistics = inbound + outbound",
			Check: func(b types.CostBreakdown) bool {
				return b.Logistics.Equal(b.InboundLogistics.Add(b.OutboundLogistics))
			},
		},
		{
			Name: "tariffs = component + final assembly",
			Check: func(b types.CostBreakdown) bool {
				return b.Tariffs.Equal(b.ComponentTariffs.Add(b.FinalAssemblyTariff))
			},
		},
		{
			Name: "total = material + logistics + tariffs + conversion",
			Check: func(b types.CostBreakdown) bool {
				return b.Total.Equal(b.Material.Add(b.Logistics).Add(b.Tariffs).Add(b.Conversion))
			},
		},
		{
			Name: "margin = list price - total",
			Check: func(b types.CostBreakdown) bool {
				return b.MarginAbs.Equal(b.ListPrice.Sub(b.Total))
			},
		},
		{
			Name: "margin percent defined iff list price is non-zero",
			Check: func(b types.CostBreakdown) bool {
				return b.MarginPct.Defined == !b.ListPrice.IsZero()
			},
		},
		{
			Name: "no negative cost component",
			Check: func(b types.CostBreakdown) bool {
				for _, d := range []decimal.Decimal{b.Material, b.Logistics, b.Tariffs, b.Conversion} {
					if d.IsNegative() {
						return false
					}
				}
				return true
			},
		},
	}
}

// CheckBreakdown reports every violated invariant as an internal error
func CheckBreakdown(b types.CostBreakdown) error {
	var errs error
	for _, inv := range BreakdownInvariants() {
		if !inv.Check(b) {
			errs = multierr.Append(errs, violation(b.SKU, inv.Name))
		}
	}
	return errs
}

// CheckFlows asserts that flows plus conversion account for the whole landed cost
func CheckFlows(b types.CostBreakdown, flows []types.Flow) error {
	sum := decimal.Zero
	for _, f := range flows {
		if f.SKU != b.SKU {
			return violation(b.SKU, fmt.Sprintf("flow %q belongs to %s", f.Label, f.SKU))
		}
		sum = sum.Add(f.CostValue)
	}
	if !sum.Add(b.Conversion).Equal(b.Total) {
		return violation(b.SKU, fmt.Sprintf("flows %s + conversion %s != total %s", sum, b.Conversion, b.Total))
	}
	return nil
}

func violation(sku types.SKU, what string) error {
	return errors.Internal("INVARIANT VIOLATED: "+what, nil).WithContext("sku", string(sku))
}
