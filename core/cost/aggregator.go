// Package cost aggregates material, logistics, tariff and conversion cost
// into one landed cost per SKU and assembly site.
package cost

import (
	"fmt"

	"github.com/shopspring/decimal"

	"landed-cost/core/join"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Input is everything one landed cost computation depends on
type Input struct {
	Product      types.Product
	AssemblySite types.Site
	Destination  types.Country
	ScenarioDate types.ScenarioDate

	// Lines are the resolved BOM lines
	Lines []join.ResolvedLine

	// Option is the assembly option of the SKU at the site; nil if none exists
	Option *types.AssemblyOption

	// Logistics is the breakdown from the logistics calculator
	Logistics types.LogisticsBreakdown

	// ComponentTariffs holds one resolution per line, in line order
	ComponentTariffs []types.TariffResolution

	// FinalAssemblyTariff is the resolution for the finished good
	FinalAssemblyTariff types.TariffResolution
}

// Aggregator computes landed cost breakdowns
type Aggregator struct {
	base CustomsBase
}

// NewAggregator creates an aggregator levying the final-assembly tariff on base
func NewAggregator(base CustomsBase) *Aggregator {
	if base == "" {
		base = DefaultCustomsBase
	}
	return &Aggregator{base: base}
}

// CustomsBase returns the configured customs base
func (a *Aggregator) CustomsBase() CustomsBase {
	return a.base
}

// Compute produces the cost breakdown. It has no side effects and returns
// bit-identical output for identical input.
//
//	material   = sum(basePrice * qty / yield)
//	tariffs    = sum(material_i * componentRate_i) + customsValue * finalAssemblyRate
//	total      = material + logistics + tariffs + conversion
//	marginAbs  = listPrice - total
//	marginPct  = marginAbs / listPrice, undefined when listPrice is zero
func (a *Aggregator) Compute(in Input) (types.CostBreakdown, error) {
	sku := in.Product.SKU
	if in.Option == nil {
		return types.CostBreakdown{}, errors.NoAssemblyOption(string(sku), string(in.AssemblySite.ID))
	}
	if len(in.ComponentTariffs) != len(in.Lines) {
		return types.CostBreakdown{}, errors.Internal(
			fmt.Sprintf("%s: %d tariff resolutions for %d lines", sku, len(in.ComponentTariffs), len(in.Lines)), nil)
	}

	material := decimal.Zero
	componentTariffs := decimal.Zero
	for i, line := range in.Lines {
		value := line.MaterialCost()
		material = material.Add(value)
		componentTariffs = componentTariffs.Add(value.Mul(in.ComponentTariffs[i].Rate()))
	}

	conversion := in.Option.BaseConversionCost
	inbound := in.Logistics.InboundCost
	outbound := in.Logistics.OutboundCost
	logistics := inbound.Add(outbound)

	customsValue := decimal.Zero
	finalTariff := decimal.Zero
	if in.FinalAssemblyTariff.Source != types.SourceDomestic {
		customsValue = a.base.Value(material, inbound, outbound, conversion)
		finalTariff = customsValue.Mul(in.FinalAssemblyTariff.Rate())
	}

	tariffs := componentTariffs.Add(finalTariff)
	total := material.Add(logistics).Add(tariffs).Add(conversion)
	margin := in.Product.ListPrice.Sub(total)

	return types.CostBreakdown{
		SKU:                 sku,
		AssemblySite:        in.AssemblySite.ID,
		AssemblyCountry:     in.AssemblySite.Country,
		Destination:         in.Destination,
		ScenarioDate:        in.ScenarioDate,
		Material:            material,
		InboundLogistics:    inbound,
		OutboundLogistics:   outbound,
		Logistics:           logistics,
		ComponentTariffs:    componentTariffs,
		FinalAssemblyTariff: finalTariff,
		Tariffs:             tariffs,
		CustomsValue:        customsValue,
		Conversion:          conversion,
		Total:               total,
		ListPrice:           in.Product.ListPrice,
		MarginAbs:           margin,
		MarginPct:           types.NewRatio(margin, in.Product.ListPrice),
		LeadTimeDays:        in.Logistics.LeadTimeDays,
		CriticalPathDays:    in.Logistics.CriticalPathDays,
	}, nil
}
