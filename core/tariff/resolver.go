// Package tariff resolves ad-valorem tariff rates under the layered
// override policy: analyst override, then scenario rate, then (optionally)
// the template default, then zero flagged as a data gap. Tiers never blend.
package tariff

import (
	"github.com/shopspring/decimal"

	"landed-cost/core/join"
	"landed-cost/core/types"
)

// RateTable provides scenario and template rates in percent
type RateTable interface {
	// BaseRate returns the scenario rate for a class/origin pair
	BaseRate(class types.ComponentClass, origin types.Country, date types.ScenarioDate) (decimal.Decimal, bool)

	// TemplateDefault returns the template default rate for a class/origin pair
	TemplateDefault(class types.ComponentClass, origin types.Country) (decimal.Decimal, bool)
}

// Policy configures optional resolution tiers
type Policy struct {
	// UseTemplateDefaults inserts the template default tier after the scenario tier
	UseTemplateDefaults bool
}

// ResolveRate resolves one rate. It is a pure function of its arguments.
// Negative table entries are treated as absent so a rate is never negative.
func ResolveRate(
	class types.ComponentClass,
	origin types.Country,
	date types.ScenarioDate,
	overrides types.Overrides,
	rates RateTable,
	policy Policy,
) types.TariffResolution {
	res := types.TariffResolution{
		Class:        class,
		Origin:       origin,
		ScenarioDate: date,
		RatePct:      decimal.Zero,
		Source:       types.SourceNone,
	}

	if rate, ok := overrides.Get(class, origin); ok && !rate.IsNegative() {
		res.RatePct = rate
		res.Source = types.SourceOverride
		return res
	}

	if rates == nil {
		return res
	}

	if rate, ok := rates.BaseRate(class, origin, date); ok && !rate.IsNegative() {
		res.RatePct = rate
		res.Source = types.SourceScenario
		return res
	}

	if policy.UseTemplateDefaults {
		if rate, ok := rates.TemplateDefault(class, origin); ok && !rate.IsNegative() {
			res.RatePct = rate
			res.Source = types.SourceDefault
			return res
		}
	}

	return res
}

// Resolver binds a rate table and policy
type Resolver struct {
	rates  RateTable
	policy Policy
}

// NewResolver creates a resolver
func NewResolver(rates RateTable, policy Policy) *Resolver {
	return &Resolver{rates: rates, policy: policy}
}

// Resolve resolves one class/origin pair
func (r *Resolver) Resolve(class types.ComponentClass, origin types.Country, date types.ScenarioDate, overrides types.Overrides) types.TariffResolution {
	return ResolveRate(class, origin, date, overrides, r.rates, r.policy)
}

// ResolveComponents resolves the rate of every line, in line order
func (r *Resolver) ResolveComponents(lines []join.ResolvedLine, date types.ScenarioDate, overrides types.Overrides) []types.TariffResolution {
	out := make([]types.TariffResolution, len(lines))
	for i, line := range lines {
		res := r.Resolve(line.Class, line.OriginCountry, date, overrides)
		res.ComponentID = line.ComponentID
		out[i] = res
	}
	return out
}

// ResolveFinalAssembly resolves the import tariff on the finished good.
// Assembly inside the destination country crosses no border: zero, source domestic.
func (r *Resolver) ResolveFinalAssembly(assemblyCountry, destination types.Country, date types.ScenarioDate, overrides types.Overrides) types.TariffResolution {
	if assemblyCountry == destination {
		return types.TariffResolution{
			Class:        types.FinalAssemblyClass,
			Origin:       assemblyCountry,
			ScenarioDate: date,
			RatePct:      decimal.Zero,
			Source:       types.SourceDomestic,
		}
	}
	return r.Resolve(types.FinalAssemblyClass, assemblyCountry, date, overrides)
}
